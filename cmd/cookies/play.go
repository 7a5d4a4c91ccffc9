package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cookie-crush/internal/config"
	"github.com/vovakirdan/cookie-crush/internal/core"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies/boards"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
	"github.com/vovakirdan/cookie-crush/internal/platform/tui"
	"github.com/vovakirdan/cookie-crush/internal/registry"
	"github.com/vovakirdan/cookie-crush/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSize       int
	flagMoves      int
	flagBoard      string
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play a board",
	Long: `Start playing the given board preset (classic when omitted).

Controls:
  Arrows/HJKL/WASD  - Move the cursor
  Space/Enter       - Select a cookie, then a neighbour to swap
  Mouse click       - Select the clicked cookie
  ?                 - Show a hint
  Esc               - Drop the selection
  P                 - Pause
  R                 - New board (any time)
  B                 - Back (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Board files are YAML with an id, a name, optional moves and the starting
rows as kind letters (S G B L O M). Refills stay random.

Difficulty options (number of cookie kinds):
  easy   - 4 kinds, more matches
  normal - 5 kinds
  hard   - 6 kinds, fewer matches

Examples:
  cookies play
  cookies play blitz
  cookies play grand --difficulty easy
  cookies play --size 9 --moves 50
  cookies play --board ./opening.yaml
  cookies play --config ./my-cookies.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addBoardFlags(playCmd)
}

// addBoardFlags registers the flags that shape a board.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().IntVar(&flagSize, "size", 0, fmt.Sprintf("Board size %d-%d (0 = preset)", engine.MinSize, engine.MaxSize))
	cmd.Flags().IntVar(&flagMoves, "moves", 0, "Moves per board (0 = preset)")
	cmd.Flags().StringVar(&flagBoard, "board", "", "Board file, or the id of a board in ~/.cookies/boards")
}

// boardLoader reads the user's board files.
func boardLoader() *boards.Loader {
	return boards.NewLoader(config.DataPath("boards"))
}

// applyBoardFlags validates the board flags and passes them to the game.
func applyBoardFlags() error {
	if flagSize != 0 && (flagSize < engine.MinSize || flagSize > engine.MaxSize) {
		return fmt.Errorf("board size %d outside %d-%d", flagSize, engine.MinSize, engine.MaxSize)
	}
	if flagMoves < 0 {
		return fmt.Errorf("moves %d must not be negative", flagMoves)
	}

	cookies.SetConfigPath(flagConfig)
	cookies.SetOverrides(flagSize, flagMoves)

	if flagBoard == "" {
		cookies.SetStartBoard(nil)
	} else {
		b, err := boardLoader().Resolve(flagBoard)
		if err != nil {
			return err
		}
		cookies.SetStartBoard(&b)
	}

	if flagDifficulty == "" {
		cookies.SetDifficultyPreset("")
		return nil
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	cookies.SetDifficultyPreset(preset)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "classic"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cookies list' to see available boards.")
		os.Exit(1)
	}

	if err := applyBoardFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Continue without storage if it cannot be opened - game still works
	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), tui.WithPlayer(playerName()), tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLogging()
		os.Exit(1)
	}
}

// playerName is the name recorded with local results.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
