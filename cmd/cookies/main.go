// cookies is a match-3 game for the terminal, played locally or over SSH.
//
// Usage:
//
//	cookies list              - List board presets
//	cookies play [preset]     - Play a board (default: classic)
//	cookies menu              - Pick boards interactively
//	cookies serve             - Start SSH server for remote play
//	cookies scores <preset>   - Show high scores for a board
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--db <path>        - Set database path (default: ~/.cookies/scores.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crush/internal/games/cookies"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

// logger is set up from --log-file before any command runs. The alt screen
// owns stdout, so local play logs nowhere unless a file is given.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cookies",
	Short: "Cookie Crush - a match-3 game in your terminal",
	Long: `Cookie Crush is a match-3 puzzle played in the terminal.

Swap two neighbouring cookies to line up three or more of a kind. Matched
cookies crumble, the ones above fall down, new ones drop in from the top and
chains score again. You have a fixed number of moves per board.

Available commands:
  list     - Show board presets
  play     - Play a board directly
  menu     - Interactive board picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  cookies list
  cookies play
  cookies play grand --difficulty hard
  cookies menu
  cookies serve --ssh :2222
  cookies scores classic`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cookies/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging opens --log-file and hands the logger to the game.
func setupLogging() error {
	if flagLogFile == "" {
		return nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "cookies",
		Level:           log.DebugLevel,
	})
	cookies.SetLogger(logger)
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
	}
}
