package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crush/internal/registry"
	"github.com/vovakirdan/cookie-crush/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List board presets",
	Long: `Shows every board preset with its size and move budget, plus the best
score and number of recorded games when the scores database is available.
Board files found in ~/.cookies/boards are listed after the presets.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	// Stats are optional here; a missing database just leaves them blank.
	stats := map[string]*storage.GameStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		} else {
			logger.Warn("could not load stats", "err", err)
		}
		store.Close()
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen, maxDescLen := 2, 5 // "ID", "Board" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxDescLen = max(maxDescLen, len(g.Description))
	}

	fmt.Printf("  %-*s  %-*s  %6s  %5s\n", maxIDLen, "ID", maxDescLen, "Board", "Best", "Games")
	fmt.Printf("  %-*s  %-*s  %6s  %5s\n", maxIDLen, "--", maxDescLen, "-----", "----", "-----")

	for _, g := range games {
		best, played := "-", "0"
		if st, ok := stats[g.ID]; ok {
			best = fmt.Sprintf("%d", st.HighScore)
			played = fmt.Sprintf("%d", st.GamesCount)
		}
		fmt.Printf("  %-*s  %-*s  %6s  %5s\n", maxIDLen, g.ID, maxDescLen, g.Description, best, played)
	}

	listBoardFiles()

	fmt.Println()
	fmt.Println("Run 'cookies play <id>' to play a board.")
}

// listBoardFiles prints the scripted boards found in ~/.cookies/boards.
func listBoardFiles() {
	loader := boardLoader()
	files, err := loader.LoadAll()
	if err != nil {
		logger.Warn("could not load board files", "dir", loader.Root, "err", err)
		return
	}
	if len(files) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("Board files (%s):\n", loader.Root)
	fmt.Println()
	for _, b := range files {
		fmt.Printf("  %-12s  %-20s  %dx%d\n", b.ID, b.Name, b.Size(), b.Size())
	}
	fmt.Println()
	fmt.Println("Run 'cookies play --board <id>' to start from a board file.")
}
