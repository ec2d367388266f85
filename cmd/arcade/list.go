package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catch-arcade/internal/registry"
	"github.com/vovakirdan/catch-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its best recorded score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Best scores are a bonus; the list still prints without a database
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		best := "-"
		if store != nil {
			if hs, err := store.HighScore(g.ID); err == nil && hs > 0 {
				best = strconv.Itoa(hs)
			}
		}
		rows = append(rows, []string{g.ID, g.Title, best})
	}
	printTable([]string{"ID", "Title", "Best"}, rows)

	fmt.Println("Run 'arcade play <id>' to play a game, or just 'arcade play' for Catcher.")
}
