package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/games/catcher"
	"github.com/vovakirdan/catch-arcade/internal/platform/tui"
	"github.com/vovakirdan/catch-arcade/internal/registry"
	"github.com/vovakirdan/catch-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game, the high score board or quit. Catcher then asks for a
difficulty and quality tier. When a round ends, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Move (wraps around)
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

// openScores opens the scores database. Failure is reported and play
// continues without persistence, signalled by a nil store.
func openScores() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openScores()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = choice.Config // Keeps resizes made while in the menu

		var again bool
		switch {
		case choice.Quit:
			return
		case choice.WantsScoreboard:
			again = showScoreboard(store, cfg)
		default:
			cfg, again = playFromMenu(store, cfg, choice.GameID)
		}
		if !again {
			return
		}
	}
}

// showScoreboard reports whether the user went back to the menu.
func showScoreboard(store *storage.Store, cfg core.RuntimeConfig) bool {
	back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return back
}

// playFromMenu runs one game session; false means leave the arcade.
func playFromMenu(store *storage.Store, cfg core.RuntimeConfig, gameID string) (core.RuntimeConfig, bool) {
	if gameID == catcher.GameID {
		next, ok, err := configureCatcher(cfg, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if err != nil || !ok {
			return next, true
		}
		cfg = next
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return cfg, true
	}

	if err := tui.Run(game, store, cfg, logger); err != nil {
		logger.Error("game loop failed", "game", gameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return cfg, false
	}
	return cfg, true
}
