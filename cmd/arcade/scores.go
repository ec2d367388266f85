package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catch-arcade/internal/platform/tui"
	"github.com/vovakirdan/catch-arcade/internal/registry"
	"github.com/vovakirdan/catch-arcade/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game (catcher when omitted).

Examples:
  arcade scores
  arcade scores catcher --limit 20
  arcade scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all games in the scoreboard screen")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "catcher"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	if len(scores) == 0 {
		fmt.Printf("No %s scores recorded yet.\n", title)
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	rows := make([][]string, len(scores))
	for i, entry := range scores {
		run := "-"
		if entry.Duration > 0 {
			run = entry.Duration.Round(time.Second).String()
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(entry.Score),
			run,
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
	}

	fmt.Printf("High Scores - %s\n", title)
	printTable([]string{"Rank", "Score", "Time", "Date"}, rows)

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.0f  |  Longest run: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestRun.Round(time.Second))
	}
}
