package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/games/catcher"
	"github.com/vovakirdan/catch-arcade/internal/platform/tui"
	"github.com/vovakirdan/catch-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagQuality    string
	flagPick       bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (catcher when omitted).

Controls:
  Left/Right, A/D  - Move the catcher (Shift for fine steps)
  Mouse            - Catcher follows the pointer
  Space/Enter      - Start, play again after game over
  P                - Pause, Esc/B returns from pause or game over
  R                - Restart with a new seed (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Wider catcher, three misses allowed
  normal - Defaults from the config file
  hard   - Narrower catcher, more bombs
  fixed  - No progression, the drop pace never speeds up

Quality options:
  auto   - Classify this machine (default)
  high, medium, low - Force a tier; the frame-time controller may still lower it

Examples:
  arcade play
  arcade play catcher --difficulty easy
  arcade play --quality low --fps 30
  arcade play --pick
  arcade play --config ./my-catcher.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagQuality, "quality", "", "Quality tier: auto, high, medium, low")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose difficulty and quality on an options screen")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
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

// configureCatcher applies the play flags, optionally refined on the options screen.
// It reports false when the user backed out of the options screen.
func configureCatcher(cfg core.RuntimeConfig, pick bool) (core.RuntimeConfig, bool, error) {
	catcher.SetConfigPath(flagConfig)
	catcher.SetDifficultyPreset(flagDifficulty)
	catcher.SetQualityTier(flagQuality)
	if !pick {
		return cfg, true, nil
	}

	opts, cfg, err := tui.RunOptionsSelector(cfg)
	if err != nil || opts == nil {
		return cfg, false, err
	}
	catcher.SetDifficultyPreset(opts.Difficulty)
	catcher.SetQualityTier(opts.Quality)
	logger.Debug("options chosen", "difficulty", opts.Difficulty, "quality", opts.Quality)
	return cfg, true, nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := catcher.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := terminalConfig()
	if gameID == catcher.GameID {
		var ok bool
		var err error
		cfg, ok, err = configureCatcher(cfg, flagPick)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			return
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openScores()

	// Run the game
	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game loop failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
