package config

// progressFuncs map a progression type to how far a round is toward max
// difficulty, before clamping. maxAt is always positive.
var progressFuncs = map[string]func(score int, elapsedMs, maxAt float64) float64{
	"":      byScore,
	"score": byScore,
	"time": func(_ int, elapsedMs, maxAt float64) float64 {
		return elapsedMs / maxAt
	},
}

func byScore(score int, _, maxAt float64) float64 {
	return float64(score) / maxAt
}

// DifficultyManager turns score or play time into a difficulty level and
// the fall speed that goes with it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64 // Level at the start of a round
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: unit(cfg.InitialLevel)}
}

// SetInitialLevel overrides the starting level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.floor = unit(level)
}

// SetEnabled turns progression on or off.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level can rise above the initial one.
func (d *DifficultyManager) IsEnabled() bool {
	if !d.cfg.Enabled {
		return false
	}
	_, known := progressFuncs[d.cfg.Progression.Type]
	return known
}

// Level returns the difficulty in [0, 1] for the given score and elapsed
// play time in milliseconds. It rises linearly from the initial level and
// reaches 1 at Progression.MaxAt.
func (d *DifficultyManager) Level(score int, elapsedMs float64) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	progress := unit(progressFuncs[d.cfg.Progression.Type](score, elapsedMs, maxAt))
	return d.floor + progress*(1-d.floor)
}

// FallSpeed scales base up to base * (1 + SpeedMultiplier) at max difficulty.
func (d *DifficultyManager) FallSpeed(base float64, score int, elapsedMs float64) float64 {
	return base * (1 + d.Level(score, elapsedMs)*d.cfg.Scaling.SpeedMultiplier)
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
