// Package config provides YAML-based configuration loading, validation and
// difficulty management for the catcher game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// CatcherConfig contains all configuration for the catcher game.
type CatcherConfig struct {
	Shooter     ShooterConfig    `yaml:"shooter"`
	Catcher     PaddleConfig     `yaml:"catcher"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Scoring     ScoringConfig    `yaml:"scoring"`
	Quality     QualityConfig    `yaml:"quality"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// ShooterConfig defines the shooter's path and firing cadence.
// Positions are fractions of the screen so the layout survives resizes.
type ShooterConfig struct {
	Row              int     `yaml:"row"`               // Screen row, counted from the top
	AmplitudeRatio   float64 `yaml:"amplitude_ratio"`   // Path half-width as a fraction of screen width
	OscillationSpeed float64 `yaml:"oscillation_speed"` // Radians per second
	InitialInterval  int     `yaml:"initial_interval"`  // ms between shots at start
	MinInterval      int     `yaml:"min_interval"`      // ms floor
	EscalateEvery    int     `yaml:"escalate_every"`    // ms of play per interval reduction
	EscalateFactor   float64 `yaml:"escalate_factor"`   // Multiplier per reduction
}

// PaddleConfig defines the player's catcher.
type PaddleConfig struct {
	Width        int     `yaml:"width"`
	BottomOffset int     `yaml:"bottom_offset"` // Rows between the catcher and the bottom edge
	MaxSpeed     float64 `yaml:"max_speed"`     // Cells per second
	Smoothing    float64 `yaml:"smoothing"`
	NudgeStep    float64 `yaml:"nudge_step"` // Cells per key press
}

// ProjectileConfig defines the drop table and fall tuning.
type ProjectileConfig struct {
	BaseFallSpeed     float64 `yaml:"base_fall_speed"` // Cells per second
	FallJitter        float64 `yaml:"fall_jitter"`
	BaseHighValueProb float64 `yaml:"base_high_value_prob"`
	HighValueStep     float64 `yaml:"high_value_step"`
	HighValueEvery    int     `yaml:"high_value_every"`
	MaxHighValueProb  float64 `yaml:"max_high_value_prob"`
	LethalProb        float64 `yaml:"lethal_prob"`
}

// ScoringConfig defines points and the miss limit.
type ScoringConfig struct {
	LowPoints            int `yaml:"low_points"`
	HighPoints           int `yaml:"high_points"`
	MaxConsecutiveMisses int `yaml:"max_consecutive_misses"`
}

// QualityConfig pins or frees the adaptive quality controller.
type QualityConfig struct {
	Tier     string `yaml:"tier"`     // "auto", "low", "medium" or "high"
	Adaptive bool   `yaml:"adaptive"` // Feed frame times to the controller
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score, or ms of play, at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the fall speed multiplier at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. The empty string means none.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// The fixed preset also freezes the shooter cadence.
func ApplyPreset(cfg *CatcherConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Shooter.EscalateFactor = 1
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Catcher.Width += 2
		cfg.Scoring.MaxConsecutiveMisses = 3
	case DifficultyHard:
		cfg.Catcher.Width = max(3, cfg.Catcher.Width-2)
		cfg.Projectiles.LethalProb = min(0.5, cfg.Projectiles.LethalProb+0.05)
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c CatcherConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	s := c.Shooter
	check(s.Row >= 0, "shooter.row %d is negative", s.Row)
	check(s.AmplitudeRatio >= 0 && s.AmplitudeRatio <= 0.5, "shooter.amplitude_ratio %v outside [0, 0.5]", s.AmplitudeRatio)
	check(s.InitialInterval > 0, "shooter.initial_interval must be positive")
	check(s.MinInterval > 0 && s.MinInterval <= s.InitialInterval,
		"shooter.min_interval %d must be in (0, initial_interval]", s.MinInterval)
	check(s.EscalateEvery >= 0, "shooter.escalate_every is negative")
	check(s.EscalateFactor > 0 && s.EscalateFactor <= 1, "shooter.escalate_factor %v outside (0, 1]", s.EscalateFactor)

	p := c.Catcher
	check(p.Width > 0, "catcher.width must be positive")
	check(p.BottomOffset >= 0, "catcher.bottom_offset is negative")
	check(p.MaxSpeed > 0, "catcher.max_speed must be positive")
	check(p.Smoothing > 0, "catcher.smoothing must be positive")

	pr := c.Projectiles
	check(pr.BaseFallSpeed > 0, "projectiles.base_fall_speed must be positive")
	check(pr.FallJitter >= 0 && pr.FallJitter < pr.BaseFallSpeed,
		"projectiles.fall_jitter %v must be in [0, base_fall_speed)", pr.FallJitter)
	check(pr.HighValueEvery > 0, "projectiles.high_value_every must be positive")
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"base_high_value_prob", pr.BaseHighValueProb},
		{"high_value_step", pr.HighValueStep},
		{"max_high_value_prob", pr.MaxHighValueProb},
		{"lethal_prob", pr.LethalProb},
	} {
		check(f.v >= 0 && f.v <= 1, "projectiles.%s %v outside [0, 1]", f.name, f.v)
	}
	check(pr.LethalProb+pr.MaxHighValueProb <= 1,
		"projectiles.lethal_prob + max_high_value_prob exceeds 1")

	sc := c.Scoring
	check(sc.LowPoints >= 0 && sc.HighPoints >= 0, "scoring points must not be negative")
	check(sc.MaxConsecutiveMisses > 0, "scoring.max_consecutive_misses must be positive")

	switch c.Quality.Tier {
	case "", "auto", "low", "medium", "high":
	default:
		check(false, "quality.tier %q unknown", c.Quality.Tier)
	}

	d := c.Difficulty
	check(d.InitialLevel >= 0 && d.InitialLevel <= 1, "difficulty.initial_level %v outside [0, 1]", d.InitialLevel)
	switch d.Progression.Type {
	case "", "none", "score", "time":
	default:
		check(false, "difficulty.progression.type %q unknown", d.Progression.Type)
	}
	check(d.Scaling.SpeedMultiplier >= 0, "difficulty.scaling.speed_multiplier is negative")

	return errors.Join(errs...)
}
