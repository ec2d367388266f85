package config

import (
	_ "embed"
)

//go:embed defaults/catcher.yaml
var defaultCatcherYAML []byte

// DefaultCatcherConfig returns the built-in catcher configuration.
func DefaultCatcherConfig() CatcherConfig {
	return CatcherConfig{
		Shooter: ShooterConfig{
			Row:              2,
			AmplitudeRatio:   0.4,
			OscillationSpeed: 1.2,
			InitialInterval:  1500,
			MinInterval:      500,
			EscalateEvery:    15000,
			EscalateFactor:   0.9,
		},
		Catcher: PaddleConfig{
			Width:        7,
			BottomOffset: 2,
			MaxSpeed:     60,
			Smoothing:    12,
			NudgeStep:    4,
		},
		Projectiles: ProjectileConfig{
			BaseFallSpeed:     8,
			FallJitter:        2,
			BaseHighValueProb: 0.10,
			HighValueStep:     0.05,
			HighValueEvery:    100,
			MaxHighValueProb:  0.40,
			LethalProb:        0.15,
		},
		Scoring: ScoringConfig{
			LowPoints:            10,
			HighPoints:           50,
			MaxConsecutiveMisses: 2,
		},
		Quality: QualityConfig{
			Tier:     "auto",
			Adaptive: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "catcher":
		return defaultCatcherYAML
	default:
		return nil
	}
}
