package entity

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/catch-arcade/internal/core"
)

// ShooterConfig holds the shooter's path and cadence parameters.
type ShooterConfig struct {
	CenterX          float64 // Center of the oscillation path
	Y                float64 // Fixed row the shooter travels on
	Amplitude        float64 // Half-width of the path in cells
	OscillationSpeed float64 // Phase advance in radians per second
	Width, Height    float64

	InitialInterval time.Duration // Starting time between shots
	MinInterval     time.Duration // Hard floor for the interval
	EscalateEvery   time.Duration // Play time between interval reductions
	EscalateFactor  float64       // Interval multiplier applied per step (0.9 = 10% faster)
	Escalate        bool          // Disabled by the fixed difficulty preset
}

// DefaultShooterConfig returns the standard cadence: 15s steps, 10% faster, 500ms floor.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		CenterX:          40,
		Y:                2,
		Amplitude:        30,
		OscillationSpeed: 1.2,
		Width:            3,
		Height:           1,
		InitialInterval:  1500 * time.Millisecond,
		MinInterval:      500 * time.Millisecond,
		EscalateEvery:    15 * time.Second,
		EscalateFactor:   0.9,
		Escalate:         true,
	}
}

// ShotEvent is emitted synchronously when the shooter fires.
type ShotEvent struct {
	X, Y float64
}

// Shooter travels a sinusoidal path and fires on a jittered countdown.
type Shooter struct {
	Entity

	cfg       ShooterConfig
	rng       *rand.Rand
	onShoot   func(ShotEvent)
	phase     float64
	countdown float64 // ms until the next shot
	interval  float64 // current base interval in ms
	playTime  float64 // cumulative play time in ms
	steps     int     // escalation steps already applied
}

// NewShooter creates an active shooter attached to scene.
// onShoot may be nil; it is called synchronously from Update.
func NewShooter(scene Scene, cfg ShooterConfig, rng *rand.Rand, onShoot func(ShotEvent)) *Shooter {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Shooter{
		cfg:     cfg,
		rng:     rng,
		onShoot: onShoot,
	}
	s.Entity.W = cfg.Width
	s.Entity.H = cfg.Height
	s.Reset()
	s.spawn(scene, s)
	return s
}

// Reset returns the shooter to its initial path position and cadence.
func (s *Shooter) Reset() {
	s.phase = 0
	s.playTime = 0
	s.steps = 0
	s.interval = durationMs(s.cfg.InitialInterval)
	s.countdown = s.interval
	s.Pos = core.V3(s.cfg.CenterX, s.cfg.Y, 0)
	s.Vel = core.Vec3{}
}

// SetPath recenters the oscillation, e.g. after a terminal resize.
func (s *Shooter) SetPath(centerX, amplitude float64) {
	s.cfg.CenterX = centerX
	s.cfg.Amplitude = math.Max(0, amplitude)
	s.Pos.X = s.cfg.CenterX + math.Sin(s.phase)*s.cfg.Amplitude
}

// Update advances the path, the escalation clock and the shot countdown by dtMs.
func (s *Shooter) Update(dtMs float64) {
	if !s.active || dtMs <= 0 {
		return
	}

	s.phase += s.cfg.OscillationSpeed * dtMs / 1000
	s.Pos.X = s.cfg.CenterX + math.Sin(s.phase)*s.cfg.Amplitude

	s.playTime += dtMs
	s.escalate()

	s.countdown -= dtMs
	if s.countdown <= 0 {
		if s.onShoot != nil {
			s.onShoot(ShotEvent{X: s.Pos.X, Y: s.Pos.Y + s.H})
		}
		s.countdown = s.interval * (0.5 + s.rng.Float64())
	}
}

// escalate applies one interval reduction per EscalateEvery boundary crossed.
// Boundaries are counted, so re-checking the same boundary never applies twice.
func (s *Shooter) escalate() {
	if !s.cfg.Escalate || s.cfg.EscalateEvery <= 0 {
		return
	}
	due := int(s.playTime / durationMs(s.cfg.EscalateEvery))
	floor := durationMs(s.cfg.MinInterval)
	for s.steps < due {
		s.steps++
		s.interval = math.Max(floor, s.interval*s.cfg.EscalateFactor)
	}
}

// Interval returns the current base interval between shots.
func (s *Shooter) Interval() time.Duration {
	return time.Duration(s.interval * float64(time.Millisecond))
}

// Steps returns how many escalation steps have been applied.
func (s *Shooter) Steps() int {
	return s.steps
}

// Sprite draws the shooter as a turret.
func (s *Shooter) Sprite() Sprite {
	return Sprite{Glyph: '▼', Plain: 'V', Color: core.ColorMagenta}
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
