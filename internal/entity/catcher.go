package entity

import (
	"math"

	"github.com/vovakirdan/catch-arcade/internal/core"
)

// snapEpsilon is the residual distance below which the catcher snaps to its target.
const snapEpsilon = 0.01

// CatcherConfig holds the player's basket geometry and movement tuning.
type CatcherConfig struct {
	Width, Height float64
	Y             float64 // Row the catcher sits on
	MinX, MaxX    float64 // Inclusive bounds for the center
	MaxSpeed      float64 // Cells per second
	Smoothing     float64 // Fraction of the remaining distance closed per second
	NudgeStep     float64 // Target shift for one full-intensity direction input
}

// DefaultCatcherConfig returns tuning for an 80x24 terminal.
func DefaultCatcherConfig() CatcherConfig {
	return CatcherConfig{
		Width:     7,
		Height:    1,
		Y:         21,
		MinX:      3.5,
		MaxX:      76.5,
		MaxSpeed:  60,
		Smoothing: 12,
		NudgeStep: 4,
	}
}

// Catcher chases a clamped target X with exponential smoothing.
type Catcher struct {
	Entity

	cfg     CatcherConfig
	targetX float64
}

// NewCatcher creates an active catcher centered between its bounds.
func NewCatcher(scene Scene, cfg CatcherConfig) *Catcher {
	if cfg.MaxX < cfg.MinX {
		cfg.MinX, cfg.MaxX = cfg.MaxX, cfg.MinX
	}
	c := &Catcher{cfg: cfg}
	c.W = cfg.Width
	c.H = cfg.Height
	c.Reset()
	c.spawn(scene, c)
	return c
}

// Reset centers the catcher and stops it.
func (c *Catcher) Reset() {
	mid := (c.cfg.MinX + c.cfg.MaxX) / 2
	c.Pos = core.V3(mid, c.cfg.Y, 0)
	c.Vel = core.Vec3{}
	c.targetX = mid
}

// SetBounds changes the movement bounds, re-clamping position and target.
func (c *Catcher) SetBounds(minX, maxX, y float64) {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	c.cfg.MinX, c.cfg.MaxX, c.cfg.Y = minX, maxX, y
	c.Pos.Y = y
	c.SetX(c.Pos.X)
	c.SetTargetX(c.targetX)
}

// Bounds returns the inclusive movement bounds.
func (c *Catcher) Bounds() (minX, maxX float64) {
	return c.cfg.MinX, c.cfg.MaxX
}

// TargetX returns the clamped target the catcher is moving toward.
func (c *Catcher) TargetX() float64 {
	return c.targetX
}

// SetTargetX sets the desired center, clamped to bounds.
func (c *Catcher) SetTargetX(x float64) {
	c.targetX = core.ClampF(x, c.cfg.MinX, c.cfg.MaxX)
}

// SetX places the catcher directly. If clamping moves the position,
// the target is realigned so the catcher does not push against the wall.
func (c *Catcher) SetX(x float64) {
	clamped := core.ClampF(x, c.cfg.MinX, c.cfg.MaxX)
	c.Pos.X = clamped
	if clamped != x {
		c.targetX = clamped
	}
}

// Move applies a discrete direction (-1, 0, +1) with an intensity in [0, 1].
func (c *Catcher) Move(direction, intensity float64) {
	if direction == 0 {
		return
	}
	if intensity <= 0 {
		intensity = 1
	}
	intensity = math.Min(intensity, 1)
	c.SetTargetX(c.targetX + math.Copysign(1, direction)*intensity*c.cfg.NudgeStep)
}

// ApplyPointerDelta shifts the target by a relative pointer motion.
func (c *Catcher) ApplyPointerDelta(dx float64) {
	c.SetTargetX(c.targetX + dx)
}

// Update moves toward the target: step = (target-x) * Smoothing * dt,
// capped by MaxSpeed*dt and by the remaining distance so it never overshoots.
func (c *Catcher) Update(dtMs float64) {
	if !c.active || dtMs <= 0 {
		return
	}

	diff := c.targetX - c.Pos.X
	if math.Abs(diff) < snapEpsilon {
		c.Pos.X = c.targetX
		c.Vel.X = 0
		return
	}

	dt := dtMs / 1000
	step := diff * c.cfg.Smoothing * dt
	if limit := c.cfg.MaxSpeed * dt; c.cfg.MaxSpeed > 0 && math.Abs(step) > limit {
		step = math.Copysign(limit, step)
	}
	if math.Abs(step) > math.Abs(diff) {
		step = diff
	}

	c.Vel.X = step / dt
	c.Entity.Update(dtMs)

	if math.Abs(c.targetX-c.Pos.X) < snapEpsilon {
		c.Pos.X = c.targetX
		c.Vel.X = 0
	}
	c.SetX(c.Pos.X)
}

// Sprite draws the catcher as a basket.
func (c *Catcher) Sprite() Sprite {
	return Sprite{Glyph: '▀', Plain: '=', Color: core.ColorBrightGreen}
}
