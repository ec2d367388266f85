package entity

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/pool"
)

// Type classifies a projectile.
type Type int

const (
	TypeLow    Type = iota // Common drop, low points
	TypeHigh               // Rare drop, high points
	TypeLethal             // Catching it ends the session
)

// String returns the name of the projectile type.
func (t Type) String() string {
	switch t {
	case TypeLow:
		return "low"
	case TypeHigh:
		return "high"
	case TypeLethal:
		return "lethal"
	default:
		return "unknown"
	}
}

// ProjectileConfig holds the type draw probabilities and fall tuning.
type ProjectileConfig struct {
	BaseHighValueProb float64 // High-value probability at score 0
	HighValueStep     float64 // Added per HighValueEvery points
	HighValueEvery    int     // Score bucket size
	MaxHighValueProb  float64 // Cap for the high-value probability
	LethalProb        float64 // Constant, independent of score

	LowPoints  int
	HighPoints int

	FallJitter float64 // Symmetric random spread added to the fall speed
	Size       float64 // Width and height of the bounding box
}

// DefaultProjectileConfig returns the standard drop table.
func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		BaseHighValueProb: 0.10,
		HighValueStep:     0.05,
		HighValueEvery:    100,
		MaxHighValueProb:  0.40,
		LethalProb:        0.15,
		LowPoints:         10,
		HighPoints:        50,
		FallJitter:        2,
		Size:              1,
	}
}

// HighValueProbability returns min(Max, Base + floor(score/Every)*Step).
func (c ProjectileConfig) HighValueProbability(score int) float64 {
	buckets := 0
	if c.HighValueEvery > 0 && score > 0 {
		buckets = score / c.HighValueEvery
	}
	return math.Min(c.MaxHighValueProb, c.BaseHighValueProb+float64(buckets)*c.HighValueStep)
}

// SelectType maps a uniform draw r in [0, 1) to a type at the given score.
// r < lethal is lethal, r < lethal+high is high-value, the rest is low-value.
func (c ProjectileConfig) SelectType(score int, r float64) Type {
	switch {
	case r < c.LethalProb:
		return TypeLethal
	case r < c.LethalProb+c.HighValueProbability(score):
		return TypeHigh
	default:
		return TypeLow
	}
}

// Points returns the value of catching a projectile of type t.
func (c ProjectileConfig) Points(t Type) int {
	switch t {
	case TypeLow:
		return c.LowPoints
	case TypeHigh:
		return c.HighPoints
	default:
		return 0
	}
}

// Spawn is everything a projectile needs for a fresh life.
type Spawn struct {
	X, Y      float64
	Score     int     // Current score, drives the type draw
	FallSpeed float64 // Base fall speed before jitter, cells per second
}

// Projectile is a falling drop. Its type, points and fall speed are drawn
// in Reset and stay fixed until it is destroyed.
type Projectile struct {
	Entity

	scene     Scene
	cfg       *ProjectileConfig
	rng       *rand.Rand
	kind      Type
	points    int
	fallSpeed float64
}

// NewProjectile creates an active projectile from sp.
func NewProjectile(scene Scene, cfg *ProjectileConfig, rng *rand.Rand, sp Spawn) *Projectile {
	p := &Projectile{scene: scene, cfg: cfg, rng: rng}
	p.Reset(sp)
	return p
}

// Reset overwrites every mutable field from sp and a fresh random draw,
// then reattaches the visual. Nothing from a previous life survives.
func (p *Projectile) Reset(sp Spawn) {
	p.kind = p.cfg.SelectType(sp.Score, p.rng.Float64())
	p.points = p.cfg.Points(p.kind)
	p.fallSpeed = math.Max(0.1, sp.FallSpeed+(p.rng.Float64()*2-1)*p.cfg.FallJitter)

	p.Pos = core.V3(sp.X, sp.Y, 0)
	p.Vel = core.V3(0, p.fallSpeed, 0)
	p.W = p.cfg.Size
	p.H = p.cfg.Size
	p.spawn(p.scene, p)
}

// Kind returns the projectile type.
func (p *Projectile) Kind() Type {
	return p.kind
}

// Value returns the points awarded for catching this projectile.
func (p *Projectile) Value() int {
	return p.points
}

// FallSpeed returns the fall speed drawn at reset.
func (p *Projectile) FallSpeed() float64 {
	return p.fallSpeed
}

// Missed reports whether the projectile's top edge has passed lineY.
func (p *Projectile) Missed(lineY float64) bool {
	return p.active && p.Pos.Y-p.H/2 > lineY
}

// Sprite draws each type with its own glyph and color.
func (p *Projectile) Sprite() Sprite {
	switch p.kind {
	case TypeHigh:
		return Sprite{Glyph: '◆', Plain: '$', Color: core.ColorBrightCyan}
	case TypeLethal:
		return Sprite{Glyph: '✖', Plain: 'X', Color: core.ColorBrightRed}
	default:
		return Sprite{Glyph: '●', Plain: 'o', Color: core.ColorYellow}
	}
}

// ProjectilePool recycles projectiles through a capped pool.
type ProjectilePool struct {
	items *pool.Pool[*Projectile, Spawn]
}

// NewProjectilePool creates a pool retaining at most capacity projectiles.
// All instances share scene, cfg and rng.
func NewProjectilePool(capacity int, scene Scene, cfg ProjectileConfig, rng *rand.Rand) *ProjectilePool {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	shared := &cfg
	return &ProjectilePool{
		items: pool.New(capacity, func(sp Spawn) *Projectile {
			return NewProjectile(scene, shared, rng, sp)
		}),
	}
}

// Acquire returns an active projectile initialized from sp.
func (pp *ProjectilePool) Acquire(sp Spawn) (p *Projectile, pooled bool) {
	return pp.items.Acquire(sp)
}

// SetCap changes how many projectiles the pool retains.
func (pp *ProjectilePool) SetCap(capacity int) {
	pp.items.SetCap(capacity)
}

// Size returns how many projectiles the pool retains.
func (pp *ProjectilePool) Size() int {
	return pp.items.Size()
}

// ActiveCount returns how many retained projectiles are in flight.
func (pp *ProjectilePool) ActiveCount() int {
	return pp.items.ActiveCount()
}

// Overflow returns how many non-pooled projectiles were built since the last Clear.
func (pp *ProjectilePool) Overflow() int {
	return pp.items.Overflow()
}

// Clear destroys every retained projectile and empties the pool.
func (pp *ProjectilePool) Clear() {
	pp.items.Clear()
}
