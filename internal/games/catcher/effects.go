package catcher

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/entity"
)

// sparkGravity pulls sparks down, in cells per second squared.
const sparkGravity = 30.0

type spark struct {
	pos   core.Vec3
	vel   core.Vec3
	life  float64 // ms left
	color core.Color
}

// Sparks is the cosmetic particle layer. It listens to game events and
// never feeds back into the simulation. Its random stream is separate
// from the gameplay one so the particle budget cannot change gameplay.
type Sparks struct {
	items  []spark
	budget int
	rng    *rand.Rand
}

// NewSparks creates an empty particle layer holding at most budget sparks.
func NewSparks(budget int, seed int64) *Sparks {
	return &Sparks{
		budget: max(0, budget),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Reseed restarts the random stream.
func (s *Sparks) Reseed(seed int64) {
	s.rng.Seed(seed)
}

// SetBudget changes the cap; live sparks beyond it are dropped.
func (s *Sparks) SetBudget(n int) {
	s.budget = max(0, n)
	if len(s.items) > s.budget {
		clear(s.items[s.budget:])
		s.items = s.items[:s.budget]
	}
}

// Budget returns the particle cap.
func (s *Sparks) Budget() int { return s.budget }

// Len returns the number of live sparks.
func (s *Sparks) Len() int { return len(s.items) }

// Clear drops every spark.
func (s *Sparks) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// OnEvent emits a burst for catches and misses.
func (s *Sparks) OnEvent(e Event) {
	switch e.Kind {
	case EventCatch:
		switch e.Type {
		case entity.TypeHigh:
			s.burst(e.X, e.Y, 10, core.ColorBrightCyan)
		case entity.TypeLethal:
			s.burst(e.X, e.Y, 16, core.ColorBrightRed)
		default:
			s.burst(e.X, e.Y, 6, core.ColorBrightYellow)
		}
	case EventMiss:
		if e.Type != entity.TypeLethal {
			s.burst(e.X, e.Y, 3, core.ColorGray)
		}
	}
}

func (s *Sparks) burst(x, y float64, n int, c core.Color) {
	for i := 0; i < n && len(s.items) < s.budget; i++ {
		angle := math.Pi + s.rng.Float64()*math.Pi // upper half circle
		speed := 6 + s.rng.Float64()*10
		s.items = append(s.items, spark{
			pos:   core.V3(x, y, 0),
			vel:   core.V3(math.Cos(angle)*speed, math.Sin(angle)*speed*0.5, 0),
			life:  300 + s.rng.Float64()*400,
			color: c,
		})
	}
}

// Update moves sparks and drops the expired ones.
func (s *Sparks) Update(dtMs float64) {
	if dtMs <= 0 {
		return
	}
	dt := dtMs / 1000
	alive := s.items[:0]
	for _, sp := range s.items {
		sp.life -= dtMs
		if sp.life <= 0 {
			continue
		}
		sp.vel.Y += sparkGravity * dt
		sp.pos = sp.pos.Add(sp.vel.Scale(dt))
		alive = append(alive, sp)
	}
	clear(s.items[len(alive):])
	s.items = alive
}

// Draw renders sparks; plain uses ASCII.
func (s *Sparks) Draw(dst *core.Screen, plain bool) {
	glyph := '✦'
	if plain {
		glyph = '*'
	}
	for _, sp := range s.items {
		x, y := int(math.Round(sp.pos.X)), int(math.Round(sp.pos.Y))
		if y < 1 { // keep the HUD row clean
			continue
		}
		dst.SetColor(x, y, glyph, sp.color)
	}
}
