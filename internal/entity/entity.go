// Package entity implements the simulated objects of the catcher game:
// the shared Entity base, the shooter, the player's catcher and pooled projectiles.
//
// Entities never talk to each other directly. The simulation driver owns them,
// advances them with Update and applies the outcome of collision queries.
package entity

import (
	"github.com/vovakirdan/catch-arcade/internal/collision"
	"github.com/vovakirdan/catch-arcade/internal/core"
)

// Sprite describes how a visual wants to be drawn.
// Glyph is the preferred rune; Plain is the ASCII fallback used when
// anti-aliasing is turned off by the quality controller.
type Sprite struct {
	Glyph rune
	Plain rune
	Color core.Color
}

// Visual is the render-side representation of an entity.
type Visual interface {
	Body() *Entity
	Sprite() Sprite
}

// Scene receives visuals when entities spawn and loses them when they are destroyed.
type Scene interface {
	Attach(v Visual)
	Detach(v Visual)
}

// Entity is the shared state of every simulated object.
// Pos is the center of the bounding box; Vel is in cells per second.
type Entity struct {
	Pos  core.Vec3
	Vel  core.Vec3
	W, H float64

	active   bool
	attached bool
	scene    Scene
	visual   Visual
}

// spawn activates the entity and attaches its visual to scene.
// Calling it on an entity that is still attached detaches the old visual first.
func (e *Entity) spawn(scene Scene, v Visual) {
	if e.attached {
		e.release()
	}
	e.active = true
	e.scene = scene
	e.visual = v
	if scene != nil && v != nil {
		scene.Attach(v)
		e.attached = true
	}
}

// Body returns the entity itself; it lets specializations satisfy Visual.
func (e *Entity) Body() *Entity {
	return e
}

// Active reports whether the entity takes part in the simulation.
func (e *Entity) Active() bool {
	return e.active
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.NewBox(e.Pos, e.W, e.H)
}

// Update integrates velocity into position: Pos += Vel * dtMs/1000.
// Inactive entities and non-positive steps are ignored.
func (e *Entity) Update(dtMs float64) {
	if !e.active || dtMs <= 0 {
		return
	}
	e.Pos = e.Pos.Add(e.Vel.Scale(dtMs / 1000))
}

// Destroy deactivates the entity and detaches its visual.
// It is idempotent: the visual is released exactly once.
func (e *Entity) Destroy() {
	e.active = false
	e.release()
}

func (e *Entity) release() {
	if !e.attached {
		return
	}
	e.attached = false
	if e.scene != nil {
		e.scene.Detach(e.visual)
	}
}

// IsCollidingWith reports whether both entities are active and their boxes overlap.
func (e *Entity) IsCollidingWith(other collision.Collider) bool {
	return collision.Intersects(e, other)
}

// Layer is an ordered Scene: visuals are kept in attach order, which is
// the order the renderer draws them in.
type Layer struct {
	visuals []Visual
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Attach adds v to the end of the layer.
func (l *Layer) Attach(v Visual) {
	l.visuals = append(l.visuals, v)
}

// Detach removes v, keeping the order of the rest. Unknown visuals are ignored.
func (l *Layer) Detach(v Visual) {
	for i, it := range l.visuals {
		if it == v {
			copy(l.visuals[i:], l.visuals[i+1:])
			l.visuals[len(l.visuals)-1] = nil
			l.visuals = l.visuals[:len(l.visuals)-1]
			return
		}
	}
}

// Visuals returns the attached visuals in draw order.
// The slice is owned by the layer and must not be modified.
func (l *Layer) Visuals() []Visual {
	return l.visuals
}

// Len returns the number of attached visuals.
func (l *Layer) Len() int {
	return len(l.visuals)
}
