// Package collision provides stateless axis-aligned bounding box queries.
//
// Nothing here mutates its arguments; callers apply the outcome.
package collision

import "github.com/vovakirdan/catch-arcade/internal/core"

// Collider is anything with an activity flag and a bounding box.
type Collider interface {
	Active() bool
	Box() core.Box
}

// Intersects reports whether a and b are both active and their boxes overlap:
// |dx| < (wa+wb)/2 and |dy| < (ha+hb)/2.
func Intersects(a, b Collider) bool {
	if a == nil || b == nil || !a.Active() || !b.Active() {
		return false
	}
	return a.Box().Intersects(b.Box())
}

// FirstHit returns the first candidate, in slice order, that collides with target.
// At most one hit is reported per query; simultaneous overlaps resolve to the
// earliest element, so callers that keep candidates in spawn order get the
// oldest projectile. Returns index -1 when nothing collides.
func FirstHit[T Collider](target Collider, candidates []T) (hit T, index int) {
	for i, c := range candidates {
		if Intersects(target, c) {
			return c, i
		}
	}
	var zero T
	return zero, -1
}
