// Package pool provides a capped reuse allocator for short-lived simulation objects.
package pool

// Poolable is an object the pool can recycle.
// Reset must overwrite every mutable field from params and leave the object active.
// Destroy must be idempotent and leave the object inactive.
type Poolable[P any] interface {
	Active() bool
	Reset(params P)
	Destroy()
}

// Pool retains up to a hard cap of instances and hands out inactive ones first.
// When every retained instance is active and the cap is reached, Acquire builds
// a non-pooled overflow instance instead of failing. The pool never deactivates
// an active instance to make room.
type Pool[T Poolable[P], P any] struct {
	items    []T
	cap      int
	newFn    func(P) T
	overflow int
}

// New creates a pool that builds instances with newFn and retains at most capacity of them.
// newFn must return an active, fully initialized instance.
func New[T Poolable[P], P any](capacity int, newFn func(P) T) *Pool[T, P] {
	return &Pool[T, P]{
		items: make([]T, 0, max(0, capacity)),
		cap:   max(0, capacity),
		newFn: newFn,
	}
}

// Acquire returns an active instance initialized from params.
// pooled is false for overflow instances the pool does not retain.
func (p *Pool[T, P]) Acquire(params P) (item T, pooled bool) {
	for _, it := range p.items {
		if !it.Active() {
			it.Reset(params)
			return it, true
		}
	}

	item = p.newFn(params)
	if len(p.items) < p.cap {
		p.items = append(p.items, item)
		return item, true
	}

	p.overflow++
	return item, false
}

// SetCap changes the retention cap. Lowering it drops inactive instances
// beyond the new cap; active instances are never dropped.
func (p *Pool[T, P]) SetCap(capacity int) {
	p.cap = max(0, capacity)
	if len(p.items) <= p.cap {
		return
	}

	kept := p.items[:0]
	for _, it := range p.items {
		if len(kept) < p.cap || it.Active() {
			kept = append(kept, it)
		}
	}
	clear(p.items[len(kept):])
	p.items = kept
}

// Cap returns the current retention cap.
func (p *Pool[T, P]) Cap() int {
	return p.cap
}

// Size returns how many instances the pool retains.
func (p *Pool[T, P]) Size() int {
	return len(p.items)
}

// ActiveCount returns how many retained instances are currently active.
func (p *Pool[T, P]) ActiveCount() int {
	n := 0
	for _, it := range p.items {
		if it.Active() {
			n++
		}
	}
	return n
}

// Overflow returns how many non-pooled instances have been built since the last Clear.
func (p *Pool[T, P]) Overflow() int {
	return p.overflow
}

// Clear destroys every retained instance and empties the pool.
func (p *Pool[T, P]) Clear() {
	for _, it := range p.items {
		it.Destroy()
	}
	clear(p.items)
	p.items = p.items[:0]
	p.overflow = 0
}
