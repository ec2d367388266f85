package pool

import "testing"

type token struct {
	value     int
	active    bool
	destroyed int
}

func newToken(v int) *token { return &token{value: v, active: true} }

func (t *token) Active() bool { return t.active }

func (t *token) Reset(v int) {
	t.value = v
	t.active = true
}

func (t *token) Destroy() {
	if !t.active {
		return
	}
	t.active = false
	t.destroyed++
}

func TestAcquireGrowsUpToCap(t *testing.T) {
	p := New[*token](2, newToken)

	a, pooledA := p.Acquire(1)
	b, pooledB := p.Acquire(2)
	if !pooledA || !pooledB {
		t.Fatal("instances under the cap should be pooled")
	}
	if a == b {
		t.Fatal("active instance was handed out twice")
	}
	if p.Size() != 2 || p.ActiveCount() != 2 {
		t.Errorf("Size()=%d ActiveCount()=%d, expected 2/2", p.Size(), p.ActiveCount())
	}
}

func TestAcquireReusesInactiveFirst(t *testing.T) {
	p := New[*token](4, newToken)
	a, _ := p.Acquire(1)
	p.Acquire(2)
	a.Destroy()

	c, pooled := p.Acquire(7)
	if c != a || !pooled {
		t.Fatal("expected the released instance to be reused")
	}
	if c.value != 7 || !c.active {
		t.Errorf("reused instance not reset: %+v", c)
	}
	if p.Size() != 2 {
		t.Errorf("reuse should not grow the pool, Size() = %d", p.Size())
	}
}

func TestAcquireOverflowNotRetained(t *testing.T) {
	p := New[*token](1, newToken)
	first, _ := p.Acquire(1)

	extra, pooled := p.Acquire(2)
	if pooled {
		t.Error("instance beyond the cap should be reported as not pooled")
	}
	if !first.Active() {
		t.Error("pool must never deactivate an active instance to make room")
	}
	if !extra.Active() || extra.value != 2 {
		t.Errorf("overflow instance not initialized: %+v", extra)
	}
	if p.Size() != 1 || p.Overflow() != 1 {
		t.Errorf("Size()=%d Overflow()=%d, expected 1/1", p.Size(), p.Overflow())
	}
}

func TestAcquireNeverReturnsActiveInstance(t *testing.T) {
	p := New[*token](8, newToken)
	seen := make(map[*token]bool)
	for i := 0; i < 8; i++ {
		it, _ := p.Acquire(i)
		if seen[it] {
			t.Fatalf("instance %p handed out while still active", it)
		}
		seen[it] = true
	}
}

func TestClear(t *testing.T) {
	p := New[*token](3, newToken)
	a, _ := p.Acquire(1)
	b, _ := p.Acquire(2)
	b.Destroy()

	p.Clear()

	if p.Size() != 0 || p.ActiveCount() != 0 {
		t.Errorf("after Clear() Size()=%d ActiveCount()=%d, expected 0/0", p.Size(), p.ActiveCount())
	}
	if a.active || a.destroyed != 1 || b.destroyed != 1 {
		t.Errorf("Clear() should release each instance exactly once: a=%+v b=%+v", a, b)
	}
}

func TestSetCapKeepsActive(t *testing.T) {
	p := New[*token](4, newToken)
	a, _ := p.Acquire(1)
	b, _ := p.Acquire(2)
	c, _ := p.Acquire(3)
	b.Destroy()
	c.Destroy()

	p.SetCap(1)

	if !a.Active() {
		t.Error("lowering the cap must not deactivate instances")
	}
	if p.Size() != 1 || p.Cap() != 1 {
		t.Errorf("Size()=%d Cap()=%d, expected 1/1", p.Size(), p.Cap())
	}

	p.SetCap(3)
	if _, pooled := p.Acquire(4); !pooled {
		t.Error("raising the cap should allow growth again")
	}
}
