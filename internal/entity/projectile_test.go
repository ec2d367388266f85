package entity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/catch-arcade/internal/core"
)

func TestHighValueProbability(t *testing.T) {
	cfg := DefaultProjectileConfig()
	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.10},
		{99, 0.10},
		{100, 0.15},
		{250, 0.20},
		{500, 0.35},
		{600, 0.40},
		{10000, 0.40},
		{-50, 0.10},
	}

	for _, tc := range tests {
		if got := cfg.HighValueProbability(tc.score); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("HighValueProbability(%d) = %f, expected %f", tc.score, got, tc.expected)
		}
	}
}

func TestSelectTypeBoundaries(t *testing.T) {
	cfg := DefaultProjectileConfig()
	tests := []struct {
		r        float64
		expected Type
	}{
		{0, TypeLethal},
		{0.149, TypeLethal},
		{0.15, TypeHigh},
		{0.249, TypeHigh},
		{0.2501, TypeLow},
		{0.999, TypeLow},
	}

	for _, tc := range tests {
		if got := cfg.SelectType(0, tc.r); got != tc.expected {
			t.Errorf("SelectType(0, %v) = %v, expected %v", tc.r, got, tc.expected)
		}
	}
}

func TestTypeDistribution(t *testing.T) {
	const samples = 20000
	cfg := DefaultProjectileConfig()

	for _, score := range []int{0, 250, 1000} {
		rng := rand.New(rand.NewSource(int64(score) + 42))
		counts := make(map[Type]int)
		for i := 0; i < samples; i++ {
			counts[cfg.SelectType(score, rng.Float64())]++
		}

		high := float64(counts[TypeHigh]) / samples
		lethal := float64(counts[TypeLethal]) / samples
		if want := cfg.HighValueProbability(score); math.Abs(high-want) > 0.02 {
			t.Errorf("score %d: high-value frequency %f, expected about %f", score, high, want)
		}
		if math.Abs(lethal-cfg.LethalProb) > 0.02 {
			t.Errorf("score %d: lethal frequency %f, expected about %f", score, lethal, cfg.LethalProb)
		}
	}
}

func TestProjectilePoints(t *testing.T) {
	cfg := DefaultProjectileConfig()
	if cfg.Points(TypeLow) != 10 || cfg.Points(TypeHigh) != 50 || cfg.Points(TypeLethal) != 0 {
		t.Errorf("points table = %d/%d/%d, expected 10/50/0",
			cfg.Points(TypeLow), cfg.Points(TypeHigh), cfg.Points(TypeLethal))
	}
}

func TestProjectileFallsAndMisses(t *testing.T) {
	cfg := DefaultProjectileConfig()
	cfg.FallJitter = 0
	p := NewProjectile(nil, &cfg, rand.New(rand.NewSource(3)), Spawn{X: 10, Y: 3, FallSpeed: 8})

	if p.Vel != core.V3(0, 8, 0) {
		t.Fatalf("velocity = %+v, expected straight down at 8", p.Vel)
	}

	p.Update(1000)
	if p.Pos.Y != 11 || p.Pos.X != 10 {
		t.Errorf("position after 1s = %+v, expected (10, 11)", p.Pos)
	}
	if p.Missed(11) {
		t.Error("projectile on the line is not missed yet")
	}

	p.Update(125)
	if !p.Missed(11) {
		t.Errorf("projectile at y=%f should be past line 11", p.Pos.Y)
	}

	p.Destroy()
	if p.Missed(11) {
		t.Error("an inactive projectile is never missed")
	}
}

func TestProjectileFallJitter(t *testing.T) {
	cfg := DefaultProjectileConfig()
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 500; i++ {
		p := NewProjectile(nil, &cfg, rng, Spawn{FallSpeed: 6})
		if p.FallSpeed() < 6-cfg.FallJitter || p.FallSpeed() > 6+cfg.FallJitter {
			t.Fatalf("fall speed %f outside 6 +/- %f", p.FallSpeed(), cfg.FallJitter)
		}
	}

	slow := NewProjectile(nil, &cfg, rng, Spawn{FallSpeed: -10})
	if slow.FallSpeed() <= 0 {
		t.Errorf("fall speed must stay positive, got %f", slow.FallSpeed())
	}
}

func TestProjectilePoolReuseOverwritesState(t *testing.T) {
	scene := newCountingScene()
	pp := NewProjectilePool(1, scene, DefaultProjectileConfig(), rand.New(rand.NewSource(11)))

	first, pooled := pp.Acquire(Spawn{X: 5, Y: 2, Score: 0, FallSpeed: 6})
	if !pooled {
		t.Fatal("first acquire should be pooled")
	}
	first.Update(3000)
	first.Destroy()

	// Keep drawing until the reused instance changes type, to prove the
	// type is redrawn rather than carried over.
	oldKind := first.Kind()
	var second *Projectile
	for i := 0; i < 100; i++ {
		second, pooled = pp.Acquire(Spawn{X: 30, Y: 4, Score: 1000, FallSpeed: 9})
		if second != first || !pooled {
			t.Fatalf("inactive instance should be reused")
		}
		if second.Kind() != oldKind {
			break
		}
		second.Destroy()
	}

	if second.Kind() == oldKind {
		t.Fatalf("type never changed across 100 reuses")
	}
	if !second.Active() {
		t.Error("reused projectile should be active")
	}
	if second.Pos != core.V3(30, 4, 0) {
		t.Errorf("position leaked from the previous life: %+v", second.Pos)
	}
	if second.Vel.X != 0 || second.Vel.Y != second.FallSpeed() {
		t.Errorf("velocity %+v does not match the fresh fall speed %f", second.Vel, second.FallSpeed())
	}
	if second.Value() != DefaultProjectileConfig().Points(second.Kind()) {
		t.Errorf("points %d do not match type %v", second.Value(), second.Kind())
	}
	if scene.Len() != 1 {
		t.Errorf("scene holds %d visuals, expected only the live projectile", scene.Len())
	}
	if scene.attached[second] != scene.detached[second]+1 {
		t.Errorf("attach/detach mismatch: attached=%d detached=%d",
			scene.attached[second], scene.detached[second])
	}
}

func TestProjectilePoolOverflow(t *testing.T) {
	scene := newCountingScene()
	pp := NewProjectilePool(2, scene, DefaultProjectileConfig(), nil)

	a, _ := pp.Acquire(Spawn{})
	b, _ := pp.Acquire(Spawn{})
	c, pooled := pp.Acquire(Spawn{})

	if pooled {
		t.Error("third acquire past the cap should not be pooled")
	}
	if !a.Active() || !b.Active() || !c.Active() {
		t.Error("overflow must not deactivate live projectiles")
	}
	if pp.Size() != 2 || pp.ActiveCount() != 2 || pp.Overflow() != 1 {
		t.Errorf("size=%d active=%d overflow=%d, expected 2/2/1", pp.Size(), pp.ActiveCount(), pp.Overflow())
	}

	pp.Clear()
	if a.Active() || b.Active() {
		t.Error("Clear() should destroy pooled projectiles")
	}
	if pp.Size() != 0 || pp.Overflow() != 0 {
		t.Errorf("after Clear size=%d overflow=%d", pp.Size(), pp.Overflow())
	}
}

func TestProjectilePoolShrink(t *testing.T) {
	pp := NewProjectilePool(4, nil, DefaultProjectileConfig(), nil)

	var live []*Projectile
	for i := 0; i < 4; i++ {
		p, _ := pp.Acquire(Spawn{})
		live = append(live, p)
	}
	live[0].Destroy()
	live[1].Destroy()

	pp.SetCap(1)

	if pp.ActiveCount() != 2 {
		t.Errorf("shrinking dropped active projectiles: active=%d", pp.ActiveCount())
	}
	if pp.Size() != 3 {
		t.Errorf("size after shrink = %d, expected 3 (one inactive slot plus two active)", pp.Size())
	}
}
