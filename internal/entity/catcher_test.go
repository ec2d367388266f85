package entity

import (
	"math"
	"testing"
)

func newTestCatcher() *Catcher {
	return NewCatcher(NewLayer(), CatcherConfig{
		Width:     7,
		Height:    1,
		Y:         20,
		MinX:      5,
		MaxX:      75,
		MaxSpeed:  60,
		Smoothing: 10,
		NudgeStep: 4,
	})
}

func TestCatcherStartsCentered(t *testing.T) {
	c := newTestCatcher()
	if c.Pos.X != 40 || c.TargetX() != 40 {
		t.Errorf("catcher should start centered at 40, got x=%f target=%f", c.Pos.X, c.TargetX())
	}
}

func TestCatcherTargetClamped(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{-100, 5},
		{5, 5},
		{30, 30},
		{75, 75},
		{1e9, 75},
		{math.NaN(), 5},
	}

	c := newTestCatcher()
	for _, tc := range tests {
		c.SetTargetX(tc.in)
		if c.TargetX() != tc.expected {
			t.Errorf("SetTargetX(%v) stored %v, expected %v", tc.in, c.TargetX(), tc.expected)
		}
	}
}

func TestCatcherSetXRealignsTarget(t *testing.T) {
	c := newTestCatcher()
	c.SetTargetX(60)

	c.SetX(50)
	if c.TargetX() != 60 {
		t.Errorf("in-bounds SetX should keep the target, got %f", c.TargetX())
	}

	c.SetX(200)
	if c.Pos.X != 75 {
		t.Errorf("SetX(200) should clamp to 75, got %f", c.Pos.X)
	}
	if c.TargetX() != 75 {
		t.Errorf("clamped SetX should realign target to 75, got %f", c.TargetX())
	}
}

func TestCatcherSmoothingStep(t *testing.T) {
	c := newTestCatcher()
	c.SetTargetX(42)

	c.Update(10)

	// step = (42-40) * 10 * 0.01 = 0.2, under the 0.6 speed cap
	if math.Abs(c.Pos.X-40.2) > 1e-9 {
		t.Errorf("X after one step = %f, expected 40.2", c.Pos.X)
	}
}

func TestCatcherSpeedCap(t *testing.T) {
	c := newTestCatcher()
	c.SetTargetX(75)

	c.Update(100)

	// smoothing alone would move 35 cells; the cap is 60 cells/s * 0.1s
	if math.Abs(c.Pos.X-46) > 1e-9 {
		t.Errorf("X after capped step = %f, expected 46", c.Pos.X)
	}
}

func TestCatcherNoOvershootAndSnap(t *testing.T) {
	c := newTestCatcher()
	c.SetTargetX(41)

	// A huge step would overshoot without the residual cap.
	c.Update(1000)
	if c.Pos.X != 41 {
		t.Errorf("X = %f, expected to land exactly on target", c.Pos.X)
	}
	if c.Vel.X != 0 {
		t.Errorf("catcher at rest should have zero velocity, got %f", c.Vel.X)
	}

	c.SetTargetX(41.005)
	c.Update(16)
	if c.Pos.X != 41.005 {
		t.Errorf("residual below epsilon should snap, X = %f", c.Pos.X)
	}
}

func TestCatcherConverges(t *testing.T) {
	c := newTestCatcher()
	c.SetTargetX(10)

	prev := math.Abs(c.Pos.X - 10)
	for i := 0; i < 300; i++ {
		c.Update(16)
		d := math.Abs(c.Pos.X - 10)
		if d > prev+1e-12 {
			t.Fatalf("distance grew at tick %d: %f > %f", i, d, prev)
		}
		if c.Pos.X < 5 || c.Pos.X > 75 {
			t.Fatalf("catcher left bounds: %f", c.Pos.X)
		}
		prev = d
	}
	if c.Pos.X != 10 {
		t.Errorf("catcher did not settle on target, X = %f", c.Pos.X)
	}
}

func TestCatcherMoveAndPointer(t *testing.T) {
	c := newTestCatcher()

	c.Move(-1, 1)
	if c.TargetX() != 36 {
		t.Errorf("Move(-1, 1) target = %f, expected 36", c.TargetX())
	}
	c.Move(1, 0.5)
	if c.TargetX() != 38 {
		t.Errorf("Move(1, 0.5) target = %f, expected 38", c.TargetX())
	}
	c.Move(0, 1)
	if c.TargetX() != 38 {
		t.Errorf("Move(0, 1) should not change target, got %f", c.TargetX())
	}

	c.ApplyPointerDelta(100)
	if c.TargetX() != 75 {
		t.Errorf("pointer delta should clamp at bound, got %f", c.TargetX())
	}
}

func TestCatcherSetBounds(t *testing.T) {
	c := newTestCatcher()
	c.SetTargetX(70)
	c.SetX(70)

	c.SetBounds(5, 35, 10)

	if c.Pos.X != 35 || c.TargetX() != 35 || c.Pos.Y != 10 {
		t.Errorf("after shrinking bounds x=%f target=%f y=%f, expected 35/35/10", c.Pos.X, c.TargetX(), c.Pos.Y)
	}
	if lo, hi := c.Bounds(); lo != 5 || hi != 35 {
		t.Errorf("Bounds() = (%f, %f), expected (5, 35)", lo, hi)
	}
}
