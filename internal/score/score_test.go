package score

import (
	"testing"

	"github.com/vovakirdan/catch-arcade/internal/entity"
)

func TestCatchScoring(t *testing.T) {
	tests := []struct {
		name     string
		kind     entity.Type
		expected int
	}{
		{"low value", entity.TypeLow, 10},
		{"high value", entity.TypeHigh, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(DefaultConfig(), nil)
			s.AddMiss()
			s.AddScore(tc.kind)

			if s.Score() != tc.expected {
				t.Errorf("score = %d, expected %d", s.Score(), tc.expected)
			}
			if s.ConsecutiveMisses() != 0 {
				t.Errorf("consecutive misses = %d after a catch, expected 0", s.ConsecutiveMisses())
			}
			if s.TotalMisses() != 1 {
				t.Errorf("total misses = %d, a catch must not touch it", s.TotalMisses())
			}
		})
	}
}

func TestLethalCatchEndsSession(t *testing.T) {
	s := New(DefaultConfig(), nil)
	var got []GameOver
	s.OnGameOver(func(g GameOver) { got = append(got, g) })

	s.AddScore(entity.TypeLow)
	s.AddScore(entity.TypeLethal)

	if len(got) != 1 || got[0].Reason != ReasonLethalCatch {
		t.Fatalf("game over events = %+v, expected one lethal catch", got)
	}
	if got[0].Score != 10 || s.Score() != 10 {
		t.Errorf("lethal catch must add no points, score = %d", s.Score())
	}
}

func TestMissLimit(t *testing.T) {
	s := New(DefaultConfig(), nil)
	fired := 0
	s.OnGameOver(func(GameOver) { fired++ })

	if s.AddMiss() {
		t.Fatal("first miss should not end the session")
	}
	if s.TotalMisses() != 1 || s.ConsecutiveMisses() != 1 {
		t.Errorf("after one miss total=%d consecutive=%d", s.TotalMisses(), s.ConsecutiveMisses())
	}
	if !s.AddMiss() {
		t.Fatal("second consecutive miss should end the session")
	}
	if fired != 1 {
		t.Errorf("game over fired %d times, expected 1", fired)
	}

	// Further misses are counted but never fire again.
	if s.AddMiss() {
		t.Error("game over must fire at most once per session")
	}
	if fired != 1 {
		t.Errorf("game over fired %d times, expected 1", fired)
	}
	if s.ConsecutiveMisses() > s.MaxConsecutiveMisses() {
		t.Errorf("consecutive misses %d exceed the limit", s.ConsecutiveMisses())
	}
}

func TestCatchBetweenMissesPreventsGameOver(t *testing.T) {
	s := New(DefaultConfig(), nil)

	s.AddMiss()
	s.AddScore(entity.TypeLow)
	if s.AddMiss() {
		t.Error("a catch between misses should reset the streak")
	}
	if s.Over() {
		t.Error("session should still be running")
	}
	if s.TotalMisses() != 2 || s.ConsecutiveMisses() != 1 {
		t.Errorf("total=%d consecutive=%d, expected 2/1", s.TotalMisses(), s.ConsecutiveMisses())
	}
}

func TestLethalMissResetsStreak(t *testing.T) {
	s := New(DefaultConfig(), nil)

	s.AddMiss()
	s.ResetConsecutiveMisses()

	if s.ConsecutiveMisses() != 0 || s.TotalMisses() != 1 || s.Score() != 0 {
		t.Errorf("after lethal miss consecutive=%d total=%d score=%d",
			s.ConsecutiveMisses(), s.TotalMisses(), s.Score())
	}
	if s.AddMiss() {
		t.Error("streak should restart after a lethal miss")
	}
}

func TestObserverPanicIsolated(t *testing.T) {
	s := New(DefaultConfig(), nil)
	var scores []int
	s.OnChange(func(Change) { panic("observer bug") })
	s.OnChange(func(c Change) { scores = append(scores, c.Score) })

	s.AddScore(entity.TypeHigh)
	s.AddScore(entity.TypeLow)

	if len(scores) != 2 || scores[1] != 60 {
		t.Errorf("healthy observer saw %v, expected [50 60]", scores)
	}
}

func TestResetRearmsGameOver(t *testing.T) {
	s := New(DefaultConfig(), nil)
	fired := 0
	s.OnGameOver(func(GameOver) { fired++ })

	s.AddScore(entity.TypeHigh)
	s.AddScore(entity.TypeLethal)
	s.Reset()

	if s.Score() != 0 || s.TotalMisses() != 0 || s.ConsecutiveMisses() != 0 || s.Over() {
		t.Errorf("Reset() left state: score=%d total=%d consecutive=%d over=%v",
			s.Score(), s.TotalMisses(), s.ConsecutiveMisses(), s.Over())
	}

	s.AddScore(entity.TypeLethal)
	if fired != 2 {
		t.Errorf("game over fired %d times across two sessions, expected 2", fired)
	}
}

func TestZeroMissLimitUsesDefault(t *testing.T) {
	s := New(Config{LowPoints: 10, HighPoints: 50}, nil)
	if s.MaxConsecutiveMisses() != 2 {
		t.Errorf("miss limit = %d, expected default 2", s.MaxConsecutiveMisses())
	}
}
