package state

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from, to State
		allowed  bool
	}{
		{Start, Play, true},
		{Start, GameOver, false},
		{Start, Start, false},
		{Play, GameOver, true},
		{Play, Start, true},
		{Play, Play, false},
		{GameOver, Start, true},
		{GameOver, Play, true},
		{GameOver, GameOver, false},
	}

	for _, tc := range tests {
		if got := Allowed(tc.from, tc.to); got != tc.allowed {
			t.Errorf("Allowed(%v, %v) = %v, expected %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestInvalidTransitionRejected(t *testing.T) {
	m := NewManager(nil, nil)

	err := m.Transition(GameOver)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("START -> GAME_OVER error = %v, expected ErrInvalidTransition", err)
	}
	if m.State() != Start {
		t.Errorf("rejected transition changed state to %v", m.State())
	}

	if !m.TransitionTo(GameOver, true) {
		t.Error("forced transition should bypass the table")
	}
	if m.State() != GameOver {
		t.Errorf("state = %v, expected GAME_OVER", m.State())
	}
}

func TestReentrantTransitionRejected(t *testing.T) {
	m := NewManager(nil, nil)

	var nested error
	m.OnEnter(Play, func(Change) {
		nested = m.Transition(Play)
	})

	if !m.TransitionTo(Play, false) {
		t.Fatal("START -> PLAY should succeed")
	}
	if !errors.Is(nested, ErrTransitionInProgress) {
		t.Errorf("nested transition error = %v, expected ErrTransitionInProgress", nested)
	}
	if m.InTransition() {
		t.Error("guard should be released after the transition")
	}
}

func TestForcedNestedTransition(t *testing.T) {
	tests := []struct {
		name   string
		hook   func(m *Manager, fn func(Change))
		expect []string
	}{
		{
			name:   "from enter",
			hook:   func(m *Manager, fn func(Change)) { m.OnEnter(Play, fn) },
			expect: []string{"START->PLAY", "PLAY->GAME_OVER"},
		},
		{
			name:   "from exit",
			hook:   func(m *Manager, fn func(Change)) { m.OnExit(Start, fn) },
			expect: []string{"START->GAME_OVER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil, nil)
			fired := false
			tt.hook(m, func(Change) {
				if !fired {
					fired = true
					m.TransitionTo(GameOver, true)
				}
			})
			var changes []string
			m.OnChange(func(c Change) { changes = append(changes, c.From.String()+"->"+c.To.String()) })

			m.TransitionTo(Play, false)

			if m.State() != GameOver {
				t.Errorf("State() = %v, expected %v", m.State(), GameOver)
			}
			if strings.Join(changes, " ") != strings.Join(tt.expect, " ") {
				t.Errorf("OnChange order = %v, expected %v", changes, tt.expect)
			}
			if m.Transition(Start) != nil {
				t.Error("guard should be released after nested transitions")
			}
		})
	}
}

func TestCallbackOrderAndIsolation(t *testing.T) {
	m := NewManager(nil, nil)
	var order []string
	m.OnExit(Start, func(Change) { order = append(order, "exit start") })
	m.OnEnter(Play, func(Change) { panic("broken observer") })
	m.OnEnter(Play, func(Change) { order = append(order, "enter play") })
	m.OnChange(func(c Change) { order = append(order, "change "+c.From.String()+"->"+c.To.String()) })

	if !m.TransitionTo(Play, false) {
		t.Fatal("panicking observer must not abort the transition")
	}

	expected := []string{"exit start", "enter play", "change START->PLAY"}
	if len(order) != len(expected) {
		t.Fatalf("callbacks = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("callback %d = %q, expected %q", i, order[i], expected[i])
		}
	}
}

func TestElapsedClock(t *testing.T) {
	clock := &fakeClock{}
	m := NewManager(clock.Now, nil)

	clock.now = 5 * time.Second
	if m.Elapsed() != 0 {
		t.Errorf("elapsed in START = %v, expected 0", m.Elapsed())
	}

	m.TransitionTo(Play, false)
	clock.now = 12 * time.Second
	if m.Elapsed() != 7*time.Second {
		t.Errorf("elapsed in PLAY = %v, expected 7s", m.Elapsed())
	}

	m.TransitionTo(GameOver, false)
	clock.now = 60 * time.Second
	if m.Elapsed() != 7*time.Second {
		t.Errorf("elapsed must freeze in GAME_OVER, got %v", m.Elapsed())
	}

	// Replay from GAME_OVER restarts the origin.
	m.TransitionTo(Play, false)
	clock.now = 61 * time.Second
	if m.Elapsed() != time.Second {
		t.Errorf("elapsed after replay = %v, expected 1s", m.Elapsed())
	}
}

func TestResetRunsObserversThenStart(t *testing.T) {
	m := NewManager(nil, nil)
	m.TransitionTo(Play, false)

	var seen []State
	m.OnReset(func() { seen = append(seen, m.State()) })
	m.OnReset(func() { panic("reset observer bug") })
	m.OnEnter(Start, func(c Change) {
		if !c.Forced {
			t.Error("Reset should force the transition")
		}
		seen = append(seen, Start)
	})

	m.Reset()

	if len(seen) != 2 || seen[0] != Play || seen[1] != Start {
		t.Errorf("reset sequence = %v, expected [PLAY START]", seen)
	}
	if m.State() != Start {
		t.Errorf("state after Reset = %v", m.State())
	}

	// Reset from START is a forced self-transition and still succeeds.
	m.Reset()
	if m.State() != Start {
		t.Errorf("state after second Reset = %v", m.State())
	}
}
