package catcher

import (
	"testing"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/entity"
)

func TestSparksBurstSizes(t *testing.T) {
	tests := []struct {
		name string
		e    Event
		want int
	}{
		{"low catch", Event{Kind: EventCatch, Type: entity.TypeLow}, 6},
		{"high catch", Event{Kind: EventCatch, Type: entity.TypeHigh}, 10},
		{"lethal catch", Event{Kind: EventCatch, Type: entity.TypeLethal}, 16},
		{"miss", Event{Kind: EventMiss, Type: entity.TypeLow}, 3},
		{"lethal miss", Event{Kind: EventMiss, Type: entity.TypeLethal}, 0},
		{"shoot", Event{Kind: EventShoot}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSparks(100, 1)
			s.OnEvent(tt.e)
			if s.Len() != tt.want {
				t.Errorf("Len() = %d, expected %d", s.Len(), tt.want)
			}
		})
	}
}

func TestSparksRespectBudget(t *testing.T) {
	s := NewSparks(8, 1)
	s.OnEvent(Event{Kind: EventCatch, Type: entity.TypeLethal})
	if s.Len() != 8 {
		t.Fatalf("Len() = %d, expected the budget of 8", s.Len())
	}

	s.SetBudget(3)
	if s.Len() != 3 || s.Budget() != 3 {
		t.Errorf("after SetBudget(3): len %d, budget %d", s.Len(), s.Budget())
	}

	s.SetBudget(0)
	s.OnEvent(Event{Kind: EventCatch, Type: entity.TypeHigh})
	if s.Len() != 0 {
		t.Errorf("zero budget still holds %d sparks", s.Len())
	}
}

func TestSparksExpire(t *testing.T) {
	s := NewSparks(50, 1)
	s.OnEvent(Event{Kind: EventCatch, Type: entity.TypeHigh, X: 10, Y: 10})
	s.Update(100)
	if s.Len() != 10 {
		t.Fatalf("sparks expired too early: %d left", s.Len())
	}
	s.Update(1000) // longer than any lifetime
	if s.Len() != 0 {
		t.Errorf("%d sparks outlived their lifetime", s.Len())
	}
}

func TestSparksSeeded(t *testing.T) {
	a, b := NewSparks(50, 7), NewSparks(50, 7)
	e := Event{Kind: EventCatch, Type: entity.TypeLow, X: 20, Y: 15}
	a.OnEvent(e)
	b.OnEvent(e)
	a.Update(50)
	b.Update(50)

	sa, sb := core.NewScreen(40, 20), core.NewScreen(40, 20)
	a.Draw(sa, true)
	b.Draw(sb, true)
	if sa.String() != sb.String() {
		t.Error("same seed should draw the same sparks")
	}
}
