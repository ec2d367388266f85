package catcher

import (
	"github.com/vovakirdan/catch-arcade/internal/entity"
	"github.com/vovakirdan/catch-arcade/internal/score"
)

// EventKind identifies a gameplay moment collaborators can react to.
type EventKind int

const (
	EventShoot EventKind = iota
	EventCatch
	EventMiss
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventShoot:
		return "shoot"
	case EventCatch:
		return "catch"
	case EventMiss:
		return "miss"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is published synchronously from Step. Handlers must not block
// and must not touch the entities; the game owns them.
type Event struct {
	Kind   EventKind
	Type   entity.Type // Projectile type for shoot, catch and miss
	X, Y   float64
	Points int          // Points the projectile was worth
	Score  int          // Score after the event was applied
	Reason score.Reason // Set for EventGameOver
}
