// Package registry is the catalogue of playable games. Each game package
// registers a factory from init, and the platform looks games up by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/catch-arcade/internal/core"
)

// Game is a pure simulation driven by the platform: it never touches the
// terminal, clock or input devices directly.
type Game interface {
	// ID is the stable key used on the command line and in score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, elapsed time and the pause and game over flags.
	State() core.GameState
}

// Paced games choose their own tick rate, which may change between steps.
type Paced interface {
	TickRate() int
}

// Stopper games release session resources when the platform calls Stop.
// Stop is called once per session.
type Stopper interface {
	Stop()
}

// Resizer games follow a terminal resize without restarting.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a game ready for Reset.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

// Register adds a game. The factory is called once to read the title; that
// instance is stopped if it is a Stopper. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := games[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	probe := f()
	games[id] = entry{title: probe.Title(), factory: f}
	if s, ok := probe.(Stopper); ok {
		s.Stop()
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(games))
	for id, e := range games {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Create returns a new instance of the game with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := games[id]
	return ok
}

// TickRate returns the game's own rate when it is Paced and positive, else fallback.
func TickRate(g Game, fallback int) int {
	if p, ok := g.(Paced); ok {
		if r := p.TickRate(); r > 0 {
			return r
		}
	}
	return fallback
}
