// Package state implements the START / PLAY / GAME_OVER session machine.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catch-arcade/internal/event"
)

// State is a session phase.
type State int

const (
	Start State = iota
	Play
	GameOver
)

func (s State) String() string {
	switch s {
	case Start:
		return "START"
	case Play:
		return "PLAY"
	case GameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrInvalidTransition is returned for a move outside the transition table.
	ErrInvalidTransition = errors.New("state: invalid transition")
	// ErrTransitionInProgress is returned when a callback requests a transition.
	ErrTransitionInProgress = errors.New("state: transition in progress")
)

// transitions is the fixed table of allowed unforced moves.
var transitions = map[State][]State{
	Start:    {Play},
	Play:     {GameOver, Start},
	GameOver: {Start, Play},
}

// Allowed reports whether from -> to is in the transition table.
func Allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Change describes one completed or in-flight transition.
type Change struct {
	From   State
	To     State
	Forced bool
}

// Clock returns the current simulation time.
type Clock func() time.Duration

// Manager owns the session phase and the elapsed play clock.
// It is driven from the simulation tick and is not safe for concurrent use.
type Manager struct {
	state  State
	clock  Clock
	logger *log.Logger

	depth   int      // Nested transition dispatches
	gen     uint64   // Bumped when a transition starts
	pending []Change // Changes awaiting OnChange, in the order they took effect
	origin  time.Duration
	frozen  time.Duration

	enter    map[State]*event.Handlers[Change]
	exit     map[State]*event.Handlers[Change]
	onChange *event.Handlers[Change]
	onReset  *event.Handlers[struct{}]
}

// NewManager creates a manager in START. clock supplies simulation time;
// a nil clock keeps elapsed time at zero.
func NewManager(clock Clock, logger *log.Logger) *Manager {
	if clock == nil {
		clock = func() time.Duration { return 0 }
	}
	logger = event.Logger(logger)
	m := &Manager{
		state:    Start,
		clock:    clock,
		logger:   logger,
		enter:    make(map[State]*event.Handlers[Change]),
		exit:     make(map[State]*event.Handlers[Change]),
		onChange: event.NewHandlers[Change]("state.change", logger),
		onReset:  event.NewHandlers[struct{}]("state.reset", logger),
	}
	for _, s := range []State{Start, Play, GameOver} {
		m.enter[s] = event.NewHandlers[Change]("state.enter."+s.String(), logger)
		m.exit[s] = event.NewHandlers[Change]("state.exit."+s.String(), logger)
	}
	return m
}

// State returns the current phase.
func (m *Manager) State() State {
	return m.state
}

// Is reports whether the current phase is s.
func (m *Manager) Is(s State) bool {
	return m.state == s
}

// InTransition reports whether a transition is being dispatched.
func (m *Manager) InTransition() bool {
	return m.depth > 0
}

// OnEnter registers fn to run after the machine enters s.
func (m *Manager) OnEnter(s State, fn func(Change)) {
	if h, ok := m.enter[s]; ok {
		h.Subscribe(fn)
	}
}

// OnExit registers fn to run before the machine leaves s.
func (m *Manager) OnExit(s State, fn func(Change)) {
	if h, ok := m.exit[s]; ok {
		h.Subscribe(fn)
	}
}

// OnChange registers fn to run after every transition.
func (m *Manager) OnChange(fn func(Change)) {
	m.onChange.Subscribe(fn)
}

// OnReset registers fn to run at the start of Reset.
func (m *Manager) OnReset(fn func()) {
	if fn == nil {
		return
	}
	m.onReset.Subscribe(func(struct{}) { fn() })
}

// TransitionTo moves to the target phase and reports whether it happened.
// Rejections are logged as warnings.
func (m *Manager) TransitionTo(to State, force bool) bool {
	if err := m.transition(to, force); err != nil {
		m.logger.Warn("transition rejected", "from", m.state, "to", to, "error", err)
		return false
	}
	return true
}

// Transition is the unforced TransitionTo with the rejection reason as an error.
func (m *Manager) Transition(to State) error {
	return m.transition(to, false)
}

func (m *Manager) transition(to State, force bool) error {
	from := m.state
	if m.depth > 0 && !force {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionInProgress, from, to)
	}
	if !force && !Allowed(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	m.depth++
	defer func() { m.depth-- }()
	m.gen++
	gen := m.gen

	c := Change{From: from, To: to, Forced: force}
	m.exit[from].Publish(c)
	if m.gen != gen {
		// An exit observer forced another transition; it replaces this one.
		m.flush()
		return nil
	}

	now := m.clock()
	switch to {
	case Play:
		m.origin = now
		m.frozen = 0
	case GameOver:
		if from == Play {
			m.frozen = now - m.origin
		}
	case Start:
		m.origin = now
		m.frozen = 0
	}
	m.state = to
	m.pending = append(m.pending, c)

	m.logger.Debug("state changed", "from", from, "to", to, "forced", force)
	m.enter[to].Publish(c)
	m.flush()
	return nil
}

// flush publishes queued changes from the outermost dispatch only, so
// OnChange observers see transitions in the order they took effect and
// the last one matches State.
func (m *Manager) flush() {
	if m.depth > 1 {
		return
	}
	for len(m.pending) > 0 {
		c := m.pending[0]
		m.pending = m.pending[1:]
		m.onChange.Publish(c)
	}
}

// Elapsed returns play time: running in PLAY, frozen in GAME_OVER, zero in START.
func (m *Manager) Elapsed() time.Duration {
	switch m.state {
	case Play:
		return max(0, m.clock()-m.origin)
	case GameOver:
		return m.frozen
	default:
		return 0
	}
}

// Reset runs the reset observers, then force-transitions to START.
func (m *Manager) Reset() {
	m.onReset.Publish(struct{}{})
	m.TransitionTo(Start, true)
}
