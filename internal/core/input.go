package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move catcher left
	ActionRight          // D, Right arrow - move catcher right
	ActionJump           // Space - start a round
	ActionConfirm        // Enter - start a round / confirm
	ActionBack           // B, Escape - leave the game
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is everything the input adapter produced during one tick.
//
// Movement intent arrives in one of three shapes and games treat them uniformly:
// a discrete direction (Left/Right actions, scaled by Intensity), a continuous
// absolute target (TargetX, valid when HasTarget), or a raw pointer delta.
type InputFrame struct {
	Actions map[Action]bool

	Intensity    float64 // Direction strength in [0, 1]; 0 means 1
	TargetX      float64 // Absolute target column
	HasTarget    bool
	PointerDelta float64 // Relative horizontal pointer motion in cells

	// FrameTime is the measured wall time since the previous tick.
	// Zero when the platform does not measure it (tests, replays).
	FrameTime time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SetTarget records an absolute target column for this frame.
func (f *InputFrame) SetTarget(x float64) {
	f.TargetX = x
	f.HasTarget = true
}

// Direction returns -1, 0 or +1 from the Left/Right actions.
func (f InputFrame) Direction() float64 {
	dir := 0.0
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Clear resets the frame for the next tick, keeping the allocated map.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Intensity = 0
	f.TargetX = 0
	f.HasTarget = false
	f.PointerDelta = 0
	f.FrameTime = 0
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := f
	c.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}
