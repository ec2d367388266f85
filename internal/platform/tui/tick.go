// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. It carries the time the timer fired.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
// The rate is re-read every tick, so a game may slow the loop down at runtime.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameTimer measures host work per tick: from the tick's arrival to the
// end of the first View after it, or to the end of Step when no View ran.
// It is shared by pointer since Bubble Tea copies the model on every Update.
type frameTimer struct {
	now   func() time.Time
	start time.Time
	open  bool // A tick ran and its View has not finished yet
	last  time.Duration
}

func newFrameTimer() *frameTimer {
	return &frameTimer{now: time.Now}
}

// begin marks a tick's arrival and returns the work measured for the previous one.
func (f *frameTimer) begin() time.Duration {
	prev := f.last
	f.start, f.open, f.last = f.now(), false, 0
	return prev
}

// stepped closes the Step part of the frame.
func (f *frameTimer) stepped() {
	f.last = f.now().Sub(f.start)
	f.open = true
}

// rendered closes the frame after the View that follows a tick.
func (f *frameTimer) rendered() {
	if !f.open {
		return
	}
	f.last = f.now().Sub(f.start)
	f.open = false
}

