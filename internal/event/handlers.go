// Package event provides ordered callback lists with per-callback fault isolation.
//
// Publishers in the simulation (score, state machine, quality controller,
// game events) own a Handlers value per event kind and call Publish.
// A panicking callback is recovered and logged; the remaining callbacks
// still run and the publisher never sees the failure.
package event

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Handlers is an ordered list of callbacks for one event kind.
// The zero value is ready to use and logs nowhere.
type Handlers[E any] struct {
	name   string
	logger *log.Logger
	fns    []func(E)
}

// NewHandlers creates a named list whose failures are reported to logger.
// A nil logger discards reports.
func NewHandlers[E any](name string, logger *log.Logger) *Handlers[E] {
	return &Handlers[E]{name: name, logger: logger}
}

// Subscribe appends fn; callbacks run in subscription order.
func (h *Handlers[E]) Subscribe(fn func(E)) {
	if fn == nil {
		return
	}
	h.fns = append(h.fns, fn)
}

// Len returns the number of subscribed callbacks.
func (h *Handlers[E]) Len() int {
	return len(h.fns)
}

// Reset drops every subscription.
func (h *Handlers[E]) Reset() {
	h.fns = nil
}

// Publish calls every callback with e and returns how many of them failed.
// The list is snapshotted first, so callbacks subscribing during dispatch
// only see the next event.
func (h *Handlers[E]) Publish(e E) (failed int) {
	fns := h.fns
	for i, fn := range fns {
		if err := call(fn, e); err != nil {
			failed++
			h.log().Error("callback failed", "event", h.name, "index", i, "error", err)
		}
	}
	return failed
}

func (h *Handlers[E]) log() *log.Logger {
	if h.logger == nil {
		return discard
	}
	return h.logger
}

func call[E any](fn func(E), e E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn(e)
	return nil
}

var discard = log.New(io.Discard)

// Logger returns l, or a discarding logger when l is nil.
// Packages use it so every component can accept a nil logger.
func Logger(l *log.Logger) *log.Logger {
	if l == nil {
		return discard
	}
	return l
}
