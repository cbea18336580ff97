// Package interaction holds the transient input state shared between
// the input callbacks and the per-tick schedulers. Input callbacks only
// set flags and timestamps here; they never do blocking work.
package interaction

import (
	"sync"
	"time"
)

// State is the per-session interaction snapshot.
type State struct {
	mu               sync.Mutex
	pointerDown      bool
	lastWheel        time.Time
	flightInProgress bool
}

// NewState creates an idle interaction state.
func NewState() *State {
	return &State{}
}

// PointerDown records the start of a pointer drag.
func (s *State) PointerDown() {
	s.mu.Lock()
	s.pointerDown = true
	s.mu.Unlock()
}

// PointerUp records the end of a pointer drag.
func (s *State) PointerUp() {
	s.mu.Lock()
	s.pointerDown = false
	s.mu.Unlock()
}

// IsPointerDown reports whether a pointer drag is in progress.
func (s *State) IsPointerDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerDown
}

// Wheel stamps a wheel/zoom input at the given time.
func (s *State) Wheel(now time.Time) {
	s.mu.Lock()
	s.lastWheel = now
	s.mu.Unlock()
}

// SinceWheel returns the time elapsed since the last wheel input.
// Returns a very large duration if no wheel input has occurred.
func (s *State) SinceWheel(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastWheel.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(s.lastWheel)
}

// BeginFlight marks an animated flight as in progress.
func (s *State) BeginFlight() {
	s.mu.Lock()
	s.flightInProgress = true
	s.mu.Unlock()
}

// EndFlight clears the flight-in-progress flag.
func (s *State) EndFlight() {
	s.mu.Lock()
	s.flightInProgress = false
	s.mu.Unlock()
}

// IsFlightInProgress reports whether an animated flight is in progress.
func (s *State) IsFlightInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flightInProgress
}

// Debounce is a last-event-timestamp debounce that is polled from the
// tick loop instead of scheduling timers, so tests can drive it with a
// fake clock.
type Debounce struct {
	mu    sync.Mutex
	quiet time.Duration
	last  time.Time
	armed bool
}

// NewDebounce creates a debounce with the given quiet period.
func NewDebounce(quiet time.Duration) *Debounce {
	return &Debounce{quiet: quiet}
}

// Stamp records an input event and (re-)arms the debounce.
func (d *Debounce) Stamp(now time.Time) {
	d.mu.Lock()
	d.last = now
	d.armed = true
	d.mu.Unlock()
}

// Armed reports whether an input has been stamped and not yet consumed.
func (d *Debounce) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Elapsed reports whether the quiet period has passed since the last
// stamp. Always false while disarmed.
func (d *Debounce) Elapsed(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed && now.Sub(d.last) >= d.quiet
}

// Disarm consumes the pending stamp.
func (d *Debounce) Disarm() {
	d.mu.Lock()
	d.armed = false
	d.mu.Unlock()
}
