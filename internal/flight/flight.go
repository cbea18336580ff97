// Package flight wraps the engine's two-exit-path flight callbacks in a
// handle with a single resolution point, so cleanup runs exactly once
// whether the flight completes or is cancelled.
package flight

import (
	"context"
	"sync"

	"github.com/tourglobe/stagecam/internal/engine"
)

// Outcome is how a flight resolved.
type Outcome int

const (
	// OutcomeCompleted means the flight reached its target pose.
	OutcomeCompleted Outcome = iota
	// OutcomeCancelled means the flight was aborted before arrival.
	// Cancellation is a normal termination path, not an error.
	OutcomeCancelled
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Flight is a cancellable animated camera move.
type Flight struct {
	once    sync.Once
	done    chan struct{}
	finally func(Outcome)

	mu      sync.Mutex
	outcome Outcome
	cancel  engine.CancelFunc
}

// New creates an unstarted flight. finally runs exactly once, on
// whichever resolution path fires first; it may be nil.
func New(finally func(Outcome)) *Flight {
	return &Flight{
		done:    make(chan struct{}),
		finally: finally,
	}
}

// Start issues the flight on the engine camera. Starting a flight that
// was cancelled before takeoff is a no-op.
func (f *Flight) Start(cam engine.Camera, req engine.FlightRequest) {
	select {
	case <-f.done:
		return
	default:
	}
	cancel := cam.FlyTo(req,
		func() { f.resolve(OutcomeCompleted) },
		func() { f.resolve(OutcomeCancelled) },
	)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()
}

// Cancel aborts the flight. Safe to call at any point, any number of
// times, including before Start and after resolution.
func (f *Flight) Cancel() {
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		// the engine fires onCancel, which resolves the handle
		cancel()
		return
	}
	// not yet started: resolve directly so cleanup still runs
	f.resolve(OutcomeCancelled)
}

// Done is closed once the flight has resolved.
func (f *Flight) Done() <-chan struct{} { return f.done }

// Resolved reports the outcome, if the flight has resolved.
func (f *Flight) Resolved() (Outcome, bool) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.outcome, true
	default:
		return 0, false
	}
}

// Await blocks until the flight resolves or ctx expires. Callers that
// wait on a flight's side effects must bound the wait through ctx so a
// stalled engine cannot block indefinitely.
func (f *Flight) Await(ctx context.Context) (Outcome, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.outcome, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (f *Flight) resolve(o Outcome) {
	f.once.Do(func() {
		f.mu.Lock()
		f.outcome = o
		f.mu.Unlock()
		if f.finally != nil {
			f.finally(o)
		}
		close(f.done)
	})
}
