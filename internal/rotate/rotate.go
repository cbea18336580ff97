// Package rotate implements the idle auto-rotation of the globe: a
// slow spin about the polar axis that yields to any user gesture.
package rotate

import (
	"sync"
	"time"

	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/interaction"
)

const (
	// DefaultAngularSpeed is the idle spin rate in radians per second.
	DefaultAngularSpeed = 0.035

	// DefaultWheelCooldown is how long after a wheel input the rotation
	// stays suspended, so a finished scroll and the resuming spin do not
	// visibly fight.
	DefaultWheelCooldown = 1200 * time.Millisecond

	// DefaultMaxStep caps the per-tick time delta so a tab switch or a
	// long stall does not produce a single large jump.
	DefaultMaxStep = time.Second / 30
)

// Rotator is the part of the engine camera the scheduler drives.
type Rotator interface {
	Rotate(axis geo.Vec3, radians float64)
}

// Scheduler rotates the camera about the polar axis while the session
// is idle in the whole-globe view.
type Scheduler struct {
	cam   Rotator
	state *interaction.State

	speed    float64
	cooldown time.Duration
	maxStep  time.Duration

	mu      sync.Mutex
	enabled bool
}

// Config tunes the scheduler. Zero values select the defaults.
type Config struct {
	AngularSpeed  float64
	WheelCooldown time.Duration
	MaxStep       time.Duration
}

// NewScheduler creates a disabled scheduler.
func NewScheduler(cam Rotator, state *interaction.State, cfg Config) *Scheduler {
	if cfg.AngularSpeed == 0 {
		cfg.AngularSpeed = DefaultAngularSpeed
	}
	if cfg.WheelCooldown == 0 {
		cfg.WheelCooldown = DefaultWheelCooldown
	}
	if cfg.MaxStep == 0 {
		cfg.MaxStep = DefaultMaxStep
	}
	return &Scheduler{
		cam:      cam,
		state:    state,
		speed:    cfg.AngularSpeed,
		cooldown: cfg.WheelCooldown,
		maxStep:  cfg.MaxStep,
	}
}

// Enable turns the idle rotation on.
func (s *Scheduler) Enable() {
	s.mu.Lock()
	s.enabled = true
	s.mu.Unlock()
}

// Disable turns the idle rotation off immediately.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	s.enabled = false
	s.mu.Unlock()
}

// Enabled reports whether the idle rotation is on.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Tick advances the rotation by the wall-clock delta since the previous
// tick. Any user gesture is an authoritative override: the tick is
// skipped entirely while the pointer is down, while a flight is in
// progress, or within the wheel cooldown window.
func (s *Scheduler) Tick(now time.Time, dt time.Duration) {
	if !s.Enabled() {
		return
	}
	if s.state.IsPointerDown() || s.state.IsFlightInProgress() {
		return
	}
	if s.state.SinceWheel(now) < s.cooldown {
		return
	}
	if dt <= 0 {
		return
	}
	if dt > s.maxStep {
		dt = s.maxStep
	}
	s.cam.Rotate(geo.PolarAxis, s.speed*dt.Seconds())
}
