// Package zoom enforces per-mode camera distance bounds: a hard clamp
// pushed to the engine controller, plus a debounced corrective flight
// for interactions (inertial scroll) that slip past the clamp.
package zoom

import (
	"sync"
	"time"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/engine"
	"github.com/tourglobe/stagecam/internal/flight"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/interaction"
)

const (
	// DefaultQuietPeriod is how long after the last wheel input the
	// corrective check waits before measuring.
	DefaultQuietPeriod = 150 * time.Millisecond

	// DefaultCorrectionDuration is the length of a corrective snap-back
	// flight.
	DefaultCorrectionDuration = 300 * time.Millisecond
)

// Bounds is the allowed camera-to-target distance range, in meters.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultOverviewBounds bound the camera against the surface projection
// point while the whole globe is framed.
func DefaultOverviewBounds() Bounds { return Bounds{Min: 2_000_000, Max: 30_000_000} }

// DefaultVenueBounds bound the camera against the tracked venue entity.
func DefaultVenueBounds() Bounds { return Bounds{Min: 500, Max: 1000} }

// Contains reports whether d lies inside the bounds.
func (b Bounds) Contains(d float64) bool { return d >= b.Min && d <= b.Max }

// Clamp restricts d to the bounds.
func (b Bounds) Clamp(d float64) float64 { return geo.Clamp(d, b.Min, b.Max) }

// TargetFunc resolves the distance-measurement target for the active
// mode: the tracked entity's position in venue framing, the surface
// projection under the camera in overview framing.
type TargetFunc func(now time.Time) (geo.Vec3, bool)

// Correction describes one corrective snap-back, for metric sinks.
type Correction struct {
	At           time.Time
	FromDistance float64
	ToDistance   float64
}

// Config tunes the governor. Zero values select the defaults.
type Config struct {
	QuietPeriod        time.Duration
	CorrectionDuration time.Duration
}

// Governor owns the active zoom bounds and the corrective flights.
type Governor struct {
	cam      engine.Camera
	ctrl     engine.Controller
	state    *interaction.State
	debounce *interaction.Debounce

	correctionDur time.Duration

	mu           sync.Mutex
	active       Bounds
	target       TargetFunc
	suspended    bool
	correction   *flight.Flight
	onCorrection func(Correction)
}

// NewGovernor creates a governor with no bounds applied yet.
func NewGovernor(cam engine.Camera, ctrl engine.Controller, state *interaction.State, cfg Config) *Governor {
	if cfg.QuietPeriod == 0 {
		cfg.QuietPeriod = DefaultQuietPeriod
	}
	if cfg.CorrectionDuration == 0 {
		cfg.CorrectionDuration = DefaultCorrectionDuration
	}
	return &Governor{
		cam:           cam,
		ctrl:          ctrl,
		state:         state,
		debounce:      interaction.NewDebounce(cfg.QuietPeriod),
		correctionDur: cfg.CorrectionDuration,
	}
}

// OnCorrection registers a sink invoked whenever a corrective flight is
// issued. Must be called before the governor starts ticking.
func (g *Governor) OnCorrection(fn func(Correction)) {
	g.mu.Lock()
	g.onCorrection = fn
	g.mu.Unlock()
}

// Apply swaps the active bounds and measurement target wholesale and
// pushes the hard clamp to the engine controller. Any pending
// correction is cancelled: the new bounds are authoritative.
func (g *Governor) Apply(b Bounds, target TargetFunc) {
	g.mu.Lock()
	prev := g.correction
	g.correction = nil
	g.active = b
	g.target = target
	g.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	g.ctrl.SetZoomLimits(b.Min, b.Max)
	g.debounce.Disarm()
}

// Active returns the bounds currently in force.
func (g *Governor) Active() Bounds {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Suspend stops corrective checks while a mode flight is authoritative.
func (g *Governor) Suspend() {
	g.mu.Lock()
	g.suspended = true
	g.mu.Unlock()
}

// Resume re-enables corrective checks.
func (g *Governor) Resume() {
	g.mu.Lock()
	g.suspended = false
	g.mu.Unlock()
}

// NoteWheel stamps a wheel input. A wheel arriving during a correction
// re-arms the debounce rather than stacking another flight.
func (g *Governor) NoteWheel(now time.Time) {
	g.debounce.Stamp(now)
}

// Correcting reports whether a corrective flight is in progress.
func (g *Governor) Correcting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.correction != nil
}

// Tick runs the debounced out-of-bounds check. Invoked once per render
// frame.
func (g *Governor) Tick(now time.Time) {
	g.mu.Lock()
	if g.suspended || g.target == nil || g.correction != nil {
		g.mu.Unlock()
		return
	}
	if !g.debounce.Elapsed(now) {
		g.mu.Unlock()
		return
	}
	g.debounce.Disarm()

	target, ok := g.target(now)
	if !ok {
		g.mu.Unlock()
		return
	}
	camPos := g.cam.Position()
	ray := camPos.Sub(target)
	dist := ray.Length()
	if g.active.Contains(dist) || ray.IsZero(1e-9) {
		g.mu.Unlock()
		return
	}

	// clamp along the existing camera-to-target ray: only the distance
	// changes, not the viewing angle
	corrected := g.active.Clamp(dist)
	newPos := target.Add(ray.Normalize().Scale(corrected))
	look, up := g.cam.Orientation()

	var f *flight.Flight
	f = flight.New(func(flight.Outcome) {
		g.mu.Lock()
		if g.correction == f {
			g.correction = nil
		}
		g.mu.Unlock()
		g.state.EndFlight()
	})
	g.correction = f
	sink := g.onCorrection
	dur := g.correctionDur
	g.state.BeginFlight()
	g.mu.Unlock()

	f.Start(g.cam, engine.FlightRequest{
		Target:   camera.Pose{Position: newPos, Look: look, Up: up},
		Duration: dur,
	})
	if sink != nil {
		sink(Correction{At: now, FromDistance: dist, ToDistance: corrected})
	}
}
