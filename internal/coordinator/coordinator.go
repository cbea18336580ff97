// Package coordinator owns the view-mode state machine. It is the sole
// mutator of the active mode, the zoom bounds and the entity lock, and
// it sequences the animated flights between the whole-globe overview
// and the close-up venue framing.
package coordinator

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/engine"
	"github.com/tourglobe/stagecam/internal/flight"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/interaction"
	"github.com/tourglobe/stagecam/internal/lock"
	"github.com/tourglobe/stagecam/internal/rotate"
	"github.com/tourglobe/stagecam/internal/stops"
	"github.com/tourglobe/stagecam/internal/zoom"
)

// Mode is the active view mode. Exactly one is active at any instant.
type Mode int

const (
	// ModeOverview frames the entire globe.
	ModeOverview Mode = iota
	// ModeVenue frames a single stop at close range.
	ModeVenue
	// ModeTransitioning is held only while a mode flight is in the air.
	ModeTransitioning
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeOverview:
		return "overview"
	case ModeVenue:
		return "venue"
	case ModeTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Phase distinguishes the two transition notifications.
type Phase int

const (
	// PhaseStarted fires when a mode flight takes off. Dependent
	// visuals (route line, imagery blend) react here, keyed to the
	// target mode, so they update before the camera arrives.
	PhaseStarted Phase = iota
	// PhaseEnded fires when a mode flight resolves.
	PhaseEnded
)

// Event is a transition notification.
type Event struct {
	Phase      Phase
	TargetMode Mode
	StopID     string
	At         time.Time
	Cancelled  bool
}

// EntityResolver maps stop ids to engine entity handles.
type EntityResolver interface {
	Entity(stopID string) (engine.Entity, bool)
}

// Config tunes the choreography. Zero values select the defaults. The
// approach and duration constants are presentation parameters: flights
// grow longer and start farther out the longer the hop, inside fixed
// bounds.
type Config struct {
	OverviewBounds     zoom.Bounds
	VenueBounds        zoom.Bounds
	OverviewMultiplier float64

	ApproachHeadingDeg   float64
	ApproachPitchDeg     float64
	ApproachBaseRange    float64
	ApproachMaxRange     float64
	ApproachRangeDivisor float64

	FlightMinDuration     time.Duration
	FlightMaxDuration     time.Duration
	FlightDistanceDivisor float64
}

func (c *Config) setDefaults() {
	if c.OverviewBounds == (zoom.Bounds{}) {
		c.OverviewBounds = zoom.DefaultOverviewBounds()
	}
	if c.VenueBounds == (zoom.Bounds{}) {
		c.VenueBounds = zoom.DefaultVenueBounds()
	}
	if c.OverviewMultiplier == 0 {
		c.OverviewMultiplier = camera.DefaultOverviewMultiplier
	}
	if c.ApproachPitchDeg == 0 {
		c.ApproachPitchDeg = -35
	}
	if c.ApproachBaseRange == 0 {
		c.ApproachBaseRange = 650
	}
	if c.ApproachMaxRange == 0 {
		c.ApproachMaxRange = 950
	}
	if c.ApproachRangeDivisor == 0 {
		c.ApproachRangeDivisor = 20_000
	}
	if c.FlightMinDuration == 0 {
		c.FlightMinDuration = 450 * time.Millisecond
	}
	if c.FlightMaxDuration == 0 {
		c.FlightMaxDuration = 1150 * time.Millisecond
	}
	if c.FlightDistanceDivisor == 0 {
		c.FlightDistanceDivisor = 3_500_000
	}
}

// Deps holds all collaborators of the coordinator.
type Deps struct {
	Camera     engine.Camera
	Controller engine.Controller
	Scene      engine.Scene
	Rotator    *rotate.Scheduler
	Governor   *zoom.Governor
	Lock       *lock.Controller
	State      *interaction.State
	Stops      *stops.Itinerary
	Entities   EntityResolver
	Logger     zerolog.Logger
	Clock      func() time.Time
}

// Coordinator is the view-mode state machine.
type Coordinator struct {
	deps    Deps
	cfg     Config
	planner *camera.OverviewPlanner
	metrics *metrics

	mu        sync.Mutex
	mode      Mode
	current   *flight.Flight
	stopID    string
	listeners []func(Event)
}

// New creates a coordinator in overview mode. Call Init to push the
// initial framing and constraints to the engine.
func New(deps Deps, cfg Config) *Coordinator {
	cfg.setDefaults()
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Coordinator{
		deps:    deps,
		cfg:     cfg,
		planner: camera.NewOverviewPlanner(deps.Scene.Ellipsoid(), cfg.OverviewMultiplier),
		metrics: newMetrics(),
		mode:    ModeOverview,
	}
}

// Init snaps the camera to the default overview framing and engages the
// overview constraints and idle rotation.
func (c *Coordinator) Init() {
	c.deps.Camera.SetView(c.planner.DefaultPose())
	c.deps.Governor.Apply(c.cfg.OverviewBounds, c.overviewTarget)
	c.deps.Governor.Resume()
	c.deps.Rotator.Enable()
}

// Mode returns the active view mode.
func (c *Coordinator) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// CurrentStop returns the id of the stop the venue framing is on (or
// flying to), empty in overview.
func (c *Coordinator) CurrentStop() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopID
}

// OnTransition registers a transition listener. Listeners are invoked
// synchronously on the tick/input goroutine that resolved the flight.
func (c *Coordinator) OnTransition(fn func(Event)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Tick drives the per-frame collaborators. Invoked once per rendered
// frame by the host render loop.
func (c *Coordinator) Tick(now time.Time, dt time.Duration) {
	c.deps.Rotator.Tick(now, dt)
	c.deps.Governor.Tick(now)
	c.deps.Lock.Tick(now)
}

// PointerDown forwards a pointer-down input.
func (c *Coordinator) PointerDown() { c.deps.State.PointerDown() }

// PointerUp forwards a pointer-up input.
func (c *Coordinator) PointerUp() { c.deps.State.PointerUp() }

// Wheel forwards a wheel/zoom input.
func (c *Coordinator) Wheel(now time.Time) {
	c.deps.State.Wheel(now)
	c.deps.Governor.NoteWheel(now)
}

// SelectStop flies to the venue framing for the given stop. Valid from
// overview, venue (re-targeting) and mid-transition (the stale flight
// is cancelled first; last request wins). A stop without coordinates or
// without a resolved entity is silently skipped: that is a data-loading
// race, not an error.
func (c *Coordinator) SelectStop(id string) {
	now := c.deps.Clock()

	stop, ok := c.deps.Stops.Get(id)
	if !ok {
		c.deps.Logger.Debug().Str("stop", id).Msg("Unknown stop, ignoring selection")
		c.metrics.skipped(id, "unknown")
		return
	}
	if !stop.HasCoordinates() {
		c.deps.Logger.Debug().Str("stop", id).Msg("Stop has no coordinates yet, ignoring selection")
		c.metrics.skipped(id, "no_coordinates")
		return
	}
	entity, ok := c.deps.Entities.Entity(id)
	if !ok {
		c.deps.Logger.Debug().Str("stop", id).Msg("No entity for stop, ignoring selection")
		c.metrics.skipped(id, "no_entity")
		return
	}
	if _, ok := entity.Position(now); !ok {
		c.deps.Logger.Debug().Str("stop", id).Msg("Stop entity not resolved yet, ignoring selection")
		c.metrics.skipped(id, "entity_unresolved")
		return
	}

	anchor := geo.LonLat{Lon: *stop.Lng, Lat: *stop.Lat}
	target := c.deps.Scene.Ellipsoid().SurfacePoint(anchor)

	c.beginTransition(id)
	pose := c.approachPose(anchor, target)
	dur := c.flightDuration(pose.Position)

	var f *flight.Flight
	f = flight.New(func(o flight.Outcome) {
		c.arrive(f, Event{
			Phase:      PhaseEnded,
			TargetMode: ModeVenue,
			StopID:     id,
			Cancelled:  o == flight.OutcomeCancelled,
		}, func() {
			c.deps.Lock.Bind(entity)
			c.deps.Governor.Apply(c.cfg.VenueBounds, c.deps.Lock.Target)
			c.deps.Governor.Resume()
		})
	})
	c.launch(f, Event{Phase: PhaseStarted, TargetMode: ModeVenue, StopID: id, At: now},
		engine.FlightRequest{Target: pose, Duration: dur})
}

// ReturnToOverview flies out to the whole-globe framing. With an empty
// anchor id the stop the camera is currently on is used; a stop without
// coordinates falls back to the default framing.
func (c *Coordinator) ReturnToOverview(anchorID string) {
	now := c.deps.Clock()

	if anchorID == "" {
		anchorID = c.CurrentStop()
	}
	pose := c.planner.DefaultPose()
	if anchorID != "" {
		if stop, ok := c.deps.Stops.Get(anchorID); ok && stop.HasCoordinates() {
			pose = c.planner.Pose(geo.LonLat{Lon: *stop.Lng, Lat: *stop.Lat})
		}
	}

	c.beginTransition("")
	dur := c.flightDuration(pose.Position)

	var f *flight.Flight
	f = flight.New(func(o flight.Outcome) {
		c.arrive(f, Event{
			Phase:      PhaseEnded,
			TargetMode: ModeOverview,
			Cancelled:  o == flight.OutcomeCancelled,
		}, func() {
			c.deps.Governor.Apply(c.cfg.OverviewBounds, c.overviewTarget)
			c.deps.Governor.Resume()
			c.deps.Rotator.Enable()
		})
	})
	c.launch(f, Event{Phase: PhaseStarted, TargetMode: ModeOverview, At: now},
		engine.FlightRequest{Target: pose, Duration: dur})
}

// beginTransition stands the collaborators down, cancels any stale mode
// flight, and enters the transitioning state.
func (c *Coordinator) beginTransition(stopID string) {
	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.mode = ModeTransitioning
	c.stopID = stopID
	c.mu.Unlock()

	c.deps.Rotator.Disable()
	c.deps.Governor.Suspend()
	c.deps.Lock.Release()

	if prev != nil {
		// last request wins: the stale flight resolves through its
		// cancellation path and backs off when it sees it was replaced
		prev.Cancel()
	}
	c.deps.State.BeginFlight()
}

// launch publishes the started event and issues the flight.
func (c *Coordinator) launch(f *flight.Flight, started Event, req engine.FlightRequest) {
	c.mu.Lock()
	c.current = f
	c.mu.Unlock()

	c.metrics.started(started.TargetMode)
	c.deps.Logger.Info().
		Str("targetMode", started.TargetMode.String()).
		Str("stop", started.StopID).
		Dur("duration", req.Duration).
		Msg("Mode flight started")
	c.emit(started)
	f.Start(c.deps.Camera, req)
}

// arrive runs the shared resolution path of a mode flight. Completion
// and cancellation behave identically, so a cancelled flight never
// leaves the machine half-configured; a flight that was replaced by a
// newer request only reports itself and leaves the state alone.
func (c *Coordinator) arrive(f *flight.Flight, ended Event, engage func()) {
	ended.At = c.deps.Clock()

	c.mu.Lock()
	if c.current != f {
		c.mu.Unlock()
		c.metrics.resolved(ended.TargetMode, true)
		c.deps.Logger.Debug().
			Str("targetMode", ended.TargetMode.String()).
			Msg("Mode flight superseded")
		c.emit(ended)
		return
	}
	c.current = nil
	c.mode = ended.TargetMode
	c.mu.Unlock()

	engage()
	c.deps.State.EndFlight()
	c.metrics.resolved(ended.TargetMode, ended.Cancelled)
	c.deps.Logger.Info().
		Str("mode", ended.TargetMode.String()).
		Str("stop", ended.StopID).
		Bool("cancelled", ended.Cancelled).
		Msg("Mode flight resolved")
	c.emit(ended)
}

// overviewTarget is the zoom-measurement target while the whole globe
// is framed: the nearest surface point along the camera-to-center line.
func (c *Coordinator) overviewTarget(time.Time) (geo.Vec3, bool) {
	pos := c.deps.Camera.Position()
	if pos.IsZero(1e-9) {
		return geo.Vec3{}, false
	}
	return c.deps.Scene.Ellipsoid().ScaleToSurface(pos), true
}

// approachPose builds the venue framing near a stop: a heading, a fixed
// downward pitch, and a range that grows with the length of the hop.
func (c *Coordinator) approachPose(anchor geo.LonLat, target geo.Vec3) camera.Pose {
	east, north, up := camera.ENU(anchor, c.deps.Scene.Ellipsoid())

	heading := geo.Deg2Rad(c.cfg.ApproachHeadingDeg)
	pitch := geo.Deg2Rad(c.cfg.ApproachPitchDeg)
	sinH, cosH := math.Sincos(heading)
	sinP, cosP := math.Sincos(pitch)

	horiz := north.Scale(cosH).Add(east.Scale(sinH))
	look := horiz.Scale(cosP).Add(up.Scale(sinP)).Normalize()

	hop := c.deps.Camera.Position().Sub(target).Length()
	rng := geo.Clamp(
		c.cfg.ApproachBaseRange+hop/c.cfg.ApproachRangeDivisor,
		c.cfg.ApproachBaseRange,
		c.cfg.ApproachMaxRange,
	)

	return camera.Pose{
		Position: target.Sub(look.Scale(rng)),
		Look:     look,
		Up:       camera.SafeUp(look, up),
	}
}

// flightDuration scales the flight length with the travel distance,
// clamped so very short and very long hops both feel deliberate.
func (c *Coordinator) flightDuration(to geo.Vec3) time.Duration {
	dist := c.deps.Camera.Position().Sub(to).Length()
	seconds := geo.Clamp(
		dist/c.cfg.FlightDistanceDivisor,
		c.cfg.FlightMinDuration.Seconds(),
		c.cfg.FlightMaxDuration.Seconds(),
	)
	return time.Duration(seconds * float64(time.Second))
}

func (c *Coordinator) emit(ev Event) {
	c.mu.Lock()
	listeners := make([]func(Event), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
