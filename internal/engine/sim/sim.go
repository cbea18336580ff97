// Package sim is a deterministic, step-driven stand-in for the host 3D
// engine. Flights advance only when Step is called, so tests and the
// scenario driver control time explicitly.
package sim

import (
	"sync"
	"time"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/engine"
	"github.com/tourglobe/stagecam/internal/geo"
)

// Engine bundles the simulated camera, controller and scene.
type Engine struct {
	cam   *Camera
	ctrl  *Controller
	scene *Scene
}

// New creates a simulated engine around the given ellipsoid.
func New(ell geo.Ellipsoid) *Engine {
	return &Engine{
		cam:   &Camera{},
		ctrl:  &Controller{gestures: engine.DefaultGestures()},
		scene: NewScene(ell),
	}
}

// Camera returns the simulated camera.
func (e *Engine) Camera() *Camera { return e.cam }

// Controller returns the simulated camera controller.
func (e *Engine) Controller() *Controller { return e.ctrl }

// Scene returns the simulated scene.
func (e *Engine) Scene() *Scene { return e.scene }

// Step advances the active flight by dt and re-aims the camera at the
// tracked entity when idle. This is the sim's render-loop body.
func (e *Engine) Step(now time.Time, dt time.Duration) {
	e.cam.step(dt)
	if e.cam.InFlight() {
		return
	}
	if tracked, ok := e.scene.TrackedEntity(); ok {
		if target, ok := tracked.Position(now); ok {
			e.cam.aimAt(target)
		}
	}
}

type activeFlight struct {
	seq        uint64
	from, to   camera.Pose
	duration   time.Duration
	elapsed    time.Duration
	easing     engine.EasingFunc
	onComplete func()
	onCancel   func()
}

// Camera is the simulated engine camera.
type Camera struct {
	mu     sync.Mutex
	pose   camera.Pose
	flight *activeFlight
	seq    uint64
}

// Position returns the current camera position.
func (c *Camera) Position() geo.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Position
}

// Orientation returns the current look and up vectors.
func (c *Camera) Orientation() (look, up geo.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Look, c.pose.Up
}

// Pose returns the full current pose.
func (c *Camera) Pose() camera.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

// InFlight reports whether a flight is currently animating.
func (c *Camera) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flight != nil
}

// SetView snaps the camera to the given pose without animation.
func (c *Camera) SetView(pose camera.Pose) {
	c.mu.Lock()
	c.pose = pose
	c.mu.Unlock()
}

// Rotate rotates the camera pose about an axis through the body center.
func (c *Camera) Rotate(axis geo.Vec3, radians float64) {
	c.mu.Lock()
	c.pose.Position = c.pose.Position.RotateAround(axis, radians)
	c.pose.Look = c.pose.Look.RotateAround(axis, radians)
	c.pose.Up = c.pose.Up.RotateAround(axis, radians)
	c.mu.Unlock()
}

// FlyTo starts an animated move to the target pose. Any flight already
// in progress is cancelled first. A non-positive duration completes
// immediately.
func (c *Camera) FlyTo(req engine.FlightRequest, onComplete, onCancel func()) engine.CancelFunc {
	c.mu.Lock()
	prev := c.flight
	c.flight = nil
	c.mu.Unlock()
	if prev != nil && prev.onCancel != nil {
		prev.onCancel()
	}

	if req.Duration <= 0 {
		c.SetView(req.Target)
		if onComplete != nil {
			onComplete()
		}
		return func() {}
	}

	easing := req.Easing
	if easing == nil {
		easing = engine.EaseInOutQuad
	}

	c.mu.Lock()
	c.seq++
	f := &activeFlight{
		seq:        c.seq,
		from:       c.pose,
		to:         req.Target,
		duration:   req.Duration,
		easing:     easing,
		onComplete: onComplete,
		onCancel:   onCancel,
	}
	c.flight = f
	c.mu.Unlock()

	seq := f.seq
	return func() {
		c.mu.Lock()
		if c.flight == nil || c.flight.seq != seq {
			c.mu.Unlock()
			return
		}
		cancelled := c.flight
		c.flight = nil
		c.mu.Unlock()
		if cancelled.onCancel != nil {
			cancelled.onCancel()
		}
	}
}

func (c *Camera) step(dt time.Duration) {
	c.mu.Lock()
	f := c.flight
	if f == nil {
		c.mu.Unlock()
		return
	}
	f.elapsed += dt
	t := float64(f.elapsed) / float64(f.duration)
	if t >= 1 {
		c.pose = f.to
		c.flight = nil
		c.mu.Unlock()
		if f.onComplete != nil {
			f.onComplete()
		}
		return
	}
	c.pose = interpolate(f.from, f.to, f.easing(t))
	c.mu.Unlock()
}

func (c *Camera) aimAt(target geo.Vec3) {
	c.mu.Lock()
	look := target.Sub(c.pose.Position).Normalize()
	if !look.IsZero(1e-12) {
		c.pose.Look = look
		c.pose.Up = camera.SafeUp(look, c.pose.Position.Normalize())
	}
	c.mu.Unlock()
}

func interpolate(from, to camera.Pose, t float64) camera.Pose {
	pos := geo.Lerp(from.Position, to.Position, t)
	look := geo.Lerp(from.Look, to.Look, t).Normalize()
	if look.IsZero(1e-12) {
		look = to.Look
	}
	up := geo.Lerp(from.Up, to.Up, t)
	// re-orthogonalize against the interpolated look
	up = up.Sub(look.Scale(look.Dot(up))).Normalize()
	if up.IsZero(1e-12) {
		up = camera.SafeUp(look, pos.Normalize())
	}
	return camera.Pose{Position: pos, Look: look, Up: up}
}

// Controller is the simulated screen-space camera controller.
type Controller struct {
	mu       sync.Mutex
	min, max float64
	gestures engine.Gestures
}

// SetZoomLimits sets the interactive zoom distance constraints.
func (c *Controller) SetZoomLimits(min, max float64) {
	c.mu.Lock()
	c.min, c.max = min, max
	c.mu.Unlock()
}

// ZoomLimits returns the active zoom distance constraints.
func (c *Controller) ZoomLimits() (min, max float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.min, c.max
}

// SetGestures sets the input gesture toggles.
func (c *Controller) SetGestures(g engine.Gestures) {
	c.mu.Lock()
	c.gestures = g
	c.mu.Unlock()
}

// Gestures returns the current input gesture toggles.
func (c *Controller) Gestures() engine.Gestures {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gestures
}

// Scene is the simulated scene: venue entities, the tracked-entity
// slot, and a render-request counter.
type Scene struct {
	mu       sync.Mutex
	ell      geo.Ellipsoid
	entities map[string]*PointEntity
	tracked  engine.Entity
	renders  int
}

// NewScene creates an empty scene on the given ellipsoid.
func NewScene(ell geo.Ellipsoid) *Scene {
	return &Scene{ell: ell, entities: make(map[string]*PointEntity)}
}

// Ellipsoid returns the scene's reference body.
func (s *Scene) Ellipsoid() geo.Ellipsoid { return s.ell }

// AddVenue registers a resolved venue entity on the ellipsoid surface.
func (s *Scene) AddVenue(id string, at geo.LonLat) *PointEntity {
	e := &PointEntity{id: id, pos: s.ell.SurfacePoint(at), resolved: true}
	s.mu.Lock()
	s.entities[id] = e
	s.mu.Unlock()
	return e
}

// AddUnresolved registers an entity whose position is not yet known.
func (s *Scene) AddUnresolved(id string) *PointEntity {
	e := &PointEntity{id: id}
	s.mu.Lock()
	s.entities[id] = e
	s.mu.Unlock()
	return e
}

// Entity looks up an entity handle by id.
func (s *Scene) Entity(id string) (engine.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// SetTrackedEntity binds the camera to track the given entity.
func (s *Scene) SetTrackedEntity(e engine.Entity) {
	s.mu.Lock()
	s.tracked = e
	s.mu.Unlock()
}

// ClearTrackedEntity removes the tracked-entity binding.
func (s *Scene) ClearTrackedEntity() {
	s.mu.Lock()
	s.tracked = nil
	s.mu.Unlock()
}

// TrackedEntity returns the currently tracked entity, if any.
func (s *Scene) TrackedEntity() (engine.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracked == nil {
		return nil, false
	}
	return s.tracked, true
}

// RequestRender counts an explicit render trigger.
func (s *Scene) RequestRender() {
	s.mu.Lock()
	s.renders++
	s.mu.Unlock()
}

// RenderRequests returns the number of render triggers so far.
func (s *Scene) RenderRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

// PointEntity is a fixed-position entity handle.
type PointEntity struct {
	mu       sync.Mutex
	id       string
	pos      geo.Vec3
	resolved bool
}

// ID returns the entity id.
func (e *PointEntity) ID() string { return e.id }

// Position returns the entity position at the given time. ok is false
// until the entity has resolved.
func (e *PointEntity) Position(at time.Time) (geo.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.resolved {
		return geo.Vec3{}, false
	}
	return e.pos, true
}

// Resolve sets the entity position and marks it resolved.
func (e *PointEntity) Resolve(pos geo.Vec3) {
	e.mu.Lock()
	e.pos = pos
	e.resolved = true
	e.mu.Unlock()
}
