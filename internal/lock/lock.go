// Package lock binds the camera to a venue entity: pan and free-look
// are disabled, orbit and zoom stay available, and a per-frame floor
// check keeps the camera from sinking below the surface.
package lock

import (
	"sync"
	"time"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/engine"
	"github.com/tourglobe/stagecam/internal/geo"
)

// Controller manages the venue entity lock.
type Controller struct {
	cam   engine.Camera
	ctrl  engine.Controller
	scene engine.Scene

	mu     sync.Mutex
	entity engine.Entity
	saved  engine.Gestures
}

// NewController creates an unbound controller.
func NewController(cam engine.Camera, ctrl engine.Controller, scene engine.Scene) *Controller {
	return &Controller{cam: cam, ctrl: ctrl, scene: scene}
}

// Bind locks the camera onto the given entity. Translate and look
// gestures are disabled; rotate, tilt and zoom stay enabled so the user
// can orbit the venue within the governed zoom bounds. Rebinding to a
// new entity keeps the gesture state saved at the first bind.
func (c *Controller) Bind(e engine.Entity) {
	c.mu.Lock()
	if c.entity == nil {
		c.saved = c.ctrl.Gestures()
	}
	c.entity = e
	c.mu.Unlock()

	g := c.ctrl.Gestures()
	g.Translate = false
	g.Look = false
	g.Rotate = true
	g.Tilt = true
	g.Zoom = true
	c.ctrl.SetGestures(g)
	c.scene.SetTrackedEntity(e)
}

// Release clears the entity lock and restores the interaction flags
// saved at bind time.
func (c *Controller) Release() {
	c.mu.Lock()
	if c.entity == nil {
		c.mu.Unlock()
		return
	}
	saved := c.saved
	c.entity = nil
	c.mu.Unlock()

	c.scene.ClearTrackedEntity()
	c.ctrl.SetGestures(saved)
}

// Bound reports whether an entity lock is active.
func (c *Controller) Bound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entity != nil
}

// Entity returns the locked entity, if any.
func (c *Controller) Entity() (engine.Entity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entity == nil {
		return nil, false
	}
	return c.entity, true
}

// Target returns the locked entity's current position.
func (c *Controller) Target(now time.Time) (geo.Vec3, bool) {
	e, ok := c.Entity()
	if !ok {
		return geo.Vec3{}, false
	}
	return e.Position(now)
}

// Tick runs the per-frame surface-floor check: if orbiting has pushed
// the camera below the surface, it is lifted back to surface height
// with a safe up vector so the view matrix never turns singular.
func (c *Controller) Tick(now time.Time) {
	if !c.Bound() {
		return
	}
	pos := c.cam.Position()
	ell := c.scene.Ellipsoid()
	if ell.SurfaceDistance(pos) >= 0 {
		return
	}
	floor := ell.ScaleToSurface(pos)
	look, _ := c.cam.Orientation()
	up := camera.SafeUp(look, floor.Normalize())
	c.cam.SetView(camera.Pose{Position: floor, Look: look, Up: up})
}
