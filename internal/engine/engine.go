// Package engine defines the surface of the host 3D engine that the
// choreography core drives. The real renderer lives outside this
// module; internal/engine/sim provides a deterministic implementation
// for the demo driver and the test suite.
package engine

import (
	"time"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/geo"
)

// EasingFunc maps normalized flight time in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

// EaseInOutQuad is the default flight easing.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// CancelFunc aborts an in-progress flight. Calling it after the flight
// has already resolved is a no-op.
type CancelFunc func()

// FlightRequest describes an animated camera move.
type FlightRequest struct {
	Target   camera.Pose
	Duration time.Duration
	Easing   EasingFunc
}

// Camera is the host engine's camera.
//
// FlyTo invokes exactly one of onComplete or onCancel, never both.
// Cancellation is a normal termination path and never panics.
type Camera interface {
	Position() geo.Vec3
	Orientation() (look, up geo.Vec3)
	SetView(pose camera.Pose)
	Rotate(axis geo.Vec3, radians float64)
	FlyTo(req FlightRequest, onComplete, onCancel func()) CancelFunc
}

// Gestures are the camera controller's input toggles.
type Gestures struct {
	Translate bool
	Look      bool
	Tilt      bool
	Rotate    bool
	Zoom      bool
}

// DefaultGestures returns the controller's interaction defaults.
func DefaultGestures() Gestures {
	return Gestures{Translate: true, Look: true, Tilt: true, Rotate: true, Zoom: true}
}

// Controller is the host engine's screen-space camera controller.
type Controller interface {
	SetZoomLimits(min, max float64)
	ZoomLimits() (min, max float64)
	SetGestures(g Gestures)
	Gestures() Gestures
}

// Entity is a handle to an on-globe object with a time-sampled
// position. The position is unavailable until the entity resolves.
type Entity interface {
	ID() string
	Position(at time.Time) (geo.Vec3, bool)
}

// Scene is the host engine's scene surface: tracked-entity binding and
// the render trigger.
type Scene interface {
	Ellipsoid() geo.Ellipsoid
	SetTrackedEntity(e Entity)
	ClearTrackedEntity()
	TrackedEntity() (Entity, bool)
	RequestRender()
}
