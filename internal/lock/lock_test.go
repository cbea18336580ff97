package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/engine/sim"
	"github.com/tourglobe/stagecam/internal/geo"
)

var t0 = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func newLockHarness(t *testing.T) (*sim.Engine, *Controller, *sim.PointEntity) {
	t.Helper()
	eng := sim.New(geo.WGS84())
	entity := eng.Scene().AddVenue("stop-1", geo.LonLat{Lon: 2.35, Lat: 48.86})
	return eng, NewController(eng.Camera(), eng.Controller(), eng.Scene()), entity
}

func TestController_Bind(t *testing.T) {
	eng, c, entity := newLockHarness(t)
	assert.False(t, c.Bound())

	c.Bind(entity)

	require.True(t, c.Bound())
	got, ok := c.Entity()
	require.True(t, ok)
	assert.Equal(t, "stop-1", got.ID())

	tracked, ok := eng.Scene().TrackedEntity()
	require.True(t, ok)
	assert.Equal(t, "stop-1", tracked.ID())

	// pan and free-look are off, orbit and zoom stay on
	g := eng.Controller().Gestures()
	assert.False(t, g.Translate)
	assert.False(t, g.Look)
	assert.True(t, g.Rotate)
	assert.True(t, g.Tilt)
	assert.True(t, g.Zoom)
}

func TestController_Target(t *testing.T) {
	eng, c, entity := newLockHarness(t)

	_, ok := c.Target(t0)
	assert.False(t, ok)

	c.Bind(entity)
	pos, ok := c.Target(t0)
	require.True(t, ok)
	want := eng.Scene().Ellipsoid().SurfacePoint(geo.LonLat{Lon: 2.35, Lat: 48.86})
	assert.InDelta(t, 0, pos.Sub(want).Length(), 1e-6)
}

func TestController_Release(t *testing.T) {
	eng, c, entity := newLockHarness(t)
	saved := eng.Controller().Gestures()

	c.Bind(entity)
	c.Release()

	assert.False(t, c.Bound())
	_, ok := eng.Scene().TrackedEntity()
	assert.False(t, ok)
	assert.Equal(t, saved, eng.Controller().Gestures())

	// releasing an unbound controller is a no-op
	c.Release()
	assert.False(t, c.Bound())
}

func TestController_RebindKeepsOriginalGestures(t *testing.T) {
	eng, c, entity := newLockHarness(t)
	saved := eng.Controller().Gestures()
	other := eng.Scene().AddVenue("stop-2", geo.LonLat{Lon: -0.12, Lat: 51.5})

	c.Bind(entity)
	c.Bind(other)

	got, ok := c.Entity()
	require.True(t, ok)
	assert.Equal(t, "stop-2", got.ID())

	// the gesture state saved at the first bind comes back on release
	c.Release()
	assert.Equal(t, saved, eng.Controller().Gestures())
}

func TestController_TickLiftsCameraAboveSurface(t *testing.T) {
	eng, c, entity := newLockHarness(t)
	c.Bind(entity)

	ell := eng.Scene().Ellipsoid()
	// orbiting pushed the camera below the surface
	sunk := ell.SurfacePoint(geo.LonLat{Lon: 2.35, Lat: 48.86}).Scale(0.99)
	eng.Camera().SetView(camera.Pose{
		Position: sunk,
		Look:     sunk.Normalize().Scale(-1),
		Up:       geo.PolarAxis,
	})
	require.Negative(t, ell.SurfaceDistance(eng.Camera().Position()))

	c.Tick(t0)

	pos := eng.Camera().Position()
	assert.InDelta(t, 0, ell.SurfaceDistance(pos), 1e-6)
	look, up := eng.Camera().Orientation()
	assert.InDelta(t, 1, up.Length(), 1e-9)
	assert.InDelta(t, 0, look.Dot(up), 1e-9)
}

func TestController_TickAboveSurfaceIsNoOp(t *testing.T) {
	eng, c, entity := newLockHarness(t)
	c.Bind(entity)

	ell := eng.Scene().Ellipsoid()
	above := ell.SurfacePoint(geo.LonLat{Lon: 2.35, Lat: 48.86}).Scale(1.001)
	pose := camera.Pose{
		Position: above,
		Look:     above.Normalize().Scale(-1),
		Up:       geo.PolarAxis,
	}
	eng.Camera().SetView(pose)

	c.Tick(t0)
	assert.Equal(t, pose, eng.Camera().Pose())
}

func TestController_TickUnboundIsNoOp(t *testing.T) {
	eng, c, _ := newLockHarness(t)

	ell := eng.Scene().Ellipsoid()
	sunk := ell.SurfacePoint(geo.LonLat{Lon: 0, Lat: 0}).Scale(0.5)
	eng.Camera().SetView(camera.Pose{Position: sunk})

	c.Tick(t0)
	assert.Equal(t, sunk, eng.Camera().Position())
}
