package zoom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourglobe/stagecam/internal/camera"
	"github.com/tourglobe/stagecam/internal/engine/sim"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/interaction"
)

var t0 = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func TestBounds(t *testing.T) {
	b := Bounds{Min: 500, Max: 1000}

	assert.True(t, b.Contains(500))
	assert.True(t, b.Contains(1000))
	assert.False(t, b.Contains(499))
	assert.False(t, b.Contains(1001))

	assert.Equal(t, 500.0, b.Clamp(100))
	assert.Equal(t, 1000.0, b.Clamp(5000))
	assert.Equal(t, 750.0, b.Clamp(750))
}

type zoomHarness struct {
	eng    *sim.Engine
	state  *interaction.State
	gov    *Governor
	target geo.Vec3
}

func newZoomHarness(t *testing.T) *zoomHarness {
	t.Helper()
	eng := sim.New(geo.WGS84())
	state := interaction.NewState()
	gov := NewGovernor(eng.Camera(), eng.Controller(), state, Config{
		QuietPeriod:        150 * time.Millisecond,
		CorrectionDuration: 300 * time.Millisecond,
	})
	h := &zoomHarness{
		eng:    eng,
		state:  state,
		gov:    gov,
		target: eng.Scene().Ellipsoid().SurfacePoint(geo.LonLat{Lon: 0, Lat: 0}),
	}
	gov.Apply(Bounds{Min: 500, Max: 1000}, func(time.Time) (geo.Vec3, bool) {
		return h.target, true
	})
	return h
}

// placeCamera puts the camera the given distance out from the target
// along the surface normal.
func (h *zoomHarness) placeCamera(distance float64) {
	n := h.target.Normalize()
	h.eng.Camera().SetView(camera.Pose{
		Position: h.target.Add(n.Scale(distance)),
		Look:     n.Scale(-1),
		Up:       camera.SafeUp(n.Scale(-1), n),
	})
}

func (h *zoomHarness) distance() float64 {
	return h.eng.Camera().Position().Sub(h.target).Length()
}

func TestGovernor_AppliesHardClamp(t *testing.T) {
	h := newZoomHarness(t)

	min, max := h.eng.Controller().ZoomLimits()
	assert.Equal(t, 500.0, min)
	assert.Equal(t, 1000.0, max)
	assert.Equal(t, Bounds{Min: 500, Max: 1000}, h.gov.Active())
}

func TestGovernor_CorrectsOvershootAfterQuietPeriod(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(5000) // inertial scroll slipped past the clamp

	var got []Correction
	h.gov.OnCorrection(func(c Correction) { got = append(got, c) })

	h.gov.NoteWheel(t0)

	// still inside the quiet period: no correction yet
	h.gov.Tick(t0.Add(100 * time.Millisecond))
	assert.False(t, h.gov.Correcting())

	// quiet period elapsed: corrective flight takes off
	h.gov.Tick(t0.Add(150 * time.Millisecond))
	require.True(t, h.gov.Correcting())
	assert.True(t, h.state.IsFlightInProgress())

	require.Len(t, got, 1)
	assert.InDelta(t, 5000, got[0].FromDistance, 1e-6)
	assert.InDelta(t, 1000, got[0].ToDistance, 1e-6)

	// fly the correction out
	now := t0.Add(150 * time.Millisecond)
	for i := 0; i < 30; i++ {
		now = now.Add(16 * time.Millisecond)
		h.eng.Step(now, 16*time.Millisecond)
	}

	assert.False(t, h.gov.Correcting())
	assert.False(t, h.state.IsFlightInProgress())
	assert.InDelta(t, 1000, h.distance(), 1e-6)
}

func TestGovernor_CorrectsBelowMinimum(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(100)

	h.gov.NoteWheel(t0)
	h.gov.Tick(t0.Add(200 * time.Millisecond))
	require.True(t, h.gov.Correcting())

	now := t0.Add(200 * time.Millisecond)
	for i := 0; i < 30; i++ {
		now = now.Add(16 * time.Millisecond)
		h.eng.Step(now, 16*time.Millisecond)
	}

	assert.InDelta(t, 500, h.distance(), 1e-6)
}

func TestGovernor_InBoundsNeedsNoCorrection(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(750)

	h.gov.NoteWheel(t0)
	h.gov.Tick(t0.Add(time.Second))

	assert.False(t, h.gov.Correcting())
	assert.InDelta(t, 750, h.distance(), 1e-6)
}

func TestGovernor_SuspendedSkipsChecks(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(5000)

	h.gov.Suspend()
	h.gov.NoteWheel(t0)
	h.gov.Tick(t0.Add(time.Second))
	assert.False(t, h.gov.Correcting())

	h.gov.Resume()
	h.gov.NoteWheel(t0.Add(time.Second))
	h.gov.Tick(t0.Add(2 * time.Second))
	assert.True(t, h.gov.Correcting())
}

func TestGovernor_WheelRearmsDebounce(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(5000)

	h.gov.NoteWheel(t0)
	// a second wheel input arrives before the quiet period ends
	h.gov.NoteWheel(t0.Add(100 * time.Millisecond))

	// 150ms after the first input, but only 50ms after the second
	h.gov.Tick(t0.Add(150 * time.Millisecond))
	assert.False(t, h.gov.Correcting())

	h.gov.Tick(t0.Add(250 * time.Millisecond))
	assert.True(t, h.gov.Correcting())
}

func TestGovernor_ApplyCancelsPendingCorrection(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(5000)

	h.gov.NoteWheel(t0)
	h.gov.Tick(t0.Add(200 * time.Millisecond))
	require.True(t, h.gov.Correcting())

	// a mode switch swaps the bounds wholesale mid-correction
	h.gov.Apply(Bounds{Min: 2_000_000, Max: 30_000_000}, func(time.Time) (geo.Vec3, bool) {
		return h.target, true
	})

	assert.False(t, h.gov.Correcting())
	assert.False(t, h.state.IsFlightInProgress())
	min, max := h.eng.Controller().ZoomLimits()
	assert.Equal(t, 2_000_000.0, min)
	assert.Equal(t, 30_000_000.0, max)
}

func TestGovernor_TickWithoutWheelDoesNothing(t *testing.T) {
	h := newZoomHarness(t)
	h.placeCamera(5000)

	// out of bounds but no wheel input was ever stamped
	h.gov.Tick(t0.Add(time.Hour))
	assert.False(t, h.gov.Correcting())
}
