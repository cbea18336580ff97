package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tourglobe/stagecam/internal/geo"
)

const orthoTol = 1e-6

func assertOrthonormal(t *testing.T, p Pose) {
	t.Helper()
	assert.InDelta(t, 1, p.Look.Length(), orthoTol, "look must be unit length")
	assert.InDelta(t, 1, p.Up.Length(), orthoTol, "up must be unit length")
	assert.InDelta(t, 0, p.Look.Dot(p.Up), orthoTol, "look and up must be orthogonal")
	assert.True(t, p.Position.IsFinite())
	assert.True(t, p.Look.IsFinite())
	assert.True(t, p.Up.IsFinite())
}

func TestAboveAnchor(t *testing.T) {
	ell := geo.WGS84()
	dist := ell.EquatorialRadius * 2.6

	anchors := []geo.LonLat{
		{Lon: 0, Lat: 0},
		{Lon: -73.99, Lat: 40.73},
		{Lon: 151.21, Lat: -33.87},
		{Lon: 179.9, Lat: 0.1},
	}
	for _, a := range anchors {
		p := AboveAnchor(a, dist, ell)
		assertOrthonormal(t, p)
		assert.InDelta(t, dist, p.Position.Length(), 1e-3)

		// looking at the body center: position + look*distance lands at origin
		center := p.Position.Add(p.Look.Scale(dist))
		assert.InDelta(t, 0, center.Length(), 1.0)
	}
}

func TestAboveAnchor_PolarFallback(t *testing.T) {
	ell := geo.WGS84()
	dist := ell.EquatorialRadius * 2.6

	for _, lat := range []float64{90, -90} {
		p := AboveAnchor(geo.LonLat{Lon: 0, Lat: lat}, dist, ell)
		assertOrthonormal(t, p)
	}
}

func TestENU(t *testing.T) {
	ell := geo.WGS84()

	// at (0,0): up is +X, east is +Y, north is +Z
	east, north, up := ENU(geo.LonLat{Lon: 0, Lat: 0}, ell)
	assert.InDelta(t, 1, east.Y, orthoTol)
	assert.InDelta(t, 1, north.Z, orthoTol)
	assert.InDelta(t, 1, up.X, orthoTol)

	// basis stays orthonormal everywhere, poles included
	for _, a := range []geo.LonLat{
		{Lon: 12.5, Lat: 41.9},
		{Lon: -58.4, Lat: -34.6},
		{Lon: 0, Lat: 90},
		{Lon: 45, Lat: -90},
	} {
		east, north, up := ENU(a, ell)
		assert.InDelta(t, 1, east.Length(), orthoTol)
		assert.InDelta(t, 1, north.Length(), orthoTol)
		assert.InDelta(t, 1, up.Length(), orthoTol)
		assert.InDelta(t, 0, east.Dot(north), orthoTol)
		assert.InDelta(t, 0, east.Dot(up), orthoTol)
		assert.InDelta(t, 0, north.Dot(up), orthoTol)
	}
}

func TestSafeUp(t *testing.T) {
	// generic case: up is unit and orthogonal to look
	look := geo.Vec3{X: -1}.Normalize()
	radial := geo.Vec3{X: 1}
	up := SafeUp(look, radial)
	assert.InDelta(t, 1, up.Length(), orthoTol)
	assert.InDelta(t, 0, up.Dot(look), orthoTol)
}

func TestSafeUp_DegenerateFallbacks(t *testing.T) {
	// radial on the polar axis: first cross product vanishes
	up := SafeUp(geo.Vec3{X: 1}, geo.PolarAxis)
	assert.InDelta(t, 1, up.Length(), orthoTol)
	assert.True(t, up.IsFinite())

	// look and radial both on the polar axis: everything vanishes, the
	// fixed reference axis takes over
	up = SafeUp(geo.PolarAxis, geo.PolarAxis)
	assert.InDelta(t, 1, up.Length(), orthoTol)
	assert.True(t, up.IsFinite())
}

func TestOverviewPlanner(t *testing.T) {
	ell := geo.WGS84()

	p := NewOverviewPlanner(ell, 3.0)
	assert.InDelta(t, ell.EquatorialRadius*3.0, p.Distance(), 1e-6)

	// zero multiplier selects the default
	d := NewOverviewPlanner(ell, 0)
	assert.InDelta(t, ell.EquatorialRadius*DefaultOverviewMultiplier, d.Distance(), 1e-6)

	pose := d.DefaultPose()
	assertOrthonormal(t, pose)
	assert.InDelta(t, d.Distance(), pose.Position.Length(), 1e-3)
}
