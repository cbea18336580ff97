package camera

import (
	"github.com/tourglobe/stagecam/internal/geo"
)

// basisTolerance is the threshold under which a derived basis vector is
// treated as degenerate and a fallback axis is used instead.
const basisTolerance = 1e-9

// referenceAxis is the fallback east axis for anchors at or near a pole,
// where polarAxis x normal vanishes.
var referenceAxis = geo.Vec3{X: 1, Y: 0, Z: 0}

// Pose is a camera position plus orientation. Look and Up are unit
// vectors and mutually orthogonal.
type Pose struct {
	Position geo.Vec3
	Look     geo.Vec3
	Up       geo.Vec3
}

// AboveAnchor builds the pose of a camera hovering over a geodetic
// anchor, looking at the body center. distanceFromCenter is measured
// from the center of the body, not the surface, so the same value
// always frames the same fraction of the globe.
func AboveAnchor(anchor geo.LonLat, distanceFromCenter float64, e geo.Ellipsoid) Pose {
	n := e.SurfaceNormal(anchor)
	position := n.Scale(distanceFromCenter)
	look := position.Scale(-1).Normalize()

	east := geo.PolarAxis.Cross(n)
	if east.IsZero(basisTolerance) {
		// polar anchor: polarAxis and normal are parallel
		east = referenceAxis
	}
	east = east.Normalize()
	up := n.Cross(east).Normalize()

	return Pose{Position: position, Look: look, Up: up}
}

// ENU returns the local east/north/up basis at a geodetic anchor. For
// polar anchors the east axis falls back to the fixed reference axis so
// the basis never degenerates.
func ENU(anchor geo.LonLat, e geo.Ellipsoid) (east, north, up geo.Vec3) {
	up = e.SurfaceNormal(anchor)
	east = geo.PolarAxis.Cross(up)
	if east.IsZero(basisTolerance) {
		east = referenceAxis
	}
	east = east.Normalize()
	north = up.Cross(east).Normalize()
	return east, north, up
}

// SafeUp derives an up vector for the given look direction near the
// given radial surface normal, avoiding the degenerate case where look
// and up become parallel and the view matrix turns singular.
func SafeUp(look, radial geo.Vec3) geo.Vec3 {
	east := geo.PolarAxis.Cross(radial)
	up := look.Cross(east)
	if up.IsZero(basisTolerance) {
		up = look.Cross(radial)
	}
	if up.IsZero(basisTolerance) {
		up = referenceAxis
	}
	return up.Normalize()
}
