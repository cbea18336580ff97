package camera

import (
	"github.com/tourglobe/stagecam/internal/geo"
)

// DefaultOverviewMultiplier is the ratio of camera distance (from body
// center) to equatorial radius that frames the whole globe with margin.
const DefaultOverviewMultiplier = 2.6

// DefaultOverviewAnchor is the framing used when no anchor is supplied.
// A side-on equatorial view, so the initial framing is never degenerate
// and the idle rotation direction is well defined.
var DefaultOverviewAnchor = geo.LonLat{Lon: -30, Lat: 15}

// OverviewPlanner computes whole-globe camera poses.
type OverviewPlanner struct {
	Ellipsoid  geo.Ellipsoid
	Multiplier float64
}

// NewOverviewPlanner creates a planner with the given distance multiplier.
// A multiplier of zero selects the default.
func NewOverviewPlanner(e geo.Ellipsoid, multiplier float64) *OverviewPlanner {
	if multiplier <= 0 {
		multiplier = DefaultOverviewMultiplier
	}
	return &OverviewPlanner{Ellipsoid: e, Multiplier: multiplier}
}

// Distance returns the camera distance from the body center for
// overview framing.
func (p *OverviewPlanner) Distance() float64 {
	return p.Ellipsoid.EquatorialRadius * p.Multiplier
}

// Pose returns the overview pose centered above the given anchor.
func (p *OverviewPlanner) Pose(anchor geo.LonLat) Pose {
	return AboveAnchor(anchor, p.Distance(), p.Ellipsoid)
}

// DefaultPose returns the overview pose above the default anchor.
func (p *OverviewPlanner) DefaultPose() Pose {
	return p.Pose(DefaultOverviewAnchor)
}
