package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinates is returned when coordinates are malformed or out of range.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// LonLat is a geodetic point on the reference ellipsoid, in degrees.
type LonLat struct {
	Lon float64
	Lat float64
}

// Valid reports whether the point lies inside the geodetic range.
func (p LonLat) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// ParseLonLat parses a "lon,lat" string into a LonLat.
func ParseLonLat(s string) (LonLat, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return LonLat{}, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LonLat{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LonLat{}, ErrInvalidCoordinates
	}
	p := LonLat{Lon: lon, Lat: lat}
	if !p.Valid() {
		return LonLat{}, ErrInvalidCoordinates
	}
	return p, nil
}

// Ellipsoid is an oblate reference body centered at the origin with its
// polar axis along +Z. Radii are in meters.
type Ellipsoid struct {
	EquatorialRadius float64
	PolarRadius      float64
}

// WGS84 returns the WGS 84 reference ellipsoid.
func WGS84() Ellipsoid {
	return Ellipsoid{
		EquatorialRadius: 6378137.0,
		PolarRadius:      6356752.314245,
	}
}

// MaximumRadius returns the largest radius of the body.
func (e Ellipsoid) MaximumRadius() float64 {
	return math.Max(e.EquatorialRadius, e.PolarRadius)
}

// eccentricitySquared returns the first eccentricity squared.
func (e Ellipsoid) eccentricitySquared() float64 {
	a, b := e.EquatorialRadius, e.PolarRadius
	return (a*a - b*b) / (a * a)
}

// SurfacePoint converts a geodetic point to a cartesian point on the
// ellipsoid surface (height zero).
func (e Ellipsoid) SurfacePoint(p LonLat) Vec3 {
	lon := Deg2Rad(p.Lon)
	lat := Deg2Rad(p.Lat)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	e2 := e.eccentricitySquared()
	// prime vertical radius of curvature
	n := e.EquatorialRadius / math.Sqrt(1-e2*sinLat*sinLat)

	return Vec3{
		X: n * cosLat * cosLon,
		Y: n * cosLat * sinLon,
		Z: n * (1 - e2) * sinLat,
	}
}

// SurfaceNormal returns the outward geodetic surface normal at the
// given point (a unit vector).
func (e Ellipsoid) SurfaceNormal(p LonLat) Vec3 {
	lon := Deg2Rad(p.Lon)
	lat := Deg2Rad(p.Lat)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	return Vec3{
		X: cosLat * cosLon,
		Y: cosLat * sinLon,
		Z: sinLat,
	}
}

// ScaleToSurface projects a cartesian point onto the ellipsoid surface
// along the line through the body center. Returns the zero vector for
// a zero input.
func (e Ellipsoid) ScaleToSurface(v Vec3) Vec3 {
	a, b := e.EquatorialRadius, e.PolarRadius
	q := (v.X*v.X+v.Y*v.Y)/(a*a) + (v.Z*v.Z)/(b*b)
	if q == 0 {
		return Vec3{}
	}
	return v.Scale(1 / math.Sqrt(q))
}

// SurfaceDistance returns the distance from the given cartesian point to
// the ellipsoid surface along the line to the body center. Negative when
// the point is below the surface.
func (e Ellipsoid) SurfaceDistance(v Vec3) float64 {
	return v.Length() - e.ScaleToSurface(v).Length()
}
