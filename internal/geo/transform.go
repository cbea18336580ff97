package geo

import (
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Projected coordinates are kept in EPSG:3857 so downstream layers can
// treat route geometry as plain planar data.

// Coords3857From4326 projects a geodetic point to a web-mercator point.
func Coords3857From4326(p LonLat) geom.Point {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(p.Lon, p.Lat, 0)
	return geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
			Z:  0,
		},
	)
}

// ECEF4978From4326 converts a geodetic point to geocentric cartesian
// coordinates (EPSG:4978), height zero.
func ECEF4978From4326(p LonLat) Vec3 {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 4978)
	x, y, z := f(p.Lon, p.Lat, 0)
	return Vec3{X: x, Y: y, Z: z}
}
