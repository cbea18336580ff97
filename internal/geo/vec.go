package geo

import "math"

// Vec3 is a 3D vector in geocentric cartesian coordinates (meters).
type Vec3 struct {
	X, Y, Z float64
}

// PolarAxis is the body's rotation axis in geocentric coordinates.
var PolarAxis = Vec3{X: 0, Y: 0, Z: 1}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale scales a vector by a scalar.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of the vector.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns a unit vector in the same direction.
// Returns the zero vector unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether the vector length is below the given tolerance.
func (v Vec3) IsZero(tol float64) bool { return v.Length() < tol }

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// RotateAround rotates v about the given axis by angle radians
// using the Rodrigues rotation formula. The axis must be a unit vector.
func (v Vec3) RotateAround(axis Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	term1 := v.Scale(cos)
	term2 := axis.Cross(v).Scale(sin)
	term3 := axis.Scale(axis.Dot(v) * (1 - cos))
	return term1.Add(term2).Add(term3)
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Clamp restricts x to the range [min, max].
func Clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }
