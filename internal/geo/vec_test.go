package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3_Basics(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Vec3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, Vec3{X: -3, Y: -3, Z: -3}, a.Sub(b))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVec3_Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	assert.Equal(t, Vec3{Z: 1}, x.Cross(y))
	assert.Equal(t, Vec3{Z: -1}, y.Cross(x))
	assert.True(t, x.Cross(x).IsZero(1e-12))
}

func TestVec3_Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)

	// zero vector stays zero instead of producing NaN
	z := Vec3{}.Normalize()
	assert.Equal(t, Vec3{}, z)
}

func TestVec3_IsFinite(t *testing.T) {
	assert.True(t, Vec3{X: 1, Y: 2, Z: 3}.IsFinite())
	assert.False(t, Vec3{X: math.NaN()}.IsFinite())
	assert.False(t, Vec3{Z: math.Inf(1)}.IsFinite())
}

func TestVec3_RotateAround(t *testing.T) {
	// quarter turn of +X about the polar axis lands on +Y
	got := Vec3{X: 1}.RotateAround(PolarAxis, math.Pi/2)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)

	// rotation preserves length
	v := Vec3{X: 2, Y: -3, Z: 5}
	r := v.RotateAround(PolarAxis, 0.7)
	assert.InDelta(t, v.Length(), r.Length(), 1e-9)

	// rotating about an axis parallel to the vector is a no-op
	p := PolarAxis.Scale(4).RotateAround(PolarAxis, 1.3)
	assert.InDelta(t, 0, p.Sub(PolarAxis.Scale(4)).Length(), 1e-12)
}

func TestLerp(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 10, Y: -4, Z: 2}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 5, mid.X, 1e-12)
	assert.InDelta(t, -2, mid.Y, 1e-12)
	assert.InDelta(t, 1, mid.Z, 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(3, 5, 10))
	assert.Equal(t, 10.0, Clamp(12, 5, 10))
	assert.Equal(t, 7.0, Clamp(7, 5, 10))
}

func TestDegRadRoundTrip(t *testing.T) {
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-12)
	assert.InDelta(t, 180.0, Rad2Deg(math.Pi), 1e-12)
	assert.InDelta(t, 45.0, Rad2Deg(Deg2Rad(45)), 1e-12)
}

func TestParseLonLat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LonLat
		wantErr bool
	}{
		{name: "valid", input: "-73.99,40.73", want: LonLat{Lon: -73.99, Lat: 40.73}},
		{name: "with spaces", input: " 2.35 , 48.86 ", want: LonLat{Lon: 2.35, Lat: 48.86}},
		{name: "missing part", input: "12.5", wantErr: true},
		{name: "not a number", input: "abc,40", wantErr: true},
		{name: "lat out of range", input: "0,91", wantErr: true},
		{name: "lon out of range", input: "181,0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLonLat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCoordinates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
