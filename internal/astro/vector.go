// Package astro provides the low-level astronomical kernel: time scales,
// precession/nutation rotations, annual and diurnal aberration, space motion,
// and the two-constant atmospheric refraction model. Everything here is a
// pure numerical primitive over radians and MJD; input validation and
// frame bookkeeping live one layer up.
package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 is a unit-sphere direction or small cartesian displacement in the
// equatorial frame (x toward the vernal equinox, z toward the north
// celestial pole).
type Vec3 struct {
	X, Y, Z float64
}

// VecFromSpherical builds a unit vector from RA and Dec in radians.
func VecFromSpherical(ra, dec float64) Vec3 {
	cd := math.Cos(dec)
	return Vec3{
		X: math.Cos(ra) * cd,
		Y: math.Sin(ra) * cd,
		Z: math.Sin(dec),
	}
}

// Spherical returns RA in [0, 2π) and Dec in [-π/2, π/2] for the vector.
func (v Vec3) Spherical() (ra, dec float64) {
	r := math.Hypot(v.X, v.Y)
	if r == 0 {
		if v.Z >= 0 {
			return 0, math.Pi / 2
		}
		return 0, -math.Pi / 2
	}
	ra = math.Atan2(v.Y, v.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec = math.Atan2(v.Z, r)
	return ra, dec
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Norm returns the Euclidean norm.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector along v, or the zero vector if v is zero.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// RotX returns the rotation matrix for a right-handed rotation by angle
// (radians) about the x axis.
func RotX(angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	})
}

// RotY returns the rotation matrix about the y axis.
func RotY(angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	return mat.NewDense(3, 3, []float64{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	})
}

// RotZ returns the rotation matrix about the z axis.
func RotZ(angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	return mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	})
}

// MulMat returns a*b for 3x3 matrices.
func MulMat(a, b *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Mul(a, b)
	return &out
}

// ApplyMat rotates v by m.
func ApplyMat(m *mat.Dense, v Vec3) Vec3 {
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// ApplyMatTranspose rotates v by the transpose (inverse) of m.
func ApplyMatTranspose(m *mat.Dense, v Vec3) Vec3 {
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(1, 0)*v.Y + m.At(2, 0)*v.Z,
		Y: m.At(0, 1)*v.X + m.At(1, 1)*v.Y + m.At(2, 1)*v.Z,
		Z: m.At(0, 2)*v.X + m.At(1, 2)*v.Y + m.At(2, 2)*v.Z,
	}
}
