package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis, gravity acts along -Up
var Up = mgl64.Vec3{0, 1, 0}

// Planar projects v onto the horizontal XZ plane
func Planar(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// PlanarDistance returns the XZ distance between a and b, ignoring height
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return Planar(b.Sub(a)).Len()
}

// Normalize returns the unit vector of v
// Zero-length input yields the zero vector instead of NaN components
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1.0 / l)
}

// WithMagnitude rescales v to length mag, keeping its direction
func WithMagnitude(v mgl64.Vec3, mag float64) mgl64.Vec3 {
	return Normalize(v).Mul(mag)
}

// IsFinite reports whether all components are neither NaN nor infinite
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FlatForward returns the horizontal unit direction from -> to
func FlatForward(from, to mgl64.Vec3) mgl64.Vec3 {
	return Normalize(Planar(to.Sub(from)))
}

// Right returns the horizontal right-hand axis for a facing direction
func Right(forward mgl64.Vec3) mgl64.Vec3 {
	return Normalize(Up.Cross(forward))
}
