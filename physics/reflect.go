package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/vmath"
)

// ReflectAcrossPlane mirrors target through the plane defined by anchor and normal
// reflected = target - 2 * dot(target - anchor, n) * n, with n normalized
// A zero normal leaves target unchanged
func ReflectAcrossPlane(target, anchor, normal mgl64.Vec3) mgl64.Vec3 {
	n := vmath.Normalize(normal)
	if n.Len() == 0 {
		return target
	}
	dist := target.Sub(anchor).Dot(n)
	return target.Sub(n.Mul(2 * dist))
}

// SolveBankShot aims at the hoop mirrored across the backboard plane
// The flat board acts like a mirror, so the bank shot is a direct shot at the image
func SolveBankShot(start, hoop, boardAnchor, boardNormal mgl64.Vec3, apexHeight, g float64) (mgl64.Vec3, error) {
	return SolveApexArc(start, ReflectAcrossPlane(hoop, boardAnchor, boardNormal), apexHeight, g)
}
