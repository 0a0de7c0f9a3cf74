package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/vmath"
)

// ErrInfeasible reports that no constrained-apex arc connects start and target
var ErrInfeasible = errors.New("infeasible arc")

// SolveApexArc returns the launch velocity of the parabola that peaks at apexHeight
// and passes through target on its descent. g is the positive gravity magnitude
// Closed form, no iteration:
//
//	vy    = sqrt(2g(apex - start.y))
//	tUp   = vy / g
//	tDown = sqrt(2(apex - target.y) / g)
//	vxz   = planarDistance / (tUp + tDown)
func SolveApexArc(start, target mgl64.Vec3, apexHeight, g float64) (mgl64.Vec3, error) {
	if g <= 0 || math.IsNaN(g) {
		return mgl64.Vec3{}, fmt.Errorf("%w: gravity %.3f must be positive", ErrInfeasible, g)
	}
	if apexHeight <= math.Max(start.Y(), target.Y()) {
		return mgl64.Vec3{}, fmt.Errorf("%w: apex %.3f not above start %.3f and target %.3f",
			ErrInfeasible, apexHeight, start.Y(), target.Y())
	}

	vy := math.Sqrt(2 * g * (apexHeight - start.Y()))
	tUp := vy / g

	// Re-checked for numerical safety, precondition already excludes it
	descent := apexHeight - target.Y()
	if descent < 0 {
		return mgl64.Vec3{}, fmt.Errorf("%w: negative descent %.3f", ErrInfeasible, descent)
	}
	tDown := math.Sqrt(2 * descent / g)

	flat := vmath.Planar(target.Sub(start))
	vxz := flat.Len() / (tUp + tDown)

	v := vmath.Normalize(flat).Mul(vxz).Add(vmath.Up.Mul(vy))
	if !vmath.IsFinite(v) {
		return mgl64.Vec3{}, fmt.Errorf("%w: non-finite velocity", ErrInfeasible)
	}
	return v, nil
}

// ApexFlightTime returns tUp + tDown for the arc solved by SolveApexArc
func ApexFlightTime(start, target mgl64.Vec3, apexHeight, g float64) (float64, error) {
	if g <= 0 || apexHeight <= math.Max(start.Y(), target.Y()) {
		return 0, ErrInfeasible
	}
	tUp := math.Sqrt(2*g*(apexHeight-start.Y())) / g
	tDown := math.Sqrt(2 * (apexHeight - target.Y()) / g)
	return tUp + tDown, nil
}
