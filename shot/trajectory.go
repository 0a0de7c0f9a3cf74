package shot

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/physics"
)

// Trajectory is an ideal launch velocity and its magnitude
// Derived data, recomputed whenever the shooter or target moves
type Trajectory struct {
	Velocity  mgl64.Vec3
	Magnitude float64
	Valid     bool
}

// NewTrajectory wraps a solved velocity
func NewTrajectory(v mgl64.Vec3) Trajectory {
	return Trajectory{Velocity: v, Magnitude: v.Len(), Valid: true}
}

// Pair holds both candidate trajectories from one shooting spot
type Pair struct {
	Direct Trajectory
	Bank   Trajectory
}

// Geometry is the per-calculation snapshot read from the world provider
type Geometry struct {
	Hoop        mgl64.Vec3
	BoardAnchor mgl64.Vec3
	BoardNormal mgl64.Vec3
	ApexHeight  float64
	Gravity     float64
}

// Solve computes direct and bank trajectories from origin
// An infeasible candidate is left invalid and reported in the joined error;
// the other candidate is still usable
func Solve(origin mgl64.Vec3, geo Geometry) (Pair, error) {
	var pair Pair
	var errs []error

	if v, err := physics.SolveApexArc(origin, geo.Hoop, geo.ApexHeight, geo.Gravity); err != nil {
		errs = append(errs, fmt.Errorf("direct: %w", err))
	} else {
		pair.Direct = NewTrajectory(v)
	}

	if v, err := physics.SolveBankShot(origin, geo.Hoop, geo.BoardAnchor, geo.BoardNormal, geo.ApexHeight, geo.Gravity); err != nil {
		errs = append(errs, fmt.Errorf("bank: %w", err))
	} else {
		pair.Bank = NewTrajectory(v)
	}

	return pair, errors.Join(errs...)
}

// Aim returns the point a trajectory kind is aimed at
// Bank shots aim at the hoop mirrored across the board
func (g Geometry) Aim(bank bool) mgl64.Vec3 {
	if bank {
		return physics.ReflectAcrossPlane(g.Hoop, g.BoardAnchor, g.BoardNormal)
	}
	return g.Hoop
}
