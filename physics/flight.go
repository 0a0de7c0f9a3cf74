package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/vmath"
)

// PositionAt returns the ballistic position t seconds after launch under gravity g
func PositionAt(origin, velocity mgl64.Vec3, g, t float64) mgl64.Vec3 {
	return origin.Add(velocity.Mul(t)).Sub(vmath.Up.Mul(0.5 * g * t * t))
}

// DescentCrossing returns the time at which the falling ball passes height y
// Returns false if the arc never reaches y
func DescentCrossing(origin, velocity mgl64.Vec3, g, y float64) (float64, bool) {
	if g <= 0 {
		return 0, false
	}
	vy := velocity.Y()
	disc := vy*vy - 2*g*(y-origin.Y())
	if disc < 0 {
		return 0, false
	}
	t := (vy + math.Sqrt(disc)) / g
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// Judge decides whether an analytic flight drops through a hoop-sized opening
type Judge struct {
	RimRadius float64
}

// Verdict is the outcome of a judged flight
type Verdict struct {
	Made     bool
	Time     float64    // Seconds until the ball crosses the aim height
	Landing  mgl64.Vec3 // Crossing point at aim height
	Distance float64    // Planar miss distance from aim
}

// Resolve evaluates a launch against aim, which is the hoop or its mirror image
func (j Judge) Resolve(origin, velocity mgl64.Vec3, g float64, aim mgl64.Vec3) Verdict {
	t, ok := DescentCrossing(origin, velocity, g, aim.Y())
	if !ok {
		return Verdict{Distance: math.Inf(1)}
	}
	landing := PositionAt(origin, velocity, g, t)
	dist := vmath.PlanarDistance(landing, aim)
	return Verdict{
		Made:     dist <= j.RimRadius,
		Time:     t,
		Landing:  landing,
		Distance: dist,
	}
}
