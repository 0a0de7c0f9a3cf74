package parameter

// Court Geometry, meters, y up, hoop toward +z
const (
	Gravity = 9.81

	HoopX = 0.0
	HoopY = 3.05
	HoopZ = 7.6

	BoardX = 0.0
	BoardY = 3.4
	BoardZ = 8.0

	// RimRadius is the tolerance for an analytic make
	RimRadius = 0.2

	// BallLifetimeSeconds is how long an unscored ball lives before counting as a miss
	BallLifetimeSeconds = 5.0
)

// ShotPositions are the default shooting spots on the floor, ordered around the arc
var ShotPositions = [][3]float64{
	{-4.0, 0, 4.5},
	{-2.5, 0, 2.5},
	{0.0, 0, 1.8},
	{2.5, 0, 2.5},
	{4.0, 0, 4.5},
}
