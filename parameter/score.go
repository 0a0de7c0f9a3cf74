package parameter

// Scoring
const (
	NormalPoints  = 2
	PerfectPoints = 3
)

// Fireball
const (
	// FireChargeCap is the accumulated charge that activates fire mode
	FireChargeCap = 10.0

	// FireUnitCharge is accrued per normal make, doubled for perfect makes
	FireUnitCharge = 1.0

	// FireDurationSeconds is the fire mode length at decay rate 1
	FireDurationSeconds = 5.0

	// FireDecayRate scales how fast remaining fire time drains
	FireDecayRate = 1.0

	// FirePointsMultiplier applies to every make while fire mode is active
	FirePointsMultiplier = 2
)
