package shot

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/vmath"
)

// ErrNoTrajectory reports that the direct trajectory is unavailable
var ErrNoTrajectory = errors.New("no direct trajectory")

// Tuning controls how charge maps to power and how strict "perfect" is
type Tuning struct {
	MinPowerFraction   float64 // Power fraction of the ideal direct magnitude at zero charge
	MaxPowerMultiplier float64 // Power multiple of the ideal direct magnitude at full charge
	PerfectThreshold   float64 // Maximum relative deviation still counted as perfect
}

// Classification is the classifier verdict for one release
type Classification struct {
	Kind     core.ShotKind
	Velocity mgl64.Vec3
	Power    float64

	PerfectDirect bool
	PerfectBank   bool
	DiffDirect    float64
	DiffBank      float64
}

// Perfect is the scoring flag
// Tied to the direct verdict even when a bank shot is chosen
func (c Classification) Perfect() bool {
	return c.PerfectDirect
}

// SelectedPerfect reports whether the chosen trajectory itself was hit exactly
func (c Classification) SelectedPerfect() bool {
	if c.Kind == core.ShotBank {
		return c.PerfectBank
	}
	return c.PerfectDirect
}

// Attempt builds the scoring record for this classification
func (c Classification) Attempt(competitor core.CompetitorID, charge float64) core.ShotAttempt {
	return core.ShotAttempt{
		Competitor:    competitor,
		Charge:        vmath.Clamp01(charge),
		Kind:          c.Kind,
		Perfect:       c.Perfect(),
		PerfectDirect: c.PerfectDirect,
		PerfectBank:   c.PerfectBank,
		Velocity:      c.Velocity,
		Power:         c.Power,
	}
}

// Power maps a charge fraction to launch speed relative to the direct ideal
func (t Tuning) Power(charge float64, direct Trajectory) float64 {
	return vmath.Lerp(t.MinPowerFraction, t.MaxPowerMultiplier, charge) * direct.Magnitude
}

// Classify turns a charge fraction into a trajectory choice and perfect verdict
//
//  1. power = lerp(min, max, charge) * |direct|
//  2. diffX = |power - |X|| / |X|
//  3. perfectX = diffX <= threshold
//  4. direct wins if perfectDirect, or neither is perfect and diffDirect < diffBank
//  5. a perfect pick keeps its ideal vector, otherwise its direction is scaled to power
//
// An invalid bank candidate never wins. Charge outside [0,1] is clamped
func Classify(charge float64, pair Pair, t Tuning) (Classification, error) {
	if !pair.Direct.Valid || pair.Direct.Magnitude == 0 {
		return Classification{}, ErrNoTrajectory
	}

	power := t.Power(charge, pair.Direct)

	c := Classification{
		Power:      power,
		DiffDirect: math.Abs(power-pair.Direct.Magnitude) / pair.Direct.Magnitude,
		DiffBank:   math.Inf(1),
	}
	if pair.Bank.Valid && pair.Bank.Magnitude > 0 {
		c.DiffBank = math.Abs(power-pair.Bank.Magnitude) / pair.Bank.Magnitude
	}

	c.PerfectDirect = c.DiffDirect <= t.PerfectThreshold
	c.PerfectBank = c.DiffBank <= t.PerfectThreshold

	if c.PerfectDirect || (!c.PerfectBank && c.DiffDirect < c.DiffBank) {
		c.Kind = core.ShotDirect
		if c.PerfectDirect {
			c.Velocity = pair.Direct.Velocity
		} else {
			c.Velocity = vmath.WithMagnitude(pair.Direct.Velocity, power)
		}
	} else {
		c.Kind = core.ShotBank
		if c.PerfectBank {
			c.Velocity = pair.Bank.Velocity
		} else {
			c.Velocity = vmath.WithMagnitude(pair.Bank.Velocity, power)
		}
	}

	c.Power = c.Velocity.Len()
	return c, nil
}

// IdealCharge returns the charge fraction whose power equals magnitude
func (t Tuning) IdealCharge(magnitude float64, direct Trajectory) float64 {
	span := t.MaxPowerMultiplier - t.MinPowerFraction
	if span == 0 || direct.Magnitude == 0 {
		return 0
	}
	return (magnitude/direct.Magnitude - t.MinPowerFraction) / span
}
