package arena

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/shot"
	"github.com/lixenwraith/shootout/vmath"
)

// Shooter is the player-side surface of a competition
type Shooter interface {
	Release(charge float64) (core.ShotAttempt, error)
	Zones(id core.CompetitorID) shot.Zones
	Running() bool
}

// Autopilot stands in for the human player in headless and demo runs
type Autopilot struct {
	shooter  Shooter
	rng      *rand.Rand
	cadence  time.Duration
	spread   float64 // Half-width of charge noise around the chosen zone
	bankBias float64 // Probability of aiming at the bank zone when it exists

	releases int
}

// NewAutopilot creates a player that releases every cadence
func NewAutopilot(shooter Shooter, cadence time.Duration, spread, bankBias float64, rng *rand.Rand) *Autopilot {
	return &Autopilot{
		shooter:  shooter,
		rng:      rng,
		cadence:  cadence,
		spread:   spread,
		bankBias: bankBias,
	}
}

// Task returns the scheduler task driving releases until the match stops
func (a *Autopilot) Task() engine.Task {
	return engine.Every(a.cadence, func() bool {
		if !a.shooter.Running() {
			return false
		}
		a.shoot()
		return true
	})
}

// Charge picks the next charge fraction
func (a *Autopilot) Charge() float64 {
	z := a.shooter.Zones(core.Player)
	target := z.Direct
	if z.Bank >= 0 && a.rng.Float64() < a.bankBias {
		target = z.Bank
	}
	if target < 0 {
		target = 0.5
	}
	noise := (a.rng.Float64()*2 - 1) * a.spread
	return vmath.Clamp01(target + noise)
}

// shoot ignores release errors; a cooling-down or finished player retries next cadence
func (a *Autopilot) shoot() {
	if _, err := a.shooter.Release(a.Charge()); err == nil {
		a.releases++
	}
}

// Releases returns the number of shots actually launched
func (a *Autopilot) Releases() int {
	return a.releases
}
