package shot

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/vmath"
)

// NPCTuning holds the opponent's probabilistic accuracy model
type NPCTuning struct {
	PerfectChance       float64 // Probability of an exact ideal shot
	BankChance          float64 // Probability of choosing the bank trajectory
	BankBonusMultiplier float64 // Bank chance multiplier while a backboard bonus is active
	AccuracyNoise       float64 // Half-width of the symmetric power noise around 1.0
}

// NPCShooter replaces the charge input with Bernoulli draws and power noise
type NPCShooter struct {
	tuning NPCTuning
	rng    *rand.Rand
}

// NewNPCShooter creates a shooter drawing from rng
func NewNPCShooter(tuning NPCTuning, rng *rand.Rand) *NPCShooter {
	return &NPCShooter{tuning: tuning, rng: rng}
}

// BankChance returns the effective bank probability
func (n *NPCShooter) BankChance(bonusActive bool) float64 {
	if bonusActive {
		return vmath.Clamp01(n.tuning.BankChance * n.tuning.BankBonusMultiplier)
	}
	return vmath.Clamp01(n.tuning.BankChance)
}

// Decide draws trajectory kind, perfect verdict and power factor
// Falls back to direct when the bank trajectory is unavailable
func (n *NPCShooter) Decide(pair Pair, bonusActive bool) (Classification, error) {
	if !pair.Direct.Valid {
		return Classification{}, ErrNoTrajectory
	}

	useBank := n.rng.Float64() < n.BankChance(bonusActive)
	perfect := n.rng.Float64() < n.tuning.PerfectChance

	if useBank && !pair.Bank.Valid {
		useBank = false
	}

	ideal := pair.Direct
	kind := core.ShotDirect
	if useBank {
		ideal = pair.Bank
		kind = core.ShotBank
	}

	factor := 1.0
	if !perfect {
		noise := vmath.Clamp01(n.tuning.AccuracyNoise)
		factor = 1 - noise + n.rng.Float64()*2*noise
	}

	v := ideal.Velocity.Mul(factor)
	c := Classification{
		Kind:     kind,
		Velocity: v,
		Power:    v.Len(),
	}
	// Scoring reads PerfectDirect, which follows the draw for either kind
	c.PerfectDirect = perfect
	c.PerfectBank = perfect && useBank
	c.DiffDirect = math.Abs(factor - 1)
	c.DiffBank = c.DiffDirect
	return c, nil
}
