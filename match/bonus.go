package match

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/shootout/engine"
)

// PickBonus draws a value from options proportionally to weight
// Non-positive weights are never picked; returns 0 if nothing can be picked
func PickBonus(options []BonusOption, rng *rand.Rand) int {
	total := 0
	for _, o := range options {
		if o.Weight > 0 {
			total += o.Weight
		}
	}
	if total == 0 {
		return 0
	}

	r := rng.IntN(total)
	cumulative := 0
	for _, o := range options {
		if o.Weight <= 0 {
			continue
		}
		cumulative += o.Weight
		if r < cumulative {
			return o.Value
		}
	}
	return 0
}

// uniformDuration draws from [lo, hi], tolerating swapped bounds
func uniformDuration(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + time.Duration(rng.Int64N(int64(hi-lo)+1))
}

// bonusTask alternates wait, activate for a drawn duration, clear
func (c *Competition) bonusTask() engine.Task {
	wait := engine.NewCountdown(uniformDuration(c.rng, c.cfg.BonusMinInterval, c.cfg.BonusMaxInterval))
	active := false

	return engine.TaskFunc(func(dt time.Duration) bool {
		if !c.running {
			return false
		}
		if !wait.Step(dt) {
			return true
		}

		if active {
			c.bonus.Clear()
			active = false
			wait.Rearm(uniformDuration(c.rng, c.cfg.BonusMinInterval, c.cfg.BonusMaxInterval))
			return true
		}

		value := PickBonus(c.cfg.BonusTable, c.rng)
		d := uniformDuration(c.rng, c.cfg.BonusMinDuration, c.cfg.BonusMaxDuration)
		if value > 0 {
			c.bonus.Set(value, d)
			c.logger.Printf("match: backboard bonus +%d for %s", value, d)
		}
		active = true
		wait.Rearm(d)
		return true
	})
}
