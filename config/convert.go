package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/arena"
	"github.com/lixenwraith/shootout/audio"
	"github.com/lixenwraith/shootout/match"
	"github.com/lixenwraith/shootout/score"
	"github.com/lixenwraith/shootout/shot"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func vec(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}

// Policy parses the rotation policy name
func (c *Config) Policy() (match.Policy, error) {
	return match.ParsePolicy(c.Match.Policy)
}

// MatchConfig builds competition tuning; call after Validate
func (c *Config) MatchConfig() match.Config {
	policy, _ := c.Policy()
	table := make([]match.BonusOption, len(c.Bonus.Table))
	for i, e := range c.Bonus.Table {
		table[i] = match.BonusOption{Value: e.Value, Weight: e.Weight}
	}
	return match.Config{
		Duration:    time.Duration(c.Match.Duration) * time.Second,
		SideOffset:  c.Match.SideOffset,
		StartHeight: c.Shot.StartHeight,
		ApexHeight:  c.Shot.ApexHeight,
		Policy:      policy,
		Shot:        c.ShotTuning(),
		NPC: shot.NPCTuning{
			PerfectChance:       c.NPC.PerfectChance,
			BankChance:          c.NPC.BankChance,
			BankBonusMultiplier: c.NPC.BankBonusMultiplier,
			AccuracyNoise:       c.NPC.AccuracyNoise,
		},
		NPCInitialDelay:  seconds(c.NPC.InitialDelay),
		NPCMinInterval:   seconds(c.NPC.MinInterval),
		NPCMaxInterval:   seconds(c.NPC.MaxInterval),
		BonusMinInterval: seconds(c.Bonus.MinInterval),
		BonusMaxInterval: seconds(c.Bonus.MaxInterval),
		BonusMinDuration: seconds(c.Bonus.MinDuration),
		BonusMaxDuration: seconds(c.Bonus.MaxDuration),
		BonusTable:       table,
	}
}

func (c *Config) ShotTuning() shot.Tuning {
	return shot.Tuning{
		MinPowerFraction:   c.Shot.MinPowerFraction,
		MaxPowerMultiplier: c.Shot.MaxPowerMultiplier,
		PerfectThreshold:   c.Shot.PerfectThreshold,
	}
}

func (c *Config) ScoreConfig() score.Config {
	return score.Config{
		NormalPoints:     c.Score.NormalPoints,
		PerfectPoints:    c.Score.PerfectPoints,
		ChargeCap:        c.Score.ChargeCap,
		UnitCharge:       c.Score.UnitCharge,
		FireDuration:     seconds(c.Score.FireDuration),
		FireDecayRate:    c.Score.FireDecayRate,
		PointsMultiplier: c.Score.PointsMultiplier,
	}
}

func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:        c.Audio.Enabled,
		SampleRate:     c.Audio.SampleRate,
		Volume:         c.Audio.Volume,
		WarningSeconds: c.Match.WarningSeconds,
	}
}

// NewCourt builds the static world from court settings
func (c *Config) NewCourt() *arena.Court {
	positions := make([]mgl64.Vec3, len(c.Court.Positions))
	for i, p := range c.Court.Positions {
		positions[i] = vec(p)
	}
	return arena.NewCourt(vec(c.Court.Hoop), vec(c.Court.BoardAnchor), vec(c.Court.BoardNormal), c.Court.Gravity, positions)
}

func (c *Config) BallLifetime() time.Duration {
	return seconds(c.Court.BallLifetime)
}

func (c *Config) AutopilotCadence() time.Duration {
	return seconds(c.Autopilot.Cadence)
}
