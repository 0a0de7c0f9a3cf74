package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/shootout/parameter"
)

// Config is the complete run configuration
// Durations are seconds so the TOML reads like the tuning constants
type Config struct {
	Seed      uint64          `toml:"seed"` // Zero draws a seed from the clock
	Match     MatchConfig     `toml:"match"`
	Shot      ShotConfig      `toml:"shot"`
	NPC       NPCConfig       `toml:"npc"`
	Score     ScoreConfig     `toml:"score"`
	Bonus     BonusConfig     `toml:"bonus"`
	Court     CourtConfig     `toml:"court"`
	Audio     AudioConfig     `toml:"audio"`
	Autopilot AutopilotConfig `toml:"autopilot"`
}

type MatchConfig struct {
	Duration       int     `toml:"duration"` // Whole seconds
	Policy         string  `toml:"policy"`   // "wrap" or "exhaust"
	SideOffset     float64 `toml:"side_offset"`
	WarningSeconds int     `toml:"warning_seconds"`
}

type ShotConfig struct {
	ApexHeight         float64 `toml:"apex_height"`
	StartHeight        float64 `toml:"start_height"`
	MinPowerFraction   float64 `toml:"min_power_fraction"`
	MaxPowerMultiplier float64 `toml:"max_power_multiplier"`
	PerfectThreshold   float64 `toml:"perfect_threshold"`
}

type NPCConfig struct {
	InitialDelay        float64 `toml:"initial_delay"`
	MinInterval         float64 `toml:"min_interval"`
	MaxInterval         float64 `toml:"max_interval"`
	PerfectChance       float64 `toml:"perfect_chance"`
	BankChance          float64 `toml:"bank_chance"`
	BankBonusMultiplier float64 `toml:"bank_bonus_multiplier"`
	AccuracyNoise       float64 `toml:"accuracy_noise"`
}

type ScoreConfig struct {
	NormalPoints     int     `toml:"normal_points"`
	PerfectPoints    int     `toml:"perfect_points"`
	ChargeCap        float64 `toml:"charge_cap"`
	UnitCharge       float64 `toml:"unit_charge"`
	FireDuration     float64 `toml:"fire_duration"`
	FireDecayRate    float64 `toml:"fire_decay_rate"`
	PointsMultiplier int     `toml:"points_multiplier"`
}

// BonusEntry is one weighted row of the backboard bonus table
type BonusEntry struct {
	Value  int `toml:"value"`
	Weight int `toml:"weight"`
}

type BonusConfig struct {
	MinInterval float64      `toml:"min_interval"`
	MaxInterval float64      `toml:"max_interval"`
	MinDuration float64      `toml:"min_duration"`
	MaxDuration float64      `toml:"max_duration"`
	Table       []BonusEntry `toml:"table"`
}

type CourtConfig struct {
	Gravity      float64      `toml:"gravity"`
	Hoop         [3]float64   `toml:"hoop"`
	BoardAnchor  [3]float64   `toml:"board_anchor"`
	BoardNormal  [3]float64   `toml:"board_normal"`
	RimRadius    float64      `toml:"rim_radius"`
	BallLifetime float64      `toml:"ball_lifetime"`
	Positions    [][3]float64 `toml:"positions"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"`
}

// AutopilotConfig drives the player when no one is at the keyboard
type AutopilotConfig struct {
	Cadence  float64 `toml:"cadence"`   // Seconds between release attempts
	Spread   float64 `toml:"spread"`    // Charge noise half-width
	BankBias float64 `toml:"bank_bias"` // Probability of aiming at the bank zone
}

// Default returns the built-in tuning
func Default() *Config {
	table := make([]BonusEntry, len(parameter.BonusValues))
	for i := range table {
		table[i] = BonusEntry{Value: parameter.BonusValues[i], Weight: parameter.BonusWeights[i]}
	}
	positions := make([][3]float64, len(parameter.ShotPositions))
	copy(positions, parameter.ShotPositions)

	return &Config{
		Match: MatchConfig{
			Duration:       parameter.MatchDurationSeconds,
			Policy:         "wrap",
			SideOffset:     parameter.SideOffset,
			WarningSeconds: parameter.TimerWarningSeconds,
		},
		Shot: ShotConfig{
			ApexHeight:         parameter.ApexHeight,
			StartHeight:        parameter.ShotStartHeight,
			MinPowerFraction:   parameter.MinPowerFraction,
			MaxPowerMultiplier: parameter.MaxPowerMultiplier,
			PerfectThreshold:   parameter.PerfectThreshold,
		},
		NPC: NPCConfig{
			InitialDelay:        parameter.NPCInitialDelaySeconds,
			MinInterval:         parameter.NPCMinIntervalSeconds,
			MaxInterval:         parameter.NPCMaxIntervalSeconds,
			PerfectChance:       parameter.NPCPerfectChance,
			BankChance:          parameter.NPCBankChance,
			BankBonusMultiplier: parameter.NPCBankBonusMultiplier,
			AccuracyNoise:       parameter.NPCAccuracyNoise,
		},
		Score: ScoreConfig{
			NormalPoints:     parameter.NormalPoints,
			PerfectPoints:    parameter.PerfectPoints,
			ChargeCap:        parameter.FireChargeCap,
			UnitCharge:       parameter.FireUnitCharge,
			FireDuration:     parameter.FireDurationSeconds,
			FireDecayRate:    parameter.FireDecayRate,
			PointsMultiplier: parameter.FirePointsMultiplier,
		},
		Bonus: BonusConfig{
			MinInterval: parameter.BonusMinIntervalSeconds,
			MaxInterval: parameter.BonusMaxIntervalSeconds,
			MinDuration: parameter.BonusMinDurationSeconds,
			MaxDuration: parameter.BonusMaxDurationSeconds,
			Table:       table,
		},
		Court: CourtConfig{
			Gravity:      parameter.Gravity,
			Hoop:         [3]float64{parameter.HoopX, parameter.HoopY, parameter.HoopZ},
			BoardAnchor:  [3]float64{parameter.BoardX, parameter.BoardY, parameter.BoardZ},
			BoardNormal:  [3]float64{0, 0, -1},
			RimRadius:    parameter.RimRadius,
			BallLifetime: parameter.BallLifetimeSeconds,
			Positions:    positions,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.6,
		},
		Autopilot: AutopilotConfig{
			Cadence:  0.5,
			Spread:   0.06,
			BankBias: 0.3,
		},
	}
}

// Load reads a TOML file over the defaults
// Keys the file sets replace defaults; unknown keys are an error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Validate checks values that would make a match unplayable
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Match.Duration > 0, "match.duration must be positive, got %d", c.Match.Duration)
	check(c.Match.SideOffset >= 0, "match.side_offset must not be negative")
	check(c.Shot.ApexHeight > c.Court.Hoop[1], "shot.apex_height %.2f must exceed hoop height %.2f", c.Shot.ApexHeight, c.Court.Hoop[1])
	check(c.Shot.ApexHeight > c.Shot.StartHeight, "shot.apex_height must exceed shot.start_height")
	check(c.Shot.MaxPowerMultiplier > c.Shot.MinPowerFraction, "shot.max_power_multiplier must exceed shot.min_power_fraction")
	check(c.Shot.PerfectThreshold >= 0, "shot.perfect_threshold must not be negative")
	check(c.NPC.MinInterval > 0 && c.NPC.MaxInterval >= c.NPC.MinInterval, "npc intervals must satisfy 0 < min <= max")
	check(inUnit(c.NPC.PerfectChance) && inUnit(c.NPC.BankChance), "npc chances must be within [0,1]")
	check(c.Score.ChargeCap > 0, "score.charge_cap must be positive")
	check(c.Score.FireDuration > 0, "score.fire_duration must be positive")
	check(c.Bonus.MinInterval > 0 && c.Bonus.MaxInterval >= c.Bonus.MinInterval, "bonus intervals must satisfy 0 < min <= max")
	check(c.Bonus.MinDuration >= 0 && c.Bonus.MaxDuration >= c.Bonus.MinDuration, "bonus durations must satisfy 0 <= min <= max")
	check(c.Court.Gravity > 0, "court.gravity must be positive")
	check(len(c.Court.Positions) > 0, "court.positions must not be empty")
	check(c.Court.BoardNormal != [3]float64{}, "court.board_normal must not be zero")
	check(c.Court.RimRadius > 0, "court.rim_radius must be positive")
	check(c.Court.BallLifetime > 0, "court.ball_lifetime must be positive")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0,1]")
	check(c.Autopilot.Cadence > 0, "autopilot.cadence must be positive")

	total := 0
	for _, e := range c.Bonus.Table {
		check(e.Weight >= 0, "bonus.table weight for value %d is negative", e.Value)
		total += max(e.Weight, 0)
	}
	check(total > 0, "bonus.table needs a positive total weight")

	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
