package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/shootout/match"
)

// TestDefaultValid verifies the built-in tuning passes validation
func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	mc := cfg.MatchConfig()
	if mc.Duration != 90*time.Second || mc.Policy != match.PolicyWrap {
		t.Errorf("match config = %+v", mc)
	}
	if len(mc.BonusTable) != 3 || mc.BonusTable[2] != (match.BonusOption{Value: 8, Weight: 4}) {
		t.Errorf("bonus table = %+v", mc.BonusTable)
	}
	if sc := cfg.ScoreConfig(); sc.FireDuration != 5*time.Second || sc.PerfectPoints != 3 {
		t.Errorf("score config = %+v", sc)
	}
	court := cfg.NewCourt()
	if len(court.ShotPositions()) != 5 || court.Gravity() != 9.81 {
		t.Errorf("court positions %d gravity %v", len(court.ShotPositions()), court.Gravity())
	}
}

// TestParseOverrides verifies TOML values replace defaults and others survive
func TestParseOverrides(t *testing.T) {
	data := `
seed = 99

[match]
duration = 30
policy = "exhaust"

[score]
perfect_points = 4

[court]
positions = [[1.0, 0.0, 2.0], [-1.0, 0.0, 2.0]]

[[bonus.table]]
value = 10
weight = 1
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Seed != 99 || cfg.Match.Duration != 30 || cfg.Score.PerfectPoints != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Score.NormalPoints != 2 || cfg.Shot.ApexHeight != 4.5 {
		t.Error("defaults lost")
	}
	if len(cfg.Court.Positions) != 2 || cfg.Court.Positions[1] != [3]float64{-1, 0, 2} {
		t.Errorf("positions = %v", cfg.Court.Positions)
	}
	if len(cfg.Bonus.Table) != 1 || cfg.Bonus.Table[0].Value != 10 {
		t.Errorf("bonus table = %+v", cfg.Bonus.Table)
	}
	if p, err := cfg.Policy(); err != nil || p != match.PolicyExhaust {
		t.Errorf("policy = %v, %v", p, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestParseRejectsUnknownKeys verifies typos are reported
func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[match]\nduraton = 30\n"))
	if err == nil || !strings.Contains(err.Error(), "match.duraton") {
		t.Errorf("err = %v, want unknown key match.duraton", err)
	}
	if _, err := Parse([]byte("[match\n")); err == nil {
		t.Error("malformed TOML accepted")
	}
}

// TestValidateRejects verifies each guard fires
func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Match.Duration = 0 }},
		{"apex below hoop", func(c *Config) { c.Shot.ApexHeight = 3 }},
		{"inverted power range", func(c *Config) { c.Shot.MaxPowerMultiplier = 0.2 }},
		{"no positions", func(c *Config) { c.Court.Positions = nil }},
		{"zero normal", func(c *Config) { c.Court.BoardNormal = [3]float64{} }},
		{"zero weights", func(c *Config) { c.Bonus.Table = []BonusEntry{{Value: 4}} }},
		{"bad policy", func(c *Config) { c.Match.Policy = "loop" }},
		{"npc chance", func(c *Config) { c.NPC.BankChance = 1.5 }},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

// TestApplyEnv verifies SHOOTOUT_* overrides
func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDuration: "45",
		EnvSeed:     "12345",
		EnvPolicy:   "exhaust",
		EnvAudio:    "false",
		EnvVolume:   "3",
	}
	cfg := Default()
	if err := cfg.applyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Match.Duration != 45 || cfg.Seed != 12345 || cfg.Match.Policy != "exhaust" || cfg.Audio.Enabled || cfg.Audio.Volume != 1 {
		t.Errorf("env not applied: %+v", cfg)
	}

	env[EnvDuration] = "soon"
	if err := Default().applyEnv(func(k string) string { return env[k] }); err == nil {
		t.Error("accepted non-numeric duration")
	}
}

// TestLoadDotEnv verifies .env files feed ApplyEnv and missing files are skipped
func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SHOOTOUT_SEED=777\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Seed != 777 {
		t.Errorf("seed = %d, want 777", cfg.Seed)
	}
}

// TestLoadFile verifies Load reads from disk
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shootout.toml")
	if err := os.WriteFile(path, []byte("[audio]\nenabled = false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Audio.Enabled {
		t.Error("audio.enabled not applied")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file accepted")
	}
}
