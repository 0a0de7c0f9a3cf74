package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after the TOML file
const (
	EnvDuration = "SHOOTOUT_DURATION" // Whole seconds
	EnvSeed     = "SHOOTOUT_SEED"
	EnvPolicy   = "SHOOTOUT_POLICY"
	EnvAudio    = "SHOOTOUT_AUDIO" // Boolean
	EnvVolume   = "SHOOTOUT_VOLUME"
)

// LoadDotEnv loads KEY=VALUE files into the process environment
// Missing files are skipped; variables already set are not overwritten
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("dotenv %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from SHOOTOUT_* variables
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvDuration); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDuration, err)
		}
		c.Match.Duration = n
	}
	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v := getenv(EnvPolicy); v != "" {
		c.Match.Policy = v
	}
	if v := getenv(EnvAudio); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudio, err)
		}
		c.Audio.Enabled = b
	}
	if v := getenv(EnvVolume); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVolume, err)
		}
		c.Audio.Volume = min(max(f, 0), 1)
	}
	return nil
}
