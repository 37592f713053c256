// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/darktamagotchi/internal/battle"
)

// Config holds every setting the game reads from the environment.
type Config struct {
	StunChance      float64 `env:"DT_STUN_CHANCE"        envDefault:"0.2"`
	MaxBattleTurns  int     `env:"DT_MAX_BATTLE_TURNS"   envDefault:"20"`
	XPGainPerBattle int     `env:"DT_XP_GAIN_PER_BATTLE" envDefault:"50"`
	XPLossPercent   int     `env:"DT_XP_LOSS_PERCENT"    envDefault:"10"`

	// Seed for random number generation. 0 draws a fresh seed from crypto/rand.
	Seed           int64  `env:"DT_SEED"            envDefault:"0"`
	PlayerCreature string `env:"DT_PLAYER_CREATURE"`
	Multiplayer    bool   `env:"DT_MULTIPLAYER"     envDefault:"false"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `env:"DT_LOG_LEVEL" envDefault:"info"`

	TelemetryEnabled bool   `env:"DT_TELEMETRY_ENABLED"             envDefault:"true"`
	HoneycombAPIKey  string `env:"HONEYCOMB_DARKTAMAGOTCHI_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_DARKTAMAGOTCHI_DATASET"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the battle settings.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Battle().Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Battle returns the battle constants.
func (c Config) Battle() battle.Config {
	return battle.Config{
		StunChance:      c.StunChance,
		MaxTurns:        c.MaxBattleTurns,
		XPGainPerBattle: c.XPGainPerBattle,
		XPLossPercent:   c.XPLossPercent,
	}
}

// ResolveSeed returns the configured seed, or a new random one when unset.
func (c Config) ResolveSeed() (int64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	return NewSeed()
}
