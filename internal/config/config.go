// Package config loads settings and the robot catalog from YAML
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
)

// Defaults
const (
	DefaultStartingBalance = 500
	DefaultPayoutPercent   = 50
	DefaultHistoryLimit    = 20
)

// Config is the whole settings file
type Config struct {
	Redis   RedisConfig   `yaml:"redis"`
	Economy EconomyConfig `yaml:"economy"`
	Log     LogConfig     `yaml:"log"`

	// Seed fixes the random source. Zero picks one from the clock.
	Seed uint64 `yaml:"seed"`

	// Catalog is a path to a builds file. Empty uses the built-in catalog.
	Catalog string `yaml:"catalog"`
}

// RedisConfig selects the account store
type RedisConfig struct {
	// Addr of the Redis server. Empty keeps everything in memory.
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// EconomyConfig holds the money rules
type EconomyConfig struct {
	StartingBalance int `yaml:"starting_balance"`
	PayoutPercent   int `yaml:"payout_percent"`
	HistoryLimit    int `yaml:"history_limit"`
}

// LogConfig controls the zerolog setup
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	return &Config{
		Economy: EconomyConfig{
			StartingBalance: DefaultStartingBalance,
			PayoutPercent:   DefaultPayoutPercent,
			HistoryLimit:    DefaultHistoryLimit,
		},
		Log: LogConfig{
			Level: logging.DefaultLevel,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMisconfigured, "failed to read config file").
			WithMeta("path", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMisconfigured, "failed to parse config file").
			WithMeta("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings agree with the game rules
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Economy.StartingBalance < 0 {
		vb.Field("economy.starting_balance", "cannot be negative")
	}
	errors.ValidateRange("economy.payout_percent", c.Economy.PayoutPercent, 0, 100, vb)
	if c.Economy.HistoryLimit < 1 {
		vb.Field("economy.history_limit", "must be at least 1")
	}
	return vb.BuildWithCode(errors.CodeMisconfigured)
}
