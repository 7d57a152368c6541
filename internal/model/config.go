package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the resolved leakguard configuration
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig selects where history and alerts are persisted
type StoreConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend" validate:"required,oneof=file badger"`
	Path    string `yaml:"path" mapstructure:"path" validate:"required"` // File path (file) or directory (badger)
}

// CacheConfig controls verdict memoization
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval" validate:"gte=0"`
	Dir             string        `yaml:"dir" mapstructure:"dir"` // Persistent disk layer; empty keeps verdicts in memory only
}

// ConcurrencyConfig controls batch checking
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1,lte=256"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Color   bool `yaml:"color" mapstructure:"color"`
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// LogConfig controls diagnostic logging on stderr
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "file",
			Path:    "~/.leakguard/data.json",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Color: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

var configValidate = validator.New()

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
