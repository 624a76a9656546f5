// Package config loads runtime configuration from the environment, with an
// optional .env file for local development (same env+godotenv layering used
// throughout this codebase's lineage).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the tunables a bootstrap program needs to stand up a
// Runtime: worker pool size, idle backoff, and the metrics/log surface.
type Config struct {
	// Workers is the number of dispatcher goroutines to run.
	Workers int `env:"HIVE_WORKERS" envDefault:"4"`

	// IdleBackoff is how long an idle worker sleeps before retrying
	// Dispatch.
	IdleBackoff time.Duration `env:"HIVE_IDLE_BACKOFF" envDefault:"1ms"`

	// MetricsAddr is the listen address for the Prometheus /metrics
	// endpoint. Empty disables it.
	MetricsAddr string `env:"HIVE_METRICS_ADDR" envDefault:":9090"`

	LogLevel  string `env:"HIVE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"HIVE_LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Priority: real env vars > .env file > struct defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Absence of a .env file is not an error; production deployments
		// set real environment variables instead.
		_ = err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration for obviously unusable values.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("HIVE_WORKERS must be > 0, got %d", c.Workers)
	}
	if c.IdleBackoff <= 0 {
		return fmt.Errorf("HIVE_IDLE_BACKOFF must be > 0, got %s", c.IdleBackoff)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("HIVE_LOG_LEVEL must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("HIVE_LOG_FORMAT must be one of json, console (got %q)", c.LogFormat)
	}

	return nil
}
