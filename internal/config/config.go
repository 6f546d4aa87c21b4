// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/teampick/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps request bodies accepted by the API.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// DefaultRating fills ratings a roster entry leaves out.
	DefaultRating int `koanf:"default_rating"`

	// DisplayPrecision is the number of decimals used for presented scores.
	DisplayPrecision int `koanf:"display_precision"`

	// GoldThreshold and SilverThreshold set the card tier cut-offs.
	GoldThreshold   float64 `koanf:"gold_threshold"`
	SilverThreshold float64 `koanf:"silver_threshold"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MaxBodyBytes:     64 << 10,
		DefaultRating:    5,
		DisplayPrecision: 1,
		GoldThreshold:    8,
		SilverThreshold:  5,
	}
}

// Validate reports the first setting that cannot be served.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("max_body_bytes must be positive, got %d: %w", c.MaxBodyBytes, ErrInvalidConfig)
	case c.DefaultRating < model.MinRating || c.DefaultRating > model.MaxRating:
		return fmt.Errorf("default_rating %d not in [%d,%d]: %w",
			c.DefaultRating, model.MinRating, model.MaxRating, ErrInvalidConfig)
	case c.DisplayPrecision < 0 || c.DisplayPrecision > 4:
		return fmt.Errorf("display_precision %d not in [0,4]: %w", c.DisplayPrecision, ErrInvalidConfig)
	case c.SilverThreshold > c.GoldThreshold:
		return fmt.Errorf("silver_threshold %.1f above gold_threshold %.1f: %w",
			c.SilverThreshold, c.GoldThreshold, ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q must be text or json: %w", c.LogFormat, ErrInvalidConfig)
	}
	return nil
}
