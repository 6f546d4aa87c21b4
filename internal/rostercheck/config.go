// Package rostercheck drives a running teampick server with random rosters
// and checks every answer against a local exhaustive search.
package rostercheck

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/roster"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Rounds        int           // Number of rosters to generate
	Workers       int           // Number of concurrent requests
	Timeout       time.Duration // HTTP request timeout
	Precision     int           // Decimals the server keeps on scores
	DefaultRating int           // Must match the server's default_rating
	OutputFile    string        // Optional file receiving the generated rounds
	Verbose       bool          // Log every round
}

// Round is one generated roster and a manual Team A to try on it.
type Round struct {
	Players []roster.Entry `json:"players"`
	TeamA   []int          `json:"team_a"`
}

// Stats holds run statistics.
type Stats struct {
	RostersGenerated int
	BalanceChecked   int
	BalanceMismatch  int
	SplitsChecked    int
	SplitsMismatch   int
	RequestsFailed   int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// Mismatches is the number of answers that disagreed with the reference.
func (s *Stats) Mismatches() int { return s.BalanceMismatch + s.SplitsMismatch }

// Sentinel error kinds for this package.
var (
	ErrUnhealthy   = errors.New("service is not healthy")
	ErrMismatch    = errors.New("server answer differs from local reference")
	ErrRequest     = errors.New("request failed")
	ErrInvalidConf = errors.New("invalid check config")
)

// Default configuration values.
const (
	DefaultBaseURL   = "http://localhost:9080"
	DefaultRounds    = 200
	DefaultTimeout   = 10 * time.Second
	DefaultPrecision = 1
)

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Rounds:        DefaultRounds,
		Workers:       runtime.NumCPU() * 2,
		Timeout:       DefaultTimeout,
		Precision:     DefaultPrecision,
		DefaultRating: roster.DefaultRating,
	}
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url must not be empty", ErrInvalidConf)
	case c.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be positive", ErrInvalidConf)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConf)
	case c.Precision < 0:
		return fmt.Errorf("%w: precision must not be negative", ErrInvalidConf)
	case c.DefaultRating < model.MinRating || c.DefaultRating > model.MaxRating:
		return fmt.Errorf("%w: default rating %d out of range", ErrInvalidConf, c.DefaultRating)
	}
	return nil
}
