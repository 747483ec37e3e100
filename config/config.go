// Package config defines process configuration and how it is loaded.
//
// Conventions:
// - New() returns a Config holding the defaults.
// - Load layers an optional YAML file and RECKONER_ env vars over New().
// - Command-line flags are applied by the caller, then Validate is run again.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // timezone names resolve without a system zoneinfo

	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/residence"
)

// Config contains process configuration shared by the CLI and the server.
type Config struct {
	// GoalDays is the reckonable residence required to apply.
	GoalDays int `koanf:"goal_days"`

	// ExcuseDays is the absence per anniversary year that is not charged.
	ExcuseDays int `koanf:"excuse_days"`

	// Timezone decides which calendar day "today" is, e.g. "UTC".
	Timezone string `koanf:"timezone"`

	// PermitsPath and TravelsPath are the CLI input files.
	PermitsPath string `koanf:"permits_path"`
	TravelsPath string `koanf:"travels_path"`

	// OutDir receives generated reports.
	OutDir string `koanf:"out_dir"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `koanf:"log_format"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		GoalDays:    residence.DefaultGoalDays,
		ExcuseDays:  residence.DefaultExcuseDaysPerYear,
		Timezone:    "UTC",
		PermitsPath: "permits.yaml",
		TravelsPath: "travels.csv",
		OutDir:      "out",
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Validate checks the values a run cannot proceed without.
func (c *Config) Validate() error {
	if c.GoalDays <= 0 {
		return fmt.Errorf("%w: goal_days must be positive, got %d", ErrInvalidConfig, c.GoalDays)
	}
	if c.ExcuseDays < 0 {
		return fmt.Errorf("%w: excuse_days must not be negative, got %d", ErrInvalidConfig, c.ExcuseDays)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Policy returns the residence rule the config describes.
func (c *Config) Policy() residence.Policy {
	return residence.Policy{GoalDays: c.GoalDays, ExcuseDaysPerYear: c.ExcuseDays}
}

// Location resolves Timezone, falling back to UTC for a value Validate
// would have rejected.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the calendar day of now in the configured zone.
func (c *Config) Today(now time.Time) generic.Date {
	return generic.DateOf(now, c.Location())
}
