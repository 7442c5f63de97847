package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/builderstore/internal/domain"
)

// Config holds CLI configuration for builderstore.
type Config struct {
	// StateDir holds the persisted session. Derived from the home
	// directory during Validate when empty.
	StateDir string

	// Script is an action script (.toml or .json) replayed on start.
	Script string

	LogLevel    string
	MetricsAddr string

	Watch           bool
	DebounceDelay   time.Duration
	StepDelay       time.Duration
	ShutdownTimeout time.Duration
	Once            bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		DebounceDelay:   100 * time.Millisecond,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.StateDir == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("%w: state-dir is required (no home directory)", domain.ErrInvalidConfig)
		}
		c.StateDir = filepath.Join(h, ".builderstore", "state")
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}

	if c.Script != "" {
		switch strings.ToLower(filepath.Ext(c.Script)) {
		case ".toml", ".json":
		default:
			return fmt.Errorf("%w: script %s must be .toml or .json", domain.ErrInvalidConfig, c.Script)
		}
	}

	if c.DebounceDelay <= 0 {
		return fmt.Errorf("%w: debounce delay must be positive", domain.ErrInvalidConfig)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("%w: step delay must not be negative", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// configSetter applies values from a lower-precedence source, skipping
// fields whose flag was set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses value as a duration.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool applies a value that was present in the source.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString treats "true" and "1" as true and anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
