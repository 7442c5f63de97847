package host

import (
	"fmt"
	"time"

	"github.com/bft-labs/builderstore/pkg/lifecycle"
)

// Config configures a Host.
type Config struct {
	// StateDir is where plugins keep their files. Empty disables
	// persistence for plugins that need it.
	StateDir string

	// ShutdownTimeout bounds how long Stop waits for background work.
	// Default: 30 seconds
	ShutdownTimeout time.Duration
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = lifecycle.ShutdownTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative shutdown timeout %s", ErrInvalidConfig, c.ShutdownTimeout)
	}
	return nil
}
