// Package builderstore runs the build dashboard state store as a
// standalone process.
//
// Example usage:
//
//	cfg := builderstore.DefaultConfig()
//	cfg.Script = "scripts/demo.toml"
//	cfg.Once = true
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := builderstore.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Applications that embed the store use pkg/host or pkg/dashboard directly.
package builderstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bft-labs/builderstore/internal/app"
	"github.com/bft-labs/builderstore/internal/cliconfig"
)

// Config holds the process configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run starts the store with the sessionwatcher and metrics plugins,
// replays cfg.Script, and blocks until ctx is canceled unless cfg.Once is
// set. cfg must be validated.
func Run(ctx context.Context, cfg Config) error {
	return app.Run(ctx, cfg, Logger(cfg))
}

// Logger returns the console logger Run uses for cfg.
func Logger(cfg Config) zerolog.Logger {
	return cliconfig.Logger(cfg.Level())
}
