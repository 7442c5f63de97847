package host

import (
	"context"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/log"
)

// Plugin extends a Host.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called from Start, in registration order. A failing
	// plugin aborts Start and the host moves to StateCrashed.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called from Stop in reverse order, after background
	// work started with PluginConfig.Go has returned.
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets from the host.
type PluginConfig struct {
	Store    *dashboard.Store
	StateDir string
	Logger   log.Logger

	// Go runs fn in the background. Its context is canceled by Stop, and
	// Stop waits for fn to return.
	Go func(name string, fn func(ctx context.Context))
}

// BasePlugin implements Initialize and Shutdown as no-ops.
type BasePlugin struct{}

func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
