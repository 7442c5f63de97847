package host

import (
	"github.com/bft-labs/builderstore/pkg/log"
	"github.com/bft-labs/builderstore/pkg/store"
	"github.com/bft-labs/builderstore/pkg/views"
)

// Option configures optional behavior of a Host.
type Option func(*options)

type options struct {
	logger    log.Logger
	handlers  handlers
	plugins   []Plugin
	storeOpts []store.Option
	views     *views.Registry
}

// WithLogger sets the logger for the host, its store and its plugins.
// If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(logger)
	}
}

// WithEventHandler adds a handler for lifecycle and store events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.handlers = append(o.handlers, handler)
		}
	}
}

// WithPlugin registers a plugin. Plugins are initialized in registration
// order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		if plugin != nil {
			o.plugins = append(o.plugins, plugin)
		}
	}
}

// WithStoreOptions passes options through to the dashboard store.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

// WithViews mounts an outlet over reg while the host is running.
func WithViews(reg *views.Registry) Option {
	return func(o *options) {
		o.views = reg
	}
}

// WithOptions groups several options into one, for plugins that need
// more than a single hook.
func WithOptions(opts ...Option) Option {
	return func(o *options) {
		for _, opt := range opts {
			opt(o)
		}
	}
}
