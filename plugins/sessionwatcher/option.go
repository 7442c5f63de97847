package sessionwatcher

import "github.com/bft-labs/builderstore/pkg/host"

// WithSessionWatcher returns a host Option that persists the session.
//
// Usage:
//
//	h, err := host.New(cfg,
//	    sessionwatcher.WithSessionWatcher(sessionwatcher.Config{
//	        Watch:         true,
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithSessionWatcher(cfg Config) host.Option {
	return host.WithPlugin(New(cfg))
}

// WithDefaultSessionWatcher persists the session and reloads it on
// external edits, with default timings.
func WithDefaultSessionWatcher() host.Option {
	return WithSessionWatcher(DefaultConfig())
}
