package domain

import "errors"

// Errors returned by the public host API. Check them with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start is called on a running host.
	ErrAlreadyRunning = errors.New("builderstore: already running")

	// ErrNotRunning is returned when Stop is called on a host that is not running.
	ErrNotRunning = errors.New("builderstore: not running")

	// ErrShutdownTimeout is returned when background work outlives the
	// shutdown timeout.
	ErrShutdownTimeout = errors.New("builderstore: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("builderstore: invalid configuration")

	// ErrStopped is returned when Start is called on a host whose store has
	// already been torn down.
	ErrStopped = errors.New("builderstore: host stopped")
)
