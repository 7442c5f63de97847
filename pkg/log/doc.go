// Package log is the structured logging seam used by the store, the host
// and every plugin.
//
// Components depend on the [Logger] interface only. [ZerologAdapter] backs
// it with zerolog for the CLI; [NoopLogger] is the default when nothing is
// injected.
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	st := store.New(initial, reducer, store.WithLogger(logger.With(log.String("component", "store"))))
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
package log
