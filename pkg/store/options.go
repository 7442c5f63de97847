package store

import "github.com/bft-labs/builderstore/pkg/log"

// Option configures optional behavior of a Store.
type Option func(*options)

type options struct {
	logger       log.Logger
	errorHandler func(error)
	handlers     []EventHandler
	equal        func(a, b any) bool
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(logger)
	}
}

// WithErrorHandler sets the error channel: fn receives every
// *DispatchError the store observes.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithEventHandler registers an event handler. It may be given more than
// once; handlers are called in registration order.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.handlers = append(o.handlers, handler)
		}
	}
}

// WithEqual replaces Same as the change detector. S must match the store's
// state type.
func WithEqual[S any](eq func(a, b S) bool) Option {
	return func(o *options) {
		o.equal = func(a, b any) bool {
			av, _ := a.(S)
			bv, _ := b.(S)
			return eq(av, bv)
		}
	}
}
