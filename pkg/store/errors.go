package store

import (
	"errors"
	"fmt"
)

var (
	// ErrReducerPanic marks a transition rejected because the reducer panicked.
	ErrReducerPanic = errors.New("store: reducer panicked")

	// ErrSubscriberPanic marks a subscriber that panicked during notification.
	ErrSubscriberPanic = errors.New("store: subscriber panicked")

	// ErrClosed marks an action dropped because the store was closed.
	ErrClosed = errors.New("store: closed")
)

// DispatchError is reported for every failure observed while handling an
// action. It unwraps to one of the sentinel errors above and, when the
// recovered panic value is itself an error, to that error too.
type DispatchError struct {
	// Kind is the kind of the action being handled.
	Kind string

	// Subscription is the id of the failing subscriber, zero otherwise.
	Subscription uint64

	// Err is ErrReducerPanic, ErrSubscriberPanic or ErrClosed.
	Err error

	// Value is the recovered panic value, if any.
	Value any
}

func (e *DispatchError) Error() string {
	switch {
	case e.Value == nil:
		return fmt.Sprintf("%v: action %s", e.Err, e.Kind)
	case e.Subscription != 0:
		return fmt.Sprintf("%v: action %s, subscription %d: %v", e.Err, e.Kind, e.Subscription, e.Value)
	default:
		return fmt.Sprintf("%v: action %s: %v", e.Err, e.Kind, e.Value)
	}
}

func (e *DispatchError) Unwrap() []error {
	if cause, ok := e.Value.(error); ok {
		return []error{e.Err, cause}
	}
	return []error{e.Err}
}
