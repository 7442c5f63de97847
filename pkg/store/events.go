package store

import "time"

// DispatchEvent describes one handled action.
type DispatchEvent struct {
	Kind string

	// Changed is false for no-ops and rejected transitions.
	Changed bool

	// Version is the store version after the action was handled.
	Version uint64

	// Notified is how many subscribers were called.
	Notified int

	// Duration covers the reducer and the notification pass.
	Duration time.Duration
}

// EventHandler observes the store. Hooks run synchronously on the
// dispatching goroutine and must return quickly.
type EventHandler interface {
	OnDispatch(event DispatchEvent)
	OnError(err *DispatchError)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the hooks you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnDispatch(DispatchEvent) {}
func (BaseEventHandler) OnError(*DispatchError)   {}
