package host

import (
	"github.com/bft-labs/builderstore/pkg/lifecycle"
	"github.com/bft-labs/builderstore/pkg/store"
)

// State is the lifecycle state of a Host.
type State = lifecycle.State

const (
	StateStopped  = lifecycle.StateStopped
	StateStarting = lifecycle.StateStarting
	StateRunning  = lifecycle.StateRunning
	StateStopping = lifecycle.StateStopping
	StateCrashed  = lifecycle.StateCrashed
)

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler observes a Host. Store hooks run on the dispatching
// goroutine and must return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnDispatch(event store.DispatchEvent)
	OnError(err *store.DispatchError)
}

// BaseEventHandler implements EventHandler with no-ops.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnDispatch(store.DispatchEvent) {}
func (BaseEventHandler) OnError(*store.DispatchError)   {}

// handlers fans host events out to every registered handler.
type handlers []EventHandler

func (hs handlers) OnStateChange(previous, current lifecycle.State, reason string) {
	ev := StateChangeEvent{Previous: previous, Current: current, Reason: reason}
	for _, h := range hs {
		h.OnStateChange(ev)
	}
}

func (hs handlers) OnDispatch(event store.DispatchEvent) {
	for _, h := range hs {
		h.OnDispatch(event)
	}
}

func (hs handlers) OnError(err *store.DispatchError) {
	for _, h := range hs {
		h.OnError(err)
	}
}

var (
	_ lifecycle.EventEmitter = handlers(nil)
	_ store.EventHandler     = handlers(nil)
)
