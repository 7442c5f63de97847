package store

import "fmt"

// Action describes an intended state change. Treat it as immutable once
// dispatched; payloads should be values or pointers nobody writes to.
type Action struct {
	Kind    string
	Payload any
}

// NewAction creates an action of the given kind.
func NewAction(kind string, payload any) Action {
	return Action{Kind: kind, Payload: payload}
}

// String renders the kind, which is what logs care about.
func (a Action) String() string {
	if a.Payload == nil {
		return a.Kind
	}
	return fmt.Sprintf("%s(%T)", a.Kind, a.Payload)
}

// Reducer computes the next state from the current state and an action.
// It must be pure and must return state itself for actions it ignores.
type Reducer[S any] func(state S, action Action) S

// Dispatcher accepts actions.
type Dispatcher interface {
	Dispatch(action Action)
}

// Unsubscribe removes a subscription. Calling it more than once, or after
// the store is closed, does nothing.
type Unsubscribe func()

// Source is the read side of a store: the current snapshot plus change
// notifications.
type Source[S any] interface {
	GetState() S
	Subscribe(fn func(S)) Unsubscribe
}
