// Package store is a unidirectional state container.
//
// A [Store] holds exactly one current state value. Collaborators request
// changes by dispatching an [Action]; the store runs its [Reducer] over the
// current state and, when the result differs from the current state, swaps
// it in and notifies subscribers in registration order.
//
//	type counter struct{ n int }
//
//	reducer := func(s *counter, a store.Action) *counter {
//	    switch a.Kind {
//	    case "INCREMENT":
//	        return &counter{n: s.n + a.Payload.(int)}
//	    case "RESET":
//	        return &counter{}
//	    }
//	    return s
//	}
//
//	st := store.New(&counter{}, reducer)
//	unsubscribe := st.Subscribe(func(s *counter) { fmt.Println(s.n) })
//	defer unsubscribe()
//	st.Dispatch(store.NewAction("INCREMENT", 1))
//
// # Change detection
//
// Reducers must not mutate their input and must return the input unchanged
// for actions they do not handle. The store compares results with [Same]
// (identity for pointers, maps and slices; == for comparable values) unless
// [WithEqual] overrides it. A result that is the same as the current state
// is a no-op: the state is kept and nobody is notified.
//
// # Composition
//
// [Combine] builds one reducer over a [Tree] of named slices, each owned by
// its own reducer bound with [Bind]. Slices are reduced in declaration order
// and a slice reducer only ever sees its own slice.
//
// # Ordering and errors
//
// Dispatches are applied one at a time in the order they are issued. A
// dispatch issued while a pass is running (from a subscriber, or from
// another goroutine) is queued and applied once the running pass completes.
// A panicking reducer rejects the transition; a panicking subscriber is
// isolated from the others. Both are reported as [*DispatchError] through
// the logger, the [WithErrorHandler] callback and any [EventHandler].
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package store
