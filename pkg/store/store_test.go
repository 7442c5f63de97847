package store

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

type counter struct{ n int }

func counterReducer(s *counter, a Action) *counter {
	switch a.Kind {
	case "INCREMENT":
		return &counter{n: s.n + a.Payload.(int)}
	case "RESET":
		if s.n == 0 {
			return s
		}
		return &counter{}
	}
	return s
}

// recorder collects the counter values subscribers observed.
type recorder struct {
	mu   sync.Mutex
	seen []int
}

func (r *recorder) observe(s *counter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, s.n)
}

func (r *recorder) values() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.seen...)
}

func TestStore_CounterScenario(t *testing.T) {
	st := New(&counter{}, counterReducer)
	var rec recorder
	st.Subscribe(rec.observe)

	st.Dispatch(NewAction("INCREMENT", 1))
	if got := st.GetState().n; got != 1 {
		t.Fatalf("after INCREMENT count = %d, want 1", got)
	}

	st.Dispatch(NewAction("RESET", nil))
	if got := st.GetState().n; got != 0 {
		t.Fatalf("after RESET count = %d, want 0", got)
	}

	before := st.GetState()
	st.Dispatch(NewAction("UNKNOWN", nil))
	if st.GetState() != before {
		t.Fatal("UNKNOWN replaced the state")
	}

	got := rec.values()
	if len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Fatalf("notifications = %v, want [1 0]", got)
	}
	if st.Version() != 2 {
		t.Errorf("Version = %d, want 2", st.Version())
	}
}

func TestStore_UnknownKindIsNoop(t *testing.T) {
	kinds := []string{"", "UNKNOWN", "increment", "RESET_ALL"}
	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			st := New(&counter{n: 5}, counterReducer)
			calls := 0
			st.Subscribe(func(*counter) { calls++ })

			before := st.GetState()
			st.Dispatch(NewAction(kind, 42))

			if st.GetState() != before {
				t.Error("state reference changed")
			}
			if calls != 0 {
				t.Errorf("subscriber called %d times, want 0", calls)
			}
			if st.Version() != 0 {
				t.Errorf("Version = %d, want 0", st.Version())
			}
		})
	}
}

func TestStore_UnknownKindIsNoopForValueState(t *testing.T) {
	type list struct{ items []int }
	reducer := func(s list, a Action) list {
		if a.Kind == "ADD" {
			return list{items: append(slices.Clone(s.items), a.Payload.(int))}
		}
		return s
	}

	st := New(list{items: []int{1}}, reducer)
	calls := 0
	st.Subscribe(func(list) { calls++ })

	st.Dispatch(NewAction("UNKNOWN", nil))
	if calls != 0 || st.Version() != 0 {
		t.Fatalf("after UNKNOWN: calls = %d, Version = %d, want 0, 0", calls, st.Version())
	}

	st.Dispatch(NewAction("ADD", 2))
	if calls != 1 || st.Version() != 1 {
		t.Fatalf("after ADD: calls = %d, Version = %d, want 1, 1", calls, st.Version())
	}
}

func TestStore_OrderPreserved(t *testing.T) {
	st := New(&counter{}, counterReducer)
	var rec recorder
	st.Subscribe(rec.observe)

	for i := 1; i <= 5; i++ {
		st.Dispatch(NewAction("INCREMENT", i))
	}

	want := []int{1, 3, 6, 10, 15}
	got := rec.values()
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", got, want)
		}
	}
}

func TestStore_SubscribersInRegistrationOrder(t *testing.T) {
	st := New(&counter{}, counterReducer)
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		st.Subscribe(func(*counter) { order = append(order, name) })
	}

	st.Dispatch(NewAction("INCREMENT", 1))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("order = %v, want [a b c]", order)
	}
}

func TestStore_SubscriberPanicIsolated(t *testing.T) {
	var reported []error
	st := New(&counter{}, counterReducer, WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))

	first, third := 0, 0
	st.Subscribe(func(*counter) { first++ })
	st.Subscribe(func(*counter) { panic("render failed") })
	st.Subscribe(func(*counter) { third++ })

	st.Dispatch(NewAction("INCREMENT", 1))

	if first != 1 || third != 1 {
		t.Fatalf("first=%d third=%d, want 1 and 1", first, third)
	}
	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	if !errors.Is(reported[0], ErrSubscriberPanic) {
		t.Errorf("error = %v, want ErrSubscriberPanic", reported[0])
	}
	var de *DispatchError
	if !errors.As(reported[0], &de) || de.Subscription != 2 {
		t.Errorf("error = %#v, want subscription 2", reported[0])
	}
	if st.GetState().n != 1 {
		t.Errorf("state = %d, want 1", st.GetState().n)
	}
}

func TestStore_ReducerPanicRejectsTransition(t *testing.T) {
	cause := errors.New("bad payload")
	reducer := func(s *counter, a Action) *counter {
		switch a.Kind {
		case "EXPLODE":
			panic(cause)
		case "EXPLODE_STRING":
			panic("nope")
		}
		return counterReducer(s, a)
	}

	var reported []error
	st := New(&counter{}, reducer, WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	calls := 0
	st.Subscribe(func(*counter) { calls++ })

	st.Dispatch(NewAction("INCREMENT", 2))
	before := st.GetState()

	st.Dispatch(NewAction("EXPLODE", nil))
	st.Dispatch(NewAction("EXPLODE_STRING", nil))

	if st.GetState() != before {
		t.Fatal("failed reducer replaced the state")
	}
	if calls != 1 {
		t.Errorf("subscriber calls = %d, want 1", calls)
	}
	if len(reported) != 2 {
		t.Fatalf("reported %d errors, want 2", len(reported))
	}
	if !errors.Is(reported[0], ErrReducerPanic) || !errors.Is(reported[0], cause) {
		t.Errorf("error = %v, want ErrReducerPanic wrapping cause", reported[0])
	}
	if !errors.Is(reported[1], ErrReducerPanic) {
		t.Errorf("error = %v, want ErrReducerPanic", reported[1])
	}

	st.Dispatch(NewAction("INCREMENT", 1))
	if st.GetState().n != 3 {
		t.Errorf("store did not recover: count = %d, want 3", st.GetState().n)
	}
}

func TestStore_UnsubscribeDuringOwnNotification(t *testing.T) {
	st := New(&counter{}, counterReducer)

	calls := 0
	var unsubscribe Unsubscribe
	unsubscribe = st.Subscribe(func(*counter) {
		calls++
		unsubscribe()
	})
	after := 0
	st.Subscribe(func(*counter) { after++ })

	st.Dispatch(NewAction("INCREMENT", 1))
	st.Dispatch(NewAction("INCREMENT", 1))

	if calls != 1 {
		t.Errorf("self-unsubscribing subscriber called %d times, want 1", calls)
	}
	if after != 2 {
		t.Errorf("later subscriber called %d times, want 2", after)
	}
	if st.Subscribers() != 1 {
		t.Errorf("Subscribers = %d, want 1", st.Subscribers())
	}
}

func TestStore_SubscribeDuringPassWaitsForNextDispatch(t *testing.T) {
	st := New(&counter{}, counterReducer)

	late := 0
	added := false
	st.Subscribe(func(*counter) {
		if !added {
			added = true
			st.Subscribe(func(*counter) { late++ })
		}
	})

	st.Dispatch(NewAction("INCREMENT", 1))
	if late != 0 {
		t.Fatalf("subscriber added mid-pass was notified in the same pass")
	}
	st.Dispatch(NewAction("INCREMENT", 1))
	if late != 1 {
		t.Fatalf("late subscriber calls = %d, want 1", late)
	}
}

func TestStore_RemovedMidPassStillSeesCurrentPass(t *testing.T) {
	st := New(&counter{}, counterReducer)

	var second Unsubscribe
	secondCalls := 0
	st.Subscribe(func(*counter) {
		if second != nil {
			second()
		}
	})
	second = st.Subscribe(func(*counter) { secondCalls++ })

	st.Dispatch(NewAction("INCREMENT", 1))
	st.Dispatch(NewAction("INCREMENT", 1))

	if secondCalls != 1 {
		t.Fatalf("second subscriber calls = %d, want 1", secondCalls)
	}
}

func TestStore_DispatchFromSubscriberIsQueued(t *testing.T) {
	st := New(&counter{}, counterReducer)

	var rec recorder
	st.Subscribe(func(s *counter) {
		if s.n == 1 {
			st.Dispatch(NewAction("INCREMENT", 10))
			// The nested action waits for this pass to finish.
			if st.GetState().n != 1 {
				t.Errorf("nested dispatch applied mid-pass")
			}
		}
	})
	st.Subscribe(rec.observe)

	st.Dispatch(NewAction("INCREMENT", 1))

	got := rec.values()
	if len(got) != 2 || got[0] != 1 || got[1] != 11 {
		t.Fatalf("notifications = %v, want [1 11]", got)
	}
}

func TestStore_UnsubscribeIsIdempotent(t *testing.T) {
	st := New(&counter{}, counterReducer)
	a := st.Subscribe(func(*counter) {})
	st.Subscribe(func(*counter) {})

	a()
	a()
	if st.Subscribers() != 1 {
		t.Fatalf("Subscribers = %d, want 1", st.Subscribers())
	}
}

func TestStore_Close(t *testing.T) {
	var reported []error
	st := New(&counter{}, counterReducer, WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	calls := 0
	unsubscribe := st.Subscribe(func(*counter) { calls++ })
	st.Dispatch(NewAction("INCREMENT", 1))

	st.Close()
	st.Close()

	unsubscribe()
	st.Dispatch(NewAction("INCREMENT", 1))

	if calls != 1 {
		t.Errorf("subscriber calls = %d, want 1", calls)
	}
	if st.GetState().n != 1 {
		t.Errorf("state after close = %d, want 1", st.GetState().n)
	}
	if len(reported) != 1 || !errors.Is(reported[0], ErrClosed) {
		t.Errorf("reported = %v, want one ErrClosed", reported)
	}

	late := st.Subscribe(func(*counter) { calls++ })
	late()
	if st.Subscribers() != 0 {
		t.Errorf("Subscribers after close = %d, want 0", st.Subscribers())
	}
}

type trackingHandler struct {
	BaseEventHandler
	dispatches []DispatchEvent
	errs       []*DispatchError
}

func (h *trackingHandler) OnDispatch(e DispatchEvent)  { h.dispatches = append(h.dispatches, e) }
func (h *trackingHandler) OnError(err *DispatchError) { h.errs = append(h.errs, err) }

func TestStore_EventHandler(t *testing.T) {
	h := &trackingHandler{}
	st := New(&counter{}, counterReducer, WithEventHandler(h))
	st.Subscribe(func(*counter) {})
	st.Subscribe(func(*counter) { panic("x") })

	st.Dispatch(NewAction("INCREMENT", 1))
	st.Dispatch(NewAction("UNKNOWN", nil))

	if len(h.dispatches) != 2 {
		t.Fatalf("dispatch events = %d, want 2", len(h.dispatches))
	}
	first, second := h.dispatches[0], h.dispatches[1]
	if !first.Changed || first.Version != 1 || first.Notified != 2 || first.Kind != "INCREMENT" {
		t.Errorf("first event = %+v", first)
	}
	if second.Changed || second.Notified != 0 || second.Version != 1 {
		t.Errorf("second event = %+v", second)
	}
	if len(h.errs) != 1 || !errors.Is(h.errs[0], ErrSubscriberPanic) {
		t.Errorf("errors = %v", h.errs)
	}
}

func TestStore_WithEqual(t *testing.T) {
	type settings struct {
		Theme string
		Tags  []string
	}
	reducer := func(s settings, a Action) settings {
		if a.Kind == "THEME" {
			return settings{Theme: a.Payload.(string), Tags: s.Tags}
		}
		return s
	}
	st := New(settings{Theme: "dark"}, reducer, WithEqual(func(a, b settings) bool {
		return a.Theme == b.Theme
	}))
	calls := 0
	st.Subscribe(func(settings) { calls++ })

	st.Dispatch(NewAction("THEME", "dark"))
	st.Dispatch(NewAction("THEME", "light"))

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestStore_ConcurrentDispatchKeepsEveryAction(t *testing.T) {
	st := New(&counter{}, counterReducer)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(NewAction("INCREMENT", 1))
			_ = st.GetState()
		}()
	}
	wg.Wait()

	// Late queued actions are drained by whichever goroutine holds the pass;
	// every Dispatch has returned, so the queue is empty.
	if got := st.GetState().n; got != 50 {
		t.Fatalf("count = %d, want 50", got)
	}
	if st.Version() != 50 {
		t.Fatalf("Version = %d, want 50", st.Version())
	}
}

type panicOnceHandler struct {
	BaseEventHandler
	fired bool
}

func (h *panicOnceHandler) OnDispatch(DispatchEvent) {
	if !h.fired {
		h.fired = true
		panic("handler failed")
	}
}

func TestStore_HandlerPanicDoesNotStrandQueue(t *testing.T) {
	st := New(&counter{}, counterReducer, WithEventHandler(&panicOnceHandler{}))
	st.Subscribe(func(c *counter) {
		if c.n == 1 {
			st.Dispatch(NewAction("INCREMENT", 10))
		}
	})

	func() {
		defer func() {
			if r := recover(); r != "handler failed" {
				t.Fatalf("recovered %v, want the handler panic", r)
			}
		}()
		st.Dispatch(NewAction("INCREMENT", 1))
	}()

	if got := st.GetState().n; got != 11 {
		t.Fatalf("n = %d, want 11: queued action was not applied", got)
	}

	st.Dispatch(NewAction("INCREMENT", 1))
	if got := st.GetState().n; got != 12 {
		t.Errorf("n = %d after a later dispatch, want 12", got)
	}
}
