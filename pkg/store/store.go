package store

import (
	"sync"
	"time"

	"github.com/bft-labs/builderstore/pkg/log"
)

// Store is the single source of truth for a state value of type S.
// Create one with New and share the pointer with every collaborator that
// reads or changes the state.
type Store[S any] struct {
	reducer Reducer[S]
	opts    options
	logger  log.Logger
	subs    registry[S]

	// mu guards the dispatch queue and the closed flag.
	mu       sync.Mutex
	queue    []Action
	draining bool
	closed   bool

	stateMu sync.RWMutex
	state   S
	version uint64
}

// New creates a store holding initial.
func New[S any](initial S, reducer Reducer[S], opts ...Option) *Store[S] {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[S]{
		reducer: reducer,
		opts:    o,
		logger:  o.logger,
		state:   initial,
	}
}

// GetState returns the current snapshot.
func (s *Store[S]) GetState() S {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Version counts accepted transitions.
func (s *Store[S]) Version() uint64 {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.version
}

// Subscribers returns the number of active subscriptions.
func (s *Store[S]) Subscribers() int {
	return s.subs.len()
}

// Subscribe registers fn for every accepted transition, starting with the
// next dispatch pass. The returned func removes it.
func (s *Store[S]) Subscribe(fn func(S)) Unsubscribe {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed || fn == nil {
		return func() {}
	}

	sub := s.subs.add(fn)
	s.logger.Debug("subscribed", log.Uint64("subscription", sub.id))

	var once sync.Once
	return func() {
		once.Do(func() {
			if s.subs.remove(sub.id) {
				s.logger.Debug("unsubscribed", log.Uint64("subscription", sub.id))
			}
		})
	}
}

// Dispatch applies action. When the store is idle the action is applied,
// and subscribers notified, before Dispatch returns. When a pass is already
// running the action is queued behind it and applied by the goroutine
// running that pass, in the order dispatches were issued.
func (s *Store[S]) Dispatch(action Action) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.report(&DispatchError{Kind: action.Kind, Err: ErrClosed})
		return
	}
	s.queue = append(s.queue, action)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

// Close tears the store down. Queued actions are dropped and reported,
// subscriptions are discarded, and later dispatches are rejected with
// ErrClosed. The last state stays readable.
func (s *Store[S]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	dropped := s.queue
	s.queue = nil
	s.mu.Unlock()

	s.subs.clear()
	for _, a := range dropped {
		s.report(&DispatchError{Kind: a.Kind, Err: ErrClosed})
	}
	s.logger.Debug("store closed", log.Uint64("version", s.Version()))
}

// drain applies queued actions until the queue is empty. A panic from an
// event or error handler does not strand the actions behind it: the queue
// is finished first and the first panic is then raised again.
func (s *Store[S]) drain() {
	var panicked any
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			break
		}
		next := s.queue[0]
		s.queue[0] = Action{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if r := s.applyRecover(next); r != nil && panicked == nil {
			panicked = r
		}
	}
	if panicked != nil {
		panic(panicked)
	}
}

func (s *Store[S]) applyRecover(action Action) (panicked any) {
	defer func() {
		panicked = recover()
	}()
	s.apply(action)
	return nil
}

func (s *Store[S]) apply(action Action) {
	start := time.Now()
	prev := s.GetState()

	next, err := s.reduce(prev, action)
	if err != nil {
		s.report(err)
		s.emit(DispatchEvent{Kind: action.Kind, Version: s.Version(), Duration: time.Since(start)})
		return
	}
	if s.same(prev, next) {
		s.logger.Debug("no-op", log.String("kind", action.Kind))
		s.emit(DispatchEvent{Kind: action.Kind, Version: s.Version(), Duration: time.Since(start)})
		return
	}

	s.stateMu.Lock()
	s.state = next
	s.version++
	version := s.version
	s.stateMu.Unlock()

	notified := s.notify(action.Kind, next)
	s.logger.Debug("transition",
		log.String("kind", action.Kind),
		log.Uint64("version", version),
		log.Int("notified", notified),
	)
	s.emit(DispatchEvent{
		Kind:     action.Kind,
		Changed:  true,
		Version:  version,
		Notified: notified,
		Duration: time.Since(start),
	})
}

func (s *Store[S]) reduce(state S, action Action) (next S, err *DispatchError) {
	defer func() {
		if r := recover(); r != nil {
			err = &DispatchError{Kind: action.Kind, Err: ErrReducerPanic, Value: r}
		}
	}()
	return s.reducer(state, action), nil
}

func (s *Store[S]) notify(kind string, state S) int {
	subs := s.subs.snapshot()
	for _, sub := range subs {
		s.call(kind, sub, state)
	}
	return len(subs)
}

func (s *Store[S]) call(kind string, sub *subscription[S], state S) {
	defer func() {
		if r := recover(); r != nil {
			s.report(&DispatchError{Kind: kind, Subscription: sub.id, Err: ErrSubscriberPanic, Value: r})
		}
	}()
	sub.fn(state)
}

func (s *Store[S]) same(a, b S) bool {
	if s.opts.equal != nil {
		return s.opts.equal(a, b)
	}
	return Same(a, b)
}

func (s *Store[S]) report(err *DispatchError) {
	s.logger.Error("dispatch failed", log.String("kind", err.Kind), log.Err(err))
	if s.opts.errorHandler != nil {
		s.opts.errorHandler(err)
	}
	for _, h := range s.opts.handlers {
		h.OnError(err)
	}
}

func (s *Store[S]) emit(event DispatchEvent) {
	for _, h := range s.opts.handlers {
		h.OnDispatch(event)
	}
}

var (
	_ Dispatcher     = (*Store[int])(nil)
	_ Source[string] = (*Store[string])(nil)
)
