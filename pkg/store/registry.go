package store

import "sync"

// subscription is one registered callback. Its id is never reused.
type subscription[S any] struct {
	id uint64
	fn func(S)
}

// registry keeps subscriptions in registration order.
type registry[S any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*subscription[S]
}

func (r *registry[S]) add(fn func(S)) *subscription[S] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	sub := &subscription[S]{id: r.nextID, fn: fn}
	r.subs = append(r.subs, sub)
	return sub
}

// remove reports whether id was still registered.
func (r *registry[S]) remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subs {
		if sub.id != id {
			continue
		}
		// Copy so snapshots handed out earlier stay intact.
		next := make([]*subscription[S], 0, len(r.subs)-1)
		next = append(next, r.subs[:i]...)
		r.subs = append(next, r.subs[i+1:]...)
		return true
	}
	return false
}

// snapshot returns the subscriptions registered right now. Later add and
// remove calls never modify the returned slice.
func (r *registry[S]) snapshot() []*subscription[S] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[:len(r.subs):len(r.subs)]
}

func (r *registry[S]) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = nil
}

func (r *registry[S]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
