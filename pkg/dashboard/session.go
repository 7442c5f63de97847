package dashboard

import "github.com/bft-labs/builderstore/pkg/store"

// ReduceSession owns the session slice.
func ReduceSession(s *Session, a store.Action) *Session {
	switch a.Kind {
	case KindSignIn:
		next := payloadOf[Session](a)
		next.SignedIn = true
		return &next
	case KindSignOut:
		if !s.SignedIn && *s == (Session{}) {
			return s
		}
		return &Session{}
	case KindSessionRestored:
		next := payloadOf[Session](a)
		if next == *s {
			return s
		}
		return &next
	}
	return s
}
