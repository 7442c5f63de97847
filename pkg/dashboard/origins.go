package dashboard

import (
	"slices"

	"github.com/bft-labs/builderstore/pkg/store"
)

// Origins is the origins slice.
type Origins struct {
	Mine    []Origin
	Current Origin
	Loading bool
	Err     string
}

// ReduceOrigins owns the origins slice.
func ReduceOrigins(s *Origins, a store.Action) *Origins {
	switch a.Kind {
	case KindOriginsFetchStart:
		if s.Loading && s.Err == "" {
			return s
		}
		next := *s
		next.Loading, next.Err = true, ""
		return &next
	case KindOriginsFetchDone:
		next := *s
		next.Mine = slices.Clone(payloadOf[OriginsLoaded](a).Origins)
		next.Loading, next.Err = false, ""
		return &next
	case KindOriginsFetchFailed:
		next := *s
		next.Loading, next.Err = false, payloadOf[FetchFailed](a).Err
		return &next
	case KindOriginSetCurrent:
		o := payloadOf[Origin](a)
		if o == s.Current {
			return s
		}
		next := *s
		next.Current = o
		return &next
	case KindOriginCreated:
		o := payloadOf[Origin](a)
		next := *s
		next.Mine = append(slices.Clone(s.Mine), o)
		next.Current = o
		return &next
	case KindSignOut:
		if len(s.Mine) == 0 && s.Current == (Origin{}) && !s.Loading && s.Err == "" {
			return s
		}
		return &Origins{}
	}
	return s
}
