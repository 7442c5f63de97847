package dashboard

import (
	"slices"

	"github.com/bft-labs/builderstore/pkg/store"
)

// Packages is the package listing slice.
type Packages struct {
	Visible []Package
	Total   int
	Current *Package
	Loading bool
	Err     string
}

// ReducePackages owns the packages slice.
func ReducePackages(s *Packages, a store.Action) *Packages {
	switch a.Kind {
	case KindPackagesFetchStart:
		if s.Loading && s.Err == "" {
			return s
		}
		next := *s
		next.Loading, next.Err = true, ""
		return &next
	case KindPackagesFetchDone:
		loaded := payloadOf[PackagesLoaded](a)
		next := *s
		next.Visible = slices.Clone(loaded.Packages)
		next.Total = loaded.Total
		if next.Total < len(next.Visible) {
			next.Total = len(next.Visible)
		}
		next.Loading, next.Err = false, ""
		return &next
	case KindPackagesFetchFailed:
		next := *s
		next.Loading, next.Err = false, payloadOf[FetchFailed](a).Err
		return &next
	case KindPackageSetCurrent:
		p := payloadOf[Package](a)
		if s.Current != nil && s.Current.Ident() == p.Ident() {
			return s
		}
		next := *s
		next.Current = &p
		return &next
	}
	return s
}
