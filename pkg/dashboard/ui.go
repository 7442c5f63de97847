package dashboard

import "github.com/bft-labs/builderstore/pkg/store"

// UI is the chrome slice.
type UI struct {
	Route       string
	SideNavOpen bool
}

// ReduceUI owns the ui slice.
func ReduceUI(s *UI, a store.Action) *UI {
	switch a.Kind {
	case KindRouteChanged:
		path := payloadOf[Route](a).Path
		if path == s.Route {
			return s
		}
		return &UI{Route: path, SideNavOpen: s.SideNavOpen}
	case KindSideNavToggle:
		return &UI{Route: s.Route, SideNavOpen: !s.SideNavOpen}
	}
	return s
}
