package dashboard

import (
	"github.com/bft-labs/builderstore/pkg/store"
)

// Slice names.
const (
	SliceSession       = "session"
	SliceOrigins       = "origins"
	SlicePackages      = "packages"
	SliceProjects      = "projects"
	SliceBuilds        = "builds"
	SliceNotifications = "notifications"
	SliceUI            = "ui"
)

// DefaultRoute is where the dashboard lands before any navigation.
const DefaultRoute = "/explore"

// Store is the dashboard store type.
type Store = store.Store[*store.Tree]

// Compose returns the initial state and the root reducer.
func Compose() (*store.Tree, store.Reducer[*store.Tree]) {
	return store.Combine(
		store.Bind(SliceSession, &Session{}, ReduceSession),
		store.Bind(SliceOrigins, &Origins{}, ReduceOrigins),
		store.Bind(SlicePackages, &Packages{}, ReducePackages),
		store.Bind(SliceProjects, &Projects{}, ReduceProjects),
		store.Bind(SliceBuilds, &Builds{}, ReduceBuilds),
		store.Bind(SliceNotifications, &Notifications{}, ReduceNotifications),
		store.Bind(SliceUI, &UI{Route: DefaultRoute}, ReduceUI),
	)
}

// New creates the dashboard store. An application creates exactly one and
// hands it to every page.
func New(opts ...store.Option) *Store {
	initial, reducer := Compose()
	return store.New(initial, reducer, opts...)
}

func SessionOf(t *store.Tree) *Session { return store.Select[*Session](t, SliceSession) }
func OriginsOf(t *store.Tree) *Origins { return store.Select[*Origins](t, SliceOrigins) }
func PackagesOf(t *store.Tree) *Packages {
	return store.Select[*Packages](t, SlicePackages)
}
func ProjectsOf(t *store.Tree) *Projects {
	return store.Select[*Projects](t, SliceProjects)
}
func BuildsOf(t *store.Tree) *Builds { return store.Select[*Builds](t, SliceBuilds) }
func NotificationsOf(t *store.Tree) *Notifications {
	return store.Select[*Notifications](t, SliceNotifications)
}
func UIOf(t *store.Tree) *UI { return store.Select[*UI](t, SliceUI) }
