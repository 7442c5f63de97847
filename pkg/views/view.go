package views

import (
	"sync"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/store"
)

// Source is the store a view reads from.
type Source = store.Source[*store.Tree]

// View is a mounted page.
type View interface {
	Kind() Kind
	Close()
}

// SliceView tracks one slice of the dashboard state.
type SliceView struct {
	kind  Kind
	slice string
	unsub store.Unsubscribe

	mu      sync.Mutex
	latest  any
	renders int
	closed  bool
}

// NewSliceView mounts a view of kind over the named slice of src. The
// current value counts as the first render.
func NewSliceView(kind Kind, slice string, src Source) *SliceView {
	v := &SliceView{kind: kind, slice: slice, renders: 1}
	v.latest, _ = src.GetState().Get(slice)
	v.unsub = src.Subscribe(v.update)
	return v
}

func (v *SliceView) update(t *store.Tree) {
	next, _ := t.Get(v.slice)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || store.Same(v.latest, next) {
		return
	}
	v.latest = next
	v.renders++
}

// Kind returns the view kind.
func (v *SliceView) Kind() Kind { return v.kind }

// Slice returns the name of the slice the view renders.
func (v *SliceView) Slice() string { return v.slice }

// Latest returns the most recent snapshot of the slice.
func (v *SliceView) Latest() any {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest
}

// Renders counts distinct slice values the view has seen.
func (v *SliceView) Renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders
}

// Close unsubscribes the view. Safe to call more than once.
func (v *SliceView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.unsub()
}

// sliceFor is the slice each page renders.
var sliceFor = map[Kind]string{
	KindExplore:            dashboard.SlicePackages,
	KindSignIn:             dashboard.SliceSession,
	KindOrigins:            dashboard.SliceOrigins,
	KindOrigin:             dashboard.SliceOrigins,
	KindOriginCreate:       dashboard.SliceOrigins,
	KindPackages:           dashboard.SlicePackages,
	KindPackage:            dashboard.SlicePackages,
	KindProjects:           dashboard.SliceProjects,
	KindProject:            dashboard.SliceBuilds,
	KindProjectCreate:      dashboard.SliceProjects,
	KindProjectSettings:    dashboard.SliceProjects,
	KindOrganizations:      dashboard.SliceSession,
	KindOrganizationCreate: dashboard.SliceSession,
	KindSCMRepos:           dashboard.SliceProjects,
}
