package views

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownRoute   = errors.New("unknown route")
	ErrDuplicateRoute = errors.New("route already registered")
)

// Factory builds a view over src.
type Factory func(src Source) View

// Entry is what a route resolves to.
type Entry struct {
	Kind    Kind
	Factory Factory
}

// Registry maps route patterns to views. A pattern is a slash-separated
// path whose segments are literals or ":name" parameters, such as
// "origins/:origin". It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	routes []route
}

type route struct {
	pattern  string
	segments []string
	entry    Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a route. Two patterns that differ only in parameter names
// are duplicates.
func (r *Registry) Register(pattern string, e Entry) error {
	segs := splitPath(pattern)
	if len(segs) == 0 {
		return fmt.Errorf("register: empty route pattern")
	}
	pattern = strings.Join(segs, "/")
	if slices.Contains(segs, "") || slices.Contains(segs, ":") {
		return fmt.Errorf("register %s: empty segment", pattern)
	}
	if e.Factory == nil {
		return fmt.Errorf("register %s: nil factory", pattern)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.routes {
		if shape(rt.segments) == shape(segs) {
			return fmt.Errorf("register %s: %w (as %s)", pattern, ErrDuplicateRoute, rt.pattern)
		}
	}
	r.routes = append(r.routes, route{pattern: pattern, segments: segs, entry: e})
	return nil
}

// Lookup resolves a path such as "/origins/core". When several patterns
// match, the one with the most literal segments wins, so "origins/create"
// takes precedence over "origins/:origin".
func (r *Registry) Lookup(path string) (Entry, bool) {
	segs := splitPath(path)

	r.mu.RLock()
	defer r.mu.RUnlock()
	best, bestScore := -1, -1
	for i, rt := range r.routes {
		if score, ok := match(rt.segments, segs); ok && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	return r.routes[best].entry, true
}

// Names returns the registered patterns, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		names = append(names, rt.pattern)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Mount constructs the view for path against src.
func (r *Registry) Mount(path string, src Source) (View, error) {
	e, ok := r.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("mount %s: %w", path, ErrUnknownRoute)
	}
	return e.Factory(src), nil
}

// splitPath drops surrounding slashes, the query and the fragment.
func splitPath(path string) []string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// match reports whether segs matches pattern and how many literal
// segments it matched.
func match(pattern, segs []string) (int, bool) {
	if len(pattern) != len(segs) {
		return 0, false
	}
	literals := 0
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return 0, false
			}
			continue
		}
		if p != segs[i] {
			return 0, false
		}
		literals++
	}
	return literals, true
}

// shape replaces parameter names with ":".
func shape(segs []string) string {
	out := make([]string, len(segs))
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			s = ":"
		}
		out[i] = s
	}
	return strings.Join(out, "/")
}

// defaultRoutes is the dashboard route table. Every Kind appears at least
// once.
var defaultRoutes = []struct {
	pattern string
	kind    Kind
}{
	{"explore", KindExplore},
	{"sign-in", KindSignIn},
	{"origins", KindOrigins},
	{"origins/create", KindOriginCreate},
	{"origins/:origin", KindOrigin},
	{"packages", KindPackages},
	{"packages/:origin", KindPackages},
	{"packages/:origin/:name", KindPackage},
	{"packages/:origin/:name/:version", KindPackage},
	{"packages/:origin/:name/:version/:release", KindPackage},
	{"projects", KindProjects},
	{"projects/create", KindProjectCreate},
	{"projects/:origin/:name", KindProject},
	{"projects/:origin/:name/settings", KindProjectSettings},
	{"organizations", KindOrganizations},
	{"organizations/create", KindOrganizationCreate},
	{"scm-repos", KindSCMRepos},
}

// DefaultRegistry registers a SliceView for every route in the dashboard
// route table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rt := range defaultRoutes {
		k, slice := rt.kind, sliceFor[rt.kind]
		// The table is fixed and has no duplicates.
		_ = r.Register(rt.pattern, Entry{
			Kind: k,
			Factory: func(src Source) View {
				return NewSliceView(k, slice, src)
			},
		})
	}
	return r
}
