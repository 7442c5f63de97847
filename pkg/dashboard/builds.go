package dashboard

import (
	"fmt"
	"maps"
	"slices"

	"github.com/bft-labs/builderstore/pkg/store"
)

// Builds is the builds slice, keyed by project name. The map and the
// slices in it are never modified once published.
type Builds struct {
	ByProject map[string][]Build
}

// For returns the builds of a project, oldest first.
func (b *Builds) For(project string) []Build {
	return b.ByProject[project]
}

// ReduceBuilds owns the builds slice.
func ReduceBuilds(s *Builds, a store.Action) *Builds {
	switch a.Kind {
	case KindBuildQueued:
		b := payloadOf[Build](a)
		if b.Status == "" {
			b.Status = BuildPending
		}
		if slices.ContainsFunc(s.ByProject[b.Project], func(x Build) bool { return x.ID == b.ID }) {
			return s
		}
		return s.with(b.Project, append(slices.Clone(s.ByProject[b.Project]), b))
	case KindBuildStatus:
		u := payloadOf[BuildUpdate](a)
		if !u.Status.Valid() {
			panic(fmt.Errorf("%w: unknown build status %q", ErrBadPayload, u.Status))
		}
		builds := s.ByProject[u.Project]
		i := slices.IndexFunc(builds, func(x Build) bool { return x.ID == u.ID })
		if i < 0 || builds[i].Status == u.Status {
			return s
		}
		updated := slices.Clone(builds)
		updated[i].Status = u.Status
		return s.with(u.Project, updated)
	case KindProjectDeleted:
		name := payloadOf[ProjectRef](a).Name
		if _, ok := s.ByProject[name]; !ok {
			return s
		}
		next := maps.Clone(s.ByProject)
		delete(next, name)
		return &Builds{ByProject: next}
	}
	return s
}

func (s *Builds) with(project string, builds []Build) *Builds {
	next := maps.Clone(s.ByProject)
	if next == nil {
		next = make(map[string][]Build, 1)
	}
	next[project] = builds
	return &Builds{ByProject: next}
}
