package dashboard

import (
	"slices"

	"github.com/bft-labs/builderstore/pkg/store"
)

// Projects is the build projects slice.
type Projects struct {
	All     []Project
	Current Project
	Loading bool
	Err     string
}

// Find returns the project with the given origin/name.
func (p *Projects) Find(name string) (Project, bool) {
	for _, pr := range p.All {
		if pr.Name() == name {
			return pr, true
		}
	}
	return Project{}, false
}

// ReduceProjects owns the projects slice.
func ReduceProjects(s *Projects, a store.Action) *Projects {
	switch a.Kind {
	case KindProjectsFetchStart:
		if s.Loading && s.Err == "" {
			return s
		}
		next := *s
		next.Loading, next.Err = true, ""
		return &next
	case KindProjectsFetchDone:
		next := *s
		next.All = slices.Clone(payloadOf[ProjectsLoaded](a).Projects)
		next.Loading, next.Err = false, ""
		return &next
	case KindProjectsFetchFailed:
		next := *s
		next.Loading, next.Err = false, payloadOf[FetchFailed](a).Err
		return &next
	case KindProjectCreated:
		p := payloadOf[Project](a)
		next := *s
		next.All = slices.Clone(s.All)
		if i := slices.IndexFunc(next.All, func(x Project) bool { return x.Name() == p.Name() }); i >= 0 {
			next.All[i] = p
		} else {
			next.All = append(next.All, p)
		}
		next.Current = p
		return &next
	case KindProjectDeleted:
		name := payloadOf[ProjectRef](a).Name
		i := slices.IndexFunc(s.All, func(x Project) bool { return x.Name() == name })
		if i < 0 {
			return s
		}
		next := *s
		next.All = slices.Delete(slices.Clone(s.All), i, i+1)
		if s.Current.Name() == name {
			next.Current = Project{}
		}
		return &next
	case KindProjectSetCurrent:
		p := payloadOf[Project](a)
		if p == s.Current {
			return s
		}
		next := *s
		next.Current = p
		return &next
	}
	return s
}
