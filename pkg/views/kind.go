package views

import "fmt"

// Kind identifies a page view.
type Kind int

const (
	KindExplore Kind = iota
	KindSignIn
	KindOrigins
	KindOrigin
	KindOriginCreate
	KindPackages
	KindPackage
	KindProjects
	KindProject
	KindProjectCreate
	KindProjectSettings
	KindOrganizations
	KindOrganizationCreate
	KindSCMRepos
)

var kindNames = [...]string{
	KindExplore:            "explore",
	KindSignIn:             "sign-in",
	KindOrigins:            "origins",
	KindOrigin:             "origin",
	KindOriginCreate:       "origin-create",
	KindPackages:           "packages",
	KindPackage:            "package",
	KindProjects:           "projects",
	KindProject:            "project",
	KindProjectCreate:      "project-create",
	KindProjectSettings:    "project-settings",
	KindOrganizations:      "organizations",
	KindOrganizationCreate: "organization-create",
	KindSCMRepos:           "scm-repos",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every view kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view kind %q", s)
}
