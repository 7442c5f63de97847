package dashboard

import "fmt"

// Session is the signed-in user.
type Session struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	GitHubOrg string `json:"github_org"`
	SignedIn  bool   `json:"signed_in"`
}

// Origin is a package namespace.
type Origin struct {
	Name              string `json:"name"`
	OwnerID           string `json:"owner_id"`
	PrivateKeyName    string `json:"private_key_name"`
	DefaultVisibility string `json:"default_visibility"`
}

// Package identifies one released artifact.
type Package struct {
	Origin    string   `json:"origin"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Release   string   `json:"release"`
	Channels  []string `json:"channels"`
	Platforms []string `json:"platforms"`
}

// Ident renders origin/name[/version[/release]].
func (p Package) Ident() string {
	id := p.Origin + "/" + p.Name
	if p.Version != "" {
		id += "/" + p.Version
		if p.Release != "" {
			id += "/" + p.Release
		}
	}
	return id
}

// Project ties a package to the repository it is built from.
type Project struct {
	Origin      string `json:"origin"`
	PackageName string `json:"package_name"`
	VCSType     string `json:"vcs_type"`
	VCSRepo     string `json:"vcs_repo"`
	PlanPath    string `json:"plan_path"`
}

// Name renders origin/package_name.
func (p Project) Name() string {
	return p.Origin + "/" + p.PackageName
}

// BuildStatus is the state of a build job.
type BuildStatus string

const (
	BuildPending    BuildStatus = "pending"
	BuildDispatched BuildStatus = "dispatched"
	BuildComplete   BuildStatus = "complete"
	BuildFailed     BuildStatus = "failed"
)

// Valid reports whether s is a known status.
func (s BuildStatus) Valid() bool {
	switch s {
	case BuildPending, BuildDispatched, BuildComplete, BuildFailed:
		return true
	}
	return false
}

// Build is one build job for a project.
type Build struct {
	ID      string      `json:"id"`
	Project string      `json:"project"`
	Status  BuildStatus `json:"status"`
}

// Level is a notification severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notification is a banner message.
type Notification struct {
	ID    string `json:"id"`
	Level Level  `json:"level"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s: %s", n.Level, n.Title, n.Body)
}
