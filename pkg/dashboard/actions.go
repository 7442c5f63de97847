package dashboard

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bft-labs/builderstore/pkg/store"
)

// Action kinds, grouped by the slice that owns them.
const (
	KindSignIn          = "SESSION_SIGN_IN"
	KindSignOut         = "SESSION_SIGN_OUT"
	KindSessionRestored = "SESSION_RESTORED"

	KindOriginsFetchStart  = "ORIGINS_FETCH_START"
	KindOriginsFetchDone   = "ORIGINS_FETCH_DONE"
	KindOriginsFetchFailed = "ORIGINS_FETCH_FAILED"
	KindOriginSetCurrent   = "ORIGIN_SET_CURRENT"
	KindOriginCreated      = "ORIGIN_CREATED"

	KindPackagesFetchStart  = "PACKAGES_FETCH_START"
	KindPackagesFetchDone   = "PACKAGES_FETCH_DONE"
	KindPackagesFetchFailed = "PACKAGES_FETCH_FAILED"
	KindPackageSetCurrent   = "PACKAGE_SET_CURRENT"

	KindProjectsFetchStart  = "PROJECTS_FETCH_START"
	KindProjectsFetchDone   = "PROJECTS_FETCH_DONE"
	KindProjectsFetchFailed = "PROJECTS_FETCH_FAILED"
	KindProjectCreated      = "PROJECT_CREATED"
	KindProjectDeleted      = "PROJECT_DELETED"
	KindProjectSetCurrent   = "PROJECT_SET_CURRENT"

	KindBuildQueued = "BUILD_QUEUED"
	KindBuildStatus = "BUILD_STATUS"

	KindNotificationAdd    = "NOTIFICATION_ADD"
	KindNotificationRemove = "NOTIFICATION_REMOVE"

	KindRouteChanged  = "ROUTE_CHANGED"
	KindSideNavToggle = "SIDENAV_TOGGLE"
)

// ErrBadPayload is the cause reported when an action carries a payload of
// the wrong type for its kind.
var ErrBadPayload = errors.New("dashboard: bad payload")

// Payloads that wrap lists or single fields.
type (
	// FetchFailed carries the error message of a failed request.
	FetchFailed struct {
		Err string `json:"err"`
	}

	OriginsLoaded struct {
		Origins []Origin `json:"origins"`
	}

	PackagesLoaded struct {
		Packages []Package `json:"packages"`
		Total    int       `json:"total"`
	}

	ProjectsLoaded struct {
		Projects []Project `json:"projects"`
	}

	ProjectRef struct {
		Name string `json:"name"`
	}

	BuildUpdate struct {
		ID      string      `json:"id"`
		Project string      `json:"project"`
		Status  BuildStatus `json:"status"`
	}

	NotificationRef struct {
		ID string `json:"id"`
	}

	Route struct {
		Path string `json:"path"`
	}
)

// payloadOf extracts the payload of a. A mismatched type is a programming
// error in the dispatching page; the panic is recovered by the store and
// reported as a rejected transition.
func payloadOf[T any](a store.Action) T {
	p, ok := a.Payload.(T)
	if !ok {
		var want T
		panic(fmt.Errorf("%w: %s wants %T, got %T", ErrBadPayload, a.Kind, want, a.Payload))
	}
	return p
}

func SignIn(s Session) store.Action {
	s.SignedIn = true
	return store.NewAction(KindSignIn, s)
}

func SignOut() store.Action { return store.NewAction(KindSignOut, nil) }

// SessionRestored replays a persisted session.
func SessionRestored(s Session) store.Action { return store.NewAction(KindSessionRestored, s) }

func OriginsFetchStart() store.Action { return store.NewAction(KindOriginsFetchStart, nil) }

func OriginsFetchDone(origins []Origin) store.Action {
	return store.NewAction(KindOriginsFetchDone, OriginsLoaded{Origins: origins})
}

func OriginsFetchFailed(err error) store.Action {
	return store.NewAction(KindOriginsFetchFailed, FetchFailed{Err: err.Error()})
}

func OriginSetCurrent(o Origin) store.Action { return store.NewAction(KindOriginSetCurrent, o) }
func OriginCreated(o Origin) store.Action    { return store.NewAction(KindOriginCreated, o) }

func PackagesFetchStart() store.Action { return store.NewAction(KindPackagesFetchStart, nil) }

func PackagesFetchDone(pkgs []Package, total int) store.Action {
	return store.NewAction(KindPackagesFetchDone, PackagesLoaded{Packages: pkgs, Total: total})
}

func PackagesFetchFailed(err error) store.Action {
	return store.NewAction(KindPackagesFetchFailed, FetchFailed{Err: err.Error()})
}

func PackageSetCurrent(p Package) store.Action { return store.NewAction(KindPackageSetCurrent, p) }

func ProjectsFetchStart() store.Action { return store.NewAction(KindProjectsFetchStart, nil) }

func ProjectsFetchDone(projects []Project) store.Action {
	return store.NewAction(KindProjectsFetchDone, ProjectsLoaded{Projects: projects})
}

func ProjectsFetchFailed(err error) store.Action {
	return store.NewAction(KindProjectsFetchFailed, FetchFailed{Err: err.Error()})
}

func ProjectCreated(p Project) store.Action    { return store.NewAction(KindProjectCreated, p) }
func ProjectSetCurrent(p Project) store.Action { return store.NewAction(KindProjectSetCurrent, p) }

func ProjectDeleted(name string) store.Action {
	return store.NewAction(KindProjectDeleted, ProjectRef{Name: name})
}

func BuildQueued(b Build) store.Action {
	if b.Status == "" {
		b.Status = BuildPending
	}
	return store.NewAction(KindBuildQueued, b)
}

func BuildStatusChanged(id, project string, status BuildStatus) store.Action {
	return store.NewAction(KindBuildStatus, BuildUpdate{ID: id, Project: project, Status: status})
}

// Notify builds a NOTIFICATION_ADD action with a fresh id.
func Notify(level Level, title, body string) store.Action {
	return store.NewAction(KindNotificationAdd, Notification{
		ID:    uuid.NewString(),
		Level: level,
		Title: title,
		Body:  body,
	})
}

func Dismiss(id string) store.Action {
	return store.NewAction(KindNotificationRemove, NotificationRef{ID: id})
}

func RouteChanged(path string) store.Action {
	return store.NewAction(KindRouteChanged, Route{Path: path})
}

func SideNavToggle() store.Action { return store.NewAction(KindSideNavToggle, nil) }
