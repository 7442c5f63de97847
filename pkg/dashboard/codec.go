package dashboard

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/bft-labs/builderstore/pkg/store"
)

// decoders maps every kind that carries a payload to its payload decoder.
var decoders = map[string]func([]byte) (any, error){
	KindSignIn:          decodeAs[Session],
	KindSessionRestored: decodeAs[Session],

	KindOriginsFetchDone:   decodeAs[OriginsLoaded],
	KindOriginsFetchFailed: decodeAs[FetchFailed],
	KindOriginSetCurrent:   decodeAs[Origin],
	KindOriginCreated:      decodeAs[Origin],

	KindPackagesFetchDone:   decodeAs[PackagesLoaded],
	KindPackagesFetchFailed: decodeAs[FetchFailed],
	KindPackageSetCurrent:   decodeAs[Package],

	KindProjectsFetchDone:   decodeAs[ProjectsLoaded],
	KindProjectsFetchFailed: decodeAs[FetchFailed],
	KindProjectCreated:      decodeAs[Project],
	KindProjectDeleted:      decodeAs[ProjectRef],
	KindProjectSetCurrent:   decodeAs[Project],

	KindBuildQueued: decodeAs[Build],
	KindBuildStatus: decodeAs[BuildUpdate],

	KindNotificationAdd:    decodeAs[Notification],
	KindNotificationRemove: decodeAs[NotificationRef],

	KindRouteChanged: decodeAs[Route],
}

func decodeAs[T any](raw []byte) (any, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode builds a typed action from a loosely typed payload, as read from
// an action script. Kinds without a payload ignore it; unknown kinds decode
// to a bare action, which the store treats as a no-op.
func Decode(kind string, payload map[string]any) (store.Action, error) {
	dec, ok := decoders[kind]
	if !ok {
		return store.NewAction(kind, nil), nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return store.Action{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	v, err := dec(raw)
	if err != nil {
		return store.Action{}, fmt.Errorf("decode %s payload: %w", kind, err)
	}

	switch p := v.(type) {
	case Session:
		if kind == KindSignIn {
			return SignIn(p), nil
		}
	case Build:
		return BuildQueued(p), nil
	case BuildUpdate:
		if !p.Status.Valid() {
			return store.Action{}, fmt.Errorf("decode %s payload: unknown build status %q", kind, p.Status)
		}
	case Notification:
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Level == "" {
			p.Level = LevelInfo
		}
		return store.NewAction(kind, p), nil
	}
	return store.NewAction(kind, v), nil
}

// Kinds returns every action kind the dashboard reducers handle.
func Kinds() []string {
	return []string{
		KindSignIn, KindSignOut, KindSessionRestored,
		KindOriginsFetchStart, KindOriginsFetchDone, KindOriginsFetchFailed, KindOriginSetCurrent, KindOriginCreated,
		KindPackagesFetchStart, KindPackagesFetchDone, KindPackagesFetchFailed, KindPackageSetCurrent,
		KindProjectsFetchStart, KindProjectsFetchDone, KindProjectsFetchFailed,
		KindProjectCreated, KindProjectDeleted, KindProjectSetCurrent,
		KindBuildQueued, KindBuildStatus,
		KindNotificationAdd, KindNotificationRemove,
		KindRouteChanged, KindSideNavToggle,
	}
}
