package persist

import (
	"context"
	"time"

	"github.com/bft-labs/builderstore/pkg/dashboard"
)

// Snapshot is the persisted subset of the dashboard state.
type Snapshot struct {
	Session dashboard.Session `json:"session"`
	SavedAt time.Time         `json:"saved_at"`
}

// Repository loads and saves snapshots.
type Repository interface {
	// Load returns the last saved snapshot, or an empty one and nil when
	// nothing has been saved.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the stored snapshot atomically.
	Save(ctx context.Context, snap Snapshot) error
}
