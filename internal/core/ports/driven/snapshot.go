package driven

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// SnapshotStore persists the vector index snapshot so startup does not
// require recomputing embeddings.
type SnapshotStore interface {
	// Load reads the persisted snapshot. A missing or corrupt snapshot
	// loads as an empty one; corruption is self-healing, not fatal.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Persist writes the snapshot atomically, replacing any prior one.
	// Readers of the store see either the old or the new snapshot,
	// never a partial write.
	Persist(ctx context.Context, snap *domain.Snapshot) error
}
