package driving

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// RebuildStats summarises one index rebuild.
type RebuildStats struct {
	// Documents is the number of documents processed.
	Documents int

	// Chunks is the number of unique chunks in the new snapshot.
	Chunks int

	// Reused is the number of vectors reused from the prior snapshot.
	Reused int

	// Embedded is the number of newly computed vectors.
	Embedded int

	// Skipped is the number of documents skipped due to extraction
	// failures.
	Skipped int
}

// IndexService owns the vector index snapshot.
type IndexService interface {
	// Rebuild recomputes the snapshot from the current document set.
	// Returns domain.ErrRebuildInProgress when a rebuild is running and
	// domain.ErrEmbeddingUnavailable when the embedding backend is down;
	// in both cases the prior snapshot remains authoritative.
	Rebuild(ctx context.Context) (*RebuildStats, error)

	// Snapshot returns the current complete snapshot. Never nil.
	Snapshot() *domain.Snapshot

	// Load restores the persisted snapshot at startup.
	Load(ctx context.Context) error

	// Stale reports whether the knowledge base changed since the
	// snapshot was built.
	Stale() bool
}
