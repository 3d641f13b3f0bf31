package memory

import (
	"context"
	"sync"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap *domain.Snapshot
}

// NewSnapshotStore creates an empty in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Load reads the stored snapshot; empty when nothing was persisted.
func (s *SnapshotStore) Load(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return domain.EmptySnapshot(), nil
	}
	return s.snap, nil
}

// Persist replaces the stored snapshot.
func (s *SnapshotStore) Persist(_ context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
	return nil
}
