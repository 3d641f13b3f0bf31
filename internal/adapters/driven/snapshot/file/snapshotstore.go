// Package file provides a JSON file backed snapshot store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/logger"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// DefaultFileName is the snapshot file name inside the data directory.
const DefaultFileName = "embeddings.json"

// SnapshotStore persists index snapshots as a single JSON file. Writes
// go through a temp file and rename so readers never observe a partial
// snapshot.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a snapshot store rooted at dataDir. If
// dataDir is empty it defaults to ~/.formpilot/data.
func NewSnapshotStore(dataDir string) (*SnapshotStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".formpilot", "data")
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &SnapshotStore{
		path: filepath.Join(dataDir, DefaultFileName),
	}, nil
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the persisted snapshot. A missing or unreadable file loads
// as an empty snapshot; the next rebuild overwrites it.
func (s *SnapshotStore) Load(_ context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.EmptySnapshot(), nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warn("Snapshot file is corrupt, starting empty: %v", err)
		return domain.EmptySnapshot(), nil
	}

	return &snap, nil
}

// Persist writes the snapshot atomically via temp file and rename.
func (s *SnapshotStore) Persist(_ context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".embeddings-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
