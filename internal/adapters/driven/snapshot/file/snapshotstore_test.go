package file

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/internal/core/domain"
)

func TestLoad_MissingFile(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestLoad_CorruptFile(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestPersistAndLoad(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	snap := &domain.Snapshot{
		Records: []domain.EmbeddingRecord{
			{
				Fingerprint: "abc123",
				Source:      "resume.pdf",
				Ordinal:     0,
				Text:        "Jane Doe, software engineer",
				Vector:      []float32{0.1, 0.2, 0.3},
			},
		},
		Model:      "nomic-embed-text",
		Dimensions: 3,
		BuiltAt:    time.Now().UTC().Truncate(time.Second),
		Version:    1,
	}

	require.NoError(t, store.Persist(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Records, loaded.Records)
	assert.Equal(t, snap.Model, loaded.Model)
	assert.Equal(t, snap.Dimensions, loaded.Dimensions)
	assert.Equal(t, snap.Version, loaded.Version)
}

func TestPersist_ReplacesPrior(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := &domain.Snapshot{Model: "model-a", Version: 1}
	second := &domain.Snapshot{Model: "model-b", Version: 2}

	require.NoError(t, store.Persist(ctx, first))
	require.NoError(t, store.Persist(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "model-b", loaded.Model)
	assert.Equal(t, 2, loaded.Version)
}
