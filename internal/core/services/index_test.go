package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/internal/chunker"
	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/extractors"
	"github.com/formpilot/formpilot/internal/extractors/plaintext"
)

type indexFixture struct {
	service   *IndexService
	docStore  *fakeDocStore
	snapStore *fakeSnapStore
	embedder  *fakeEmbedder
}

func newIndexFixture() *indexFixture {
	docStore := newFakeDocStore()
	snapStore := &fakeSnapStore{}
	embedder := newFakeEmbedder()
	service := NewIndexService(
		docStore,
		extractors.NewRegistry(plaintext.New()),
		embedder,
		snapStore,
		chunker.New(),
	)
	return &indexFixture{
		service:   service,
		docStore:  docStore,
		snapStore: snapStore,
		embedder:  embedder,
	}
}

func TestIndexService_SnapshotStartsEmpty(t *testing.T) {
	fx := newIndexFixture()

	snap := fx.service.Snapshot()
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())
	assert.False(t, fx.service.Stale())
}

func TestIndexService_Rebuild(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))
	require.NoError(t, fx.docStore.Save(ctx, "resume.txt", []byte("Software engineer, ten years")))

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 2, stats.Chunks)
	assert.Equal(t, 2, stats.Embedded)
	assert.Equal(t, 0, stats.Reused)
	assert.Equal(t, 0, stats.Skipped)

	snap := fx.service.Snapshot()
	assert.Len(t, snap.Records, 2)
	assert.Equal(t, "test-embed", snap.Model)
	assert.Equal(t, 3, snap.Dimensions)
	assert.Equal(t, 1, snap.Version)
	assert.False(t, snap.BuiltAt.IsZero())

	// The snapshot was persisted, not just swapped in memory.
	persisted, err := fx.snapStore.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, persisted.Version)
}

func TestIndexService_RebuildReusesCachedVectors(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))
	require.NoError(t, fx.docStore.Save(ctx, "resume.txt", []byte("Software engineer, ten years")))

	_, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, fx.embedder.batchCalls)

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Embedded)
	assert.Equal(t, 2, stats.Reused)
	assert.Equal(t, 1, fx.embedder.batchCalls, "unchanged chunks must not be re-embedded")
	assert.Equal(t, 2, fx.service.Snapshot().Version)
}

func TestIndexService_RebuildEmbedsOnlyNewChunks(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))

	_, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	require.NoError(t, fx.docStore.Save(ctx, "skills.txt", []byte("Go, SQL, Kubernetes")))

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Embedded)
	assert.Equal(t, 1, stats.Reused)
	require.Equal(t, 2, fx.embedder.batchCalls)
	assert.Equal(t, []string{"Go, SQL, Kubernetes"}, fx.embedder.batchTexts[1])
}

func TestIndexService_RebuildDeduplicatesIdenticalChunks(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "a.txt", []byte("Phone: +1 555 123 4567")))
	require.NoError(t, fx.docStore.Save(ctx, "b.txt", []byte("Phone: +1 555 123 4567")))

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 1, stats.Chunks)
	assert.Equal(t, 1, stats.Embedded)

	snap := fx.service.Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "a.txt", snap.Records[0].Source, "first-seen document wins attribution")
}

func TestIndexService_RebuildModelChangeForcesReembed(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))

	_, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	fx.embedder.model = "other-embed"

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Embedded)
	assert.Equal(t, 0, stats.Reused)
	assert.Equal(t, "other-embed", fx.service.Snapshot().Model)
}

func TestIndexService_RebuildDropsDeletedDocuments(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "keep.txt", []byte("Email: jane@example.com")))
	require.NoError(t, fx.docStore.Save(ctx, "drop.txt", []byte("An old address")))

	_, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)
	require.Len(t, fx.service.Snapshot().Records, 2)

	require.NoError(t, fx.docStore.Delete(ctx, "drop.txt"))

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Chunks)
	snap := fx.service.Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "keep.txt", snap.Records[0].Source)
}

func TestIndexService_RebuildSkipsUnextractableDocuments(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "good.txt", []byte("Email: jane@example.com")))
	// No PDF extractor is registered in this fixture.
	require.NoError(t, fx.docStore.Save(ctx, "broken.pdf", []byte("%PDF-garbage")))

	stats, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Chunks)
}

func TestIndexService_RebuildEmbedderUnreachable(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))
	fx.embedder.pingErr = errors.New("connection refused")

	_, err := fx.service.Rebuild(ctx)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.True(t, fx.service.Snapshot().Empty(), "failed rebuild must not touch the snapshot")
}

func TestIndexService_RebuildEmbeddingFailureKeepsPriorSnapshot(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))

	_, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)

	require.NoError(t, fx.docStore.Save(ctx, "skills.txt", []byte("Go, SQL, Kubernetes")))
	fx.embedder.embedErr = errors.New("model crashed")

	_, err = fx.service.Rebuild(ctx)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	snap := fx.service.Snapshot()
	assert.Equal(t, 1, snap.Version)
	assert.Len(t, snap.Records, 1)
}

func TestIndexService_RebuildPersistFailureKeepsPriorSnapshot(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	require.NoError(t, fx.docStore.Save(ctx, "contact.txt", []byte("Email: jane@example.com")))
	fx.snapStore.persistErr = errors.New("disk full")

	_, err := fx.service.Rebuild(ctx)
	require.Error(t, err)
	assert.True(t, fx.service.Snapshot().Empty())
}

func TestIndexService_ConcurrentRebuildRejected(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()
	fx.embedder.pingEntered = make(chan struct{})
	fx.embedder.pingRelease = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := fx.service.Rebuild(ctx)
		done <- err
	}()

	// Wait until the first rebuild holds the lock inside Ping.
	<-fx.embedder.pingEntered

	_, err := fx.service.Rebuild(ctx)
	assert.ErrorIs(t, err, domain.ErrRebuildInProgress)

	close(fx.embedder.pingRelease)
	require.NoError(t, <-done)
}

func TestIndexService_RebuildClearsStaleness(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()

	fx.service.MarkStale()
	require.True(t, fx.service.Stale())

	_, err := fx.service.Rebuild(ctx)
	require.NoError(t, err)
	assert.False(t, fx.service.Stale())
}

func TestIndexService_Load(t *testing.T) {
	fx := newIndexFixture()
	ctx := context.Background()

	persisted := makeSnapshot(
		domain.EmbeddingRecord{Fingerprint: "a", Vector: []float32{1, 0, 0}, Text: "hello", Source: "a.txt"},
	)
	persisted.Version = 7
	require.NoError(t, fx.snapStore.Persist(ctx, persisted))

	require.NoError(t, fx.service.Load(ctx))

	snap := fx.service.Snapshot()
	assert.Equal(t, 7, snap.Version)
	assert.Len(t, snap.Records, 1)
}
