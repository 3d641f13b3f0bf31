package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/formpilot/formpilot/internal/chunker"
	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
	"github.com/formpilot/formpilot/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// pingTimeout bounds the embedding backend reachability check.
const pingTimeout = 5 * time.Second

// TextExtractor resolves and runs the extractor for a document.
// Satisfied by extractors.Registry.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.Document, content []byte) (string, error)
}

// IndexService owns the vector index snapshot. Rebuilds produce a new
// complete snapshot and swap an atomic reference; queries read the
// reference once and never observe a partial index.
type IndexService struct {
	docStore  driven.DocumentStore
	extractor TextExtractor
	embedder  driven.EmbeddingService
	snapStore driven.SnapshotStore
	splitter  *chunker.Chunker

	// rebuildMu serialises rebuilds; TryLock turns contention into
	// ErrRebuildInProgress instead of queueing.
	rebuildMu sync.Mutex

	current atomic.Pointer[domain.Snapshot]
	stale   atomic.Bool
}

// NewIndexService creates an index service. The snapshot starts empty
// until Load or Rebuild is called.
func NewIndexService(
	docStore driven.DocumentStore,
	extractor TextExtractor,
	embedder driven.EmbeddingService,
	snapStore driven.SnapshotStore,
	splitter *chunker.Chunker,
) *IndexService {
	s := &IndexService{
		docStore:  docStore,
		extractor: extractor,
		embedder:  embedder,
		snapStore: snapStore,
		splitter:  splitter,
	}
	s.current.Store(domain.EmptySnapshot())
	return s
}

// Snapshot returns the current complete snapshot. Never nil.
func (s *IndexService) Snapshot() *domain.Snapshot {
	return s.current.Load()
}

// Stale reports whether the knowledge base changed since the snapshot
// was built.
func (s *IndexService) Stale() bool {
	return s.stale.Load()
}

// MarkStale flags the snapshot as out of date. Called by the knowledge
// directory watcher and after document uploads and deletions.
func (s *IndexService) MarkStale() {
	s.stale.Store(true)
}

// Load restores the persisted snapshot at startup. A missing or corrupt
// snapshot file loads as an empty index.
func (s *IndexService) Load(ctx context.Context) error {
	snap, err := s.snapStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	s.current.Store(snap)
	logger.Info("Loaded snapshot v%d with %d records", snap.Version, len(snap.Records))
	return nil
}

// Rebuild recomputes the snapshot from the current document set.
// Vectors for unchanged chunk fingerprints are reused from the prior
// snapshot; only new fingerprints are embedded. On any failure the
// prior snapshot remains authoritative and unchanged.
func (s *IndexService) Rebuild(ctx context.Context) (*driving.RebuildStats, error) {
	if !s.rebuildMu.TryLock() {
		return nil, domain.ErrRebuildInProgress
	}
	defer s.rebuildMu.Unlock()

	logger.Section("Index Rebuild")

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.embedder.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	logger.Debug("Processing %d documents", len(docs))

	stats := &driving.RebuildStats{Documents: len(docs)}

	// Collect unique chunks in first-seen order. Identical text across
	// files shares one fingerprint and therefore one record.
	var order []string
	chunkByFP := make(map[string]domain.Chunk)

	for _, doc := range docs {
		content, err := s.docStore.Read(ctx, doc.Name)
		if err != nil {
			logger.Warn("Skipping %s: %v", doc.Name, err)
			stats.Skipped++
			continue
		}

		text, err := s.extractor.Extract(ctx, doc, content)
		if err != nil {
			logger.Warn("Skipping %s: %v", doc.Name, err)
			stats.Skipped++
			continue
		}

		chunks := s.splitter.Split(doc.Name, text)
		logger.Debug("%s: %d chunks", doc.Name, len(chunks))

		for _, chunk := range chunks {
			if _, seen := chunkByFP[chunk.Fingerprint]; seen {
				continue
			}
			chunkByFP[chunk.Fingerprint] = chunk
			order = append(order, chunk.Fingerprint)
		}
	}

	prior := s.current.Load()
	cached := s.cachedVectors(prior)

	// Embed only fingerprints absent from the prior snapshot.
	var missing []string
	for _, fp := range order {
		if _, ok := cached[fp]; !ok {
			missing = append(missing, fp)
		}
	}

	vectors := make(map[string][]float32, len(order))
	for fp, vec := range cached {
		vectors[fp] = vec
	}

	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for i, fp := range missing {
			texts[i] = chunkByFP[fp].Text
		}

		logger.Debug("Embedding %d new chunks (%d cached)", len(missing), len(order)-len(missing))
		embedded, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
		}
		if len(embedded) != len(missing) {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts",
				domain.ErrEmbeddingUnavailable, len(embedded), len(missing))
		}
		for i, fp := range missing {
			vectors[fp] = embedded[i]
		}
	}

	stats.Embedded = len(missing)
	stats.Reused = len(order) - len(missing)
	stats.Chunks = len(order)

	records := make([]domain.EmbeddingRecord, 0, len(order))
	for _, fp := range order {
		chunk := chunkByFP[fp]
		records = append(records, domain.EmbeddingRecord{
			Fingerprint: fp,
			Vector:      vectors[fp],
			Text:        chunk.Text,
			Source:      chunk.Source,
			Ordinal:     chunk.Ordinal,
		})
	}

	snap := &domain.Snapshot{
		Records:    records,
		Model:      s.embedder.ModelName(),
		Dimensions: s.embedder.Dimensions(),
		BuiltAt:    time.Now().UTC(),
		Version:    prior.Version + 1,
	}

	if err := s.snapStore.Persist(ctx, snap); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}

	s.current.Store(snap)
	s.stale.Store(false)

	logger.Info("Snapshot v%d built: %d records (%d embedded, %d reused)",
		snap.Version, stats.Chunks, stats.Embedded, stats.Reused)

	return stats, nil
}

// cachedVectors returns the prior snapshot's vectors keyed by
// fingerprint. Vectors from a different embedding model are not reused.
func (s *IndexService) cachedVectors(prior *domain.Snapshot) map[string][]float32 {
	if prior.Empty() || prior.Model != s.embedder.ModelName() {
		return map[string][]float32{}
	}
	cached := make(map[string][]float32, len(prior.Records))
	for i := range prior.Records {
		cached[prior.Records[i].Fingerprint] = prior.Records[i].Vector
	}
	return cached
}
