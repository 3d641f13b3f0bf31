package services

import (
	"context"
	"sync"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// fakeEmbedder is a deterministic in-memory embedding service. Vectors
// are assigned per text via vecFor, or default to the unit x-axis.
// Call counts let tests assert which pipeline stages ran.
type fakeEmbedder struct {
	mu         sync.Mutex
	model      string
	dims       int
	vecFor     map[string][]float32
	pingErr    error
	embedErr   error
	embedCalls int
	batchCalls int
	batchTexts [][]string

	// pingEntered and pingRelease, when set, turn Ping into a
	// rendezvous point so tests can hold a rebuild mid-flight.
	pingEntered chan struct{}
	pingRelease chan struct{}
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		model:  "test-embed",
		dims:   3,
		vecFor: make(map[string][]float32),
	}
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if vec, ok := f.vecFor[text]; ok {
		return vec
	}
	vec := make([]float32, f.dims)
	vec[0] = 1
	return vec
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	f.batchTexts = append(f.batchTexts, texts)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = f.vector(text)
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimensions() int { return f.dims }

func (f *fakeEmbedder) ModelName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.model
}

func (f *fakeEmbedder) Ping(_ context.Context) error {
	if f.pingEntered != nil {
		f.pingEntered <- struct{}{}
	}
	if f.pingRelease != nil {
		<-f.pingRelease
	}
	return f.pingErr
}

func (f *fakeEmbedder) Close() error { return nil }

// fakeLLM returns a canned answer and records what it was asked.
type fakeLLM struct {
	answer     string
	genErr     error
	pingErr    error
	genCalls   int
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.genCalls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.answer, nil
}

func (f *fakeLLM) ModelName() string { return "test-llm" }

func (f *fakeLLM) Ping(context.Context) error { return f.pingErr }

func (f *fakeLLM) Close() error { return nil }

// fakeIndex serves a fixed snapshot to the query pipeline.
type fakeIndex struct {
	snap *domain.Snapshot
}

var _ driving.IndexService = (*fakeIndex)(nil)

func (f *fakeIndex) Rebuild(context.Context) (*driving.RebuildStats, error) {
	return &driving.RebuildStats{}, nil
}

func (f *fakeIndex) Snapshot() *domain.Snapshot {
	if f.snap == nil {
		return domain.EmptySnapshot()
	}
	return f.snap
}

func (f *fakeIndex) Load(context.Context) error { return nil }

func (f *fakeIndex) Stale() bool { return false }

// fakeDocStore is a map-backed document store.
type fakeDocStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

var _ driven.DocumentStore = (*fakeDocStore)(nil)

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string][]byte)}
}

func (f *fakeDocStore) Save(_ context.Context, name string, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[name] = content
	return nil
}

func (f *fakeDocStore) Read(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.docs[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return content, nil
}

func (f *fakeDocStore) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[name]; !ok {
		return domain.ErrNotFound
	}
	delete(f.docs, name)
	return nil
}

func (f *fakeDocStore) List(_ context.Context) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.docs))
	for name := range f.docs {
		names = append(names, name)
	}
	// Deterministic order, as the directory-backed store lists by name.
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[j] < names[i] {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	docs := make([]domain.Document, 0, len(names))
	for _, name := range names {
		format, _ := domain.FormatFromName(name)
		docs = append(docs, domain.Document{
			Name:   name,
			Format: format,
			Size:   int64(len(f.docs[name])),
		})
	}
	return docs, nil
}

// fakeSnapStore holds one snapshot in memory.
type fakeSnapStore struct {
	mu         sync.Mutex
	snap       *domain.Snapshot
	persistErr error
	persists   int
}

var _ driven.SnapshotStore = (*fakeSnapStore)(nil)

func (f *fakeSnapStore) Load(context.Context) (*domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snap == nil {
		return domain.EmptySnapshot(), nil
	}
	return f.snap, nil
}

func (f *fakeSnapStore) Persist(_ context.Context, snap *domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.persistErr != nil {
		return f.persistErr
	}
	f.snap = snap
	f.persists++
	return nil
}

// fakeFieldStore is a map-backed field memory store. Setting err makes
// every operation fail with it.
type fakeFieldStore struct {
	mu       sync.Mutex
	err      error
	rejected map[string]bool
	accepted map[string]domain.AcceptedAnswer
}

var _ driven.FieldMemoryStore = (*fakeFieldStore)(nil)

func newFakeFieldStore() *fakeFieldStore {
	return &fakeFieldStore{
		rejected: make(map[string]bool),
		accepted: make(map[string]domain.AcceptedAnswer),
	}
}

func rejectionID(fieldID, pageURL string) string {
	return pageURL + "\x00" + fieldID
}

func (f *fakeFieldStore) IsRejected(_ context.Context, fieldID, pageURL string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.rejected[rejectionID(fieldID, pageURL)], nil
}

func (f *fakeFieldStore) AddRejection(_ context.Context, fieldID, pageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rejected[rejectionID(fieldID, pageURL)] = true
	return nil
}

func (f *fakeFieldStore) ClearRejections(_ context.Context, pageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	prefix := pageURL + "\x00"
	for key := range f.rejected {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(f.rejected, key)
		}
	}
	return nil
}

func (f *fakeFieldStore) ClearAllRejections(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rejected = make(map[string]bool)
	return nil
}

func (f *fakeFieldStore) SaveAccepted(_ context.Context, accepted domain.AcceptedAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.accepted[accepted.FieldKey] = accepted
	return nil
}

func (f *fakeFieldStore) GetAccepted(_ context.Context, fieldKey string) (*domain.AcceptedAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	accepted, ok := f.accepted[fieldKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &accepted, nil
}

// fakeConfigStore is a map-backed config store.
type fakeConfigStore struct {
	values    map[string]any
	saveCalls int
}

var _ driven.ConfigStore = (*fakeConfigStore)(nil)

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{values: make(map[string]any)}
}

func (f *fakeConfigStore) Get(key string) (any, bool) {
	value, ok := f.values[key]
	return value, ok
}

func (f *fakeConfigStore) GetString(key string) string {
	if s, ok := f.values[key].(string); ok {
		return s
	}
	return ""
}

func (f *fakeConfigStore) GetInt(key string) int {
	switch v := f.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (f *fakeConfigStore) GetFloat(key string) float64 {
	switch v := f.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (f *fakeConfigStore) GetBool(key string) bool {
	if b, ok := f.values[key].(bool); ok {
		return b
	}
	return false
}

func (f *fakeConfigStore) Set(key string, value any) error {
	f.values[key] = value
	return nil
}

func (f *fakeConfigStore) Save() error {
	f.saveCalls++
	return nil
}

func (f *fakeConfigStore) Load() error { return nil }

func (f *fakeConfigStore) Path() string { return "" }

// stalenessRecorder counts MarkStale calls.
type stalenessRecorder struct {
	calls int
}

func (r *stalenessRecorder) MarkStale() { r.calls++ }
