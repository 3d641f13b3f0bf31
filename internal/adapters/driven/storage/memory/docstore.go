package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// storedDoc holds a document's bytes and metadata.
type storedDoc struct {
	content []byte
	modTime time.Time
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]storedDoc
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]storedDoc)}
}

// Save stores a document's raw bytes under its name.
func (s *DocumentStore) Save(_ context.Context, name string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(content))
	copy(copied, content)
	s.docs[name] = storedDoc{content: copied, modTime: time.Now().UTC()}
	return nil
}

// Read returns the raw bytes of a document.
func (s *DocumentStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc.content, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, name)
	return nil
}

// List returns metadata for all stored documents, sorted by name.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.docs))
	for name, stored := range s.docs {
		format, _ := domain.FormatFromName(name)
		docs = append(docs, domain.Document{
			Name:    name,
			Format:  format,
			Size:    int64(len(stored.content)),
			ModTime: stored.modTime,
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
