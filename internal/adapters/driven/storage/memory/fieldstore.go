// Package memory provides in-memory store implementations.
// Used for tests and as a fallback when persistence is unavailable.
package memory

import (
	"context"
	"sync"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Ensure FieldMemoryStore implements the interface.
var _ driven.FieldMemoryStore = (*FieldMemoryStore)(nil)

// rejectionKey identifies a rejection by field and page.
type rejectionKey struct {
	fieldID string
	pageURL string
}

// FieldMemoryStore is an in-memory implementation of driven.FieldMemoryStore.
// A single RWMutex serialises writers so concurrent rejections and
// acceptances cannot lose updates.
type FieldMemoryStore struct {
	mu       sync.RWMutex
	rejected map[rejectionKey]domain.Rejection
	accepted map[string]domain.AcceptedAnswer
}

// NewFieldMemoryStore creates an empty in-memory field memory store.
func NewFieldMemoryStore() *FieldMemoryStore {
	return &FieldMemoryStore{
		rejected: make(map[rejectionKey]domain.Rejection),
		accepted: make(map[string]domain.AcceptedAnswer),
	}
}

// IsRejected reports whether a field on a page is rejected.
func (s *FieldMemoryStore) IsRejected(_ context.Context, fieldID, pageURL string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rejected[rejectionKey{fieldID, pageURL}]
	return ok, nil
}

// AddRejection idempotently records a rejection.
func (s *FieldMemoryStore) AddRejection(_ context.Context, fieldID, pageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rejectionKey{fieldID, pageURL}
	if _, ok := s.rejected[key]; ok {
		return nil
	}
	s.rejected[key] = domain.Rejection{FieldID: fieldID, PageURL: pageURL}
	return nil
}

// ClearRejections removes all rejections for a page.
func (s *FieldMemoryStore) ClearRejections(_ context.Context, pageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.rejected {
		if key.pageURL == pageURL {
			delete(s.rejected, key)
		}
	}
	return nil
}

// ClearAllRejections removes every rejection.
func (s *FieldMemoryStore) ClearAllRejections(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejected = make(map[rejectionKey]domain.Rejection)
	return nil
}

// SaveAccepted upserts an accepted answer by its field key.
func (s *FieldMemoryStore) SaveAccepted(_ context.Context, accepted domain.AcceptedAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accepted[accepted.FieldKey] = accepted
	return nil
}

// GetAccepted returns the accepted answer for a field key.
func (s *FieldMemoryStore) GetAccepted(_ context.Context, fieldKey string) (*domain.AcceptedAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accepted, ok := s.accepted[fieldKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &accepted, nil
}
