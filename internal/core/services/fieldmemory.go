package services

import (
	"context"
	"errors"
	"time"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
	"github.com/formpilot/formpilot/internal/logger"
)

// Ensure FieldMemoryService implements the interface.
var _ driving.FieldMemoryService = (*FieldMemoryService)(nil)

// FieldMemoryService tracks which form fields the user rejected
// suggestions for and which answers they accepted. Rejections suppress
// generation entirely; accepted answers pre-empt retrieval.
type FieldMemoryService struct {
	store driven.FieldMemoryStore
}

// NewFieldMemoryService creates a field memory service.
func NewFieldMemoryService(store driven.FieldMemoryStore) *FieldMemoryService {
	return &FieldMemoryService{store: store}
}

// IsRejected reports whether suggestions for a field are suppressed.
// Store failures are treated as "not rejected": a broken memory must
// not block form filling.
func (s *FieldMemoryService) IsRejected(ctx context.Context, fieldID, pageURL string) bool {
	if fieldID == "" {
		return false
	}
	rejected, err := s.store.IsRejected(ctx, fieldID, pageURL)
	if err != nil {
		logger.Warn("Rejection lookup failed for %q: %v", fieldID, err)
		return false
	}
	return rejected
}

// Reject idempotently suppresses future suggestions for a field on a page.
func (s *FieldMemoryService) Reject(ctx context.Context, fieldID, pageURL string) error {
	if fieldID == "" {
		return domain.ErrInvalidInput
	}
	return s.store.AddRejection(ctx, fieldID, pageURL)
}

// ClearRejections removes rejections for a page, or every rejection
// when pageURL is empty.
func (s *FieldMemoryService) ClearRejections(ctx context.Context, pageURL string) error {
	if pageURL == "" {
		return s.store.ClearAllRejections(ctx)
	}
	return s.store.ClearRejections(ctx, pageURL)
}

// RecordAccepted upserts an accepted answer keyed by the normalised
// field context. Later writes win.
func (s *FieldMemoryService) RecordAccepted(ctx context.Context, fieldContext, answer string) error {
	if answer == "" {
		return domain.ErrInvalidInput
	}
	key := domain.NormaliseFieldContext(fieldContext)
	if key == "" {
		return domain.ErrInvalidInput
	}
	return s.store.SaveAccepted(ctx, domain.AcceptedAnswer{
		FieldKey:  key,
		Answer:    answer,
		UpdatedAt: time.Now().UTC(),
	})
}

// AcceptedFor returns a previously accepted answer for a field context.
func (s *FieldMemoryService) AcceptedFor(ctx context.Context, fieldContext string) (string, bool) {
	key := domain.NormaliseFieldContext(fieldContext)
	if key == "" {
		return "", false
	}
	accepted, err := s.store.GetAccepted(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Accepted-answer lookup failed for %q: %v", key, err)
		}
		return "", false
	}
	return accepted.Answer, true
}
