package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
	"github.com/formpilot/formpilot/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// maxDocumentSize caps uploads at 20 MiB.
const maxDocumentSize = 20 << 20

// DocumentService manages the knowledge base files.
// Mutations mark the index stale; the next rebuild picks them up.
type DocumentService struct {
	store driven.DocumentStore
	index interface{ MarkStale() }
}

// NewDocumentService creates a document service. The index argument may
// be nil when no staleness tracking is wanted (tests).
func NewDocumentService(store driven.DocumentStore, index interface{ MarkStale() }) *DocumentService {
	return &DocumentService{store: store, index: index}
}

// Upload stores a new document in the knowledge base.
func (s *DocumentService) Upload(ctx context.Context, name string, content []byte) (*domain.Document, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(content) > maxDocumentSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, maxDocumentSize)
	}

	format, ok := domain.FormatFromName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}

	if err := s.store.Save(ctx, name, content); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.markStale()
	logger.Info("Stored document %s (%d bytes)", name, len(content))

	return &domain.Document{
		Name:   name,
		Format: format,
		Size:   int64(len(content)),
	}, nil
}

// Delete removes a document. Its chunks are purged from the vector
// store on the next rebuild.
func (s *DocumentService) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	s.markStale()
	logger.Info("Deleted document %s", name)
	return nil
}

// List returns metadata for all documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.List(ctx)
}

func (s *DocumentService) markStale() {
	if s.index != nil {
		s.index.MarkStale()
	}
}

// validateName rejects empty names and anything that could escape the
// knowledge directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid name %q", domain.ErrInvalidInput, name)
	}
	return nil
}
