package driving

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// DocumentService manages the knowledge base files.
type DocumentService interface {
	// Upload stores a new document. The format must be supported and the
	// name must be a plain file name without path separators.
	Upload(ctx context.Context, name string, content []byte) (*domain.Document, error)

	// Delete removes a document from the set consumed by the next rebuild.
	Delete(ctx context.Context, name string) error

	// List returns metadata for all documents, for display.
	List(ctx context.Context) ([]domain.Document, error)
}

// FieldMemoryService tracks per-field accepted answers and rejections.
type FieldMemoryService interface {
	// IsRejected reports whether suggestions for a field are suppressed.
	IsRejected(ctx context.Context, fieldID, pageURL string) bool

	// Reject idempotently suppresses future suggestions for a field.
	Reject(ctx context.Context, fieldID, pageURL string) error

	// ClearRejections removes rejections for a page, or all rejections
	// when pageURL is empty.
	ClearRejections(ctx context.Context, pageURL string) error

	// RecordAccepted upserts an accepted answer keyed by the normalised
	// field context. Later writes win.
	RecordAccepted(ctx context.Context, fieldContext, answer string) error

	// AcceptedFor returns a previously accepted answer for a field
	// context, or false when none exists.
	AcceptedFor(ctx context.Context, fieldContext string) (string, bool)
}
