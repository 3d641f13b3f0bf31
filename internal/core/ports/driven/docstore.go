package driven

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// DocumentStore persists the knowledge base files.
// Backed by a directory on disk; documents are immutable once stored
// except for deletion.
type DocumentStore interface {
	// Save stores a document's raw bytes under its name.
	Save(ctx context.Context, name string, content []byte) error

	// Read returns the raw bytes of a document.
	// Returns domain.ErrNotFound for unknown names.
	Read(ctx context.Context, name string) ([]byte, error)

	// Delete removes a document. Its chunks disappear from the vector
	// store on the next rebuild.
	Delete(ctx context.Context, name string) error

	// List returns metadata for all stored documents.
	List(ctx context.Context) ([]domain.Document, error)
}
