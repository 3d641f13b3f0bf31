package driven

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// Extractor reduces a document of a specific format to plain text.
// Extractors read only the bytes they are handed; they never touch the
// knowledge base.
type Extractor interface {
	// Formats returns the document formats this extractor handles.
	Formats() []domain.DocumentFormat

	// Extract returns the plain text content of the document.
	// Fails with domain.ErrExtractionFailed when the file is corrupt,
	// encrypted, or yields no extractable text.
	Extract(ctx context.Context, name string, content []byte) (string, error)
}
