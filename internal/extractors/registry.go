package extractors

import (
	"context"
	"fmt"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/extractors/docx"
	"github.com/formpilot/formpilot/internal/extractors/pdf"
	"github.com/formpilot/formpilot/internal/extractors/plaintext"
)

// Registry maps document formats to extractors.
type Registry struct {
	byFormat map[domain.DocumentFormat]driven.Extractor
}

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byFormat: make(map[domain.DocumentFormat]driven.Extractor),
	}
	for _, e := range extractors {
		for _, f := range e.Formats() {
			r.byFormat[f] = e
		}
	}
	return r
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		plaintext.New(),
		docx.New(),
		pdf.New(),
	)
}

// Extract resolves the extractor for the document's format and runs it.
// Returns domain.ErrUnsupportedFormat for formats with no extractor.
func (r *Registry) Extract(ctx context.Context, doc domain.Document, content []byte) (string, error) {
	e, ok := r.byFormat[doc.Format]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, doc.Format)
	}
	return e.Extract(ctx, doc.Name, content)
}

// Supports reports whether the registry has an extractor for the format.
func (r *Registry) Supports(format domain.DocumentFormat) bool {
	_, ok := r.byFormat[format]
	return ok
}
