// Package plaintext extracts text from plain text documents.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Formats returns the document formats this extractor handles.
func (e *Extractor) Formats() []domain.DocumentFormat {
	return []domain.DocumentFormat{domain.FormatTXT}
}

// Extract returns the file content as text.
// Content that is not valid UTF-8 is treated as a failed extraction
// rather than indexed as garbage.
func (e *Extractor) Extract(_ context.Context, name string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrExtractionFailed, name)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", fmt.Errorf("%w: %s contains no text", domain.ErrExtractionFailed, name)
	}

	return text, nil
}
