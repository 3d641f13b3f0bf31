// Package pdf extracts text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Formats returns the document formats this extractor handles.
func (e *Extractor) Formats() []domain.DocumentFormat {
	return []domain.DocumentFormat{domain.FormatPDF}
}

// Extract parses the PDF and returns its plain text.
// Encrypted or corrupt files fail, as do PDFs with no extractable text
// such as scanned images (OCR is out of scope).
func (e *Extractor) Extract(_ context.Context, name string, content []byte) (text string, err error) {
	// The pdf library panics on some malformed files; treat a panic as
	// a failed extraction.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: malformed PDF", domain.ErrExtractionFailed, name)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, name, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, name, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, name, err)
	}

	text = strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("%w: %s has no extractable text", domain.ErrExtractionFailed, name)
	}

	return text, nil
}
