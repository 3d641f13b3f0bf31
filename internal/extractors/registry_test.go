package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/internal/core/domain"
)

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.True(t, r.Supports(domain.FormatTXT))
	assert.True(t, r.Supports(domain.FormatDOCX))
	assert.True(t, r.Supports(domain.FormatPDF))
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	r := NewDefaultRegistry()
	doc := domain.Document{Name: "image.png", Format: "png"}

	_, err := r.Extract(context.Background(), doc, []byte("data"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtract_Plaintext(t *testing.T) {
	r := NewDefaultRegistry()
	doc := domain.Document{Name: "notes.txt", Format: domain.FormatTXT}

	text, err := r.Extract(context.Background(), doc, []byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}
