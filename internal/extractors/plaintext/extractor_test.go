package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/internal/core/domain"
)

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
}

func TestFormats(t *testing.T) {
	e := New()
	assert.Equal(t, []domain.DocumentFormat{domain.FormatTXT}, e.Formats())
}

func TestExtract(t *testing.T) {
	e := New()
	ctx := context.Background()

	text, err := e.Extract(ctx, "notes.txt", []byte("  Contact: jane@example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, "Contact: jane@example.com", text)
}

func TestExtract_Empty(t *testing.T) {
	e := New()
	ctx := context.Background()

	_, err := e.Extract(ctx, "empty.txt", []byte("   \n\t "))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_InvalidUTF8(t *testing.T) {
	e := New()
	ctx := context.Background()

	_, err := e.Extract(ctx, "binary.txt", []byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
