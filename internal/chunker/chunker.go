// Package chunker splits document text into fixed-size overlapping windows.
package chunker

import (
	"github.com/formpilot/formpilot/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunker cuts text into windows of at most chunkSize characters where
// each consecutive pair overlaps by exactly overlap characters. The split
// is purely length-based and deterministic; no word or sentence boundary
// detection is applied.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave a positive stride
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split cuts text into chunks attributed to the named source document.
// Text no longer than the chunk size yields exactly one chunk. Emission
// stops as soon as a window reaches the end of the text, so the final
// chunk may be shorter than the chunk size but still overlaps the
// previous one by exactly the configured overlap. Empty text yields no
// chunks.
func (c *Chunker) Split(source, text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	// Window in runes, not bytes: multibyte text must never be cut
	// mid-rune, and size/overlap count characters.
	runes := []rune(text)

	stride := c.chunkSize - c.overlap
	estimated := len(runes)/stride + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start := 0; start < len(runes); start += stride {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		piece := string(runes[start:end])
		chunks = append(chunks, domain.Chunk{
			Source:      source,
			Ordinal:     len(chunks),
			Text:        piece,
			Fingerprint: domain.Fingerprint(piece),
		})

		if end == len(runes) {
			break
		}
	}

	return chunks
}
