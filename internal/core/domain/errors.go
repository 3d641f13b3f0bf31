package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a document format with no extractor.
	// Only pdf, docx and plain text are supported.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed indicates a document could not be reduced to text.
	// Corrupt files, encrypted PDFs and scanned image PDFs fall here.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmbeddingUnavailable indicates the embedding backend cannot be reached.
	// A rebuild fails without touching the prior snapshot.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationFailed indicates answer generation failed on every
	// configured route, including timeouts converted to errors.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrRebuildInProgress indicates an index rebuild is already running.
	// At most one rebuild runs at a time.
	ErrRebuildInProgress = errors.New("rebuild in progress")

	// ErrDimensionMismatch indicates a query vector does not match the
	// dimensionality of the snapshot it is compared against. This happens
	// when the index was built with a different embedding model.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
