package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DocumentFormat identifies a supported knowledge base file format.
type DocumentFormat string

// Supported document formats.
const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatTXT  DocumentFormat = "txt"
)

// FormatFromName derives the document format from a file name.
// Returns false when the extension maps to no supported format.
func FormatFromName(name string) (DocumentFormat, bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", false
	}
	switch strings.ToLower(name[idx+1:]) {
	case "pdf":
		return FormatPDF, true
	case "docx":
		return FormatDOCX, true
	case "txt", "text", "md":
		return FormatTXT, true
	default:
		return "", false
	}
}

// Document represents a knowledge base file by its metadata.
// The raw bytes live in the knowledge directory owned by the document store.
// Documents are immutable once stored except for deletion.
type Document struct {
	// Name is the file name and the document's identity.
	Name string

	// Format is the declared file format.
	Format DocumentFormat

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time.
	ModTime time.Time
}

// Chunk is a fixed-size overlapping text window cut from one document.
// Chunks are transient: they are consumed by the index build and not retained.
type Chunk struct {
	// Source is the name of the document this chunk was cut from.
	Source string

	// Ordinal is the position of the chunk within its document.
	Ordinal int

	// Text is the chunk content.
	Text string

	// Fingerprint is the content hash used as the embedding cache key.
	Fingerprint string
}

// Fingerprint returns the deterministic content hash of a chunk text.
// Text is whitespace-normalised before hashing so that identical content
// with incidental spacing differences shares one cached vector.
func Fingerprint(text string) string {
	normalised := strings.Join(strings.Fields(text), " ")
	sum := sha256.Sum256([]byte(normalised))
	return hex.EncodeToString(sum[:])
}

// EmbeddingRecord maps a chunk fingerprint to its vector and provenance.
// There is exactly one record per unique fingerprint: identical text in
// multiple files maps to a single cached vector, attributed to the file
// that was seen first.
type EmbeddingRecord struct {
	// Fingerprint is the content hash of the chunk text.
	Fingerprint string `json:"fingerprint"`

	// Vector is the embedding in the model's native dimensionality.
	Vector []float32 `json:"vector"`

	// Text is the chunk text the vector was computed from.
	Text string `json:"text"`

	// Source is the file name the chunk was first seen in.
	Source string `json:"source"`

	// Ordinal is the chunk position within its source document.
	// Used as the retrieval tie-breaker.
	Ordinal int `json:"ordinal"`
}

// Snapshot is an immutable, complete vector index.
// A rebuild produces a new snapshot and swaps a reference; readers always
// observe either the old or the new complete index, never a partial one.
type Snapshot struct {
	// Records holds one entry per unique chunk fingerprint.
	Records []EmbeddingRecord `json:"records"`

	// Model is the embedding model the vectors were produced with.
	Model string `json:"model"`

	// Dimensions is the vector size shared by all records.
	Dimensions int `json:"dimensions"`

	// BuiltAt is when the snapshot was produced.
	BuiltAt time.Time `json:"built_at"`

	// Version increments on every rebuild.
	Version int `json:"version"`
}

// EmptySnapshot returns a snapshot with no records.
// Missing or corrupt persisted state loads as an empty snapshot.
func EmptySnapshot() *Snapshot {
	return &Snapshot{}
}

// Empty reports whether the snapshot holds no records.
func (s *Snapshot) Empty() bool {
	return len(s.Records) == 0
}
