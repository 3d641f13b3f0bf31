package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// Retriever finds the chunks most similar to a query vector.
// The brute-force implementation below is sufficient for a personal
// knowledge base; an approximate-nearest-neighbour index can replace it
// behind this interface without changing callers.
type Retriever interface {
	// Retrieve returns the k records with highest cosine similarity to
	// the query vector, sorted descending by similarity, ties broken by
	// chunk ordinal (earlier wins). An empty snapshot yields an empty
	// slice; k larger than the snapshot returns every record.
	Retrieve(snap *domain.Snapshot, query []float32, k int) ([]domain.RetrievedChunk, error)
}

// Ensure CosineRetriever implements the interface.
var _ Retriever = (*CosineRetriever)(nil)

// CosineRetriever scans every record in the snapshot linearly.
type CosineRetriever struct{}

// NewCosineRetriever creates a brute-force cosine retriever.
func NewCosineRetriever() *CosineRetriever {
	return &CosineRetriever{}
}

// Retrieve implements Retriever.
func (r *CosineRetriever) Retrieve(snap *domain.Snapshot, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrInvalidInput, k)
	}
	if snap.Empty() {
		return []domain.RetrievedChunk{}, nil
	}
	if len(query) != snap.Dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, snapshot has %d",
			domain.ErrDimensionMismatch, len(query), snap.Dimensions)
	}

	hits := make([]domain.RetrievedChunk, 0, len(snap.Records))
	for i := range snap.Records {
		rec := snap.Records[i]
		if len(rec.Vector) != len(query) {
			return nil, fmt.Errorf("%w: record %s has %d dimensions, query has %d",
				domain.ErrDimensionMismatch, rec.Fingerprint, len(rec.Vector), len(query))
		}
		hits = append(hits, domain.RetrievedChunk{
			Record:     rec,
			Similarity: cosineSimilarity(query, rec.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		if hits[i].Record.Ordinal != hits[j].Record.Ordinal {
			return hits[i].Record.Ordinal < hits[j].Record.Ordinal
		}
		return hits[i].Record.Fingerprint < hits[j].Record.Fingerprint
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// cosineSimilarity computes the normalised dot product of two vectors
// of equal length. Zero vectors yield zero similarity.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
