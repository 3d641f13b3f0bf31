package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The index and the query pipeline share one instance so that stored and
// query vectors come from the same model.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// Snapshots record it; querying across dimensionalities is rejected.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// A rebuild checks this before committing to any embedding work.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
