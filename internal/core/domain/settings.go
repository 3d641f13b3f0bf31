package domain

const unknownDescription = "Unknown"

// RoutePreference defines how the query pipeline chooses between the
// local and the remote language model.
type RoutePreference string

// Available route preferences.
const (
	// RouteAuto probes the local model first and falls back to remote.
	RouteAuto RoutePreference = "auto"

	// RouteLocalOnly never calls the remote model.
	RouteLocalOnly RoutePreference = "local_only"

	// RouteRemoteOnly skips the local probe entirely.
	RouteRemoteOnly RoutePreference = "remote_only"
)

// IsValid returns true if the route preference is recognised.
func (r RoutePreference) IsValid() bool {
	switch r {
	case RouteAuto, RouteLocalOnly, RouteRemoteOnly:
		return true
	default:
		return false
	}
}

// AllowsLocal returns true if the local model may be used.
func (r RoutePreference) AllowsLocal() bool {
	return r == RouteAuto || r == RouteLocalOnly
}

// AllowsRemote returns true if the remote model may be used.
func (r RoutePreference) AllowsRemote() bool {
	return r == RouteAuto || r == RouteRemoteOnly
}

// String returns the string representation.
func (r RoutePreference) String() string {
	return string(r)
}

// Description returns a human-readable description of the preference.
func (r RoutePreference) Description() string {
	switch r {
	case RouteAuto:
		return "Auto (local first, remote fallback)"
	case RouteLocalOnly:
		return "Local only"
	case RouteRemoteOnly:
		return "Remote only"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds language model configuration for answer generation.
type LLMSettings struct {
	// Route is the local/remote routing preference.
	Route RoutePreference

	// LocalModel is the Ollama model used when routing locally.
	LocalModel string

	// LocalBaseURL is the Ollama API endpoint.
	LocalBaseURL string

	// RemoteModel is the cloud model used when routing remotely.
	RemoteModel string

	// RemoteAPIKey is the cloud API key.
	RemoteAPIKey string
}

// IndexSettings holds chunking and retrieval configuration.
type IndexSettings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int

	// TopK is the number of chunks retrieved per query.
	TopK int

	// SimilarityFloor is the minimum cosine similarity for a chunk to
	// count as supporting context. Below it the query short-circuits
	// to the not-found sentinel.
	SimilarityFloor float64
}

// AppSettings aggregates all application configuration.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Index     IndexSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: LLMSettings{
			Route:        RouteAuto,
			LocalModel:   "llama3.1:8b",
			LocalBaseURL: "http://localhost:11434",
			RemoteModel:  "gpt-4o-mini",
		},
		Index: IndexSettings{
			ChunkSize:       1000,
			ChunkOverlap:    200,
			TopK:            3,
			SimilarityFloor: 0.0,
		},
	}
}
