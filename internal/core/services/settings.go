package services

import (
	"fmt"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Configuration keys.
const (
	keyEmbeddingProvider = "embedding.provider"
	keyEmbeddingModel    = "embedding.model"
	keyEmbeddingBaseURL  = "embedding.base_url"
	keyEmbeddingAPIKey   = "embedding.api_key"

	keyLLMRoute        = "llm.route"
	keyLLMLocalModel   = "llm.local_model"
	keyLLMLocalBaseURL = "llm.local_base_url"
	keyLLMRemoteModel  = "llm.remote_model"
	keyLLMRemoteAPIKey = "llm.remote_api_key"

	keyIndexChunkSize       = "index.chunk_size"
	keyIndexChunkOverlap    = "index.chunk_overlap"
	keyIndexTopK            = "index.top_k"
	keyIndexSimilarityFloor = "index.similarity_floor"
)

// SettingsService reads and writes application settings through the
// config store. Invalid stored values fall back to defaults.
type SettingsService struct {
	store driven.ConfigStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the current settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	if provider := domain.AIProvider(s.store.GetString(keyEmbeddingProvider)); provider.IsValid() {
		settings.Embedding.Provider = provider
	}
	if model := s.store.GetString(keyEmbeddingModel); model != "" {
		settings.Embedding.Model = model
	}
	if url := s.store.GetString(keyEmbeddingBaseURL); url != "" {
		settings.Embedding.BaseURL = url
	}
	if key := s.store.GetString(keyEmbeddingAPIKey); key != "" {
		settings.Embedding.APIKey = key
	}

	if route := domain.RoutePreference(s.store.GetString(keyLLMRoute)); route.IsValid() {
		settings.LLM.Route = route
	}
	if model := s.store.GetString(keyLLMLocalModel); model != "" {
		settings.LLM.LocalModel = model
	}
	if url := s.store.GetString(keyLLMLocalBaseURL); url != "" {
		settings.LLM.LocalBaseURL = url
	}
	if model := s.store.GetString(keyLLMRemoteModel); model != "" {
		settings.LLM.RemoteModel = model
	}
	if key := s.store.GetString(keyLLMRemoteAPIKey); key != "" {
		settings.LLM.RemoteAPIKey = key
	}

	if size := s.store.GetInt(keyIndexChunkSize); size > 0 {
		settings.Index.ChunkSize = size
	}
	if overlap := s.store.GetInt(keyIndexChunkOverlap); overlap > 0 {
		settings.Index.ChunkOverlap = overlap
	}
	if topK := s.store.GetInt(keyIndexTopK); topK > 0 {
		settings.Index.TopK = topK
	}
	if floor := s.store.GetFloat(keyIndexSimilarityFloor); floor > 0 {
		settings.Index.SimilarityFloor = floor
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: embedding provider %q", domain.ErrInvalidInput, settings.Embedding.Provider)
	}
	if !settings.LLM.Route.IsValid() {
		return fmt.Errorf("%w: route preference %q", domain.ErrInvalidInput, settings.LLM.Route)
	}
	if settings.Index.ChunkOverlap >= settings.Index.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, settings.Index.ChunkOverlap, settings.Index.ChunkSize)
	}

	pairs := map[string]any{
		keyEmbeddingProvider:    settings.Embedding.Provider.String(),
		keyEmbeddingModel:       settings.Embedding.Model,
		keyEmbeddingBaseURL:     settings.Embedding.BaseURL,
		keyEmbeddingAPIKey:      settings.Embedding.APIKey,
		keyLLMRoute:             settings.LLM.Route.String(),
		keyLLMLocalModel:        settings.LLM.LocalModel,
		keyLLMLocalBaseURL:      settings.LLM.LocalBaseURL,
		keyLLMRemoteModel:       settings.LLM.RemoteModel,
		keyLLMRemoteAPIKey:      settings.LLM.RemoteAPIKey,
		keyIndexChunkSize:       settings.Index.ChunkSize,
		keyIndexChunkOverlap:    settings.Index.ChunkOverlap,
		keyIndexTopK:            settings.Index.TopK,
		keyIndexSimilarityFloor: settings.Index.SimilarityFloor,
	}
	for key, value := range pairs {
		if err := s.store.Set(key, value); err != nil {
			return fmt.Errorf("storing %s: %w", key, err)
		}
	}

	return s.store.Save()
}
