// Command formpilot answers web form questions from a local knowledge
// base of personal documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/formpilot/formpilot/internal/adapters/driven/config/file"
	"github.com/formpilot/formpilot/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/formpilot/formpilot/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/formpilot/formpilot/internal/adapters/driven/llm/ollama"
	openaillm "github.com/formpilot/formpilot/internal/adapters/driven/llm/openai"
	snapfile "github.com/formpilot/formpilot/internal/adapters/driven/snapshot/file"
	"github.com/formpilot/formpilot/internal/adapters/driven/storage/knowledgedir"
	"github.com/formpilot/formpilot/internal/adapters/driven/storage/sqlite"
	"github.com/formpilot/formpilot/internal/adapters/driven/watcher"
	"github.com/formpilot/formpilot/internal/adapters/driving/cli"
	"github.com/formpilot/formpilot/internal/chunker"
	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/services"
	"github.com/formpilot/formpilot/internal/extractors"
	"github.com/formpilot/formpilot/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	embedder, err := newEmbedder(settings)
	if err != nil {
		return err
	}
	defer embedder.Close()

	docStore, err := knowledgedir.NewDocumentStore("")
	if err != nil {
		return fmt.Errorf("open knowledge directory: %w", err)
	}

	snapStore, err := snapfile.NewSnapshotStore("")
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}

	db, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open field memory database: %w", err)
	}
	defer db.Close()

	splitter := chunker.New(
		chunker.WithChunkSize(settings.Index.ChunkSize),
		chunker.WithOverlap(settings.Index.ChunkOverlap),
	)

	indexService := services.NewIndexService(
		docStore,
		extractors.NewDefaultRegistry(),
		embedder,
		snapStore,
		splitter,
	)
	if err := indexService.Load(ctx); err != nil {
		logger.Warn("Could not load persisted snapshot: %v", err)
	}

	fieldMemory := services.NewFieldMemoryService(db.FieldMemoryStore())
	documentService := services.NewDocumentService(docStore, indexService)

	localLLM := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.LLM.LocalBaseURL,
		Model:   settings.LLM.LocalModel,
	})
	defer localLLM.Close()

	var remoteLLM driven.LLMService
	if settings.LLM.RemoteAPIKey != "" {
		remote, err := openaillm.NewLLMService(openaillm.Config{
			APIKey: settings.LLM.RemoteAPIKey,
			Model:  settings.LLM.RemoteModel,
		})
		if err != nil {
			return fmt.Errorf("configure remote model: %w", err)
		}
		defer remote.Close()
		remoteLLM = remote
	}

	queryService := services.NewQueryService(
		indexService,
		embedder,
		localLLM,
		remoteLLM,
		fieldMemory,
		services.NewCosineRetriever(),
		settings,
	)

	// Out-of-band changes to the knowledge directory mark the index
	// stale so status and health report honestly.
	w, err := watcher.New(docStore.Dir(), indexService.MarkStale)
	if err != nil {
		logger.Warn("Knowledge directory watcher unavailable: %v", err)
	} else {
		defer w.Close()
		go w.Run(ctx) //nolint:errcheck
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Query:       queryService,
		Index:       indexService,
		Document:    documentService,
		FieldMemory: fieldMemory,
		Settings:    settingsService,
	})

	return cli.ExecuteContext(ctx)
}

// newEmbedder builds the embedding service from settings.
func newEmbedder(settings *domain.AppSettings) (driven.EmbeddingService, error) {
	if !settings.Embedding.IsConfigured() {
		return nil, fmt.Errorf("embedding provider %q is not configured; "+
			"run 'formpilot settings' to set the provider and API key",
			settings.Embedding.Provider)
	}
	switch settings.Embedding.Provider {
	case domain.AIProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey: settings.Embedding.APIKey,
			Model:  settings.Embedding.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("configure OpenAI embeddings: %w", err)
		}
		return svc, nil
	default:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: settings.Embedding.BaseURL,
			Model:   settings.Embedding.Model,
		}), nil
	}
}
