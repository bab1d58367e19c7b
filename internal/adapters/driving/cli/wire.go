package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/config/file"
	embeddingollama "github.com/docqa-labs/docqa-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/docqa-labs/docqa-cli/internal/adapters/driven/embedding/openai"
	llmollama "github.com/docqa-labs/docqa-cli/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/docqa-labs/docqa-cli/internal/adapters/driven/llm/openai"
	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/vector/milvus"
	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/core/services"
	"github.com/docqa-labs/docqa-cli/internal/extractor/pdftotext"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// InitServices builds the service graph from persisted settings.
// Called once from main before Execute.
//
// Services whose providers are not configured are left nil; the commands
// that need them report why. Document listing and deletion always work.
func InitServices(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	settingsService = services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	docStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}

	vectors, err := buildVectorStore(ctx, settings.VectorStore)
	if err != nil {
		return fmt.Errorf("connect vector store: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	embedder := buildEmbedder(settings.Embedding)
	llm := buildLLM(settings.LLM)

	ingest, ierr := buildIngest(embedder, vectors, settings.Embedding.RatePerSecond)
	ingestErr = ierr

	documentService = services.NewDocumentLifecycle(docStore, vectors, ingest, settings.Chunking)
	if ingestErr == nil {
		watcherService = services.NewDirectoryWatcher(documentService)
	}

	if embedder != nil && llm != nil {
		answerService = services.NewAnswerPipeline(embedder, vectors, llm, prompts)
	}

	return nil
}

// buildVectorStore connects to Milvus when configured, otherwise falls
// back to the in-process store.
func buildVectorStore(ctx context.Context, cfg domain.VectorStoreSettings) (driven.VectorStore, error) {
	if cfg.BaseURL == "" {
		logger.Warn("No vector store configured; using in-process store (index lost on exit)")
		return memory.NewVectorStore(), nil
	}
	return milvus.NewStore(ctx, milvus.Config{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		Collection: cfg.Collection,
	})
}

// buildEmbedder returns nil when no embedding provider is configured.
func buildEmbedder(cfg domain.EmbeddingSettings) driven.EmbeddingService {
	switch cfg.Provider {
	case domain.AIProviderOpenAI:
		svc, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:  apiKeyOrEnv(cfg.APIKey),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			logger.Warn("Embedding provider unavailable: %v", err)
			return nil
		}
		return svc
	case domain.AIProviderOllama:
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil
	}
}

// buildLLM returns nil when no completion provider is configured.
func buildLLM(cfg domain.LLMSettings) driven.LLMService {
	switch cfg.Provider {
	case domain.AIProviderOpenAI:
		svc, err := llmopenai.NewLLMService(llmopenai.LLMConfig{
			APIKey:  apiKeyOrEnv(cfg.APIKey),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			logger.Warn("Completion provider unavailable: %v", err)
			return nil
		}
		return svc
	case domain.AIProviderOllama:
		return llmollama.NewLLMService(llmollama.LLMConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil
	}
}

// buildIngest assembles the ingest pipeline, or explains why it can't.
// Returns a nil interface on failure so callers can test against nil.
func buildIngest(embedder driven.EmbeddingService, vectors driven.VectorStore, ratePerSecond float64) (driving.IngestService, error) {
	if embedder == nil {
		return nil, errors.New("embedding provider not configured (run 'docqa settings embedding')")
	}

	extractor, err := pdftotext.New()
	if err != nil {
		if errors.Is(err, pdftotext.ErrPDFToolNotFound) {
			return nil, fmt.Errorf("pdftotext not found\n\n%s", pdftotext.InstallInstructions())
		}
		return nil, err
	}

	ingest := services.NewIngestPipeline(extractor, embedder, vectors)
	ingest.SetRateLimit(ratePerSecond)
	return ingest, nil
}

// apiKeyOrEnv falls back to OPENAI_API_KEY when no key is persisted.
func apiKeyOrEnv(key string) string {
	if key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}
