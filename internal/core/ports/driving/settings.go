package driving

import "github.com/docqa-labs/docqa-cli/internal/core/domain"

// SettingsService manages persistent application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the completion provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetChunking updates the default chunking parameters used for ingest.
	SetChunking(cfg domain.ChunkingSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks that the current settings can drive the pipeline.
	Validate() error
}
