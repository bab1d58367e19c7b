package services

import (
	"fmt"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyChunkStrategy  = "chunking.strategy"
	keyChunkSize      = "chunking.size"
	keyChunkOverlap   = "chunking.overlap"
	keyChunkNormalize = "chunking.normalize"
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyEmbedRate      = "embedding.rate_per_second"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyVectorBaseURL  = "vector_store.base_url"
	keyVectorToken    = "vector_store.token"
	keyVectorColl     = "vector_store.collection"
)

// SettingsService manages application settings backed by a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			Strategy:  s.getStrategy(defaults.Chunking.Strategy),
			Size:      s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
			Normalize: s.getBool(keyChunkNormalize, defaults.Chunking.Normalize),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:      s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:         s.configStore.GetString(keyEmbedModel),
			BaseURL:       s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:        s.configStore.GetString(keyEmbedAPIKey),
			RatePerSecond: s.configStore.GetFloat(keyEmbedRate),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.configStore.GetString(keyLLMModel),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		VectorStore: domain.VectorStoreSettings{
			BaseURL:    s.configStore.GetString(keyVectorBaseURL),
			Token:      s.configStore.GetString(keyVectorToken),
			Collection: s.getString(keyVectorColl, defaults.VectorStore.Collection),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save chunking settings
	if err := s.configStore.Set(keyChunkStrategy, settings.Chunking.Strategy.String()); err != nil {
		return fmt.Errorf("save chunking strategy: %w", err)
	}
	if err := s.configStore.Set(keyChunkSize, settings.Chunking.Size); err != nil {
		return fmt.Errorf("save chunking size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunking.Overlap); err != nil {
		return fmt.Errorf("save chunking overlap: %w", err)
	}
	if err := s.configStore.Set(keyChunkNormalize, settings.Chunking.Normalize); err != nil {
		return fmt.Errorf("save chunking normalize: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyEmbedRate, settings.Embedding.RatePerSecond); err != nil {
		return fmt.Errorf("save embedding rate_per_second: %w", err)
	}

	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	// Save vector store settings
	if err := s.configStore.Set(keyVectorBaseURL, settings.VectorStore.BaseURL); err != nil {
		return fmt.Errorf("save vector_store base_url: %w", err)
	}
	if err := s.configStore.Set(keyVectorToken, settings.VectorStore.Token); err != nil {
		return fmt.Errorf("save vector_store token: %w", err)
	}
	if err := s.configStore.Set(keyVectorColl, settings.VectorStore.Collection); err != nil {
		return fmt.Errorf("save vector_store collection: %w", err)
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid provider %q: %w", provider, domain.ErrConfiguration)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("provider %s requires an API key: %w", provider, domain.ErrConfiguration)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	if apiKey != "" {
		settings.Embedding.APIKey = apiKey
	}

	return s.Save(settings)
}

// SetLLMProvider configures the completion provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid provider %q: %w", provider, domain.ErrConfiguration)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("provider %s requires an API key: %w", provider, domain.ErrConfiguration)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if apiKey != "" {
		settings.LLM.APIKey = apiKey
	}

	return s.Save(settings)
}

// SetChunking updates the default chunking parameters used for ingest.
func (s *SettingsService) SetChunking(cfg domain.ChunkingSettings) error {
	if !cfg.Strategy.IsValid() {
		return fmt.Errorf("invalid chunking strategy %q: %w", cfg.Strategy, domain.ErrConfiguration)
	}
	if cfg.Size <= 0 {
		return fmt.Errorf("chunk size must be positive: %w", domain.ErrConfiguration)
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Size {
		return fmt.Errorf("chunk overlap must be in [0, size): %w", domain.ErrConfiguration)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Chunking = cfg

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks that the current settings can drive the pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Chunking.Strategy.IsValid() {
		return fmt.Errorf("invalid chunking strategy %q: %w", settings.Chunking.Strategy, domain.ErrConfiguration)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider not configured: %w", domain.ErrEmbeddingUnavailable)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("completion provider not configured: %w", domain.ErrLLMUnavailable)
	}

	return nil
}

// getString returns the config value or the default when unset.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns the config value or the default when unset.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return defaultVal
}

// getBool returns the config value or the default when unset.
func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}

// getStrategy returns the configured chunk strategy or the default.
func (s *SettingsService) getStrategy(defaultVal domain.ChunkStrategy) domain.ChunkStrategy {
	val := s.configStore.GetString(keyChunkStrategy)
	if val == "" {
		return defaultVal
	}
	strategy := domain.ChunkStrategy(val)
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}

// getProvider returns the configured provider or the default.
func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
