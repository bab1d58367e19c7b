package domain

const unknownDescription = "Unknown"

// ChunkStrategy selects the splitting policy used by the chunker.
type ChunkStrategy string

// Available chunking strategies.
const (
	// ChunkStrategyCharacter splits on fixed character-count windows.
	ChunkStrategyCharacter ChunkStrategy = "character"

	// ChunkStrategySentence splits on sentence-count windows.
	ChunkStrategySentence ChunkStrategy = "sentence"

	// ChunkStrategyToken splits on word-token windows, capped at the
	// embedding model's sequence limit.
	ChunkStrategyToken ChunkStrategy = "token"
)

// IsValid returns true if the strategy is recognised.
func (s ChunkStrategy) IsValid() bool {
	switch s {
	case ChunkStrategyCharacter, ChunkStrategySentence, ChunkStrategyToken:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s ChunkStrategy) Description() string {
	switch s {
	case ChunkStrategyCharacter:
		return "Character windows (size/overlap in characters)"
	case ChunkStrategySentence:
		return "Sentence windows (size/overlap in sentences)"
	case ChunkStrategyToken:
		return "Token windows (size/overlap in word tokens, capped)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an embedding or completion backend.
type AIProvider string

// Available AI providers.
const (
	AIProviderOllama AIProvider = "ollama"
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// ChunkingSettings configures how page text is split into chunks.
type ChunkingSettings struct {
	// Strategy is the splitting policy.
	Strategy ChunkStrategy

	// Size is the maximum chunk length in the strategy's unit.
	Size int

	// Overlap is the exact overlap between consecutive chunks, in the
	// strategy's unit. Must be smaller than Size.
	Overlap int

	// Normalize applies text canonicalisation before splitting.
	Normalize bool
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// RatePerSecond throttles embedding calls during ingest.
	// Zero disables throttling.
	RatePerSecond float64
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

// LLMSettings holds completion provider configuration.
type LLMSettings struct {
	// Provider is the completion backend.
	Provider AIProvider

	// Model is the completion model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the completion provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// VectorStoreSettings holds indexed-store connection configuration.
// When BaseURL is empty the in-process store is used.
type VectorStoreSettings struct {
	// BaseURL is the Milvus HTTP endpoint.
	BaseURL string

	// Token is the API key or colon-separated username:password.
	Token string

	// Collection is the collection name holding chunk records.
	Collection string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Chunking holds default chunking parameters for ingest.
	Chunking ChunkingSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds completion provider settings.
	LLM LLMSettings

	// VectorStore holds indexed-store settings.
	VectorStore VectorStoreSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// AI providers are left unconfigured; users must set them up explicitly.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			Strategy:  ChunkStrategyCharacter,
			Size:      300,
			Overlap:   50,
			Normalize: true,
		},
		Embedding: EmbeddingSettings{},
		LLM:       LLMSettings{},
		VectorStore: VectorStoreSettings{
			Collection: "pdf_documents",
		},
	}
}
