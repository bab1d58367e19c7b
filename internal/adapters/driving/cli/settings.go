package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, chunking parameters and the
vector store connection.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var (
	providerFlag string
	modelFlag    string
	apiKeyFlag   string
)

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Configure the provider used to embed document chunks and questions.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the completion provider",
	Long:  `Configure the provider used to generate answers.`,
	RunE:  runSettingsLLM,
}

var (
	chunkStrategyFlag  string
	chunkSizeFlag      int
	chunkOverlapFlag   int
	chunkNormalizeFlag bool
)

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking",
	Short: "Configure chunking parameters",
	Long: `Configure how document text is split before embedding.

Available strategies:
  character - fixed character-count windows
  sentence  - sentence-count windows
  token     - word-token windows, capped at the model's sequence limit`,
	RunE: runSettingsChunking,
}

var (
	vectorURLFlag        string
	vectorTokenFlag      string
	vectorCollectionFlag string
)

var settingsVectorCmd = &cobra.Command{
	Use:   "vector",
	Short: "Configure the vector store connection",
	Long: `Configure the Milvus connection holding the chunk index.
Without one, an in-process store is used and the index is lost on exit.`,
	RunE: runSettingsVector,
}

func init() {
	settingsEmbeddingCmd.Flags().StringVar(&providerFlag, "provider", "", "provider: openai or ollama")
	settingsEmbeddingCmd.Flags().StringVar(&modelFlag, "model", "", "embedding model name")
	settingsEmbeddingCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "API key (openai)")

	settingsLLMCmd.Flags().StringVar(&providerFlag, "provider", "", "provider: openai or ollama")
	settingsLLMCmd.Flags().StringVar(&modelFlag, "model", "", "completion model name")
	settingsLLMCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "API key (openai)")

	settingsChunkingCmd.Flags().StringVar(&chunkStrategyFlag, "strategy", "character", "chunking strategy")
	settingsChunkingCmd.Flags().IntVar(&chunkSizeFlag, "size", 300, "chunk size in strategy units")
	settingsChunkingCmd.Flags().IntVar(&chunkOverlapFlag, "overlap", 50, "overlap between chunks in strategy units")
	settingsChunkingCmd.Flags().BoolVar(&chunkNormalizeFlag, "normalize", true, "normalize text before chunking")

	settingsVectorCmd.Flags().StringVar(&vectorURLFlag, "url", "", "Milvus HTTP endpoint")
	settingsVectorCmd.Flags().StringVar(&vectorTokenFlag, "token", "", "API key or username:password")
	settingsVectorCmd.Flags().StringVar(&vectorCollectionFlag, "collection", "", "collection name")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	settingsCmd.AddCommand(settingsVectorCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Strategy:  %s\n", settings.Chunking.Strategy.Description())
	cmd.Printf("  Size:      %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap:   %d\n", settings.Chunking.Overlap)
	cmd.Printf("  Normalize: %t\n", settings.Chunking.Normalize)
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	if settings.Embedding.RatePerSecond > 0 {
		cmd.Printf("  Rate limit: %.1f req/s\n", settings.Embedding.RatePerSecond)
	}
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Vector Store]")
	if settings.VectorStore.BaseURL == "" {
		cmd.Println("  Endpoint: (in-process, not persistent)")
	} else {
		cmd.Printf("  Endpoint: %s\n", settings.VectorStore.BaseURL)
	}
	cmd.Printf("  Collection: %s\n", settings.VectorStore.Collection)

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	name := provider.String()
	if name == "" {
		name = "(not set)"
	}
	cmd.Printf("  Provider: %s\n", name)
	if model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsEmbedding(_ *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if providerFlag == "" {
		return errors.New("--provider is required")
	}
	return settingsService.SetEmbeddingProvider(domain.AIProvider(providerFlag), modelFlag, apiKeyFlag)
}

func runSettingsLLM(_ *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if providerFlag == "" {
		return errors.New("--provider is required")
	}
	return settingsService.SetLLMProvider(domain.AIProvider(providerFlag), modelFlag, apiKeyFlag)
}

func runSettingsChunking(_ *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return settingsService.SetChunking(domain.ChunkingSettings{
		Strategy:  domain.ChunkStrategy(chunkStrategyFlag),
		Size:      chunkSizeFlag,
		Overlap:   chunkOverlapFlag,
		Normalize: chunkNormalizeFlag,
	})
}

func runSettingsVector(_ *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	settings.VectorStore.BaseURL = vectorURLFlag
	settings.VectorStore.Token = vectorTokenFlag
	if vectorCollectionFlag != "" {
		settings.VectorStore.Collection = vectorCollectionFlag
	}

	return settingsService.Save(settings)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
