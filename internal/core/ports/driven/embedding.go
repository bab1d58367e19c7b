package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// One instance is constructed at startup and shared read-only across all
// concurrent pipeline invocations; implementations must keep no mutable
// per-call state.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small with a dimension override)
//   - Ollama (nomic-embed-text, whose native size matches the collection)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size. It must match
	// domain.EmbeddingDimensions for records to be insertable.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
