package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// VectorStore is the indexed-store boundary: it holds chunk records and
// supports insert, filtered similarity search and delete-by-document.
// The physical index and its query execution are the store's concern;
// this interface only constrains how the pipeline uses it.
type VectorStore interface {
	// Insert stores the given chunk records and returns their
	// store-assigned primary keys in input order.
	Insert(ctx context.Context, records []domain.ChunkRecord) ([]int64, error)

	// Search returns up to topK records nearest to the query vector,
	// best match first. When docIDs is non-empty the search is restricted
	// to records whose DocID is in the set.
	Search(ctx context.Context, vector []float32, topK int, docIDs []string) ([]domain.ScoredChunk, error)

	// DeleteByDocID removes every record sharing the given DocID and
	// returns how many were removed. Implemented as query-then-delete
	// where the store has no single delete-by-filter operation.
	DeleteByDocID(ctx context.Context, docID string) (int, error)

	// Close releases resources.
	Close() error
}
