package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// DocumentStore persists document metadata.
// Backed by SQLite; it never holds chunk text or vectors.
type DocumentStore interface {
	// Create stores a new document record. The record's Processed flag
	// starts false and flips only via MarkProcessed.
	Create(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound when the
	// record does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns document records ordered by creation time.
	// A non-positive limit applies the store default.
	List(ctx context.Context, skip, limit int) ([]domain.Document, error)

	// MarkProcessed flips the document's Processed flag to true.
	MarkProcessed(ctx context.Context, id string) error

	// Delete removes the document record. Chunk records in the indexed
	// store are the caller's responsibility.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
