package driving

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// IngestService turns an uploaded document into indexed chunk records.
type IngestService interface {
	// Ingest extracts, normalises, chunks, embeds and indexes the raw
	// bytes for an existing document record, returning how many chunk
	// records were inserted. It assumes the Document already exists in
	// the metadata store and never creates it.
	Ingest(ctx context.Context, doc domain.Document, raw []byte, pages *domain.PageRange, cfg domain.ChunkingSettings) (int, error)
}

// AnswerService answers natural-language questions from indexed chunks.
type AnswerService interface {
	// Ask embeds the question, retrieves the topK nearest chunks
	// restricted to the given document IDs, and generates a grounded
	// answer with deduplicated, sorted sources. A non-positive topK
	// applies the service default.
	Ask(ctx context.Context, question string, docIDs []string, topK int) (*domain.Answer, error)
}

// DocumentService manages the document lifecycle across both stores.
type DocumentService interface {
	// Upload creates the document record, ingests the file and marks the
	// record processed. Returns the record and the number of chunks
	// indexed. On ingest failure the record remains with Processed=false.
	Upload(ctx context.Context, fileName string, raw []byte, pages *domain.PageRange) (*domain.Document, int, error)

	// Get fetches one document record.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns document records ordered by creation time.
	List(ctx context.Context, skip, limit int) ([]domain.Document, error)

	// Delete removes the document's chunk records from the indexed store,
	// then the metadata record. When the second phase fails the returned
	// error reports the partially-deleted state.
	Delete(ctx context.Context, id string) error
}

// Watcher ingests documents dropped into a directory.
type Watcher interface {
	// Watch blocks until ctx is cancelled, uploading every PDF created
	// under dir while it runs.
	Watch(ctx context.Context, dir string) error
}
