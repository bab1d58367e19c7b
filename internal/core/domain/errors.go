package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExtraction indicates the document bytes were unreadable or the
	// requested page range was out of bounds.
	ErrExtraction = errors.New("extraction failed")

	// ErrNormalization indicates malformed text encoding.
	ErrNormalization = errors.New("normalization failed")

	// ErrConfiguration indicates invalid chunking parameters or a chunk
	// record that violates the fixed collection schema.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrChunking indicates empty input or a non-positive chunk size.
	ErrChunking = errors.New("chunking failed")

	// ErrEmbedding indicates the embedding provider failed.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndexedStore indicates an insert, search or delete failure against
	// the vector store.
	ErrIndexedStore = errors.New("indexed store failure")

	// ErrRetrieval indicates a similarity search returned zero results.
	ErrRetrieval = errors.New("no matching chunks")

	// ErrDeletion indicates a document removal failed partway. State across
	// the two stores may be inconsistent until the caller retries.
	ErrDeletion = errors.New("deletion failed")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured. Ingest and question answering are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the completion provider is not configured.
	// Question answering is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// PartialIngestError reports an ingest that failed after some chunk records
// for the document were already committed. The store performs no automatic
// rollback; the caller owns retry or cleanup of the missing records.
type PartialIngestError struct {
	// DocID is the document whose ingest failed.
	DocID string

	// Stage names the failed step ("embed" or "insert").
	Stage string

	// Inserted is how many records were committed before the failure.
	Inserted int

	// Total is how many records the document produced.
	Total int

	// Err is the underlying failure.
	Err error
}

func (e *PartialIngestError) Error() string {
	return fmt.Sprintf("partial ingest of document %s: %s failed after %d of %d records: %v",
		e.DocID, e.Stage, e.Inserted, e.Total, e.Err)
}

func (e *PartialIngestError) Unwrap() error {
	return e.Err
}
