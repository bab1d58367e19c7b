package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure DocumentLifecycle implements the interface.
var _ driving.DocumentService = (*DocumentLifecycle)(nil)

// DocumentLifecycle manages document records across the metadata store
// and the indexed store. It is the only component that reads across both.
type DocumentLifecycle struct {
	docStore driven.DocumentStore
	vectors  driven.VectorStore
	ingest   driving.IngestService
	chunkCfg domain.ChunkingSettings
}

// NewDocumentLifecycle creates a document lifecycle service. chunkCfg is
// the chunking policy applied to every upload.
func NewDocumentLifecycle(
	docStore driven.DocumentStore,
	vectors driven.VectorStore,
	ingest driving.IngestService,
	chunkCfg domain.ChunkingSettings,
) *DocumentLifecycle {
	return &DocumentLifecycle{
		docStore: docStore,
		vectors:  vectors,
		ingest:   ingest,
		chunkCfg: chunkCfg,
	}
}

// Upload creates the metadata record, runs ingest and marks the record
// processed. The record is created before extraction begins; if ingest
// fails the record stays with Processed=false so the failure is visible
// in listings.
func (s *DocumentLifecycle) Upload(
	ctx context.Context, fileName string, raw []byte, pages *domain.PageRange,
) (*domain.Document, int, error) {
	if s.ingest == nil {
		return nil, 0, fmt.Errorf("ingest service not configured: %w", domain.ErrConfiguration)
	}
	if fileName == "" {
		return nil, 0, fmt.Errorf("file name must not be empty: %w", domain.ErrConfiguration)
	}
	if len(fileName) > domain.MaxDocumentNameLen {
		return nil, 0, fmt.Errorf("file name exceeds %d characters: %w",
			domain.MaxDocumentNameLen, domain.ErrConfiguration)
	}

	now := time.Now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Processed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docStore.Create(ctx, doc); err != nil {
		return nil, 0, fmt.Errorf("create document record: %w", err)
	}
	logger.Info("Created document %s for %s", doc.ID, fileName)

	count, err := s.ingest.Ingest(ctx, *doc, raw, pages, s.chunkCfg)
	if err != nil {
		return doc, count, fmt.Errorf("ingest document %s: %w", doc.ID, err)
	}

	if err := s.docStore.MarkProcessed(ctx, doc.ID); err != nil {
		return doc, count, fmt.Errorf("mark document %s processed: %w", doc.ID, err)
	}
	doc.Processed = true

	return doc, count, nil
}

// Get fetches one document record.
func (s *DocumentLifecycle) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

// List returns document records ordered by creation time.
func (s *DocumentLifecycle) List(ctx context.Context, skip, limit int) ([]domain.Document, error) {
	docs, err := s.docStore.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes the document in two phases: chunk records first, then
// the metadata record. A failure between the phases leaves a metadata
// record without chunks; the returned error says which phase failed so
// the caller can retry.
func (s *DocumentLifecycle) Delete(ctx context.Context, id string) error {
	if _, err := s.docStore.Get(ctx, id); err != nil {
		return fmt.Errorf("get document %s: %w", id, err)
	}

	removed, err := s.vectors.DeleteByDocID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete chunk records of document %s: %v: %w", id, err, domain.ErrDeletion)
	}
	logger.Info("Removed %d chunk record(s) for document %s", removed, id)

	if err := s.docStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("chunk records of document %s removed but metadata record remains: %v: %w",
			id, err, domain.ErrDeletion)
	}
	logger.Info("Deleted document %s", id)

	return nil
}
