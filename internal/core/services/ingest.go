package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/docqa-labs/docqa-cli/internal/chunker"
	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure IngestPipeline implements the interface.
var _ driving.IngestService = (*IngestPipeline)(nil)

// defaultInsertBatchSize is how many chunk records go to the indexed
// store per insert call.
const defaultInsertBatchSize = 128

// IngestPipeline drives extraction, normalisation, chunking, embedding
// and indexed insertion for one document per call. Invocations are
// independent; concurrent ingests of the same document are not
// serialised here.
type IngestPipeline struct {
	extractor driven.Extractor
	embedder  driven.EmbeddingService
	vectors   driven.VectorStore

	limiter         *rate.Limiter
	insertBatchSize int
}

// NewIngestPipeline creates an ingest pipeline.
func NewIngestPipeline(
	extractor driven.Extractor,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
) *IngestPipeline {
	return &IngestPipeline{
		extractor:       extractor,
		embedder:        embedder,
		vectors:         vectors,
		insertBatchSize: defaultInsertBatchSize,
	}
}

// SetRateLimit throttles embedding calls to perSecond requests.
// Non-positive values disable throttling.
func (p *IngestPipeline) SetRateLimit(perSecond float64) {
	if perSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	} else {
		p.limiter = nil
	}
}

// SetInsertBatchSize overrides how many records go per insert call.
func (p *IngestPipeline) SetInsertBatchSize(size int) {
	if size > 0 {
		p.insertBatchSize = size
	}
}

// Ingest turns raw PDF bytes into indexed chunk records for doc.
//
// All embeddings are computed before the first insert, so an embedding
// failure aborts cleanly with nothing written. Inserts run in batches;
// if a batch past the first fails, the already-inserted records remain
// and the error is a *domain.PartialIngestError. No automatic rollback
// is attempted.
func (p *IngestPipeline) Ingest(
	ctx context.Context,
	doc domain.Document,
	raw []byte,
	pages *domain.PageRange,
	cfg domain.ChunkingSettings,
) (int, error) {
	logger.Section("Ingest")
	logger.Info("Document %s (%s): strategy=%s size=%d overlap=%d",
		doc.ID, doc.FileName, cfg.Strategy, cfg.Size, cfg.Overlap)

	split, err := chunker.New(cfg)
	if err != nil {
		return 0, fmt.Errorf("build chunker: %w", err)
	}

	extracted, err := p.extractor.Extract(ctx, raw, pages)
	if err != nil {
		return 0, fmt.Errorf("extract document %s: %w", doc.ID, err)
	}
	logger.Debug("Extracted %d page(s)", len(extracted))

	chunks, err := chunkPages(extracted, split)
	if err != nil {
		return 0, fmt.Errorf("chunk document %s: %w", doc.ID, err)
	}
	if len(chunks) == 0 {
		logger.Warn("Document %s produced no chunks", doc.ID)
		return 0, nil
	}
	logger.Debug("Produced %d chunk(s)", len(chunks))

	records, err := p.embedChunks(ctx, doc, chunks)
	if err != nil {
		return 0, err
	}

	inserted, err := p.insertRecords(ctx, doc.ID, records)
	if err != nil {
		return inserted, err
	}

	logger.Info("Indexed %d chunk(s) for document %s", inserted, doc.ID)
	return inserted, nil
}

// chunkPages splits each page independently so chunk boundaries never
// span pages. Pages with no text are skipped.
func chunkPages(pages []domain.Page, split driven.Chunker) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		parts, err := split.Chunk(page.Text)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}

		for _, text := range parts {
			chunks = append(chunks, domain.Chunk{
				PageNumber: page.Number,
				Text:       text,
			})
		}
	}

	return chunks, nil
}

// embedChunks computes every embedding and builds the full record batch
// before anything touches the indexed store.
func (p *IngestPipeline) embedChunks(
	ctx context.Context, doc domain.Document, chunks []domain.Chunk,
) ([]domain.ChunkRecord, error) {
	records := make([]domain.ChunkRecord, 0, len(chunks))

	for start := 0; start < len(chunks); start += p.insertBatchSize {
		end := start + p.insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("embedding rate limit: %w", err)
			}
		}

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks %d-%d of document %s: %w", start, end-1, doc.ID, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch, got %d for %d chunk(s): %w",
				len(vectors), len(batch), domain.ErrEmbedding)
		}

		for i, c := range batch {
			record := domain.ChunkRecord{
				DocID:        doc.ID,
				DocumentName: doc.FileName,
				PageNumber:   int32(c.PageNumber),
				Text:         c.Text,
				Embedding:    vectors[i],
			}
			if err := record.Validate(); err != nil {
				return nil, fmt.Errorf("chunk %d of document %s: %w", start+i, doc.ID, err)
			}
			records = append(records, record)
		}
	}

	logger.Debug("Embedded %d chunk(s) with %s", len(records), p.embedder.ModelName())
	return records, nil
}

// insertRecords submits records in page-then-chunk order. The inserted
// count is accurate even on failure so callers can report partial state.
func (p *IngestPipeline) insertRecords(
	ctx context.Context, docID string, records []domain.ChunkRecord,
) (int, error) {
	inserted := 0

	for start := 0; start < len(records); start += p.insertBatchSize {
		end := start + p.insertBatchSize
		if end > len(records) {
			end = len(records)
		}

		ids, err := p.vectors.Insert(ctx, records[start:end])
		if err != nil {
			if inserted > 0 {
				logger.Warn("Insert failed after %d of %d record(s) for document %s",
					inserted, len(records), docID)
				return inserted, &domain.PartialIngestError{
					DocID:    docID,
					Stage:    "insert",
					Inserted: inserted,
					Total:    len(records),
					Err:      err,
				}
			}
			return 0, fmt.Errorf("insert chunk records for document %s: %w", docID, err)
		}

		inserted += len(ids)
	}

	return inserted, nil
}
