package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

func newLifecycle(extractor *stubExtractor) (*DocumentLifecycle, *memory.DocumentStore, *memory.VectorStore) {
	docStore := memory.NewDocumentStore()
	vectors := memory.NewVectorStore()
	ingest := NewIngestPipeline(extractor, &stubEmbedder{}, vectors)
	svc := NewDocumentLifecycle(docStore, vectors, ingest, testChunkCfg())
	return svc, docStore, vectors
}

func TestDocumentLifecycle_Upload(t *testing.T) {
	extractor := &stubExtractor{pages: []domain.Page{{Number: 0, Text: "page content here."}}}
	svc, docStore, vectors := newLifecycle(extractor)

	doc, count, err := svc.Upload(context.Background(), "report.pdf", []byte("%PDF"), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "report.pdf", doc.FileName)
	assert.True(t, doc.Processed)
	assert.Equal(t, count, vectors.Count())

	stored, err := docStore.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, stored.Processed)
}

func TestDocumentLifecycle_UploadValidation(t *testing.T) {
	svc, _, _ := newLifecycle(&stubExtractor{})

	_, _, err := svc.Upload(context.Background(), "", []byte("%PDF"), nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	long := strings.Repeat("x", domain.MaxDocumentNameLen+1)
	_, _, err = svc.Upload(context.Background(), long, []byte("%PDF"), nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestDocumentLifecycle_UploadWithoutIngestService(t *testing.T) {
	docStore := memory.NewDocumentStore()
	svc := NewDocumentLifecycle(docStore, memory.NewVectorStore(), nil, testChunkCfg())
	ctx := context.Background()

	_, _, err := svc.Upload(ctx, "report.pdf", []byte("%PDF"), nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	// No record is created when uploads cannot run at all.
	docs, listErr := docStore.List(ctx, 0, 10)
	require.NoError(t, listErr)
	assert.Empty(t, docs)
}

func TestDocumentLifecycle_UploadIngestFailureKeepsRecordUnprocessed(t *testing.T) {
	extractor := &stubExtractor{err: domain.ErrExtraction}
	svc, docStore, _ := newLifecycle(extractor)

	doc, _, err := svc.Upload(context.Background(), "broken.pdf", []byte("junk"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)

	// The record stays visible with Processed=false.
	require.NotNil(t, doc)
	stored, getErr := docStore.Get(context.Background(), doc.ID)
	require.NoError(t, getErr)
	assert.False(t, stored.Processed)
}

func TestDocumentLifecycle_GetAndList(t *testing.T) {
	extractor := &stubExtractor{pages: []domain.Page{{Number: 0, Text: "content."}}}
	svc, _, _ := newLifecycle(extractor)
	ctx := context.Background()

	doc, _, err := svc.Upload(ctx, "one.pdf", []byte("%PDF"), nil)
	require.NoError(t, err)
	_, _, err = svc.Upload(ctx, "two.pdf", []byte("%PDF"), nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "one.pdf", got.FileName)

	docs, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentLifecycle_DeleteCascades(t *testing.T) {
	extractor := &stubExtractor{pages: []domain.Page{{Number: 0, Text: "content to delete."}}}
	svc, docStore, vectors := newLifecycle(extractor)
	ctx := context.Background()

	doc, count, err := svc.Upload(ctx, "victim.pdf", []byte("%PDF"), nil)
	require.NoError(t, err)
	require.Positive(t, count)

	require.NoError(t, svc.Delete(ctx, doc.ID))

	assert.Zero(t, vectors.Count())
	_, err = docStore.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentLifecycle_DeleteMissingDocument(t *testing.T) {
	svc, _, _ := newLifecycle(&stubExtractor{})

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
