package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// vec builds a full-size embedding with the leading dimensions set.
func vec(lead ...float32) []float32 {
	v := make([]float32, domain.EmbeddingDimensions)
	copy(v, lead)
	return v
}

func record(docID, name string, page int32, text string, embedding []float32) domain.ChunkRecord {
	return domain.ChunkRecord{
		DocID:        docID,
		DocumentName: name,
		PageNumber:   page,
		Text:         text,
		Embedding:    embedding,
	}
}

func TestVectorStore_InsertAssignsIDs(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	ids, err := store.Insert(ctx, []domain.ChunkRecord{
		record("doc-1", "a.pdf", 0, "first", vec(1)),
		record("doc-1", "a.pdf", 0, "second", vec(0, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.Equal(t, 2, store.Count())
}

func TestVectorStore_InsertRejectsInvalidRecord(t *testing.T) {
	store := NewVectorStore()

	// Wrong embedding size violates the collection schema.
	bad := record("doc-1", "a.pdf", 0, "text", []float32{1, 2, 3})
	_, err := store.Insert(context.Background(), []domain.ChunkRecord{bad})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestVectorStore_SearchRanksBySimilarity(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	_, err := store.Insert(ctx, []domain.ChunkRecord{
		record("doc-1", "a.pdf", 0, "exact match", vec(1, 0)),
		record("doc-1", "a.pdf", 1, "orthogonal", vec(0, 1)),
		record("doc-1", "a.pdf", 2, "close", vec(1, 0.2)),
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, vec(1, 0), 2, nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "exact match", results[0].Record.Text)
	assert.Equal(t, "close", results[1].Record.Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestVectorStore_SearchFiltersByDocID(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	_, err := store.Insert(ctx, []domain.ChunkRecord{
		record("doc-1", "a.pdf", 0, "from a", vec(1)),
		record("doc-2", "b.pdf", 0, "from b", vec(1)),
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, vec(1), 10, []string{"doc-2"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "from b", results[0].Record.Text)
}

func TestVectorStore_SearchInvalidTopK(t *testing.T) {
	store := NewVectorStore()

	_, err := store.Search(context.Background(), vec(1), 0, nil)
	assert.ErrorIs(t, err, domain.ErrIndexedStore)
}

func TestVectorStore_DeleteByDocID(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	_, err := store.Insert(ctx, []domain.ChunkRecord{
		record("doc-1", "a.pdf", 0, "one", vec(1)),
		record("doc-1", "a.pdf", 1, "two", vec(1)),
		record("doc-2", "b.pdf", 0, "keep", vec(1)),
	})
	require.NoError(t, err)

	removed, err := store.DeleteByDocID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Count())

	removed, err = store.DeleteByDocID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{0, 0}))
}
