package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore using
// brute-force cosine similarity. Fine for tests and small local corpora;
// not an index.
type VectorStore struct {
	mu      sync.RWMutex
	records map[int64]domain.ChunkRecord
	nextID  int64
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		records: make(map[int64]domain.ChunkRecord),
		nextID:  1,
	}
}

// Insert stores the records and returns assigned primary keys in input
// order.
func (s *VectorStore) Insert(_ context.Context, records []domain.ChunkRecord) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("insert record: %w", err)
		}
		r.ID = s.nextID
		s.nextID++
		s.records[r.ID] = r
		ids = append(ids, r.ID)
	}

	return ids, nil
}

// Search returns the topK records nearest to vector by cosine
// similarity, best first. docIDs restricts the search when non-empty.
func (s *VectorStore) Search(_ context.Context, vector []float32, topK int, docIDs []string) ([]domain.ScoredChunk, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d: %w", topK, domain.ErrIndexedStore)
	}

	filter := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		filter[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]domain.ScoredChunk, 0, len(s.records))
	for _, r := range s.records {
		if len(filter) > 0 && !filter[r.DocID] {
			continue
		}
		scored = append(scored, domain.ScoredChunk{
			Record: r,
			Score:  cosineSimilarity(vector, r.Embedding),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score == scored[j].Score {
			return scored[i].Record.ID < scored[j].Record.ID
		}
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	return scored, nil
}

// DeleteByDocID removes every record sharing docID.
func (s *VectorStore) DeleteByDocID(_ context.Context, docID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, r := range s.records {
		if r.DocID == docID {
			delete(s.records, id)
			removed++
		}
	}

	return removed, nil
}

// Close is a no-op for the in-memory store.
func (s *VectorStore) Close() error {
	return nil
}

// Count returns how many records are stored. Test helper.
func (s *VectorStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// cosineSimilarity returns a similarity in [-1, 1]; zero-magnitude or
// mismatched vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
