// Package milvus is a minimal REST client for the Milvus v2 HTTP API,
// implementing the indexed-store port over the fixed chunk collection.
package milvus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultCollection is the chunk collection name.
const DefaultCollection = "pdf_documents"

const defaultTimeout = 30 * time.Second

// Store talks to a Milvus instance over its v2 REST API. The collection
// schema is fixed: an auto-assigned int64 primary key plus doc_id,
// document_name, page_number, text and a 768-dimension embeddings field.
type Store struct {
	baseURL    string
	token      string
	collection string
	client     *http.Client
}

// Config holds connection settings for the Milvus endpoint.
type Config struct {
	// BaseURL is the cluster endpoint, e.g. "http://localhost:19530".
	BaseURL string

	// Token is the API key or "username:password" pair. Optional.
	Token string

	// Collection overrides DefaultCollection when set.
	Collection string

	// Timeout bounds each HTTP call. Defaults to 30s.
	Timeout time.Duration
}

// NewStore creates a Milvus-backed vector store and ensures the chunk
// collection exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("milvus base URL is required: %w", domain.ErrConfiguration)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = DefaultCollection
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	s := &Store{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		collection: collection,
		client:     &http.Client{Timeout: timeout},
	}

	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureCollection creates the fixed-schema collection if missing.
func (s *Store) ensureCollection(ctx context.Context) error {
	var has struct {
		Has bool `json:"has"`
	}
	err := s.post(ctx, "/v2/vectordb/collections/has", map[string]any{
		"collectionName": s.collection,
	}, &has)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", s.collection, err)
	}
	if has.Has {
		return nil
	}

	logger.Info("Creating Milvus collection %s", s.collection)

	body := map[string]any{
		"collectionName": s.collection,
		"schema": map[string]any{
			"autoID": true,
			"fields": []map[string]any{
				{"fieldName": "id", "dataType": "Int64", "isPrimary": true},
				{"fieldName": "doc_id", "dataType": "VarChar",
					"elementTypeParams": map[string]any{"max_length": domain.MaxDocIDLen}},
				{"fieldName": "document_name", "dataType": "VarChar",
					"elementTypeParams": map[string]any{"max_length": domain.MaxDocumentNameLen}},
				{"fieldName": "page_number", "dataType": "Int32"},
				{"fieldName": "text", "dataType": "VarChar",
					"elementTypeParams": map[string]any{"max_length": domain.MaxChunkTextLen}},
				{"fieldName": "embeddings", "dataType": "FloatVector",
					"elementTypeParams": map[string]any{"dim": domain.EmbeddingDimensions}},
			},
		},
		"indexParams": []map[string]any{
			{"fieldName": "embeddings", "indexName": "embeddings_idx", "metricType": "L2"},
		},
	}
	if err := s.post(ctx, "/v2/vectordb/collections/create", body, nil); err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}

	return nil
}

// Insert stores the records and returns their assigned primary keys.
func (s *Store) Insert(ctx context.Context, records []domain.ChunkRecord) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	data := make([]map[string]any, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("insert record for document %s: %w", r.DocID, err)
		}
		data = append(data, map[string]any{
			"doc_id":        r.DocID,
			"document_name": r.DocumentName,
			"page_number":   r.PageNumber,
			"text":          r.Text,
			"embeddings":    r.Embedding,
		})
	}

	var result struct {
		InsertCount int     `json:"insertCount"`
		InsertIDs   []int64 `json:"insertIds"`
	}
	err := s.post(ctx, "/v2/vectordb/entities/insert", map[string]any{
		"collectionName": s.collection,
		"data":           data,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("insert %d record(s): %v: %w", len(records), err, domain.ErrIndexedStore)
	}
	if result.InsertCount != len(records) {
		return nil, fmt.Errorf("inserted %d of %d record(s): %w",
			result.InsertCount, len(records), domain.ErrIndexedStore)
	}

	return result.InsertIDs, nil
}

// Search returns the topK nearest records, best match first, optionally
// restricted to the given document IDs.
func (s *Store) Search(ctx context.Context, vector []float32, topK int, docIDs []string) ([]domain.ScoredChunk, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d: %w", topK, domain.ErrIndexedStore)
	}

	body := map[string]any{
		"collectionName": s.collection,
		"data":           [][]float32{vector},
		"annsField":      "embeddings",
		"limit":          topK,
		"outputFields":   []string{"id", "doc_id", "document_name", "page_number", "text"},
	}
	if len(docIDs) > 0 {
		body["filter"] = docIDFilter(docIDs)
	}

	var hits []struct {
		ID           int64   `json:"id"`
		DocID        string  `json:"doc_id"`
		DocumentName string  `json:"document_name"`
		PageNumber   int32   `json:"page_number"`
		Text         string  `json:"text"`
		Distance     float64 `json:"distance"`
	}
	if err := s.post(ctx, "/v2/vectordb/entities/search", body, &hits); err != nil {
		return nil, fmt.Errorf("search: %v: %w", err, domain.ErrIndexedStore)
	}

	results := make([]domain.ScoredChunk, 0, len(hits))
	for _, h := range hits {
		results = append(results, domain.ScoredChunk{
			Record: domain.ChunkRecord{
				ID:           h.ID,
				DocID:        h.DocID,
				DocumentName: h.DocumentName,
				PageNumber:   h.PageNumber,
				Text:         h.Text,
			},
			Score: h.Distance,
		})
	}

	return results, nil
}

// DeleteByDocID removes every record sharing docID. Milvus deletes by
// primary key, so matching keys are looked up first.
func (s *Store) DeleteByDocID(ctx context.Context, docID string) (int, error) {
	var rows []struct {
		ID int64 `json:"id"`
	}
	err := s.post(ctx, "/v2/vectordb/entities/query", map[string]any{
		"collectionName": s.collection,
		"filter":         fmt.Sprintf("doc_id == %q", docID),
		"outputFields":   []string{"id"},
	}, &rows)
	if err != nil {
		return 0, fmt.Errorf("query records of document %s: %v: %w", docID, err, domain.ErrIndexedStore)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, fmt.Sprintf("%d", row.ID))
	}

	err = s.post(ctx, "/v2/vectordb/entities/delete", map[string]any{
		"collectionName": s.collection,
		"filter":         fmt.Sprintf("id in [%s]", strings.Join(ids, ", ")),
	}, nil)
	if err != nil {
		return 0, fmt.Errorf("delete records of document %s: %v: %w", docID, err, domain.ErrIndexedStore)
	}

	logger.Debug("Deleted %d record(s) for document %s", len(ids), docID)
	return len(ids), nil
}

// Close releases the HTTP client's idle connections.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// docIDFilter builds a `doc_id in [...]` expression.
func docIDFilter(docIDs []string) string {
	quoted := make([]string, 0, len(docIDs))
	for _, id := range docIDs {
		quoted = append(quoted, fmt.Sprintf("%q", id))
	}
	return fmt.Sprintf("doc_id in [%s]", strings.Join(quoted, ", "))
}

// envelope is the Milvus REST response wrapper. A non-zero code means
// the call failed even with HTTP 200.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// post sends one JSON request and decodes the data payload into out.
func (s *Store) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: unexpected status %s", path, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	if env.Code != 0 {
		return fmt.Errorf("POST %s: milvus error %d: %s", path, env.Code, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data from %s: %w", path, err)
		}
	}

	return nil
}
