package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// testVec builds a full-size embedding with the leading dimensions set.
func testVec(lead ...float32) []float32 {
	v := make([]float32, domain.EmbeddingDimensions)
	copy(v, lead)
	return v
}

// stubExtractor returns canned pages.
type stubExtractor struct {
	pages []domain.Page
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte, _ *domain.PageRange) ([]domain.Page, error) {
	return s.pages, s.err
}

// stubEmbedder returns a constant-direction vector for every text.
type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return testVec(1), nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func (s *stubEmbedder) Dimensions() int               { return domain.EmbeddingDimensions }
func (s *stubEmbedder) ModelName() string             { return "stub-embedder" }
func (s *stubEmbedder) Ping(_ context.Context) error  { return nil }
func (s *stubEmbedder) Close() error                  { return nil }

// stubLLM records the conversation and replies with a fixed answer.
type stubLLM struct {
	reply string
	err   error

	calls       int
	gotMessages []driven.ChatMessage
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	s.calls++
	s.gotMessages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) ModelName() string            { return "stub-llm" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

// stubPrompts serves fixed prompt texts.
type stubPrompts struct{}

func (stubPrompts) Load(name string) (string, error) {
	switch name {
	case driven.PromptAnswerSystem:
		return "Answer only from the context.", nil
	case driven.PromptNoAnswer:
		return "Couldn't find the answer in the document.", nil
	}
	return "", fmt.Errorf("unknown prompt %q: %w", name, domain.ErrNotFound)
}

func (stubPrompts) Reload() {}

// flakyVectorStore fails Insert on a chosen call, delegating everything
// else to the in-memory store.
type flakyVectorStore struct {
	*memory.VectorStore
	failOnCall int
	calls      int
}

func (s *flakyVectorStore) Insert(ctx context.Context, records []domain.ChunkRecord) ([]int64, error) {
	s.calls++
	if s.calls == s.failOnCall {
		return nil, fmt.Errorf("insert rejected: %w", domain.ErrIndexedStore)
	}
	return s.VectorStore.Insert(ctx, records)
}

// recordingDocuments captures Upload calls for watcher tests.
type recordingDocuments struct {
	mu      sync.Mutex
	uploads []string
}

func (r *recordingDocuments) Upload(_ context.Context, fileName string, _ []byte, _ *domain.PageRange) (*domain.Document, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, fileName)
	return &domain.Document{ID: "doc-1", FileName: fileName, Processed: true}, 1, nil
}

func (r *recordingDocuments) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (r *recordingDocuments) List(_ context.Context, _, _ int) ([]domain.Document, error) {
	return nil, nil
}

func (r *recordingDocuments) Delete(_ context.Context, _ string) error {
	return nil
}

func (r *recordingDocuments) uploaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uploads...)
}
