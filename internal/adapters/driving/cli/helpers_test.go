package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// mockDocumentService is a canned driving.DocumentService for command tests.
type mockDocumentService struct {
	uploadErr error
	deleteErr error
	deleted   []string
}

func (m *mockDocumentService) Upload(_ context.Context, fileName string, _ []byte, _ *domain.PageRange) (*domain.Document, int, error) {
	if m.uploadErr != nil {
		return nil, 0, m.uploadErr
	}
	return &domain.Document{
		ID:        "doc-1",
		FileName:  fileName,
		Processed: true,
		CreatedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}, 12, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if id != "doc-1" {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return &domain.Document{ID: "doc-1", FileName: "report.pdf", Processed: true}, nil
}

func (m *mockDocumentService) List(_ context.Context, _, _ int) ([]domain.Document, error) {
	return []domain.Document{
		{
			ID:        "doc-1",
			FileName:  "report.pdf",
			Processed: true,
			CreatedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "doc-2",
			FileName:  "notes.pdf",
			Processed: false,
			CreatedAt: time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC),
		},
	}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockAnswerService is a canned driving.AnswerService for command tests.
type mockAnswerService struct {
	askErr      error
	gotQuestion string
	gotDocIDs   []string
	gotTopK     int
	answer      string
	sources     []string
}

func (m *mockAnswerService) Ask(_ context.Context, question string, docIDs []string, topK int) (*domain.Answer, error) {
	if m.askErr != nil {
		return nil, m.askErr
	}
	m.gotQuestion = question
	m.gotDocIDs = docIDs
	m.gotTopK = topK

	answer := m.answer
	if answer == "" {
		answer = "The warranty lasts two years."
	}
	sources := m.sources
	if sources == nil {
		sources = []string{"report.pdf, page 3"}
	}
	return &domain.Answer{Text: answer, Sources: sources}, nil
}

// noopSettingsService satisfies driving.SettingsService without persistence.
type noopSettingsService struct{}

func (noopSettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	return &settings, nil
}
func (noopSettingsService) Save(_ *domain.AppSettings) error { return nil }
func (noopSettingsService) SetEmbeddingProvider(_ domain.AIProvider, _, _ string) error {
	return nil
}
func (noopSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error { return nil }
func (noopSettingsService) SetChunking(_ domain.ChunkingSettings) error           { return nil }
func (noopSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
func (noopSettingsService) Validate() error { return nil }

// setupTestServices swaps canned services in and returns a cleanup func.
func setupTestServices() func() {
	oldDocument := documentService
	oldAnswer := answerService
	oldIngestErr := ingestErr

	documentService = &mockDocumentService{}
	answerService = &mockAnswerService{}
	ingestErr = nil

	return func() {
		documentService = oldDocument
		answerService = oldAnswer
		ingestErr = oldIngestErr
	}
}
