package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure AnswerPipeline implements the interface.
var _ driving.AnswerService = (*AnswerPipeline)(nil)

// DefaultTopK is how many chunks a query retrieves when the caller does
// not say otherwise.
const DefaultTopK = 5

// AnswerPipeline answers questions from indexed chunks: it embeds the
// question, runs a filtered similarity search, assembles context and
// sources, and asks the completion provider once.
type AnswerPipeline struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	llm      driven.LLMService
	prompts  driven.PromptStore
}

// NewAnswerPipeline creates an answer pipeline.
func NewAnswerPipeline(
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *AnswerPipeline {
	return &AnswerPipeline{
		embedder: embedder,
		vectors:  vectors,
		llm:      llm,
		prompts:  prompts,
	}
}

// Ask answers question from chunks belonging to the given documents.
// An empty docIDs slice searches across all documents. When the search
// matches nothing the canned no-answer response is returned without
// calling the completion provider.
func (p *AnswerPipeline) Ask(
	ctx context.Context, question string, docIDs []string, topK int,
) (*domain.Answer, error) {
	logger.Section("Question")
	logger.Debug("Question: %q, documents: %v", question, docIDs)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question must not be empty: %w", domain.ErrConfiguration)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	results, err := p.vectors.Search(ctx, vector, topK, docIDs)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	logger.Debug("Search returned %d chunk(s)", len(results))

	if len(results) == 0 {
		logger.Info("No matching chunks, returning canned response")
		noAnswer, err := p.prompts.Load(driven.PromptNoAnswer)
		if err != nil {
			return nil, fmt.Errorf("load no-answer prompt: %w", err)
		}
		return &domain.Answer{Text: noAnswer}, nil
	}

	answerText, err := p.generate(ctx, question, assembleContext(results))
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Text:    answerText,
		Sources: assembleSources(results),
	}, nil
}

// assembleContext concatenates chunk text in rank order, best match
// first. Boundaries between chunks are left as-is.
func assembleContext(results []domain.ScoredChunk) string {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.Record.Text)
	}
	return b.String()
}

// assembleSources formats, deduplicates and sorts the source labels.
// Sorting is lexicographic for stable presentation, not rank.
func assembleSources(results []domain.ScoredChunk) []string {
	seen := make(map[string]bool)
	sources := make([]string, 0, len(results))

	for _, r := range results {
		source := fmt.Sprintf("%s, page %d", r.Record.DocumentName, r.Record.PageNumber)
		if seen[source] {
			continue
		}
		seen[source] = true
		sources = append(sources, source)
	}

	sort.Strings(sources)
	return sources
}

// generate makes exactly one completion call with the fixed system
// instruction, the assembled context and the question.
func (p *AnswerPipeline) generate(ctx context.Context, question, contextText string) (string, error) {
	system, err := p.prompts.Load(driven.PromptAnswerSystem)
	if err != nil {
		return "", fmt.Errorf("load answer prompt: %w", err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question)},
	}

	logger.Debug("Generating answer with %s", p.llm.ModelName())
	answer, err := p.llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}
