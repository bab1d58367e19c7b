package chunker

import (
	"fmt"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// tokenChunker splits text on whitespace tokens. Its effective size is
// capped at MaxTokenChunkSize by New regardless of the requested value.
type tokenChunker struct {
	size    int
	overlap int
}

func (c *tokenChunker) Name() string {
	return "token"
}

func (c *tokenChunker) Chunk(text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot chunk empty text: %w", domain.ErrChunking)
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens found in text: %w", domain.ErrChunking)
	}

	return window(tokens, c.size, c.overlap), nil
}
