package chunker

import (
	"fmt"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// characterChunker splits text into fixed-size rune windows. Runes, not
// bytes, so multi-byte characters are never cut in half.
type characterChunker struct {
	size    int
	overlap int
}

func (c *characterChunker) Name() string {
	return "character"
}

func (c *characterChunker) Chunk(text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot chunk empty text: %w", domain.ErrChunking)
	}

	runes := []rune(text)
	step := c.size - c.overlap
	estimated := (len(runes) / step) + 1
	chunks := make([]string, 0, estimated)

	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, string(runes[start:end]))

		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}
