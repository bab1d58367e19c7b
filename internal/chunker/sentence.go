package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// sentenceBoundary matches one sentence ending in terminal punctuation.
var sentenceBoundary = regexp.MustCompile(`[^.!?]+[.!?]+`)

// sentenceChunker treats whole sentences as the chunking unit: size and
// overlap count sentences, so chunk boundaries never cut a sentence.
type sentenceChunker struct {
	size    int
	overlap int
}

func (c *sentenceChunker) Name() string {
	return "sentence"
}

func (c *sentenceChunker) Chunk(text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot chunk empty text: %w", domain.ErrChunking)
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("no sentences found in text: %w", domain.ErrChunking)
	}

	return window(sentences, c.size, c.overlap), nil
}

// splitSentences breaks text on terminal punctuation. A trailing fragment
// without terminal punctuation still becomes a sentence so no content is
// lost.
func splitSentences(text string) []string {
	matches := sentenceBoundary.FindAllStringIndex(text, -1)

	sentences := make([]string, 0, len(matches)+1)
	last := 0
	for _, m := range matches {
		s := strings.TrimSpace(text[m[0]:m[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = m[1]
	}

	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}
