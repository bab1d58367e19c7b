package chunker

import (
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/textnorm"
)

// normalizingChunker runs text normalisation before delegating to the
// wrapped strategy. Enabled through the Normalize configuration flag.
type normalizingChunker struct {
	inner driven.Chunker
}

func (c *normalizingChunker) Name() string {
	return c.inner.Name()
}

func (c *normalizingChunker) Chunk(text string) ([]string, error) {
	normalized, err := textnorm.Normalize(text)
	if err != nil {
		return nil, err
	}
	return c.inner.Chunk(normalized)
}
