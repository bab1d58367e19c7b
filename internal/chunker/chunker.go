// Package chunker splits normalized page text into overlapping chunks.
// Three interchangeable strategies share one contract: chunks come out in
// document order, consecutive chunks overlap by exactly the configured
// amount of units, and only the final chunk may be shorter than the
// configured size.
package chunker

import (
	"fmt"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// MaxTokenChunkSize is the hard ceiling on the token strategy's chunk
// size. Requests above it are capped so chunks stay within the indexed
// store's text field and the embedding model's input window.
const MaxTokenChunkSize = 384

// New builds the chunker for the given settings. The size and overlap are
// validated here so pipeline stages can assume a well-formed splitter.
func New(cfg domain.ChunkingSettings) (driven.Chunker, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d: %w", cfg.Size, domain.ErrChunking)
	}
	if cfg.Overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d: %w", cfg.Overlap, domain.ErrConfiguration)
	}

	size := cfg.Size
	if cfg.Strategy == domain.ChunkStrategyToken && size > MaxTokenChunkSize {
		size = MaxTokenChunkSize
	}
	if cfg.Overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d: %w",
			cfg.Overlap, size, domain.ErrConfiguration)
	}

	var c driven.Chunker
	switch cfg.Strategy {
	case domain.ChunkStrategyCharacter:
		c = &characterChunker{size: size, overlap: cfg.Overlap}
	case domain.ChunkStrategySentence:
		c = &sentenceChunker{size: size, overlap: cfg.Overlap}
	case domain.ChunkStrategyToken:
		c = &tokenChunker{size: size, overlap: cfg.Overlap}
	default:
		return nil, fmt.Errorf("unknown chunk strategy %q: %w", cfg.Strategy, domain.ErrConfiguration)
	}

	if cfg.Normalize {
		c = &normalizingChunker{inner: c}
	}

	return c, nil
}

// window slides a fixed-size window over units, stepping by size-overlap,
// and joins each window with a single space. The caller guarantees
// overlap < size.
func window(units []string, size, overlap int) []string {
	if len(units) == 0 {
		return nil
	}

	step := size - overlap
	estimated := (len(units) / step) + 1
	chunks := make([]string, 0, estimated)

	for start := 0; start < len(units); start += step {
		end := start + size
		if end > len(units) {
			end = len(units)
		}

		chunks = append(chunks, strings.Join(units[start:end], " "))

		if end == len(units) {
			break
		}
	}

	return chunks
}
