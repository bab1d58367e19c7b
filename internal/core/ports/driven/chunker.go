package driven

// Chunker splits one page's text into overlapping chunks.
// Chunks come back in left-to-right document order; consecutive chunks
// overlap by exactly the configured overlap in the strategy's unit, except
// possibly the final chunk, which may be shorter.
type Chunker interface {
	// Name returns the strategy identifier.
	Name() string

	// Chunk splits the text. Fails with domain.ErrChunking on empty input.
	Chunk(text string) ([]string, error)
}
