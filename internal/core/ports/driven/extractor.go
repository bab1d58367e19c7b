package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Extractor decodes raw document bytes into per-page plain text.
// Purely a format-decoding stage: no normalisation, no embeddings,
// no side effects.
type Extractor interface {
	// Extract returns the document's pages in order. Page numbers are the
	// absolute 0-based index within the source document, also when a
	// sub-range is requested. Fails with domain.ErrExtraction when the
	// bytes are not a parseable document or the range is out of bounds.
	Extract(ctx context.Context, raw []byte, pages *domain.PageRange) ([]domain.Page, error)
}

// CommandRunner executes an external command and returns its stdout.
// Extracted as an interface so extraction can be tested without the
// underlying tool installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
