package domain

import "time"

// Document represents one uploaded source file tracked in the metadata store.
type Document struct {
	// ID is the unique identifier, generated once at upload.
	ID string

	// FileName is the original name of the uploaded file.
	FileName string

	// Processed is true once every derived chunk record has been indexed.
	// It is never set back to false.
	Processed bool

	// CreatedAt is when the document record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// Page is one page of extracted text.
// Number is always the absolute 0-based page index within the source
// document, regardless of any requested sub-range.
type Page struct {
	Number int
	Text   string
}

// PageRange is an inclusive range of 0-based page indexes.
type PageRange struct {
	Start int
	End   int
}

// Chunk is the transient output of the chunker before embedding.
// It is a pure value with no identity and is never persisted directly.
type Chunk struct {
	PageNumber int
	Text       string
}

// Indexed store schema limits. The collection schema is fixed; any value
// exceeding these limits is a configuration error upstream.
const (
	// EmbeddingDimensions is the vector size declared by the embedding model.
	EmbeddingDimensions = 768

	// MaxDocIDLen bounds the doc_id field.
	MaxDocIDLen = 36

	// MaxDocumentNameLen bounds the document_name field.
	MaxDocumentNameLen = 100

	// MaxChunkTextLen bounds the text field. Chunks longer than this must
	// be split further upstream.
	MaxChunkTextLen = 4096
)

// ChunkRecord is one unit of retrievable, embedded text in the indexed store.
type ChunkRecord struct {
	// ID is the store-assigned primary key. Zero until inserted.
	ID int64

	// DocID references the owning Document. Many records share one DocID.
	DocID string

	// DocumentName is a denormalised copy of Document.FileName for display.
	DocumentName string

	// PageNumber is the absolute 0-based page the chunk text came from.
	PageNumber int32

	// Text is the chunk content.
	Text string

	// Embedding is the vector representation, exactly EmbeddingDimensions long.
	Embedding []float32
}

// Validate checks the record against the fixed collection schema.
func (r ChunkRecord) Validate() error {
	switch {
	case r.DocID == "" || len(r.DocID) > MaxDocIDLen:
		return ErrConfiguration
	case len(r.DocumentName) > MaxDocumentNameLen:
		return ErrConfiguration
	case len(r.Text) == 0 || len(r.Text) > MaxChunkTextLen:
		return ErrConfiguration
	case len(r.Embedding) != EmbeddingDimensions:
		return ErrConfiguration
	}
	return nil
}

// ScoredChunk pairs a retrieved chunk record with its similarity score.
// Scores are an internal ranking detail and are dropped before results
// surface to the caller.
type ScoredChunk struct {
	Record ChunkRecord
	Score  float64
}

// Answer is the result of one question against the indexed store.
type Answer struct {
	// Text is the model's answer, returned verbatim.
	Text string

	// Sources lists "{document_name}, page {page_number}" citations,
	// deduplicated and sorted lexicographically.
	Sources []string
}
