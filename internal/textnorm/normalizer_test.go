package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "joins hyphenated line break",
			input: "the docu-\nment store",
			want:  "the document store",
		},
		{
			name:  "joins chained hyphenated breaks",
			input: "ex-\ntra-\nordinary",
			want:  "extraordinary",
		},
		{
			name:  "keeps hyphen inside a line",
			input: "state-of-the-art retrieval",
			want:  "state-of-the-art retrieval",
		},
		{
			name:  "canonicalises curly quotes",
			input: "“smart” and ‘fancy’ quotes",
			want:  `"smart" and 'fancy' quotes`,
		},
		{
			name:  "canonicalises guillemets",
			input: "«citation» and ‹aside›",
			want:  `"citation" and 'aside'`,
		},
		{
			name:  "collapses repeated dots to two",
			input: "wait......... done",
			want:  "wait.. done",
		},
		{
			name:  "keeps a double dot",
			input: "range 1..5",
			want:  "range 1..5",
		},
		{
			name:  "collapses repeated commas",
			input: "a,,,,,b",
			want:  "a,,b",
		},
		{
			name:  "collapses horizontal whitespace",
			input: "spaced \t  out",
			want:  "spaced out",
		},
		{
			name:  "collapses blank lines",
			input: "first\n\n\n\nsecond",
			want:  "first\nsecond",
		},
		{
			name:  "strips html tags",
			input: "<p>hello <b>world</b></p>",
			want:  "hello world",
		},
		{
			name:  "strips script and style blocks",
			input: "before<script>var x = 1;</script><style>p { color: red }</style>after",
			want:  "beforeafter",
		},
		{
			name:  "strips html comments",
			input: "a<!-- hidden\nnote -->b",
			want:  "ab",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  \n padded \n ",
			want:  "padded",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"the docu-\nment store",
		"ex-\ntra-\nordinary",
		"a <b>bold</b> claim  with   spacing",
		"< <b> x>", // stripping the inner tag exposes an outer one
		"wait......... “done”,,,,, now\n\n\nnext",
		"Café résumé", // combining accents, NFC folds them
	}

	for _, input := range inputs {
		once, err := Normalize(input)
		require.NoError(t, err)

		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestNormalizeNFC(t *testing.T) {
	got, err := Normalize("Café")
	require.NoError(t, err)
	assert.Equal(t, "Café", got)
}

func TestNormalizeInvalidUTF8(t *testing.T) {
	_, err := Normalize(string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNormalization)
}
