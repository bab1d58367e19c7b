// Package textnorm canonicalises extracted page text before chunking.
// Normalize is a pure, idempotent function: applying it twice yields the
// same result as applying it once.
package textnorm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Pre-compiled regular expressions for the normalisation pipeline.
var (
	hyphenBreak   = regexp.MustCompile(`(\p{L})-[ \t]*\n[ \t]*(\p{L})`)
	repeatDots    = regexp.MustCompile(`\.{3,}`)
	repeatCommas  = regexp.MustCompile(`,{3,}`)
	repeatSpaces  = regexp.MustCompile(` {3,}`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	allTags       = regexp.MustCompile(`<[^<>]+>`)
	horizontalWS  = regexp.MustCompile(`[ \t\x{00a0}]+`)
	spacedBreak   = regexp.MustCompile(` ?\n ?`)
	multiNewlines = regexp.MustCompile(`\n{2,}`)
)

// quotes maps typographic quotation marks to their ASCII equivalents.
var quotes = strings.NewReplacer(
	"‘", "'", // left single
	"’", "'", // right single
	"‚", "'", // single low-9
	"‛", "'", // single high-reversed-9
	"“", `"`, // left double
	"”", `"`, // right double
	"„", `"`, // double low-9
	"«", `"`, // left guillemet
	"»", `"`, // right guillemet
	"‹", "'", // single left guillemet
	"›", "'", // single right guillemet
)

// Normalize canonicalises text in a fixed order: hyphenation join across
// line breaks, quotation-mark canonicalisation, collapsing runs of '.',
// ',' and ' ' to at most two, Unicode NFC, HTML tag stripping and
// whitespace collapsing. Content is never dropped beyond these transformations.
func Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("invalid UTF-8 input: %w", domain.ErrNormalization)
	}

	t := joinHyphenation(text)
	t = quotes.Replace(t)
	t = repeatDots.ReplaceAllString(t, "..")
	t = repeatCommas.ReplaceAllString(t, ",,")
	t = repeatSpaces.ReplaceAllString(t, "  ")
	t = norm.NFC.String(t)
	t = stripHTML(t)
	t = collapseWhitespace(t)
	return t, nil
}

// joinHyphenation rejoins words split by a hyphen at a line break.
// Replacement can expose a new break immediately after a consumed match,
// so the pass repeats until the text is stable.
func joinHyphenation(text string) string {
	for {
		joined := hyphenBreak.ReplaceAllString(text, "$1$2")
		if joined == text {
			return joined
		}
		text = joined
	}
}

// collapseWhitespace reduces horizontal whitespace runs to a single space
// and blank-line runs to a single line break, then trims the edges.
func collapseWhitespace(text string) string {
	t := horizontalWS.ReplaceAllString(text, " ")
	t = spacedBreak.ReplaceAllString(t, "\n")
	t = multiNewlines.ReplaceAllString(t, "\n")
	return strings.TrimSpace(t)
}

// stripHTML removes markup without touching surrounding text.
// Removing an inner tag can expose a new tag pattern, so the tag pass
// repeats until the text is stable.
func stripHTML(text string) string {
	t := htmlComments.ReplaceAllString(text, "")
	t = scriptTag.ReplaceAllString(t, "")
	t = styleTag.ReplaceAllString(t, "")
	for {
		stripped := allTags.ReplaceAllString(t, "")
		if stripped == t {
			return stripped
		}
		t = stripped
	}
}
