package search

import (
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// DefaultSnippetLength is the default maximum snippet length in runes.
const DefaultSnippetLength = 150

// snippetRadius is how many runes of context survive either side of the
// matched term.
const snippetRadius = 50

const ellipsis = "..."

// Snippet excerpts content around the first case-insensitive occurrence
// of term, keeping snippetRadius runes of context on each side, with an
// ellipsis at any truncated edge. When term does not occur literally
// (fuzzy matches where only some tokens hit), the leading maxLen runes
// are returned instead, again with a trailing ellipsis if truncated.
func Snippet(content, term string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetLength
	}
	runes := []rune(content)

	spans := domain.HighlightSpans(content, []string{term})
	if len(spans) == 0 {
		return prefixSnippet(runes, maxLen)
	}
	first := spans[0]

	start := first.Start - snippetRadius
	if start < 0 {
		start = 0
	}
	end := first.End + snippetRadius
	if end > len(runes) {
		end = len(runes)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if end < len(runes) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// prefixSnippet returns the leading maxLen runes, whole when the
// content already fits.
func prefixSnippet(runes []rune, maxLen int) string {
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen]) + ellipsis
}
