package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span marks a half-open [Start, End) range of runes to emphasise when
// rendering a result. Offsets are rune positions, not bytes, so the
// presentation layer can slice multi-byte text safely.
type Span struct {
	// Start is the inclusive rune offset.
	Start int

	// End is the exclusive rune offset.
	End int
}

// Len returns the span width in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// HighlightSpans locates every case-insensitive occurrence of each term
// in text and returns non-overlapping spans in ascending order. Longer
// terms claim their ranges first, so a short term never splits an
// occurrence of a longer one that contains it. The engine returns
// matched substrings; turning them into markup is the caller's job.
func HighlightSpans(text string, terms []string) []Span {
	runes := []rune(text)
	if len(runes) == 0 || len(terms) == 0 {
		return nil
	}

	distinct := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, term)
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		return utf8.RuneCountInString(distinct[i]) > utf8.RuneCountInString(distinct[j])
	})

	taken := make([]bool, len(runes))
	var spans []Span
	for _, term := range distinct {
		needle := []rune(term)
		if len(needle) > len(runes) {
			continue
		}
		for i := 0; i+len(needle) <= len(runes); i++ {
			if !foldEqual(runes[i:i+len(needle)], needle) {
				continue
			}
			if rangeTaken(taken, i, i+len(needle)) {
				continue
			}
			markRange(taken, i, i+len(needle))
			spans = append(spans, Span{Start: i, End: i + len(needle)})
			i += len(needle) - 1
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans
}

// foldEqual compares rune slices of equal length case-insensitively.
func foldEqual(a, b []rune) bool {
	for i := range b {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

func rangeTaken(taken []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func markRange(taken []bool, start, end int) {
	for i := start; i < end; i++ {
		taken[i] = true
	}
}
