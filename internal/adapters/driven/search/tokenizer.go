package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text into normalised search tokens: lowercased,
// punctuation folded to whitespace, tokens of one rune or less dropped.
// Indexing and fuzzy matching both call this and rely on it producing
// identical output for identical input.
func Tokenize(text string) []string {
	folded := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(folded)
	tokens := fields[:0]
	for _, field := range fields {
		if utf8.RuneCountInString(field) > 1 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// uniqueTokens returns the distinct tokens preserving first-seen order.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}
	return unique
}
