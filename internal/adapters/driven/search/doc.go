// Package search implements the in-memory search engine: tokenising,
// indexing, the three match strategies (exact, regex, fuzzy), relevance
// ranking, and snippet extraction.
//
// The engine is synchronous and keeps no cross-call state except the
// token index, which it rebuilds lazily when the corpus fingerprint
// moves. It is not safe for concurrent use; the owning session
// serialises calls.
package search
