package domain

import "time"

// MaxHistoryEntries bounds the search history list. Older entries are
// evicted from the tail once the cap is reached.
const MaxHistoryEntries = 20

// MaxSuggestions bounds the merged suggestion list returned for a
// partial query.
const MaxSuggestions = 5

// SearchHistoryEntry records one remembered query.
type SearchHistoryEntry struct {
	// Query is the literal query text. At most one entry exists per
	// exact text; re-running a query moves it to the head.
	Query string

	// SearchedAt is when the query last produced results.
	SearchedAt time.Time

	// ResultCount is the hit count of the most recent run.
	ResultCount int
}
