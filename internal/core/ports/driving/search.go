package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// SearchSession owns one user's search lifecycle: the current query,
// result list, state machine, history, and suggestions. A session is
// safe for concurrent calls; results always reflect the most recent
// completed search.
type SearchSession interface {
	// PerformSearch runs one search against the current corpus and
	// records it. Blank queries return an empty list without touching
	// session state or history. Queries with hits are added to history.
	PerformSearch(ctx context.Context, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Suggestions merges history entries and conversation titles
	// containing the partial query, at most five, history first.
	// An empty partial yields nothing.
	Suggestions(ctx context.Context, partial string) ([]string, error)

	// History returns remembered queries, newest first.
	History() []domain.SearchHistoryEntry

	// AddToHistory records a query and its hit count, deduplicating by
	// exact text (most recent wins) and capping the list length.
	AddToHistory(query string, resultCount int)

	// ClearSearch resets the session to idle, wiping the current query,
	// results, and selection. History survives clears.
	ClearSearch()

	// State reports where the session is in its lifecycle.
	State() domain.SessionState

	// Query returns the query text of the most recent search.
	Query() string

	// Results returns the result list of the most recent search.
	Results() []domain.SearchResult

	// SelectResult marks the result at index as the current selection
	// and returns it. Out-of-range indexes return nil.
	SelectResult(index int) *domain.SearchResult

	// Selected returns the current selection, or nil when none is set.
	Selected() *domain.SearchResult
}
