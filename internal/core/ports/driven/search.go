package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// SearchEngine matches and ranks corpus content for a single query.
// Implementations are synchronous and in-memory; any token index they
// keep between calls is their own concern and must be rebuilt when the
// corpus fingerprint moves.
type SearchEngine interface {
	// Search returns ranked results for the options against the given
	// corpus snapshot, sorted descending by relevance with ties kept in
	// snapshot order. A blank query yields an empty result list and no
	// error. Scores are only comparable within one call.
	Search(ctx context.Context, corpus *domain.Corpus, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
