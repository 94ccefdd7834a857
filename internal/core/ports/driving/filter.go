package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// FilterService narrows and orders conversation listings without text
// search. Used by the UI when no query is active.
type FilterService interface {
	// Apply filters and sorts the given conversations. Criteria combine
	// with logical AND; the input slice is never mutated. Unrecognised
	// chat types or sort keys return domain validation errors.
	Apply(conversations []domain.Conversation, filters domain.FilterOptions) ([]domain.Conversation, error)

	// ListFiltered loads every conversation from storage and applies
	// the filters to it.
	ListFiltered(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error)
}
