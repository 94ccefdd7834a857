package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure FilterService implements the interface.
var _ driving.FilterService = (*FilterService)(nil)

// FilterService narrows and orders conversation listings by facet
// predicates instead of text matching. Filtering is pure: the same
// input and criteria always produce the same output, and applying the
// same criteria twice changes nothing.
type FilterService struct {
	store driven.ConversationStore
}

// NewFilterService creates a new filter service.
func NewFilterService(store driven.ConversationStore) *FilterService {
	return &FilterService{store: store}
}

// Apply filters and sorts the given conversations. All set criteria
// must hold (logical AND). The input slice is never mutated.
func (s *FilterService) Apply(conversations []domain.Conversation, filters domain.FilterOptions) ([]domain.Conversation, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	filtered := make([]domain.Conversation, 0, len(conversations))
	for i := range conversations {
		if matchesFilters(&conversations[i], filters) {
			filtered = append(filtered, conversations[i])
		}
	}
	logger.Debug("Filtered %d of %d conversations", len(filtered), len(conversations))

	sortConversations(filtered, filters.SortBy, filters.SortAsc)
	return filtered, nil
}

// ListFiltered loads every conversation from storage and applies the
// filters to the listing.
func (s *FilterService) ListFiltered(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
	conversations, err := s.store.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return s.Apply(conversations, filters)
}

// validateFilters rejects unrecognised enum values before any work
// happens. Empty values mean "criterion disabled" and always pass.
func validateFilters(filters domain.FilterOptions) error {
	if filters.ChatType != "" && !filters.ChatType.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidChatType, filters.ChatType)
	}
	if filters.SortBy != "" && !filters.SortBy.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, filters.SortBy)
	}
	return nil
}

// matchesFilters reports whether a conversation passes every set
// criterion. Date bounds form a closed interval on last activity; a
// conversation that was never messaged has a zero timestamp and so
// fails any lower bound.
func matchesFilters(conv *domain.Conversation, f domain.FilterOptions) bool {
	if f.Starred != nil && conv.Starred != *f.Starred {
		return false
	}
	if f.ChatType != "" && !f.ChatType.Matches(conv) {
		return false
	}
	if !f.From.IsZero() && conv.LastActivity.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && conv.LastActivity.After(f.To) {
		return false
	}
	if f.FolderID != "" && conv.FolderID != f.FolderID {
		return false
	}
	if f.HasMessages != nil && (conv.MessageCount > 0) != *f.HasMessages {
		return false
	}
	return true
}

// sortConversations orders the listing by the sort key, descending by
// default. The sort is stable, so equal keys keep their storage order.
func sortConversations(conversations []domain.Conversation, key domain.SortKey, ascending bool) {
	less := func(a, b *domain.Conversation) bool {
		switch key {
		case domain.SortByTitle:
			return a.Title < b.Title
		case domain.SortByMessageCount:
			return a.MessageCount < b.MessageCount
		default:
			return a.LastActivity.Before(b.LastActivity)
		}
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		if ascending {
			return less(&conversations[i], &conversations[j])
		}
		return less(&conversations[j], &conversations[i])
	})
}
