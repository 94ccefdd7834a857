package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// It keeps history for the process lifetime only.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.SearchHistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// SaveHistory replaces the stored history with the given list.
func (s *HistoryStore) SaveHistory(_ context.Context, entries []domain.SearchHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]domain.SearchHistoryEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

// LoadHistory returns the stored history, newest first.
func (s *HistoryStore) LoadHistory(_ context.Context) ([]domain.SearchHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.SearchHistoryEntry, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}
