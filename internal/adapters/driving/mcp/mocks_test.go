package mcp

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// mockSearchSession is a mock implementation of driving.SearchSession.
type mockSearchSession struct {
	results     []domain.SearchResult
	suggestions []string
	err         error

	gotOpts    domain.SearchOptions
	gotPartial string
}

func (m *mockSearchSession) PerformSearch(
	_ context.Context,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.gotOpts = opts
	return m.results, m.err
}

func (m *mockSearchSession) Suggestions(_ context.Context, partial string) ([]string, error) {
	m.gotPartial = partial
	return m.suggestions, m.err
}

func (m *mockSearchSession) History() []domain.SearchHistoryEntry {
	return nil
}

func (m *mockSearchSession) AddToHistory(_ string, _ int) {}

func (m *mockSearchSession) ClearSearch() {}

func (m *mockSearchSession) State() domain.SessionState {
	return domain.StateIdle
}

func (m *mockSearchSession) Query() string {
	return ""
}

func (m *mockSearchSession) Results() []domain.SearchResult {
	return m.results
}

func (m *mockSearchSession) SelectResult(_ int) *domain.SearchResult {
	return nil
}

func (m *mockSearchSession) Selected() *domain.SearchResult {
	return nil
}

// mockFilterService is a mock implementation of driving.FilterService.
type mockFilterService struct {
	conversations []domain.Conversation
	err           error

	gotFilters domain.FilterOptions
}

func (m *mockFilterService) Apply(
	_ []domain.Conversation,
	filters domain.FilterOptions,
) ([]domain.Conversation, error) {
	m.gotFilters = filters
	return m.conversations, m.err
}

func (m *mockFilterService) ListFiltered(
	_ context.Context,
	filters domain.FilterOptions,
) ([]domain.Conversation, error) {
	m.gotFilters = filters
	return m.conversations, m.err
}

// mockConversationStore is a mock implementation of driven.ConversationStore.
type mockConversationStore struct {
	conversations []domain.Conversation
	conversation  *domain.Conversation
	messages      []domain.Message
	err           error
}

func (m *mockConversationStore) SaveConversation(_ context.Context, _ *domain.Conversation) error {
	return m.err
}

func (m *mockConversationStore) SaveMessages(_ context.Context, _ string, _ []domain.Message) error {
	return m.err
}

func (m *mockConversationStore) GetConversation(_ context.Context, _ string) (*domain.Conversation, error) {
	return m.conversation, m.err
}

func (m *mockConversationStore) GetMessages(_ context.Context, _ string) ([]domain.Message, error) {
	return m.messages, m.err
}

func (m *mockConversationStore) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	return m.conversations, m.err
}

func (m *mockConversationStore) DeleteConversation(_ context.Context, _ string) error {
	return m.err
}

func (m *mockConversationStore) Snapshot(_ context.Context) (*domain.Corpus, error) {
	return nil, m.err
}
