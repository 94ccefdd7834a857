package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// ConversationStore persists conversations and their messages.
// Backed by SQLite for durable storage, or memory for tests.
type ConversationStore interface {
	// SaveConversation stores or updates a conversation.
	SaveConversation(ctx context.Context, conv *domain.Conversation) error

	// SaveMessages appends messages to a conversation and refreshes its
	// last-activity timestamp and message count.
	SaveMessages(ctx context.Context, conversationID string, msgs []domain.Message) error

	// GetConversation retrieves a conversation by ID.
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// GetMessages retrieves a conversation's messages in creation order.
	GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// ListConversations returns every conversation in storage order.
	ListConversations(ctx context.Context) ([]domain.Conversation, error)

	// DeleteConversation removes a conversation and its messages.
	DeleteConversation(ctx context.Context, id string) error

	// Snapshot produces the immutable corpus view a search call reads.
	// Implementations must return data the caller can hold without
	// seeing later mutations.
	Snapshot(ctx context.Context) (*domain.Corpus, error)
}

// HistoryStore persists search history between sessions.
type HistoryStore interface {
	// SaveHistory replaces the stored history with the given list,
	// newest first.
	SaveHistory(ctx context.Context, entries []domain.SearchHistoryEntry) error

	// LoadHistory returns the stored history, newest first.
	LoadHistory(ctx context.Context) ([]domain.SearchHistoryEntry, error)
}

// CorpusWatcher reports that the corpus changed behind the store, so
// long-lived sessions can drop caches and rebuild lazily.
type CorpusWatcher interface {
	// Watch delivers a signal per change burst until ctx is cancelled.
	// Implementations coalesce rapid change sequences.
	Watch(ctx context.Context) (<-chan time.Time, error)

	// Close releases watch resources.
	Close() error
}
