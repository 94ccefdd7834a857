package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of
// driven.ConversationStore. Insertion order is preserved because the
// listing order doubles as the search tie-break.
type ConversationStore struct {
	mu            sync.RWMutex
	order         []string
	conversations map[string]domain.Conversation
	messages      map[string][]domain.Message
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]domain.Conversation),
		messages:      make(map[string][]domain.Message),
	}
}

// SaveConversation stores or updates a conversation. Updates keep the
// conversation's original position in the listing.
func (s *ConversationStore) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	if conv == nil || conv.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conv.ID]; !exists {
		s.order = append(s.order, conv.ID)
	}
	s.conversations[conv.ID] = *conv
	return nil
}

// SaveMessages appends messages to a conversation and refreshes its
// last-activity timestamp and message count. Messages for a
// conversation the store has never seen are kept; the corpus surfaces
// them under the Unknown title.
func (s *ConversationStore) SaveMessages(_ context.Context, conversationID string, msgs []domain.Message) error {
	if conversationID == "" {
		return domain.ErrInvalidInput
	}
	if len(msgs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[conversationID] = append(s.messages[conversationID], msgs...)

	conv, exists := s.conversations[conversationID]
	if !exists {
		return nil
	}
	conv.MessageCount = len(s.messages[conversationID])
	for i := range msgs {
		if msgs[i].CreatedAt.After(conv.LastActivity) {
			conv.LastActivity = msgs[i].CreatedAt
		}
	}
	s.conversations[conversationID] = conv
	return nil
}

// GetConversation retrieves a conversation by ID.
func (s *ConversationStore) GetConversation(_ context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &conv, nil
}

// GetMessages retrieves a conversation's messages in creation order.
func (s *ConversationStore) GetMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.messages[conversationID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// ListConversations returns every conversation in storage order.
func (s *ConversationStore) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Conversation, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.conversations[id])
	}
	return result, nil
}

// DeleteConversation removes a conversation and its messages.
func (s *ConversationStore) DeleteConversation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.conversations, id)
	delete(s.messages, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Snapshot produces the immutable corpus view a search call reads.
// Everything is copied, so later mutations never show through.
func (s *ConversationStore) Snapshot(_ context.Context) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	corpus := &domain.Corpus{
		Conversations: make([]domain.Conversation, 0, len(s.order)),
		Messages:      make(map[string][]domain.Message, len(s.messages)),
	}
	for _, id := range s.order {
		corpus.Conversations = append(corpus.Conversations, s.conversations[id])
	}
	for id, msgs := range s.messages {
		copied := make([]domain.Message, len(msgs))
		copy(copied, msgs)
		corpus.Messages[id] = copied
	}
	return corpus, nil
}
