package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.ExportLoader = (*Loader)(nil)

// exportFile is the on-disk shape of a chat export.
type exportFile struct {
	Conversations []exportConversation `json:"conversations"`
}

type exportConversation struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Starred      bool            `json:"starred"`
	Incognito    bool            `json:"incognito"`
	FolderID     string          `json:"folder_id"`
	LastActivity time.Time       `json:"last_activity"`
	Messages     []exportMessage `json:"messages"`
}

type exportMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Loader parses JSON chat exports into corpus form.
type Loader struct{}

// NewLoader creates a new export loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadExport reads and parses the export at path. Conversations arrive
// in file order; messages keep their in-conversation order. Missing
// conversation and message IDs are minted; missing roles default to
// user. Fields that are present are never rewritten.
func (l *Loader) LoadExport(ctx context.Context, path string) (*domain.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var export exportFile
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	corpus := &domain.Corpus{
		Messages: make(map[string][]domain.Message),
	}

	total := 0
	for i := range export.Conversations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conv, msgs := convertConversation(&export.Conversations[i])
		corpus.Conversations = append(corpus.Conversations, conv)
		if len(msgs) > 0 {
			corpus.Messages[conv.ID] = msgs
			total += len(msgs)
		}
	}

	logger.Debug("Loaded export %s: %d conversations, %d messages", path, len(corpus.Conversations), total)
	return corpus, nil
}

// convertConversation maps one export entry to domain form. Message
// count and last activity are derived from the messages, so a stale
// exported value never understates activity.
func convertConversation(ec *exportConversation) (domain.Conversation, []domain.Message) {
	conv := domain.Conversation{
		ID:           ec.ID,
		Title:        ec.Title,
		Starred:      ec.Starred,
		Incognito:    ec.Incognito,
		FolderID:     ec.FolderID,
		LastActivity: ec.LastActivity,
	}
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	msgs := make([]domain.Message, 0, len(ec.Messages))
	for i := range ec.Messages {
		em := &ec.Messages[i]
		msg := domain.Message{
			ID:             em.ID,
			ConversationID: conv.ID,
			Role:           domain.MessageRole(strings.ToLower(em.Role)),
			Content:        em.Content,
			CreatedAt:      em.CreatedAt,
		}
		if msg.ID == "" {
			msg.ID = uuid.New().String()
		}
		if msg.Role == "" {
			msg.Role = domain.RoleUser
		}
		if msg.CreatedAt.After(conv.LastActivity) {
			conv.LastActivity = msg.CreatedAt
		}
		msgs = append(msgs, msg)
	}

	conv.MessageCount = len(msgs)
	return conv, msgs
}

// Sample returns a small built-in corpus for demos and smoke tests.
// Timestamps are relative to now so recency scoring has something to
// bite on.
func Sample() *domain.Corpus {
	now := time.Now().UTC()

	conversations := []domain.Conversation{
		{
			ID:           "sample-python",
			Title:        "Python array tricks",
			Starred:      true,
			FolderID:     "snippets",
			LastActivity: now.Add(-2 * time.Hour),
			MessageCount: 2,
		},
		{
			ID:           "sample-goroutines",
			Title:        "Debugging goroutine leaks",
			LastActivity: now.Add(-3 * 24 * time.Hour),
			MessageCount: 2,
		},
		{
			ID:           "sample-notes",
			Title:        "Random notes",
			LastActivity: now.Add(-60 * 24 * time.Hour),
			MessageCount: 1,
		},
	}

	messages := map[string][]domain.Message{
		"sample-python": {
			{
				ID:             "sample-python-1",
				ConversationID: "sample-python",
				Role:           domain.RoleUser,
				Content:        "how do I flatten a python list of lists",
				CreatedAt:      now.Add(-3 * time.Hour),
			},
			{
				ID:             "sample-python-2",
				ConversationID: "sample-python",
				Role:           domain.RoleAssistant,
				Content:        "use itertools.chain.from_iterable to flatten nested lists lazily",
				CreatedAt:      now.Add(-2 * time.Hour),
			},
		},
		"sample-goroutines": {
			{
				ID:             "sample-goroutines-1",
				ConversationID: "sample-goroutines",
				Role:           domain.RoleUser,
				Content:        "my service leaks goroutines when requests are cancelled",
				CreatedAt:      now.Add(-3*24*time.Hour - time.Hour),
			},
			{
				ID:             "sample-goroutines-2",
				ConversationID: "sample-goroutines",
				Role:           domain.RoleAssistant,
				Content:        "make every goroutine select on ctx.Done so cancellation unblocks it",
				CreatedAt:      now.Add(-3 * 24 * time.Hour),
			},
		},
		"sample-notes": {
			{
				ID:             "sample-notes-1",
				ConversationID: "sample-notes",
				Role:           domain.RoleUser,
				Content:        "buy milk and bread, renew passport",
				CreatedAt:      now.Add(-60 * 24 * time.Hour),
			},
		},
	}

	return &domain.Corpus{
		Conversations: conversations,
		Messages:      messages,
	}
}
