package domain

import "time"

// Conversation represents a chat thread as seen by the search engine.
// It is an immutable snapshot value: the engine never mutates it, and
// mutation happens behind the ConversationStore driven port.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string

	// Title is the human-readable conversation title.
	Title string

	// Starred marks conversations the user pinned as important.
	Starred bool

	// Incognito marks private conversations excluded from standard listings.
	Incognito bool

	// FolderID references the folder containing this conversation.
	// Empty string means the conversation is not filed anywhere.
	FolderID string

	// LastActivity is the timestamp of the most recent message.
	// The zero value means the conversation was never messaged.
	LastActivity time.Time

	// MessageCount is the number of messages in the conversation.
	MessageCount int
}

// ChatType discriminates conversations for facet filtering.
type ChatType string

// Available chat types.
const (
	// ChatTypeAll matches every conversation.
	ChatTypeAll ChatType = "all"

	// ChatTypeStandard matches non-incognito conversations.
	ChatTypeStandard ChatType = "standard"

	// ChatTypeIncognito matches incognito conversations only.
	ChatTypeIncognito ChatType = "incognito"
)

// IsValid returns true if the chat type is recognised.
func (t ChatType) IsValid() bool {
	switch t {
	case ChatTypeAll, ChatTypeStandard, ChatTypeIncognito:
		return true
	default:
		return false
	}
}

// Matches reports whether a conversation belongs to this chat type.
func (t ChatType) Matches(c *Conversation) bool {
	switch t {
	case ChatTypeStandard:
		return !c.Incognito
	case ChatTypeIncognito:
		return c.Incognito
	default:
		return true
	}
}

// String returns the string representation.
func (t ChatType) String() string {
	return string(t)
}
