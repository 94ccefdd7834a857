package domain

import "time"

// MessageRole identifies the author of a chat message.
type MessageRole string

// Available message roles.
const (
	// RoleUser is a message typed by the user.
	RoleUser MessageRole = "user"

	// RoleAssistant is a message produced by the AI assistant.
	RoleAssistant MessageRole = "assistant"

	// RoleSystem is an injected system or tool message.
	RoleSystem MessageRole = "system"
)

// IsValid returns true if the role is recognised.
func (r MessageRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r MessageRole) String() string {
	return string(r)
}

// Message represents a single chat message within a conversation.
// Messages are supplied to the engine as an ordered sequence per
// conversation; the engine never mutates them.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// ConversationID links to the owning Conversation.
	ConversationID string

	// Role identifies who authored the message.
	Role MessageRole

	// Content is the full text of the message.
	Content string

	// CreatedAt is when the message was written.
	CreatedAt time.Time
}
