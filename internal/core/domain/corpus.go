package domain

import "time"

// Corpus is the immutable snapshot of all conversations and messages
// visible to a single search call. The storage layer hands one out per
// request; the engine only ever reads it.
type Corpus struct {
	// Conversations holds every conversation in original storage order.
	// That order is the tie-break for equal relevance scores.
	Conversations []Conversation

	// Messages maps a conversation ID to its ordered message sequence.
	Messages map[string][]Message
}

// CorpusFingerprint is a cheap identity for a corpus generation.
// Two snapshots with equal fingerprints are treated as the same corpus,
// letting the engine skip index rebuilds between keystrokes.
type CorpusFingerprint struct {
	// MessageCount is the total number of messages across conversations.
	MessageCount int

	// LastModified is the latest activity timestamp seen in the snapshot.
	LastModified time.Time
}

// Equal reports whether two fingerprints identify the same corpus
// generation. Timestamps compare by instant, not by representation.
func (f CorpusFingerprint) Equal(other CorpusFingerprint) bool {
	return f.MessageCount == other.MessageCount && f.LastModified.Equal(other.LastModified)
}

// Fingerprint computes the snapshot identity from message totals and
// the most recent activity across conversations and messages.
func (c *Corpus) Fingerprint() CorpusFingerprint {
	fp := CorpusFingerprint{}
	for i := range c.Conversations {
		if c.Conversations[i].LastActivity.After(fp.LastModified) {
			fp.LastModified = c.Conversations[i].LastActivity
		}
	}
	for _, msgs := range c.Messages {
		fp.MessageCount += len(msgs)
		for i := range msgs {
			if msgs[i].CreatedAt.After(fp.LastModified) {
				fp.LastModified = msgs[i].CreatedAt
			}
		}
	}
	return fp
}

// Conversation returns the conversation with the given ID, or nil when
// the snapshot does not contain it.
func (c *Corpus) Conversation(id string) *Conversation {
	for i := range c.Conversations {
		if c.Conversations[i].ID == id {
			return &c.Conversations[i]
		}
	}
	return nil
}

// TitleOf returns the display title for a conversation ID, falling back
// to the Unknown placeholder when the snapshot is inconsistent (e.g. a
// message referencing a conversation that no longer exists).
func (c *Corpus) TitleOf(conversationID string) string {
	if conv := c.Conversation(conversationID); conv != nil && conv.Title != "" {
		return conv.Title
	}
	return UnknownTitle
}
