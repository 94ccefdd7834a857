package search

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// titleOffset marks a posting that refers to a conversation title
// rather than a message body.
const titleOffset = -1

// Location identifies where a token occurs in the corpus: a
// conversation title, or a message at a given offset within its
// conversation's sequence.
type Location struct {
	// ConversationID is the owning conversation.
	ConversationID string

	// Message is the message offset within the conversation, or
	// titleOffset when the posting refers to the title.
	Message int
}

// IsTitle reports whether the location refers to a conversation title.
func (l Location) IsTitle() bool {
	return l.Message == titleOffset
}

// String renders the posting as conversation:<id> or
// message:<conversationId>:<offset>.
func (l Location) String() string {
	if l.IsTitle() {
		return fmt.Sprintf("conversation:%s", l.ConversationID)
	}
	return fmt.Sprintf("message:%s:%d", l.ConversationID, l.Message)
}

// Index maps normalised tokens to the locations they occur in. It is
// rebuilt wholesale from a snapshot and never mutated afterwards; the
// fingerprint records which snapshot generation it was built from.
type Index struct {
	postings    map[string][]Location
	fingerprint domain.CorpusFingerprint
}

// BuildIndex walks every conversation title and message body in the
// snapshot and records one posting per distinct token per location.
func BuildIndex(corpus *domain.Corpus) *Index {
	idx := &Index{
		postings:    make(map[string][]Location),
		fingerprint: corpus.Fingerprint(),
	}

	for i := range corpus.Conversations {
		conv := &corpus.Conversations[i]
		idx.add(conv.Title, Location{ConversationID: conv.ID, Message: titleOffset})
	}
	for _, convID := range orderedConversationIDs(corpus) {
		msgs := corpus.Messages[convID]
		for offset := range msgs {
			idx.add(msgs[offset].Content, Location{ConversationID: convID, Message: offset})
		}
	}
	return idx
}

// add records a posting for every distinct token in text.
func (i *Index) add(text string, loc Location) {
	for _, token := range uniqueTokens(Tokenize(text)) {
		i.postings[token] = append(i.postings[token], loc)
	}
}

// Lookup returns the locations containing the token.
func (i *Index) Lookup(token string) []Location {
	return i.postings[token]
}

// CandidateSet returns the union of locations across the given tokens.
// Fuzzy matching uses it to shortlist locations before scoring.
func (i *Index) CandidateSet(tokens []string) map[Location]struct{} {
	set := make(map[Location]struct{})
	for _, token := range tokens {
		for _, loc := range i.postings[token] {
			set[loc] = struct{}{}
		}
	}
	return set
}

// Fingerprint returns the identity of the snapshot the index was built
// from.
func (i *Index) Fingerprint() domain.CorpusFingerprint {
	return i.fingerprint
}

// Tokens returns the number of distinct tokens in the index.
func (i *Index) Tokens() int {
	return len(i.postings)
}

// orderedConversationIDs yields conversation IDs in snapshot order,
// followed by IDs that appear only in the message map, sorted, so
// scans stay deterministic on inconsistent snapshots.
func orderedConversationIDs(corpus *domain.Corpus) []string {
	ids := make([]string, 0, len(corpus.Conversations))
	seen := make(map[string]struct{}, len(corpus.Conversations))
	for i := range corpus.Conversations {
		ids = append(ids, corpus.Conversations[i].ID)
		seen[corpus.Conversations[i].ID] = struct{}{}
	}

	var orphans []string
	for id := range corpus.Messages {
		if _, ok := seen[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	return append(ids, orphans...)
}
