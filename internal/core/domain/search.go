package domain

// UnknownTitle is the display title used when a result references a
// conversation missing from the corpus snapshot.
const UnknownTitle = "Unknown"

// DefaultSearchLimit caps the result list when SearchOptions.Limit is
// unset or non-positive.
const DefaultSearchLimit = 50

// SearchScope selects which collections a search call scans.
type SearchScope string

// Available search scopes.
const (
	// ScopeConversation searches conversation titles only.
	ScopeConversation SearchScope = "conversation"

	// ScopeMessage searches message bodies only.
	ScopeMessage SearchScope = "message"

	// ScopeAll searches both titles and message bodies.
	ScopeAll SearchScope = "all"
)

// IsValid returns true if the scope is recognised.
func (s SearchScope) IsValid() bool {
	switch s {
	case ScopeConversation, ScopeMessage, ScopeAll:
		return true
	default:
		return false
	}
}

// IncludesConversations reports whether conversation titles are scanned.
// The empty scope behaves like ScopeAll.
func (s SearchScope) IncludesConversations() bool {
	return s == ScopeConversation || s == ScopeAll || s == ""
}

// IncludesMessages reports whether message bodies are scanned.
func (s SearchScope) IncludesMessages() bool {
	return s == ScopeMessage || s == ScopeAll || s == ""
}

// String returns the string representation.
func (s SearchScope) String() string {
	return string(s)
}

// SearchOptions configures a search call.
type SearchOptions struct {
	// Query is the free-text, phrase, or pattern input.
	Query string

	// Scope selects conversations, messages, or both.
	// The empty value behaves like ScopeAll.
	Scope SearchScope

	// Regex compiles Query as a regular expression. Invalid patterns
	// silently fall back to exact matching.
	Regex bool

	// ExactPhrase forces literal substring matching. When neither Regex
	// nor ExactPhrase is set, fuzzy token matching is used.
	ExactPhrase bool

	// CaseSensitive disables case folding for exact and regex matching.
	CaseSensitive bool

	// Limit is the maximum number of results (≤0 means DefaultSearchLimit).
	Limit int
}

// ResultKind discriminates the two result shapes.
type ResultKind string

// Available result kinds.
const (
	// KindConversation is a hit on a conversation title.
	KindConversation ResultKind = "conversation"

	// KindMessage is a hit on a message body.
	KindMessage ResultKind = "message"
)

// String returns the string representation.
func (k ResultKind) String() string {
	return string(k)
}

// SearchResult represents a single ranked hit.
type SearchResult struct {
	// Kind discriminates conversation and message results.
	Kind ResultKind

	// ID is the conversation or message identifier, per Kind.
	ID string

	// ConversationID is the owning conversation for message results.
	// For conversation results it equals ID.
	ConversationID string

	// Title is the display title: the conversation title, or the owning
	// conversation's title for message hits ("Unknown" when missing).
	Title string

	// Snippet is a bounded excerpt around the first match.
	// Empty for conversation results.
	Snippet string

	// Score is the relevance score. Scores are only comparable within a
	// single search call; results arrive sorted descending.
	Score float64

	// Highlights lists the matched substrings for presentation-side
	// emphasis. The engine never injects markup into snippets.
	Highlights []string
}

// SessionState describes where the search session is in its lifecycle.
type SessionState string

// Session states.
const (
	// StateIdle means no search is active.
	StateIdle SessionState = "idle"

	// StateSearching means a search call is executing.
	StateSearching SessionState = "searching"

	// StateResults means the last search completed, possibly with zero hits.
	StateResults SessionState = "results"

	// StateErrored means the last search failed and results were cleared.
	StateErrored SessionState = "errored"
)

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}
