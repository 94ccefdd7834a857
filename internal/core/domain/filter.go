package domain

import "time"

// SortKey selects the attribute conversation listings are ordered by.
type SortKey string

// Available sort keys.
const (
	// SortByDate orders by last activity timestamp.
	SortByDate SortKey = "date"

	// SortByTitle orders lexicographically by title.
	SortByTitle SortKey = "title"

	// SortByMessageCount orders by message count.
	SortByMessageCount SortKey = "messageCount"
)

// IsValid returns true if the sort key is recognised.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByDate, SortByTitle, SortByMessageCount:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SortKey) String() string {
	return string(k)
}

// FilterOptions narrows and orders a conversation listing. All set
// criteria must hold for a conversation to pass; unset criteria are
// ignored.
type FilterOptions struct {
	// Starred keeps only starred (true) or unstarred (false)
	// conversations. Nil disables the criterion.
	Starred *bool

	// ChatType keeps standard or incognito conversations.
	// ChatTypeAll (or empty) disables the criterion.
	ChatType ChatType

	// From keeps conversations whose last activity is at or after this
	// instant. Zero disables the lower bound.
	From time.Time

	// To keeps conversations whose last activity is at or before this
	// instant. Zero disables the upper bound.
	To time.Time

	// FolderID keeps conversations filed in the given folder.
	// Empty disables the criterion.
	FolderID string

	// HasMessages keeps conversations with at least one message (true)
	// or none (false). Nil disables the criterion.
	HasMessages *bool

	// SortBy orders the filtered listing. Empty means SortByDate.
	SortBy SortKey

	// SortAsc sorts ascending instead of the default descending.
	SortAsc bool
}
