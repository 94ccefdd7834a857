// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// DebounceElapsed fires after the debounce interval for a keystroke
// generation. Only the newest generation triggers a search; stale
// generations are dropped by the search view.
type DebounceElapsed struct {
	Generation int
	Query      string
}

// SearchCompleted carries search results back to the model. Sequence
// identifies the search dispatch so the view can discard completions
// that arrive after a newer search has been issued.
type SearchCompleted struct {
	Sequence    int
	Query       string
	Results     []domain.SearchResult
	Suggestions []string
	Err         error
}

// ConversationsLoaded carries the filtered conversation listing.
type ConversationsLoaded struct {
	Conversations []domain.Conversation
	Err           error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Settings *domain.AppSettings
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewConversations is the filtered conversation listing.
	ViewConversations
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewConversations:
		return "conversations"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
