package domain

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// DefaultScope is the scope applied when a call names none.
	DefaultScope SearchScope

	// DefaultLimit caps results when a call names no limit.
	DefaultLimit int

	// CaseSensitive makes exact and regex matching case-sensitive
	// unless a call says otherwise.
	CaseSensitive bool
}

// UISettings holds interactive interface configuration.
type UISettings struct {
	// DebounceMs is the idle period in milliseconds before live search
	// fires while typing.
	DebounceMs int

	// SnippetLength is the maximum snippet length in runes.
	SnippetLength int
}

// HistorySettings holds search history configuration.
type HistorySettings struct {
	// MaxEntries bounds the remembered query list.
	MaxEntries int

	// Persist writes history to disk between sessions.
	Persist bool
}

// CacheSettings holds search result cache configuration.
type CacheSettings struct {
	// Enabled toggles result caching.
	Enabled bool

	// TTLSeconds is how long a cached result list stays valid.
	TTLSeconds int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// UI holds interactive interface settings.
	UI UISettings

	// History holds search history settings.
	History HistorySettings

	// Cache holds result cache settings.
	Cache CacheSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			DefaultScope:  ScopeAll,
			DefaultLimit:  DefaultSearchLimit,
			CaseSensitive: false,
		},
		UI: UISettings{
			DebounceMs:    250,
			SnippetLength: 150,
		},
		History: HistorySettings{
			MaxEntries: MaxHistoryEntries,
			Persist:    true,
		},
		Cache: CacheSettings{
			Enabled:    true,
			TTLSeconds: 60,
		},
	}
}

// AllSearchScopes returns all available search scopes.
func AllSearchScopes() []SearchScope {
	return []SearchScope{
		ScopeAll,
		ScopeConversation,
		ScopeMessage,
	}
}

// AllSortKeys returns all available sort keys.
func AllSortKeys() []SortKey {
	return []SortKey{
		SortByDate,
		SortByTitle,
		SortByMessageCount,
	}
}

// AllChatTypes returns all available chat type filters.
func AllChatTypes() []ChatType {
	return []ChatType{
		ChatTypeAll,
		ChatTypeStandard,
		ChatTypeIncognito,
	}
}

// Description returns a human-readable description of the scope.
func (s SearchScope) Description() string {
	switch s {
	case ScopeConversation:
		return "Conversations (titles only)"
	case ScopeMessage:
		return "Messages (bodies only)"
	case ScopeAll, "":
		return "Everything (titles and messages)"
	default:
		return UnknownTitle
	}
}

// Description returns a human-readable description of the chat type.
func (t ChatType) Description() string {
	switch t {
	case ChatTypeAll:
		return "All conversations"
	case ChatTypeStandard:
		return "Standard conversations"
	case ChatTypeIncognito:
		return "Incognito conversations"
	default:
		return UnknownTitle
	}
}
