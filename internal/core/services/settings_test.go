package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Search.DefaultScope, settings.Search.DefaultScope)
	assert.Equal(t, defaults.Search.DefaultLimit, settings.Search.DefaultLimit)
	assert.Equal(t, defaults.Search.CaseSensitive, settings.Search.CaseSensitive)
	assert.Equal(t, defaults.UI.DebounceMs, settings.UI.DebounceMs)
	assert.Equal(t, defaults.UI.SnippetLength, settings.UI.SnippetLength)
	assert.Equal(t, defaults.History.MaxEntries, settings.History.MaxEntries)
	assert.Equal(t, defaults.History.Persist, settings.History.Persist)
	assert.Equal(t, defaults.Cache.Enabled, settings.Cache.Enabled)
	assert.Equal(t, defaults.Cache.TTLSeconds, settings.Cache.TTLSeconds)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.default_scope", "message")
	_ = store.Set("search.default_limit", 25)
	_ = store.Set("search.case_sensitive", true)
	_ = store.Set("ui.debounce_ms", 400)
	_ = store.Set("history.persist", false)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ScopeMessage, settings.Search.DefaultScope)
	assert.Equal(t, 25, settings.Search.DefaultLimit)
	assert.True(t, settings.Search.CaseSensitive)
	assert.Equal(t, 400, settings.UI.DebounceMs)
	assert.False(t, settings.History.Persist)
}

func TestSettingsService_Get_ZeroDebounceSurvives(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("ui.debounce_ms", 0)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Zero(t, settings.UI.DebounceMs)
}

func TestSettingsService_Get_InvalidScopeReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.default_scope", "galaxy")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ScopeAll, settings.Search.DefaultScope)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			DefaultScope:  domain.ScopeConversation,
			DefaultLimit:  100,
			CaseSensitive: true,
		},
		UI: domain.UISettings{
			DebounceMs:    300,
			SnippetLength: 200,
		},
		History: domain.HistorySettings{
			MaxEntries: 50,
			Persist:    false,
		},
		Cache: domain.CacheSettings{
			Enabled:    false,
			TTLSeconds: 120,
		},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeConversation, retrieved.Search.DefaultScope)
	assert.Equal(t, 100, retrieved.Search.DefaultLimit)
	assert.True(t, retrieved.Search.CaseSensitive)
	assert.Equal(t, 300, retrieved.UI.DebounceMs)
	assert.Equal(t, 200, retrieved.UI.SnippetLength)
	assert.Equal(t, 50, retrieved.History.MaxEntries)
	assert.False(t, retrieved.History.Persist)
	assert.False(t, retrieved.Cache.Enabled)
	assert.Equal(t, 120, retrieved.Cache.TTLSeconds)
}

func TestSettingsService_SetDefaultScope_Valid(t *testing.T) {
	tests := []struct {
		name  string
		scope domain.SearchScope
	}{
		{"all", domain.ScopeAll},
		{"conversation", domain.ScopeConversation},
		{"message", domain.ScopeMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			err := service.SetDefaultScope(tt.scope)
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.scope, settings.Search.DefaultScope)
		})
	}
}

func TestSettingsService_SetDefaultScope_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.SetDefaultScope("galaxy")

	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestSettingsService_SetDefaultLimit(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetDefaultLimit(75))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 75, settings.Search.DefaultLimit)

	assert.ErrorIs(t, service.SetDefaultLimit(0), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetDefaultLimit(-5), domain.ErrInvalidInput)
}

func TestSettingsService_SetCaseSensitive(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetCaseSensitive(true))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.True(t, settings.Search.CaseSensitive)

	require.NoError(t, service.SetCaseSensitive(false))

	settings, err = service.Get()
	require.NoError(t, err)
	assert.False(t, settings.Search.CaseSensitive)
}

func TestSettingsService_SetDebounce(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetDebounce(500))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 500, settings.UI.DebounceMs)

	// Zero disables debouncing entirely, which is allowed.
	require.NoError(t, service.SetDebounce(0))
	assert.ErrorIs(t, service.SetDebounce(-1), domain.ErrInvalidInput)
}

func TestSettingsService_SetHistoryLimit(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetHistoryLimit(40))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 40, settings.History.MaxEntries)

	assert.ErrorIs(t, service.SetHistoryLimit(0), domain.ErrInvalidInput)
}

func TestSettingsService_Validate_Defaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.NoError(t, service.Validate())
}

func TestSettingsService_Validate_Broken(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{"negative limit", "search.default_limit", -1, domain.ErrInvalidInput},
		{"negative debounce", "ui.debounce_ms", -10, domain.ErrInvalidInput},
		{"zero snippet", "ui.snippet_length", 0, domain.ErrInvalidInput},
		{"zero history", "history.max_entries", 0, domain.ErrInvalidInput},
		{"zero cache ttl", "cache.ttl_seconds", 0, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			_ = store.Set(tt.key, tt.value)
			service := NewSettingsService(store)

			assert.ErrorIs(t, service.Validate(), tt.wantErr)
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	defaults := service.GetDefaults()

	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}
