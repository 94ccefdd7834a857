package services

import (
	"fmt"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchScope    = "search.default_scope"
	keySearchLimit    = "search.default_limit"
	keyCaseSensitive  = "search.case_sensitive"
	keyDebounceMs     = "ui.debounce_ms"
	keySnippetLength  = "ui.snippet_length"
	keyHistoryMax     = "history.max_entries"
	keyHistoryPersist = "history.persist"
	keyCacheEnabled   = "cache.enabled"
	keyCacheTTL       = "cache.ttl_seconds"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid keys
// fall back to defaults, so a hand-edited config file cannot leave the
// application without usable settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			DefaultScope:  s.getScope(defaults.Search.DefaultScope),
			DefaultLimit:  s.getInt(keySearchLimit, defaults.Search.DefaultLimit),
			CaseSensitive: s.getBool(keyCaseSensitive, defaults.Search.CaseSensitive),
		},
		UI: domain.UISettings{
			DebounceMs:    s.getInt(keyDebounceMs, defaults.UI.DebounceMs),
			SnippetLength: s.getInt(keySnippetLength, defaults.UI.SnippetLength),
		},
		History: domain.HistorySettings{
			MaxEntries: s.getInt(keyHistoryMax, defaults.History.MaxEntries),
			Persist:    s.getBool(keyHistoryPersist, defaults.History.Persist),
		},
		Cache: domain.CacheSettings{
			Enabled:    s.getBool(keyCacheEnabled, defaults.Cache.Enabled),
			TTLSeconds: s.getInt(keyCacheTTL, defaults.Cache.TTLSeconds),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keySearchScope, settings.Search.DefaultScope.String()); err != nil {
		return fmt.Errorf("save default scope: %w", err)
	}
	if err := s.configStore.Set(keySearchLimit, settings.Search.DefaultLimit); err != nil {
		return fmt.Errorf("save default limit: %w", err)
	}
	if err := s.configStore.Set(keyCaseSensitive, settings.Search.CaseSensitive); err != nil {
		return fmt.Errorf("save case sensitivity: %w", err)
	}

	if err := s.configStore.Set(keyDebounceMs, settings.UI.DebounceMs); err != nil {
		return fmt.Errorf("save debounce: %w", err)
	}
	if err := s.configStore.Set(keySnippetLength, settings.UI.SnippetLength); err != nil {
		return fmt.Errorf("save snippet length: %w", err)
	}

	if err := s.configStore.Set(keyHistoryMax, settings.History.MaxEntries); err != nil {
		return fmt.Errorf("save history cap: %w", err)
	}
	if err := s.configStore.Set(keyHistoryPersist, settings.History.Persist); err != nil {
		return fmt.Errorf("save history persistence: %w", err)
	}

	if err := s.configStore.Set(keyCacheEnabled, settings.Cache.Enabled); err != nil {
		return fmt.Errorf("save cache enabled: %w", err)
	}
	if err := s.configStore.Set(keyCacheTTL, settings.Cache.TTLSeconds); err != nil {
		return fmt.Errorf("save cache ttl: %w", err)
	}

	return nil
}

// SetDefaultScope updates the default search scope.
func (s *SettingsService) SetDefaultScope(scope domain.SearchScope) error {
	if !scope.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidScope, scope)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.DefaultScope = scope
	return s.Save(settings)
}

// SetDefaultLimit updates the default result cap.
func (s *SettingsService) SetDefaultLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidInput, limit)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.DefaultLimit = limit
	return s.Save(settings)
}

// SetCaseSensitive toggles case-sensitive matching by default.
func (s *SettingsService) SetCaseSensitive(enabled bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.CaseSensitive = enabled
	return s.Save(settings)
}

// SetDebounce updates the live-search debounce interval. Zero means
// every keystroke searches immediately.
func (s *SettingsService) SetDebounce(ms int) error {
	if ms < 0 {
		return fmt.Errorf("%w: debounce must not be negative, got %d", domain.ErrInvalidInput, ms)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.UI.DebounceMs = ms
	return s.Save(settings)
}

// SetHistoryLimit updates the search history cap.
func (s *SettingsService) SetHistoryLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: history limit must be positive, got %d", domain.ErrInvalidInput, limit)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.History.MaxEntries = limit
	return s.Save(settings)
}

// Validate checks that current settings are internally consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Search.DefaultScope.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidScope, settings.Search.DefaultScope)
	}
	if settings.Search.DefaultLimit <= 0 {
		return fmt.Errorf("%w: default limit must be positive", domain.ErrInvalidInput)
	}
	if settings.UI.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce must not be negative", domain.ErrInvalidInput)
	}
	if settings.UI.SnippetLength <= 0 {
		return fmt.Errorf("%w: snippet length must be positive", domain.ErrInvalidInput)
	}
	if settings.History.MaxEntries <= 0 {
		return fmt.Errorf("%w: history cap must be positive", domain.ErrInvalidInput)
	}
	if settings.Cache.Enabled && settings.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: cache ttl must be positive when caching is enabled", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults. Existence is checked
// first so explicit zero and false values survive a reload.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getScope(defaultVal domain.SearchScope) domain.SearchScope {
	val := s.configStore.GetString(keySearchScope)
	if val == "" {
		return defaultVal
	}
	scope := domain.SearchScope(val)
	if !scope.IsValid() {
		return defaultVal
	}
	return scope
}
