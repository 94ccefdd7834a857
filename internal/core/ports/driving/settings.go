package driving

import "github.com/custodia-labs/recall-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDefaultScope updates the default search scope.
	SetDefaultScope(scope domain.SearchScope) error

	// SetDefaultLimit updates the default result cap.
	SetDefaultLimit(limit int) error

	// SetCaseSensitive toggles case-sensitive matching by default.
	SetCaseSensitive(enabled bool) error

	// SetDebounce updates the live-search debounce interval in
	// milliseconds.
	SetDebounce(ms int) error

	// SetHistoryLimit updates the search history cap.
	SetHistoryLimit(limit int) error

	// Validate checks that current settings are internally consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
