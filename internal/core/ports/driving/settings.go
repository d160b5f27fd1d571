package driving

import "github.com/custodia-labs/captionsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set updates a single setting by its dotted key and persists it.
	Set(key, value string) error

	// Entries returns every supported setting with its effective value.
	Entries() ([]domain.SettingEntry, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
