package driving

import "github.com/custodia-labs/closet-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAPI updates the backend settings.
	SetAPI(api domain.APISettings) error

	// SetLookup updates the search-bar tuning.
	SetLookup(lookup domain.LookupSettings) error

	// SetProfile updates the account details.
	SetProfile(profile domain.Profile) error

	// SetValue parses and stores a single setting by key.
	SetValue(key, raw string) error

	// Values returns every setting key with its effective value, in
	// display order. Secrets are masked.
	Values() ([]domain.Setting, error)

	// Path returns where settings are persisted.
	Path() string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
