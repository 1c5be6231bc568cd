package driving

import "github.com/custodia-labs/citewise/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single setting by key.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string

	// IsSecret reports whether a key holds a credential that must not be echoed.
	IsSecret(key string) bool

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
