package driving

import "github.com/EduuF/sinaliza-libras/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get assembles the current settings from defaults, the config file
	// and the environment.
	Get() (*domain.AppSettings, error)

	// Set persists one config file key.
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the config file path.
	Path() string
}
