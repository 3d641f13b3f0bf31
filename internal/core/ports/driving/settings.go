package driving

import "github.com/formpilot/formpilot/internal/core/domain"

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Get returns the current settings, with invalid stored values
	// replaced by defaults.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.AppSettings) error
}
