package driving

import "github.com/gyf304/sqlite3-fts5-html/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling unset values with defaults.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// SetTokenizer validates and stores the tokenizer argument list.
	SetTokenizer(args []string) error

	// SetSearchLimit stores the default result limit.
	SetSearchLimit(limit int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
