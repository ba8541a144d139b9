package services

import (
	"fmt"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTokenizer   = "tokenizer"
	keyDataDir     = "data_dir"
	keySearchLimit = "search.limit"
)

// TokenizerBuilder creates a tokenizer from a full argument list whose
// first element is the tokenizer name.
type TokenizerBuilder interface {
	Create(args []string) (driven.Tokenizer, error)
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	tokenizers  TokenizerBuilder
}

// NewSettingsService creates a new settings service. Tokenizer settings
// are validated by building them with tokenizers.
func NewSettingsService(configStore driven.ConfigStore, tokenizers TokenizerBuilder) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		tokenizers:  tokenizers,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Tokenizer: defaults.Tokenizer,
		DataDir:   s.configStore.GetString(keyDataDir),
		Search: domain.SearchSettings{
			Limit: defaults.Search.Limit,
		},
	}
	if args := s.configStore.GetStringSlice(keyTokenizer); len(args) > 0 {
		settings.Tokenizer = args
	}
	if limit := s.configStore.GetInt(keySearchLimit); limit > 0 {
		settings.Search.Limit = limit
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := s.SetTokenizer(settings.Tokenizer); err != nil {
		return err
	}
	if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	return s.SetSearchLimit(settings.Search.Limit)
}

// SetTokenizer validates args by building and closing a tokenizer, then
// stores them.
func (s *SettingsService) SetTokenizer(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tokenizer: %w", domain.ErrInvalidArgument)
	}
	if s.tokenizers != nil {
		tok, err := s.tokenizers.Create(args)
		if err != nil {
			return fmt.Errorf("tokenizer %v: %w", args, err)
		}
		_ = tok.Close()
	}
	if err := s.configStore.Set(keyTokenizer, args); err != nil {
		return fmt.Errorf("save tokenizer: %w", err)
	}
	return nil
}

// SetSearchLimit stores the default result limit.
func (s *SettingsService) SetSearchLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("search limit %d: %w", limit, domain.ErrInvalidArgument)
	}
	if err := s.configStore.Set(keySearchLimit, limit); err != nil {
		return fmt.Errorf("save search limit: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
