package domain

// AppSettings holds user configuration loaded from config.toml.
type AppSettings struct {
	// Tokenizer is the tokenizer argument list used for indexing and
	// queries, e.g. ["html", "unicode61", "remove_diacritics", "0"].
	Tokenizer []string

	// DataDir is where the SQLite index lives. Empty means the default.
	DataDir string

	// Search holds query defaults.
	Search SearchSettings
}

// SearchSettings holds query defaults.
type SearchSettings struct {
	// Limit is the default maximum number of results.
	Limit int
}

// DefaultSearchLimit is the result limit when none is configured.
const DefaultSearchLimit = 10

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Tokenizer: []string{"html", "unicode61"},
		Search: SearchSettings{
			Limit: DefaultSearchLimit,
		},
	}
}
