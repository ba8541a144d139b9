// Package cli provides the fts5html command line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Options are the values of the persistent flags.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.fts5html.
	ConfigDir string

	// DataDir holds the index database. Empty means the configured value.
	DataDir string

	// Memory keeps the index in memory for the life of the command.
	Memory bool

	// Tokenizer overrides the configured tokenizer argument list.
	Tokenizer []string
}

// Services are the core services the commands drive.
type Services struct {
	Tokenize driving.TokenizeService
	Index    driving.IndexService
	Search   driving.SearchService
	Sync     driving.SyncOrchestrator
	Settings driving.SettingsService

	// MIMETypes lists the types the index can normalise; directory
	// walks read only these.
	MIMETypes []string

	// Tokenizer is the effective tokenizer argument list.
	Tokenizer []string

	// Close releases storage. It may be nil.
	Close func() error
}

// Bootstrap builds the services for a command from its flags.
type Bootstrap func(opts Options) (*Services, error)

var (
	options   Options
	verbose   bool
	bootstrap Bootstrap
	closeFunc func() error
)

var (
	tokenizeService  driving.TokenizeService
	indexService     driving.IndexService
	searchService    driving.SearchService
	syncOrchestrator driving.SyncOrchestrator
	settingsService  driving.SettingsService
	mimeTypes        []string
	tokenizerArgs    []string
)

var rootCmd = &cobra.Command{
	Use:   "fts5html",
	Short: "Index and search markup with an entity-aware tokenizer",
	Long: `fts5html tokenizes HTML and XML the way the SQLite FTS5 "html" tokenizer
does: markup and the content of script, style and similar elements are
skipped, character references are decoded, and every token keeps the byte
offsets of its source in the original markup.

Documents can be indexed into a local SQLite database and searched; search
results point back into the original markup.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.fts5html)")
	flags.StringVar(&options.DataDir, "data-dir", "", "index directory (default from config)")
	flags.BoolVar(&options.Memory, "memory", false, "keep the index in memory")
	flags.StringSliceVar(&options.Tokenizer, "tokenizer", nil,
		"tokenizer arguments, comma separated (e.g. html,unicode61)")
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	tokenizeService = s.Tokenize
	indexService = s.Index
	searchService = s.Search
	syncOrchestrator = s.Sync
	settingsService = s.Settings
	mimeTypes = s.MIMETypes
	tokenizerArgs = s.Tokenizer
	closeFunc = s.Close
}

// Execute runs the root command and releases the services afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if closeFunc != nil {
		err = errors.Join(err, closeFunc())
		closeFunc = nil
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	logger.Section("Bootstrap")
	s, err := bootstrap(options)
	if err != nil {
		return err
	}
	SetServices(s)
	return nil
}
