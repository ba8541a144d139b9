// Command fts5html tokenizes, indexes and searches HTML and XML documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driven/config/file"
	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driven/storage/memory"
	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driven/storage/sqlite"
	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driving/cli"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/services"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers"
	htmlnorm "github.com/gyf304/sqlite3-fts5-html/internal/normalisers/html"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers/markdown"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers/plaintext"
	"github.com/gyf304/sqlite3-fts5-html/internal/tokenizers"
)

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services for one command run.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	var configStore driven.ConfigStore
	if opts.Memory {
		configStore = memory.NewConfigStore()
	} else {
		store, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("Config: %s", store.Path())
		configStore = store
	}

	registry := tokenizers.NewDefaultRegistry()
	settingsService := services.NewSettingsService(configStore, registry)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	args := settings.Tokenizer
	if len(opts.Tokenizer) > 0 {
		args = opts.Tokenizer
	}
	logger.Debug("Tokenizer: %v", args)

	var (
		docStore driven.DocumentStore
		engine   driven.SearchEngine
		closeFn  func() error
	)
	if opts.Memory {
		docStore = memory.NewDocumentStore()
		engine = memory.NewSearchEngine()
	} else {
		dataDir := settings.DataDir
		if opts.DataDir != "" {
			dataDir = opts.DataDir
		}
		if dataDir == "" && opts.ConfigDir != "" {
			dataDir = filepath.Join(opts.ConfigDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open index: %w", err)
		}
		logger.Debug("Index: %s", store.Path())
		docStore = store.DocumentStore()
		engine = store.SearchEngine()
		closeFn = store.Close
	}

	norm := newNormalisers()
	indexService := services.NewIndexService(docStore, engine, norm, registry, args)

	return &cli.Services{
		Tokenize:  services.NewTokenizeService(registry),
		Index:     indexService,
		Search:    services.NewSearchService(docStore, engine, registry, args),
		Sync:      services.NewSyncOrchestrator(indexService),
		Settings:  settingsService,
		MIMETypes: norm.SupportedMIMETypes(),
		Tokenizer: args,
		Close:     closeFn,
	}, nil
}

// newNormalisers registers the built-in normalisers. HTML doubles as the
// fallback for unknown MIME types.
func newNormalisers() *normalisers.Registry {
	html := htmlnorm.New()
	norm := normalisers.NewRegistry(html)
	norm.Register(plaintext.New())
	norm.Register(markdown.New())
	norm.Register(html)
	return norm
}
