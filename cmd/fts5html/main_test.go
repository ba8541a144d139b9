package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driving/cli"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

func TestBootstrap_Memory(t *testing.T) {
	s, err := bootstrap(cli.Options{Memory: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"html", "unicode61"}, s.Tokenizer)
	assert.Nil(t, s.Close)
	assert.Contains(t, s.MIMETypes, "text/html")
	assert.Contains(t, s.MIMETypes, "text/markdown")
	assert.Contains(t, s.MIMETypes, "text/plain")

	ctx := context.Background()
	_, err = s.Index.Index(ctx, &domain.RawDocument{
		URI:      "/a.html",
		MIMEType: "text/html",
		Content:  []byte("<p>Caf&eacute;</p>"),
	})
	require.NoError(t, err)

	results, err := s.Search.Search(ctx, "cafe", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Caf&eacute;", results[0].Matches[0].Original)
}

func TestNewNormalisers_SharesHTMLFallback(t *testing.T) {
	norm := newNormalisers()

	html, err := norm.Get("text/html")
	require.NoError(t, err)
	fallback, err := norm.Get("application/x-unknown")
	require.NoError(t, err)

	assert.Same(t, html, fallback)
}

func TestBootstrap_TokenizerOverride(t *testing.T) {
	s, err := bootstrap(cli.Options{Memory: true, Tokenizer: []string{"html", "ascii"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "ascii"}, s.Tokenizer)
}

func TestBootstrap_OnDisk(t *testing.T) {
	configDir := t.TempDir()

	s, err := bootstrap(cli.Options{ConfigDir: configDir})
	require.NoError(t, err)
	require.NotNil(t, s.Close)

	ctx := context.Background()
	_, err = s.Index.Index(ctx, &domain.RawDocument{
		URI:      "/b.html",
		MIMEType: "text/html",
		Content:  []byte("<b>persisted</b>"),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(configDir, "data", "index.db"))
	require.NoError(t, err)

	reopened, err := bootstrap(cli.Options{ConfigDir: configDir})
	require.NoError(t, err)
	defer reopened.Close()

	results, err := reopened.Search.Search(ctx, "persisted", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/b.html", results[0].Document.URI)
}

func TestBootstrap_DataDirFlag(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "index")

	s, err := bootstrap(cli.Options{ConfigDir: t.TempDir(), DataDir: dataDir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dataDir, "index.db"))
	assert.NoError(t, err)
}
