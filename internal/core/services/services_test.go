package services

import (
	"errors"

	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driven/storage/memory"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers"
	htmlnorm "github.com/gyf304/sqlite3-fts5-html/internal/normalisers/html"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers/plaintext"
	"github.com/gyf304/sqlite3-fts5-html/internal/tokenizers"
)

const fishHTML = `<html><head><title>Fish &amp; Chips</title></head>` +
	`<body><p>Caf&eacute; serves fish.</p><script>fish()</script></body></html>`

var defaultArgs = []string{"html", "unicode61"}

// fixture wires the services over in-memory adapters.
type fixture struct {
	docs   *memory.DocumentStore
	engine *memory.SearchEngine
	index  *IndexService
	search *SearchService
}

func newFixture() *fixture {
	docs := memory.NewDocumentStore()
	engine := memory.NewSearchEngine()
	reg := tokenizers.NewDefaultRegistry()

	norm := normalisers.NewRegistry(htmlnorm.New())
	norm.Register(plaintext.New())
	norm.Register(htmlnorm.New())

	return &fixture{
		docs:   docs,
		engine: engine,
		index:  NewIndexService(docs, engine, norm, reg, defaultArgs),
		search: NewSearchService(docs, engine, reg, defaultArgs),
	}
}

func rawHTML(uri, content string) *domain.RawDocument {
	return &domain.RawDocument{URI: uri, MIMEType: "text/html", Content: []byte(content)}
}

// fixedBuilder builds tokenizers that emit a fixed token list.
type fixedBuilder struct {
	tokens   []domain.Token
	closeErr error
	closed   int
	err      error
}

func (b *fixedBuilder) Create(args []string) (driven.Tokenizer, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &fixedTokenizer{builder: b}, nil
}

type fixedTokenizer struct {
	builder *fixedBuilder
}

func (t *fixedTokenizer) Tokenize(_ domain.TokenizeReason, _ []byte, emit driven.TokenFunc) error {
	for _, tok := range t.builder.tokens {
		if err := emit(tok); err != nil {
			return err
		}
	}
	return nil
}

func (t *fixedTokenizer) Close() error {
	t.builder.closed++
	return t.builder.closeErr
}

var errBoom = errors.New("boom")
