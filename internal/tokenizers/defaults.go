package tokenizers

import (
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/tokenizers/ascii"
	"github.com/gyf304/sqlite3-fts5-html/internal/tokenizers/html"
	"github.com/gyf304/sqlite3-fts5-html/internal/tokenizers/unicode61"
)

// DefaultArgs is the tokenizer argument list used when none is configured.
var DefaultArgs = []string{"html", "unicode61"}

// RegisterDefaults registers all built-in tokenizers with the registry.
// The html tokenizer resolves the tokenizer it wraps through r itself, so
// anything registered later can be wrapped too.
func RegisterDefaults(r *Registry) {
	r.Register("ascii", buildASCII)
	r.Register("unicode61", buildUnicode61)
	r.Register("html", func(args []string) (driven.Tokenizer, error) {
		tok, err := html.New(r, args)
		if err != nil {
			return nil, err
		}
		return tok, nil
	})
}

// NewDefaultRegistry returns a registry with the built-in tokenizers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func buildASCII(args []string) (driven.Tokenizer, error) {
	tok, err := ascii.New(args)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

func buildUnicode61(args []string) (driven.Tokenizer, error) {
	tok, err := unicode61.New(args)
	if err != nil {
		return nil, err
	}
	return tok, nil
}
