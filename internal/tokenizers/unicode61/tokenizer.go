// Package unicode61 implements a Unicode-aware tokenizer.
//
// Token characters are letters, numbers and private-use characters.
// Tokens are case-folded and, by default, stripped of diacritics.
//
// Options are key/value argument pairs:
//
//	remove_diacritics 0|1|2   0 keeps diacritics; 1 and 2 remove them
//	separators <chars>        characters to treat as separators
//	tokenchars <chars>        characters to treat as token characters
package unicode61

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is the unicode61 tokenizer.
// Configuration is immutable after New, so Tokenize may be called
// concurrently.
type Tokenizer struct {
	removeDiacritics bool
	tokenChars       map[rune]bool
	separators       map[rune]bool
}

// New creates a unicode61 tokenizer from its option arguments.
func New(args []string) (*Tokenizer, error) {
	t := &Tokenizer{
		removeDiacritics: true,
		tokenChars:       make(map[rune]bool),
		separators:       make(map[rune]bool),
	}

	if len(args)%2 != 0 {
		return nil, fmt.Errorf("unicode61: options must be key/value pairs, got %d arguments: %w",
			len(args), domain.ErrInvalidArgument)
	}
	for i := 0; i < len(args); i += 2 {
		key, value := args[i], args[i+1]
		switch key {
		case "remove_diacritics":
			switch value {
			case "0":
				t.removeDiacritics = false
			case "1", "2":
				t.removeDiacritics = true
			default:
				return nil, fmt.Errorf("unicode61: remove_diacritics must be 0, 1 or 2, got %q: %w",
					value, domain.ErrInvalidArgument)
			}
		case "tokenchars":
			for _, r := range value {
				t.tokenChars[r] = true
				delete(t.separators, r)
			}
		case "separators":
			for _, r := range value {
				t.separators[r] = true
				delete(t.tokenChars, r)
			}
		default:
			return nil, fmt.Errorf("unicode61: unknown option %q: %w", key, domain.ErrInvalidArgument)
		}
	}
	return t, nil
}

func (t *Tokenizer) isTokenRune(r rune) bool {
	if t.separators[r] {
		return false
	}
	if t.tokenChars[r] {
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Co, r)
}

// Tokenize reports each run of token characters, case-folded.
// Invalid UTF-8 bytes are treated as separators.
func (t *Tokenizer) Tokenize(_ domain.TokenizeReason, text []byte, emit driven.TokenFunc) error {
	// Casers and transformers carry state, so each call gets its own.
	folder := cases.Fold()
	var strip transform.Transformer
	if t.removeDiacritics {
		strip = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		if !t.isToken(r, size) {
			i += size
			continue
		}

		start := i
		for i < len(text) {
			r, size = utf8.DecodeRune(text[i:])
			if !t.isToken(r, size) {
				break
			}
			i += size
		}

		word := text[start:i]
		if strip != nil {
			stripped, _, err := transform.Bytes(strip, word)
			if err == nil {
				word = stripped
			}
		}
		word = folder.Bytes(word)

		if err := emit(domain.Token{Text: word, Start: start, End: i}); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tokenizer) isToken(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	return t.isTokenRune(r)
}

// Close releases the tokenizer. It holds no resources.
func (t *Tokenizer) Close() error {
	return nil
}
