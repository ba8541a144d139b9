// Package ascii implements a tokenizer that splits on ASCII punctuation
// and whitespace.
//
// Token characters are ASCII letters and digits plus every byte >= 0x80,
// so UTF-8 text outside ASCII is never split. ASCII letters are folded to
// lower case; other bytes are kept as is.
//
// Options are key/value argument pairs:
//
//	separators <chars>   ASCII characters to treat as separators
//	tokenchars <chars>   ASCII characters to treat as token characters
package ascii

import (
	"fmt"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is the ascii tokenizer. It is safe for concurrent use.
type Tokenizer struct {
	tokenChars [256]bool
}

// New creates an ascii tokenizer from its option arguments.
func New(args []string) (*Tokenizer, error) {
	t := &Tokenizer{}
	for c := range t.tokenChars {
		t.tokenChars[c] = c >= 0x80 || isAlnum(byte(c))
	}

	if len(args)%2 != 0 {
		return nil, fmt.Errorf("ascii: options must be key/value pairs, got %d arguments: %w",
			len(args), domain.ErrInvalidArgument)
	}
	for i := 0; i < len(args); i += 2 {
		key, value := args[i], args[i+1]
		switch key {
		case "tokenchars":
			t.set(value, true)
		case "separators":
			t.set(value, false)
		default:
			return nil, fmt.Errorf("ascii: unknown option %q: %w", key, domain.ErrInvalidArgument)
		}
	}
	return t, nil
}

// set marks the ASCII bytes of chars; non-ASCII bytes are ignored.
func (t *Tokenizer) set(chars string, token bool) {
	for i := 0; i < len(chars); i++ {
		if c := chars[i]; c < 0x80 {
			t.tokenChars[c] = token
		}
	}
}

// Tokenize reports each run of token characters, lower-cased.
func (t *Tokenizer) Tokenize(_ domain.TokenizeReason, text []byte, emit driven.TokenFunc) error {
	var folded []byte
	for i := 0; i < len(text); {
		for i < len(text) && !t.tokenChars[text[i]] {
			i++
		}
		if i == len(text) {
			break
		}

		start := i
		for i < len(text) && t.tokenChars[text[i]] {
			i++
		}

		folded = appendLower(folded[:0], text[start:i])
		if err := emit(domain.Token{Text: folded, Start: start, End: i}); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the tokenizer. It holds no resources.
func (t *Tokenizer) Close() error {
	return nil
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// appendLower appends word with ASCII letters folded to lower case.
func appendLower(dst, word []byte) []byte {
	for _, c := range word {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		dst = append(dst, c)
	}
	return dst
}
