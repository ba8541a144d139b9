package ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

type token struct {
	text       string
	start, end int
}

func collect(t *testing.T, tok *Tokenizer, text string) []token {
	t.Helper()
	var out []token
	err := tok.Tokenize(domain.ReasonDocument, []byte(text), func(tk domain.Token) error {
		out = append(out, token{string(tk.Text), tk.Start, tk.End})
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestTokenize(t *testing.T) {
	tok, err := New(nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected []token
	}{
		{"empty", "", nil},
		{"separators only", " ,.; ", nil},
		{"single word", "Hello", []token{{"hello", 0, 5}}},
		{"words", "Hello, World!", []token{{"hello", 0, 5}, {"world", 7, 12}}},
		{"digits", "abc123 456", []token{{"abc123", 0, 6}, {"456", 7, 10}}},
		{"non-ascii kept whole", "café bar", []token{{"café", 0, 5}, {"bar", 6, 9}}},
		{"ampersand separates", "&b", []token{{"b", 1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collect(t, tok, tt.input))
		})
	}
}

func TestNew_Options(t *testing.T) {
	tok, err := New([]string{"tokenchars", "-_", "separators", "x"})
	require.NoError(t, err)

	assert.Equal(t,
		[]token{{"foo-bar_baz", 0, 11}, {"y", 12, 13}},
		collect(t, tok, "foo-bar_bazxy"))
}

func TestNew_NonASCIIOptionBytesIgnored(t *testing.T) {
	tok, err := New([]string{"separators", "é"})
	require.NoError(t, err)

	assert.Equal(t, []token{{"café", 0, 5}}, collect(t, tok, "café"))
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"odd count", []string{"tokenchars"}},
		{"unknown option", []string{"remove_diacritics", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := New(tt.args)
			assert.Nil(t, tok)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestTokenize_StopsOnCallbackError(t *testing.T) {
	tok, err := New(nil)
	require.NoError(t, err)

	calls := 0
	err = tok.Tokenize(domain.ReasonDocument, []byte("a b c"), func(domain.Token) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
	assert.NoError(t, tok.Close())
}
