package driven

import "github.com/gyf304/sqlite3-fts5-html/internal/core/domain"

// TokenFunc receives tokens from a Tokenizer.
// The token's Text is only valid for the duration of the call.
// Returning a non-nil error aborts tokenization and the error is
// returned from Tokenize.
type TokenFunc func(tok domain.Token) error

// Tokenizer splits text into tokens.
// This mirrors the host engine's tokenizer capability set: instances are
// created by a TokenizerFactory, invoked any number of times, and closed
// exactly once. Implementations are not required to be safe for
// concurrent Tokenize calls on the same instance.
type Tokenizer interface {
	// Tokenize reports every token in text, in order, to emit.
	// Token offsets are byte offsets into text.
	Tokenize(reason domain.TokenizeReason, text []byte, emit TokenFunc) error

	// Close releases the tokenizer and anything it wraps.
	Close() error
}

// TokenizerFactory creates a Tokenizer from its argument list.
// Arguments are tokenizer-specific and passed through verbatim.
type TokenizerFactory func(args []string) (Tokenizer, error)
