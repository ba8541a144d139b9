package html

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/entity"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
	"github.com/gyf304/sqlite3-fts5-html/internal/markup"
	"github.com/gyf304/sqlite3-fts5-html/internal/offset"
)

// Name is the name the tokenizer is registered under.
const Name = "html"

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer wraps an inner tokenizer and feeds it decoded text runs.
type Tokenizer struct {
	inner   driven.Tokenizer
	decoder *entity.Decoder

	mu     sync.Mutex
	closed bool
}

// New creates an html tokenizer. args[0] names the inner tokenizer, which
// is looked up in reg and built with args[1:].
func New(reg driven.TokenizerRegistry, args []string) (*Tokenizer, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("html: inner tokenizer name required: %w", domain.ErrInvalidArgument)
	}

	factory, err := reg.Find(args[0])
	if err != nil {
		return nil, fmt.Errorf("html: inner tokenizer: %w", err)
	}

	inner, err := factory(args[1:])
	if err != nil {
		return nil, fmt.Errorf("html: create %s: %w", args[0], err)
	}
	if inner == nil {
		return nil, fmt.Errorf("html: %s returned no tokenizer: %w", args[0], domain.ErrInvalidArgument)
	}

	logger.Debug("html tokenizer: wrapping %s with args %v", args[0], args[1:])
	return &Tokenizer{inner: inner, decoder: entity.NewDecoder()}, nil
}

// NewWithInner wraps an already constructed tokenizer. The html
// tokenizer takes ownership of inner and closes it on Close.
func NewWithInner(inner driven.Tokenizer) *Tokenizer {
	return &Tokenizer{inner: inner, decoder: entity.NewDecoder()}
}

// Tokenize reports the tokens of every indexable text run in text.
//
// Each run is decoded into a pooled buffer and tokenized by the inner
// tokenizer; token offsets are translated back to text before emit is
// called. The first error from decoding, translation, the inner tokenizer
// or emit stops tokenization and is returned.
func (t *Tokenizer) Tokenize(reason domain.TokenizeReason, text []byte, emit driven.TokenFunc) error {
	if t.isClosed() {
		return domain.ErrTokenizerClosed
	}

	for span := range markup.Scan(text) {
		if !span.Indexable() {
			continue
		}
		if err := t.tokenizeRun(reason, text, span, emit); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tokenizer) tokenizeRun(reason domain.TokenizeReason, text []byte, span markup.Span, emit driven.TokenFunc) error {
	buf := entity.Acquire()
	defer entity.Release(buf)

	if err := t.decoder.DecodeInto(buf, text[span.Start:span.End]); err != nil {
		return fmt.Errorf("html: decode run at %d: %w", span.Start, err)
	}
	if len(buf.Text) == 0 {
		return nil
	}

	tr := offset.New(buf.Lengths, span.Start)
	return t.inner.Tokenize(reason, buf.Text, tr.Wrap(emit))
}

// errStop ends tokenization early when an iterator consumer breaks.
var errStop = errors.New("stop")

// Tokens returns an iterator over the tokens of text. Each yielded token
// owns a copy of its text. Iteration ends after the first error.
func (t *Tokenizer) Tokens(reason domain.TokenizeReason, text []byte) iter.Seq2[domain.Token, error] {
	return func(yield func(domain.Token, error) bool) {
		err := t.Tokenize(reason, text, func(tok domain.Token) error {
			tok.Text = append([]byte(nil), tok.Text...)
			if !yield(tok, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(domain.Token{}, err)
		}
	}
}

// Close closes the inner tokenizer. Later calls return
// domain.ErrTokenizerClosed.
func (t *Tokenizer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return domain.ErrTokenizerClosed
	}
	t.closed = true
	return t.inner.Close()
}

func (t *Tokenizer) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
