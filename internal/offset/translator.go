// Package offset translates token offsets reported against decoded text
// back to byte offsets in the original markup.
package offset

import (
	"fmt"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Translator converts offsets for one decoded text run.
//
// It keeps two cursors that only move forward: plain, the decoded offset
// already accounted for, and original, the matching offset in the original
// input. Tokens must therefore arrive in order and must not overlap.
// A Translator is used for a single run and then discarded.
type Translator struct {
	lengths  []int
	plain    int
	original int
}

// New returns a Translator for a run whose decoded bytes have the given
// length table and whose first byte sits at origin in the original input.
func New(lengths []int, origin int) *Translator {
	return &Translator{lengths: lengths, original: origin}
}

// Translate maps the decoded range [start, end) to the original input and
// advances the cursors past it.
func (t *Translator) Translate(start, end int) (int, int, error) {
	if start < t.plain || end < start || end > len(t.lengths) {
		return 0, 0, fmt.Errorf("token at [%d,%d) with cursor at %d of %d: %w",
			start, end, t.plain, len(t.lengths), domain.ErrOffsetOrder)
	}

	actualStart := t.original + sum(t.lengths[t.plain:start])
	actualEnd := actualStart + sum(t.lengths[start:end])

	t.plain = end
	t.original = actualEnd
	return actualStart, actualEnd, nil
}

// Wrap returns a TokenFunc that rewrites each token's offsets and passes
// it on to emit. Token text and flags are forwarded unchanged.
func (t *Translator) Wrap(emit driven.TokenFunc) driven.TokenFunc {
	return func(tok domain.Token) error {
		start, end, err := t.Translate(tok.Start, tok.End)
		if err != nil {
			return err
		}
		tok.Start, tok.End = start, end
		return emit(tok)
	}
}

func sum(lengths []int) int {
	n := 0
	for _, l := range lengths {
		n += l
	}
	return n
}
