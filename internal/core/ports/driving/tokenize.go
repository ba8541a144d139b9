package driving

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// TokenizeService runs a configured tokenizer over text.
type TokenizeService interface {
	// Tokenize builds the tokenizer described by args, runs it over text
	// and returns every token with its text copied.
	Tokenize(ctx context.Context, args []string, reason domain.TokenizeReason, text []byte) ([]domain.Token, error)
}
