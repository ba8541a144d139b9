package driving

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// MarkFunc decorates the matched text inside a highlight snippet.
type MarkFunc func(s string) string

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search tokenizes query and returns documents containing every term.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// SetHighlighter sets how matches are marked in highlight snippets.
	SetHighlighter(mark MarkFunc)
}
