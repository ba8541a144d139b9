package driven

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// SearchEngine stores postings and answers term queries.
type SearchEngine interface {
	// Index replaces the postings of a document.
	Index(ctx context.Context, documentID string, postings []domain.Posting) error

	// Delete removes all postings of a document.
	Delete(ctx context.Context, documentID string) error

	// Search returns documents containing every term, best first. The
	// order of equal scores is engine-defined, so callers that page by
	// another key must pass limit 0 and order the hits themselves.
	Search(ctx context.Context, terms []string, limit int) ([]SearchHit, error)
}

// SearchHit represents a search result from the engine.
type SearchHit struct {
	// DocumentID is the matched document.
	DocumentID string

	// Score is the relevance score (number of matching occurrences).
	Score float64

	// Postings are the matching occurrences, in document order.
	Postings []domain.Posting
}
