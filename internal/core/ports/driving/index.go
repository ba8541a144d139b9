package driving

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// IndexService adds documents to the index and removes them.
type IndexService interface {
	// Index normalises, tokenizes and stores a raw document. Indexing a
	// URI that is already indexed replaces the earlier version.
	Index(ctx context.Context, raw *domain.RawDocument) (*IndexResult, error)

	// Remove deletes the document with the given URI and its postings.
	Remove(ctx context.Context, uri string) error

	// List returns all indexed documents ordered by URI.
	List(ctx context.Context) ([]domain.Document, error)
}

// IndexResult summarises one indexed document.
type IndexResult struct {
	// Document is the stored document.
	Document *domain.Document

	// Change is whether the URI was new or replaced an earlier version.
	Change domain.ChangeType

	// Terms is the number of postings written.
	Terms int
}
