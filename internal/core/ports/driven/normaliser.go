package driven

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// Normaliser transforms raw markup into a document ready for indexing.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise extracts the title and plain text of a raw document.
	// The returned Document keeps the raw markup as its Content.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
