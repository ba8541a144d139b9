package driven

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// Connector reads documents from a location such as a directory tree.
type Connector interface {
	// Validate checks the location exists and is readable.
	Validate(ctx context.Context) error

	// FullSync reads every document at the location.
	// Both channels are closed when the sync ends; the error channel
	// carries fatal errors and per-document read failures.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch reports changes until ctx is cancelled or Close is called.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources. Close is idempotent.
	Close() error
}
