package driving

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// SyncOrchestrator keeps the index in step with a document location.
type SyncOrchestrator interface {
	// Sync indexes every document the connector reads. Connector errors
	// are returned together once the connector is drained; documents
	// that fail to index are counted and reported but do not stop the sync.
	Sync(ctx context.Context, connector driven.Connector, progress ProgressFunc) (*SyncStatus, error)

	// Watch applies the connector's changes to the index until ctx is
	// cancelled or the connector stops watching.
	Watch(ctx context.Context, connector driven.Connector, progress ProgressFunc) error
}

// ProgressFunc is called once per processed document.
// err is non-nil when the document could not be indexed or removed.
type ProgressFunc func(uri string, change domain.ChangeType, err error)

// SyncStatus counts the outcome of a sync.
type SyncStatus struct {
	Created int
	Updated int
	Deleted int
	Failed  int
}

// Processed returns the number of documents applied to the index.
func (s SyncStatus) Processed() int {
	return s.Created + s.Updated + s.Deleted
}
