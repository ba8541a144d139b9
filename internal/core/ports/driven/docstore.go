package driven

import (
	"context"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// DocumentStore persists documents.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByURI retrieves a document by its URI.
	GetDocumentByURI(ctx context.Context, uri string) (*domain.Document, error)

	// DeleteDocument removes a document and its postings.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents ordered by URI.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
