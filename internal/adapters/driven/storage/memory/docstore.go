package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	byURI     map[string]string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		byURI:     make(map[string]string),
	}
}

// SaveDocument stores or updates a document. Saving a document with the
// URI of another replaces the other.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.documents[doc.ID]; ok && prev.URI != doc.URI {
		delete(s.byURI, prev.URI)
	}
	if other, ok := s.byURI[doc.URI]; ok && other != doc.ID {
		delete(s.documents, other)
	}
	s.documents[doc.ID] = *doc
	s.byURI[doc.URI] = doc.ID
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetDocumentByURI retrieves a document by its URI.
func (s *DocumentStore) GetDocumentByURI(_ context.Context, uri string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byURI[uri]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.documents[id]
	return &doc, nil
}

// DeleteDocument removes a document.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.documents[id]; ok {
		delete(s.byURI, doc.URI)
		delete(s.documents, id)
	}
	return nil
}

// ListDocuments returns all documents ordered by URI.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		result = append(result, doc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].URI < result[j].URI })
	return result, nil
}
