package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService normalises documents, tokenizes their markup and stores
// the resulting postings.
type IndexService struct {
	docStore   driven.DocumentStore
	engine     driven.SearchEngine
	normaliser driven.Normaliser
	tokenizers TokenizerBuilder
	args       []string
}

// NewIndexService creates a new index service. Documents are tokenized
// with the tokenizer described by args.
func NewIndexService(
	docStore driven.DocumentStore,
	engine driven.SearchEngine,
	normaliser driven.Normaliser,
	tokenizers TokenizerBuilder,
	args []string,
) *IndexService {
	return &IndexService{
		docStore:   docStore,
		engine:     engine,
		normaliser: normaliser,
		tokenizers: tokenizers,
		args:       slices.Clone(args),
	}
}

// Index normalises, tokenizes and stores a raw document.
func (s *IndexService) Index(ctx context.Context, raw *domain.RawDocument) (*driving.IndexResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	defer logger.Timed("index " + raw.URI)()

	doc, err := s.normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise: %w", err)
	}

	change := domain.ChangeCreated
	existing, err := s.docStore.GetDocumentByURI(ctx, doc.URI)
	switch {
	case err == nil:
		change = domain.ChangeUpdated
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("look up %s: %w", doc.URI, err)
	}

	postings, err := s.postings(doc)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", doc.URI, err)
	}
	logger.Debug("%s: %d postings (%s)", doc.URI, len(postings), change)

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.engine.Index(ctx, doc.ID, postings); err != nil {
		err = fmt.Errorf("save postings: %w", err)
		return nil, errors.Join(err, s.restore(ctx, doc, existing))
	}

	return &driving.IndexResult{Document: doc, Change: change, Terms: len(postings)}, nil
}

// restore undoes SaveDocument after the postings failed to save, so the
// stored postings keep pointing into the content they were built from.
// existing is nil when the document was new.
func (s *IndexService) restore(ctx context.Context, doc, existing *domain.Document) error {
	if existing == nil {
		if err := s.docStore.DeleteDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("roll back %s: %w", doc.URI, err)
		}
		return nil
	}
	if err := s.docStore.SaveDocument(ctx, existing); err != nil {
		return fmt.Errorf("roll back %s: %w", doc.URI, err)
	}
	return nil
}

// postings tokenizes the document's original content. Colocated tokens
// share the position of the token before them.
func (s *IndexService) postings(doc *domain.Document) ([]domain.Posting, error) {
	var postings []domain.Posting
	position := -1
	err := runTokenizer(s.tokenizers, s.args, domain.ReasonDocument, []byte(doc.Content), func(tok domain.Token) error {
		if tok.Flags&domain.TokenColocated == 0 || position < 0 {
			position++
		}
		postings = append(postings, domain.Posting{
			Term:     string(tok.Text),
			Position: position,
			Start:    tok.Start,
			End:      tok.End,
		})
		return nil
	})
	return postings, err
}

// Remove deletes the document with the given URI and its postings.
func (s *IndexService) Remove(ctx context.Context, uri string) error {
	doc, err := s.docStore.GetDocumentByURI(ctx, uri)
	if err != nil {
		return fmt.Errorf("remove %s: %w", uri, err)
	}
	if err := s.engine.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete postings: %w", err)
	}
	if err := s.docStore.DeleteDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	logger.Debug("Removed %s (%s)", uri, doc.ID)
	return nil
}

// List returns all indexed documents ordered by URI.
func (s *IndexService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}
