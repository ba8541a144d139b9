package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers term queries over indexed documents.
type SearchService struct {
	docStore   driven.DocumentStore
	engine     driven.SearchEngine
	tokenizers TokenizerBuilder
	args       []string
	mark       driving.MarkFunc
}

// NewSearchService creates a new search service. Queries are tokenized
// with the same tokenizer arguments used for indexing.
func NewSearchService(
	docStore driven.DocumentStore,
	engine driven.SearchEngine,
	tokenizers TokenizerBuilder,
	args []string,
) *SearchService {
	return &SearchService{
		docStore:   docStore,
		engine:     engine,
		tokenizers: tokenizers,
		args:       slices.Clone(args),
		mark:       DefaultMark,
	}
}

// SetHighlighter sets the function that decorates matches in snippets.
// A nil mark restores DefaultMark.
func (s *SearchService) SetHighlighter(mark driving.MarkFunc) {
	if mark == nil {
		mark = DefaultMark
	}
	s.mark = mark
}

// Search tokenizes query and returns the documents containing every term.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// Return empty for empty query
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	offset := max(opts.Offset, 0)
	logger.Debug("Limit: %d, offset: %d", limit, offset)

	terms, err := s.queryTerms(query)
	if err != nil {
		return nil, fmt.Errorf("tokenize query: %w", err)
	}
	if len(terms) == 0 {
		logger.Debug("Query has no terms, returning no results")
		return []domain.SearchResult{}, nil
	}
	logger.Debug("Terms: %v", terms)

	// Every hit is fetched: the page is cut after ordering by URI, which
	// the engine does not know.
	hits, err := s.engine.Search(ctx, terms, 0)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Hits: %d", len(hits))

	found, err := s.load(ctx, hits)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(found, func(a, b scoredDocument) int {
		switch {
		case a.hit.Score > b.hit.Score:
			return -1
		case a.hit.Score < b.hit.Score:
			return 1
		default:
			return strings.Compare(a.doc.URI, b.doc.URI)
		}
	})

	if offset >= len(found) {
		return []domain.SearchResult{}, nil
	}
	found = found[offset:min(offset+limit, len(found))]

	results := make([]domain.SearchResult, 0, len(found))
	for _, f := range found {
		results = append(results, s.result(f))
	}
	return results, nil
}

// queryTerms tokenizes the query and returns its distinct terms in order.
func (s *SearchService) queryTerms(query string) ([]string, error) {
	var terms []string
	seen := make(map[string]struct{})
	err := runTokenizer(s.tokenizers, s.args, domain.ReasonQuery, []byte(query), func(tok domain.Token) error {
		term := string(tok.Text)
		if _, ok := seen[term]; ok {
			return nil
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
		return nil
	})
	return terms, err
}

// scoredDocument is a hit together with its stored document.
type scoredDocument struct {
	hit driven.SearchHit
	doc *domain.Document
}

// load fetches the documents of hits. Hits whose document has gone
// missing are skipped.
func (s *SearchService) load(ctx context.Context, hits []driven.SearchHit) ([]scoredDocument, error) {
	found := make([]scoredDocument, 0, len(hits))
	for _, hit := range hits {
		doc, err := s.docStore.GetDocument(ctx, hit.DocumentID)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Search hit for missing document %s", hit.DocumentID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get document %s: %w", hit.DocumentID, err)
		}
		found = append(found, scoredDocument{hit: hit, doc: doc})
	}
	return found, nil
}

// result builds the matches and highlights of one document.
func (s *SearchService) result(f scoredDocument) domain.SearchResult {
	doc := f.doc
	matches := make([]domain.Match, 0, len(f.hit.Postings))
	for _, p := range f.hit.Postings {
		m := domain.Match{Term: p.Term, Start: p.Start, End: p.End}
		if p.Start >= 0 && p.Start <= p.End && p.End <= len(doc.Content) {
			m.Original = doc.Content[p.Start:p.End]
		}
		matches = append(matches, m)
	}

	return domain.SearchResult{
		Document:   *doc,
		Score:      f.hit.Score,
		Matches:    matches,
		Highlights: highlights(doc.Content, matches, s.mark),
	}
}
