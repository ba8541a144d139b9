package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Ensure SearchEngine implements the interface.
var _ driven.SearchEngine = (*SearchEngine)(nil)

// SearchEngine is an in-memory inverted index.
type SearchEngine struct {
	mu sync.RWMutex
	// postings maps document ID to its postings in position order.
	postings map[string][]domain.Posting
	// terms maps a term to the documents containing it.
	terms map[string]map[string]struct{}
}

// NewSearchEngine creates an empty in-memory search engine.
func NewSearchEngine() *SearchEngine {
	return &SearchEngine{
		postings: make(map[string][]domain.Posting),
		terms:    make(map[string]map[string]struct{}),
	}
}

// Index replaces the postings of a document.
func (e *SearchEngine) Index(_ context.Context, documentID string, postings []domain.Posting) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.remove(documentID)
	if len(postings) == 0 {
		return nil
	}

	stored := slices.Clone(postings)
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].Position < stored[j].Position })
	e.postings[documentID] = stored
	for _, p := range stored {
		docs, ok := e.terms[p.Term]
		if !ok {
			docs = make(map[string]struct{})
			e.terms[p.Term] = docs
		}
		docs[documentID] = struct{}{}
	}
	return nil
}

// Delete removes all postings of a document.
func (e *SearchEngine) Delete(_ context.Context, documentID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.remove(documentID)
	return nil
}

// remove drops a document from the index (caller must hold lock).
func (e *SearchEngine) remove(documentID string) {
	for _, p := range e.postings[documentID] {
		if docs, ok := e.terms[p.Term]; ok {
			delete(docs, documentID)
			if len(docs) == 0 {
				delete(e.terms, p.Term)
			}
		}
	}
	delete(e.postings, documentID)
}

// Search returns documents containing every term. Documents with more
// matching occurrences rank first; ties are broken by document ID.
func (e *SearchEngine) Search(_ context.Context, terms []string, limit int) ([]driven.SearchHit, error) {
	wanted := make(map[string]bool, len(terms))
	for _, term := range terms {
		if term != "" {
			wanted[term] = true
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var hits []driven.SearchHit
	for documentID := range e.candidates(wanted) {
		var matched []domain.Posting
		for _, p := range e.postings[documentID] {
			if wanted[p.Term] {
				matched = append(matched, p)
			}
		}
		hits = append(hits, driven.SearchHit{
			DocumentID: documentID,
			Score:      float64(len(matched)),
			Postings:   matched,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// candidates returns the documents that contain every wanted term
// (caller must hold lock).
func (e *SearchEngine) candidates(wanted map[string]bool) map[string]struct{} {
	var result map[string]struct{}
	for term := range wanted {
		docs := e.terms[term]
		if len(docs) == 0 {
			return nil
		}
		if result == nil {
			result = make(map[string]struct{}, len(docs))
			for id := range docs {
				result[id] = struct{}{}
			}
			continue
		}
		for id := range result {
			if _, ok := docs[id]; !ok {
				delete(result, id)
			}
		}
	}
	return result
}
