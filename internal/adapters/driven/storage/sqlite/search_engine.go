package sqlite

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// searchEngine implements driven.SearchEngine over the postings table.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// Index replaces the postings of a document.
func (e *searchEngine) Index(ctx context.Context, documentID string, postings []domain.Posting) error {
	tx, err := e.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM postings WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing postings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO postings (document_id, position, term, start_offset, end_offset)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range postings {
		if _, err := stmt.ExecContext(ctx, documentID, p.Position, p.Term, p.Start, p.End); err != nil {
			return fmt.Errorf("saving posting: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Delete removes all postings of a document.
func (e *searchEngine) Delete(ctx context.Context, documentID string) error {
	if _, err := e.store.db.ExecContext(ctx, "DELETE FROM postings WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting postings: %w", err)
	}
	return nil
}

// Search returns documents containing every term. Documents with more
// matching occurrences rank first; ties are broken by URI.
func (e *searchEngine) Search(ctx context.Context, terms []string, limit int) ([]driven.SearchHit, error) {
	terms = uniqueTerms(terms)
	if len(terms) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(terms)), ",")
	args := make([]any, 0, len(terms)+2)
	for _, term := range terms {
		args = append(args, term)
	}
	args = append(args, len(terms))

	query := `
		SELECT p.document_id, COUNT(*) AS hits
		FROM postings p
		JOIN documents d ON d.id = p.document_id
		WHERE p.term IN (` + placeholders + `)
		GROUP BY p.document_id, d.uri
		HAVING COUNT(DISTINCT p.term) = ?
		ORDER BY hits DESC, d.uri, p.document_id`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := e.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying postings: %w", err)
	}

	var hits []driven.SearchHit
	for rows.Next() {
		var hit driven.SearchHit
		if err := rows.Scan(&hit.DocumentID, &hit.Score); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating hits: %w", err)
	}
	rows.Close()

	for i := range hits {
		postings, err := e.matchingPostings(ctx, hits[i].DocumentID, placeholders, terms)
		if err != nil {
			return nil, err
		}
		hits[i].Postings = postings
	}
	return hits, nil
}

// matchingPostings loads the postings of one document for the given terms,
// in document order.
func (e *searchEngine) matchingPostings(
	ctx context.Context, documentID, placeholders string, terms []string,
) ([]domain.Posting, error) {
	args := make([]any, 0, len(terms)+1)
	args = append(args, documentID)
	for _, term := range terms {
		args = append(args, term)
	}

	rows, err := e.store.db.QueryContext(ctx, `
		SELECT term, position, start_offset, end_offset
		FROM postings
		WHERE document_id = ? AND term IN (`+placeholders+`)
		ORDER BY position, rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying postings: %w", err)
	}
	defer rows.Close()

	var postings []domain.Posting
	for rows.Next() {
		var p domain.Posting
		if err := rows.Scan(&p.Term, &p.Position, &p.Start, &p.End); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating postings: %w", err)
	}
	return postings, nil
}

// uniqueTerms drops empty and duplicate terms, keeping first occurrences.
func uniqueTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if term != "" && !slices.Contains(out, term) {
			out = append(out, term)
		}
	}
	return out
}
