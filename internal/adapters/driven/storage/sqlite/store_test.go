package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// createTestDocument saves a document to satisfy foreign key constraints.
func createTestDocument(t *testing.T, store *Store, id, uri string) *domain.Document {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:        id,
		URI:       uri,
		Title:     "Document " + id,
		Content:   "<p>Tom &amp; Jerry</p>",
		Text:      "Tom & Jerry",
		Metadata:  map[string]any{"format": "html"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.DocumentStore().SaveDocument(context.Background(), doc))
	return doc
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "index.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Contains(t, store.Path(), ".fts5html")
	assert.Contains(t, store.Path(), "index.db")
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)

	for _, table := range []string{"documents", "postings"} {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	createTestDocument(t, first, "doc-1", "a.html")
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)

	_, err = second.DocumentStore().GetDocument(context.Background(), "doc-1")
	assert.NoError(t, err)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store := setupTestStore(t)

	var fkEnabled int
	require.NoError(t, store.db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled))
	assert.Equal(t, 1, fkEnabled)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// ==================== Document Store Tests ====================

func TestDocumentStore_SaveAndGetDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := createTestDocument(t, store, "doc-1", "/docs/a.html")

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.URI, got.URI)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Text, got.Text)
	assert.Equal(t, "html", got.Metadata["format"])
	assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))
}

func TestDocumentStore_GetDocumentByURI(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "/docs/a.html")

	got, err := store.DocumentStore().GetDocumentByURI(ctx, "/docs/a.html")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)

	_, err = store.DocumentStore().GetDocumentByURI(ctx, "/docs/missing.html")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_SaveDocument_Update(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := createTestDocument(t, store, "doc-1", "/docs/a.html")
	doc.Title = "Updated"
	doc.Content = "<p>new</p>"
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, doc))

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
	assert.Equal(t, "<p>new</p>", got.Content)
}

func TestDocumentStore_SaveDocument_SameURIReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestDocument(t, store, "old", "/docs/a.html")
	require.NoError(t, store.SearchEngine().Index(ctx, "old", []domain.Posting{{Term: "tom", Start: 3, End: 6}}))
	createTestDocument(t, store, "new", "/docs/a.html")

	_, err := store.DocumentStore().GetDocument(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hits, err := store.SearchEngine().Search(ctx, []string{"tom"}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits, "postings of the replaced document are gone")
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.DocumentStore().GetDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "/docs/a.html")
	require.NoError(t, store.DocumentStore().DeleteDocument(ctx, "doc-1"))

	_, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.DocumentStore().DeleteDocument(ctx, "doc-1"), "deleting twice is not an error")
}

func TestDocumentStore_ListDocuments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, err := store.DocumentStore().ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	createTestDocument(t, store, "doc-b", "/docs/b.html")
	createTestDocument(t, store, "doc-a", "/docs/a.html")

	docs, err = store.DocumentStore().ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "/docs/a.html", docs[0].URI)
	assert.Equal(t, "/docs/b.html", docs[1].URI)
}

func TestDocumentStore_EmptyMetadata(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", URI: "x.html", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, doc))

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, got.Metadata)
}

// ==================== Search Engine Tests ====================

func TestSearchEngine_IndexAndSearch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	createTestDocument(t, store, "doc-1", "a.html")
	createTestDocument(t, store, "doc-2", "b.html")

	require.NoError(t, engine.Index(ctx, "doc-1", []domain.Posting{
		{Term: "tom", Position: 0, Start: 3, End: 6},
		{Term: "jerry", Position: 1, Start: 13, End: 18},
	}))
	require.NoError(t, engine.Index(ctx, "doc-2", []domain.Posting{
		{Term: "tom", Position: 0, Start: 0, End: 3},
		{Term: "tom", Position: 1, Start: 4, End: 7},
	}))

	hits, err := engine.Search(ctx, []string{"tom"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-2", hits[0].DocumentID)
	assert.Equal(t, 2.0, hits[0].Score)
	assert.Len(t, hits[0].Postings, 2)
	assert.Equal(t, "doc-1", hits[1].DocumentID)

	hits, err = engine.Search(ctx, []string{"tom", "jerry"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1, "all terms must match")
	assert.Equal(t, "doc-1", hits[0].DocumentID)
	assert.Equal(t, []domain.Posting{
		{Term: "tom", Position: 0, Start: 3, End: 6},
		{Term: "jerry", Position: 1, Start: 13, End: 18},
	}, hits[0].Postings)
}

func TestSearchEngine_SearchLimitAndDuplicates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	for _, id := range []string{"a", "b", "c"} {
		createTestDocument(t, store, id, id+".html")
		require.NoError(t, engine.Index(ctx, id, []domain.Posting{{Term: "x", End: 1}}))
	}

	hits, err := engine.Search(ctx, []string{"x", "x", ""}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].DocumentID)
	assert.Equal(t, "b", hits[1].DocumentID)

	hits, err = engine.Search(ctx, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEngine_TiesOrderedByURI(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	for id, uri := range map[string]string{"z": "a.html", "y": "b.html", "x": "c.html"} {
		createTestDocument(t, store, id, uri)
		require.NoError(t, engine.Index(ctx, id, []domain.Posting{{Term: "fish", End: 4}}))
	}

	hits, err := engine.Search(ctx, []string{"fish"}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "z", hits[0].DocumentID)
	assert.Equal(t, "y", hits[1].DocumentID)
}

func TestSearchEngine_ColocatedPostings(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	createTestDocument(t, store, "doc-1", "a.html")
	postings := []domain.Posting{
		{Term: "first", Position: 0, Start: 0, End: 5},
		{Term: "1st", Position: 0, Start: 0, End: 5},
		{Term: "place", Position: 1, Start: 6, End: 11},
	}
	require.NoError(t, engine.Index(ctx, "doc-1", postings))

	hits, err := engine.Search(ctx, []string{"first", "1st", "place"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 3.0, hits[0].Score)
	assert.Equal(t, postings, hits[0].Postings)
}

func TestSearchEngine_ReindexReplacesPostings(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	createTestDocument(t, store, "doc-1", "a.html")
	require.NoError(t, engine.Index(ctx, "doc-1", []domain.Posting{{Term: "old"}}))
	require.NoError(t, engine.Index(ctx, "doc-1", []domain.Posting{{Term: "new"}}))

	hits, err := engine.Search(ctx, []string{"old"}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = engine.Search(ctx, []string{"new"}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearchEngine_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	createTestDocument(t, store, "doc-1", "a.html")
	require.NoError(t, engine.Index(ctx, "doc-1", []domain.Posting{{Term: "x"}}))
	require.NoError(t, engine.Delete(ctx, "doc-1"))

	hits, err := engine.Search(ctx, []string{"x"}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEngine_IndexUnknownDocumentFails(t *testing.T) {
	store := setupTestStore(t)

	err := store.SearchEngine().Index(context.Background(), "ghost", []domain.Posting{{Term: "x"}})
	assert.Error(t, err, "foreign key constraint")
}

func TestStore_CascadeDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "a.html")
	require.NoError(t, store.SearchEngine().Index(ctx, "doc-1", []domain.Posting{{Term: "x"}, {Term: "y", Position: 1}}))
	require.NoError(t, store.DocumentStore().DeleteDocument(ctx, "doc-1"))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM postings").Scan(&count))
	assert.Zero(t, count)
}

func TestStore_ContextCancellation(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.DocumentStore().ListDocuments(ctx)
	assert.Error(t, err)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			doc := &domain.Document{ID: id, URI: id + ".html", CreatedAt: time.Now(), UpdatedAt: time.Now()}
			errs <- store.DocumentStore().SaveDocument(ctx, doc)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	docs, err := store.DocumentStore().ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 10)
}

func TestUniqueTerms(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueTerms([]string{"a", "", "b", "a"}))
	assert.Empty(t, uniqueTerms(nil))
}
