package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.NotNil(t, store.byURI)
}

func TestDocumentStore_SaveDocument_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now()
	doc := &domain.Document{
		ID:        "doc-1",
		URI:       "/path/to/page.html",
		Title:     "Test Document",
		Content:   "<p>Tom &amp; Jerry</p>",
		Text:      "Tom & Jerry",
		Metadata:  map[string]any{"format": "html"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.SaveDocument(ctx, doc))

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, *doc, *saved)
}

func TestDocumentStore_SaveDocument_Update(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", URI: "a.html", Title: "Original"}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", URI: "b.html", Title: "Updated"}))

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated", saved.Title)

	_, err = store.GetDocumentByURI(ctx, "a.html")
	assert.ErrorIs(t, err, domain.ErrNotFound, "old URI is released")

	byURI, err := store.GetDocumentByURI(ctx, "b.html")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", byURI.ID)
}

func TestDocumentStore_SaveDocument_SameURIReplaces(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "old", URI: "a.html"}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "new", URI: "a.html"}))

	_, err := store.GetDocument(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "new", docs[0].ID)
}

func TestDocumentStore_SavedCopyIsIsolated(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", URI: "a.html", Title: "Before"}
	require.NoError(t, store.SaveDocument(ctx, doc))
	doc.Title = "After"

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Before", saved.Title)
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()

	doc, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", URI: "a.html"}))
	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetDocumentByURI(ctx, "a.html")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.DeleteDocument(ctx, "doc-1"))
}

func TestDocumentStore_ListDocuments_SortedByURI(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	for _, uri := range []string{"c.html", "a.html", "b.html"} {
		require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "id-" + uri, URI: uri}))
	}

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a.html", docs[0].URI)
	assert.Equal(t, "b.html", docs[1].URI)
	assert.Equal(t, "c.html", docs[2].URI)
}

func TestDocumentStore_ListDocuments_Empty(t *testing.T) {
	docs, err := NewDocumentStore().ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentStore_Concurrency(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", i)
			_ = store.SaveDocument(ctx, &domain.Document{ID: id, URI: id + ".html"})
			_, _ = store.GetDocument(ctx, id)
			_, _ = store.ListDocuments(ctx)
		}(i)
	}
	wg.Wait()

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 50)
}
