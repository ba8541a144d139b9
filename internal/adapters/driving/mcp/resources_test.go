package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "fts5html://docs/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://docs/doc-456",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "fts5html://docs/doc-456/extra",
			expected: "",
		},
		{
			name:     "list URI",
			uri:      "fts5html://docs",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil index service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleDocsResource(ctx, makeReadResourceRequest("fts5html://docs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns documents successfully", func(t *testing.T) {
		mockIndex := &mockIndexService{
			documents: []domain.Document{
				{ID: "doc-1", Title: "Fish", URI: "/site/fish.html", Content: "<p>fish</p>"},
				{ID: "doc-2", Title: "Chips", URI: "/site/chips.html"},
			},
		}
		server := newTestServer(t, &Ports{Index: mockIndex})

		result, err := server.handleDocsResource(ctx, makeReadResourceRequest("fts5html://docs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "/site/fish.html")
		assert.Contains(t, result.Contents[0].Text, `"size": 11`)
		assert.Contains(t, result.Contents[0].Text, "doc-2")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockIndex := &mockIndexService{err: errors.New("database error")}
		server := newTestServer(t, &Ports{Index: mockIndex})

		_, err := server.handleDocsResource(ctx, makeReadResourceRequest("fts5html://docs"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})

	t.Run("handles empty document list", func(t *testing.T) {
		server := newTestServer(t, &Ports{Index: &mockIndexService{documents: []domain.Document{}}})

		result, err := server.handleDocsResource(ctx, makeReadResourceRequest("fts5html://docs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()
	docs := []domain.Document{
		{
			ID:       "doc-1",
			URI:      "/site/fish.html",
			Content:  "<p>Caf&eacute;</p>",
			Metadata: map[string]any{"mime_type": "text/html"},
		},
		{ID: "doc-2", URI: "/site/notes", Content: "notes"},
	}

	t.Run("nil index service returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("fts5html://docs/doc-1"))

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Index: &mockIndexService{documents: docs}})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("fts5html://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("unknown document returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Index: &mockIndexService{documents: docs}})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("fts5html://docs/missing"))

		require.Error(t, err)
	})

	t.Run("returns original markup", func(t *testing.T) {
		server := newTestServer(t, &Ports{Index: &mockIndexService{documents: docs}})

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("fts5html://docs/doc-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "<p>Caf&eacute;</p>", result.Contents[0].Text)
		assert.Equal(t, "text/html", result.Contents[0].MIMEType)
	})

	t.Run("missing mime type defaults to text", func(t *testing.T) {
		server := newTestServer(t, &Ports{Index: &mockIndexService{documents: docs}})

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("fts5html://docs/doc-2"))

		require.NoError(t, err)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockIndex := &mockIndexService{err: errors.New("content not found")}
		server := newTestServer(t, &Ports{Index: mockIndex})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("fts5html://docs/doc-1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting document content")
	})
}
