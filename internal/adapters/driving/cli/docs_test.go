package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsCmd_NoService(t *testing.T) {
	for _, args := range [][]string{{"docs", "list"}, {"docs", "show", "x"}, {"docs", "remove", "x"}} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "index service not configured")
	}
}

func TestDocsListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "docs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents indexed.")
}

func TestDocsListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	dir := indexFixture(t)

	out, err := execute(t, "docs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "fish.html"))
	assert.Contains(t, out, "Title:   Fish & Chips")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestDocsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	dir := indexFixture(t)

	out, err := execute(t, "docs", "show", filepath.Join(dir, "fish.html"))
	require.NoError(t, err)
	assert.Contains(t, out, "Title:    Fish & Chips")
	assert.Contains(t, out, "mime_type: text/html")
	assert.Contains(t, out, "Café serves fish.")
	assert.NotContains(t, out, "fish()")
}

func TestDocsShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	_, err := execute(t, "docs", "show", "/nowhere.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDocsRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	dir := indexFixture(t)
	path := filepath.Join(dir, "fish.html")

	out, err := execute(t, "docs", "remove", path)
	require.NoError(t, err)
	assert.Contains(t, out, "removed from index")

	out, err = execute(t, "search", "fish")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")

	_, err = execute(t, "docs", "remove", path)
	assert.Error(t, err)
}

func TestResolveDocURI(t *testing.T) {
	abs, err := filepath.Abs("page.html")
	require.NoError(t, err)

	assert.Equal(t, abs, resolveDocURI("page.html"))
	assert.Equal(t, "/a/b.html", resolveDocURI("file:///a/b.html"))
	assert.Equal(t, "", resolveDocURI(""))
}
