package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexFixture indexes fishHTML and a second page.
func indexFixture(t *testing.T) string {
	t.Helper()
	dir := writeTree(t, map[string]string{
		"fish.html":  fishHTML,
		"chips.html": "<h1>Chips</h1><p>chips and more chips</p>",
	})
	_, err := execute(t, "index", dir)
	require.NoError(t, err)
	return dir
}

func TestSearchCmd_NoService(t *testing.T) {
	_, err := execute(t, "search", "fish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "search")
	assert.Error(t, err)
}

func TestSearchCmd_Results(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	out, err := execute(t, "search", "fish")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] Fish & Chips (2)")
	assert.Contains(t, out, "fish.html")
	assert.Contains(t, out, "**Fish** & Chips")
	assert.Contains(t, out, "Café serves **fish**.")
	assert.NotContains(t, out, "chips.html")
}

func TestSearchCmd_RanksByScore(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	out, err := execute(t, "search", "chips")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] chips (3)")
	assert.Contains(t, out, "[2] Fish & Chips (1)")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	out, err := execute(t, "search", "salmon")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_LimitAndOffset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	out, err := execute(t, "search", "chips", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] chips")
	assert.NotContains(t, out, "[2]")

	out, err = execute(t, "search", "chips", "--offset", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Fish & Chips")
	assert.NotContains(t, out, "[2]")
}

func TestSearchCmd_ConfiguredLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	require.NoError(t, settingsService.SetSearchLimit(1))

	out, err := execute(t, "search", "chips")
	require.NoError(t, err)
	assert.NotContains(t, out, "[2]")
}

func TestSearchCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexFixture(t)

	out, err := execute(t, "search", "cafe", "--json")
	require.NoError(t, err)

	var results []resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Fish & Chips", results[0].Title)
	require.Len(t, results[0].Matches, 1)
	assert.Equal(t, "cafe", results[0].Matches[0].Term)
	assert.Equal(t, "Caf&eacute;", results[0].Matches[0].Original)
	assert.NotEmpty(t, results[0].ID)
}

func TestSearchCmd_JSONEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "anything", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}
