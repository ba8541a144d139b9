package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("search.limit", 25))
	val, ok := store.Get("search.limit")
	assert.True(t, ok)
	assert.Equal(t, 25, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", 7))
	require.NoError(t, store.Set("i64", int64(8)))
	require.NoError(t, store.Set("f", 9.0))
	require.NoError(t, store.Set("b", true))
	require.NoError(t, store.Set("ss", []string{"html", "unicode61"}))
	require.NoError(t, store.Set("as", []any{"ascii", 1, "x"}))

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"), "wrong type")
	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 8, store.GetInt("i64"))
	assert.Equal(t, 9, store.GetInt("f"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
	assert.Equal(t, []string{"html", "unicode61"}, store.GetStringSlice("ss"))
	assert.Equal(t, []string{"ascii", "x"}, store.GetStringSlice("as"))
	assert.Nil(t, store.GetStringSlice("s"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_GetStringSliceReturnsCopy(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("tokenizer", []string{"html", "unicode61"}))

	args := store.GetStringSlice("tokenizer")
	args[0] = "changed"

	assert.Equal(t, []string{"html", "unicode61"}, store.GetStringSlice("tokenizer"))
}

func TestNewConfigStoreFromTOML(t *testing.T) {
	store, err := NewConfigStoreFromTOML([]byte(`
tokenizer = ["html", "ascii"]
data_dir = "/tmp/index"

[search]
limit = 5
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"html", "ascii"}, store.GetStringSlice("tokenizer"))
	assert.Equal(t, "/tmp/index", store.GetString("data_dir"))
	assert.Equal(t, 5, store.GetInt("search.limit"))
}

func TestNewConfigStoreFromTOML_Invalid(t *testing.T) {
	_, err := NewConfigStoreFromTOML([]byte("tokenizer = ["))
	assert.Error(t, err)
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "v"))

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", i)
			_ = store.Set(key, i)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore()
}
