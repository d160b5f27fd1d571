package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".captionsearch"), dir)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("links.template", "https://example.com/{id}?t={t}"))
	require.NoError(t, store.Set("search.max_results", 50))
	require.NoError(t, store.Set("youtube.requests_per_second", 1.5))
	require.NoError(t, store.Set("ingest.processors", []string{"dedup"}))

	assert.Equal(t, "https://example.com/{id}?t={t}", store.GetString("links.template"))
	assert.Equal(t, 50, store.GetInt("search.max_results"))
	assert.InDelta(t, 1.5, store.GetFloat("youtube.requests_per_second"), 0.0001)
	assert.InDelta(t, 50.0, store.GetFloat("search.max_results"), 0.0001)
	assert.Equal(t, []string{"dedup"}, store.GetStringSlice("ingest.processors"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("fetch.language", "ja"))

	assert.Equal(t, 0, store.GetInt("fetch.language"))
	assert.Zero(t, store.GetFloat("fetch.language"))
	assert.Nil(t, store.GetStringSlice("fetch.language"))
	assert.Equal(t, "", store.GetString("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

// TestConfigStore_PersistsNestedTables tests that dotted keys are written as TOML tables
func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("paths.index_file", "/data/captions.db"))
	require.NoError(t, store.Set("ingest.batch_size", 500))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[paths]")
	assert.Contains(t, string(raw), "[ingest]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/data/captions.db", reloaded.GetString("paths.index_file"))
	assert.Equal(t, 500, reloaded.GetInt("ingest.batch_size"))
	assert.Equal(t, []string{"ingest.batch_size", "paths.index_file"}, reloaded.Keys())
}

// TestConfigStore_LoadsHandWrittenFile tests reading a user-edited configuration
func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[search]
max_results = 25

[youtube]
api_key = "secret"
requests_per_second = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 25, store.GetInt("search.max_results"))
	assert.Equal(t, "secret", store.GetString("youtube.api_key"))
	assert.InDelta(t, 3.0, store.GetFloat("youtube.requests_per_second"), 0.0001)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("fetch.language", "en"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyOrCommentOnlyFile(t *testing.T) {
	for _, content := range []string{"", "# Just a comment\n\n"} {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

		store, err := NewConfigStore(tmpDir)
		require.NoError(t, err)
		assert.Empty(t, store.Keys())
	}
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.max_results", n)
			_ = store.GetInt("search.max_results")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("search.max_results")
	assert.True(t, ok)
}

// TestNewConfigStore_MkdirAllError tests error handling when directory creation fails
func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Set_WriteError tests that a failed write leaves the store unchanged
func TestConfigStore_Set_WriteError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("fetch.language", "en"))
	_, ok := store.Get("fetch.language")
	assert.False(t, ok)
}

func TestConfigStore_WritesHeader(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("fetch.language", "en"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# captionsearch settings."))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(store.Path()), "config.toml.*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestConfigStore_GetIntFromFloat(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("watch.debounce_ms", 1500.0))
	require.NoError(t, store.Set("youtube.requests_per_second", 1.5))

	assert.Equal(t, 1500, store.GetInt("watch.debounce_ms"))
	assert.Equal(t, 0, store.GetInt("youtube.requests_per_second"))
}

// TestConfigStore_SetWithUnmarshallableValue tests error handling with values that can't be marshalled
func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
	assert.Empty(t, store.Keys())
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": "x",
		"c.f":   true,
	})

	assert.Equal(t, 1, nested["a"])
	assert.Equal(t, map[string]any{
		"d": map[string]any{"e": "x"},
		"f": true,
	}, nested["c"])
	assert.Equal(t, flattenMap(nested, ""), map[string]any{"a": 1, "c.d.e": "x", "c.f": true})
}
