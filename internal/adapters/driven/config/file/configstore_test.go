package file

import (
	"os"
	"path/filepath"
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

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".docqa", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("test_key", "test_value")
	require.NoError(t, err)

	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("string_key", "hello world")
	require.NoError(t, err)

	val := store.GetString("string_key")
	assert.Equal(t, "hello world", val)

	// Non-existent key
	val = store.GetString("nonexistent")
	assert.Equal(t, "", val)

	// Wrong type
	err = store.Set("int_key", 42)
	require.NoError(t, err)
	val = store.GetString("int_key")
	assert.Equal(t, "", val)
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("int_key", 42)
	require.NoError(t, err)

	val := store.GetInt("int_key")
	assert.Equal(t, 42, val)

	// Non-existent key
	val = store.GetInt("nonexistent")
	assert.Equal(t, 0, val)

	// Wrong type
	err = store.Set("string_key", "not an int")
	require.NoError(t, err)
	val = store.GetInt("string_key")
	assert.Equal(t, 0, val)
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("float_key", 2.5)
	require.NoError(t, err)

	val := store.GetFloat("float_key")
	assert.InDelta(t, 2.5, val, 1e-9)

	// Integers promote to float
	err = store.Set("int_key", 3)
	require.NoError(t, err)
	val = store.GetFloat("int_key")
	assert.InDelta(t, 3.0, val, 1e-9)

	// Non-existent key
	val = store.GetFloat("nonexistent")
	assert.Zero(t, val)
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("bool_key", true)
	require.NoError(t, err)

	val := store.GetBool("bool_key")
	assert.True(t, val)

	// Non-existent key
	val = store.GetBool("nonexistent")
	assert.False(t, val)

	// Wrong type
	err = store.Set("string_key", "true")
	require.NoError(t, err)
	val = store.GetBool("string_key")
	assert.False(t, val)
}

func TestConfigStore_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.provider", "openai"))
	require.NoError(t, store.Set("chunking.size", 300))
	require.NoError(t, store.Set("chunking.normalize", true))
	require.NoError(t, store.Set("embedding.rate_per_second", 4.5))

	// Reopen from disk
	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "openai", reopened.GetString("embedding.provider"))
	assert.Equal(t, 300, reopened.GetInt("chunking.size"))
	assert.True(t, reopened.GetBool("chunking.normalize"))
	assert.InDelta(t, 4.5, reopened.GetFloat("embedding.rate_per_second"), 1e-9)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("llm.model", "llama3.2"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// Dot keys round-trip as TOML tables, not quoted flat keys
	assert.Contains(t, string(data), "[llm]")
	assert.NotContains(t, string(data), `"llm.provider"`)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"top": "value",
		"section": map[string]any{
			"key": int64(1),
			"sub": map[string]any{
				"deep": true,
			},
		},
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, "value", flat["top"])
	assert.Equal(t, int64(1), flat["section.key"])
	assert.Equal(t, true, flat["section.sub.deep"])
}

func TestUnflattenMap(t *testing.T) {
	flat := map[string]any{
		"top":              "value",
		"section.key":      1,
		"section.sub.deep": true,
	}

	nested := unflattenMap(flat)

	assert.Equal(t, "value", nested["top"])
	section, ok := nested["section"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, section["key"])
	sub, ok := section["sub"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, sub["deep"])
}
