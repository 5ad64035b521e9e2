package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitClearsStaleArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))

	require.NoError(t, Init(dir))

	_, err := os.Stat(filepath.Join(dir, "old.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err, "non-JSON files survive")
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	payload := map[string]any{"text": "おはよう", "tokens": 1}
	require.NoError(t, WriteJSON(dir, "abc_tokens", payload))

	b, err := os.ReadFile(filepath.Join(dir, "abc_tokens.json"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "おはよう", got["text"])

	// no temp file left behind
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteJSONStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON(dir, "../escape", map[string]int{"n": 1}))
	_, err := os.Stat(filepath.Join(dir, "escape.json"))
	assert.NoError(t, err)
}
