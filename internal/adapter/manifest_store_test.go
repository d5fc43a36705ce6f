package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/packwright/packwright/internal/model"
)

func TestManifestStore_RoundTripKeepsKeyOrder(t *testing.T) {
	root := t.TempDir()

	original := `{
  "name": "demo",
  "version": "0.3.1",
  "description": "a demo package",
  "type": "module",
  "scripts": {
    "build": "packwright build"
  }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(original), 0o644))

	store := NewManifestStore()

	manifest, err := store.Load(m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "version", "description", "type", "scripts"}, manifest.Keys())

	require.NoError(t, store.Save(m.Path(root), manifest))

	written, err := os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, original, string(written))
}

func TestManifestStore_LoadMissingFile(t *testing.T) {
	_, err := NewManifestStore().Load(m.Path(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package.json")
}

func TestManifestStore_LoadMalformedJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{oops"), 0o644))

	_, err := NewManifestStore().Load(m.Path(root))
	require.Error(t, err)
}

func TestManifestStore_SaveEndsWithNewline(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"demo"}`), 0o644))

	store := NewManifestStore()

	manifest, err := store.Load(m.Path(root))
	require.NoError(t, err)

	manifest.Set("main", "./dist/index.cjs")
	require.NoError(t, store.Save(m.Path(root), manifest))

	written, err := os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)

	expected := `{
  "name": "demo",
  "main": "./dist/index.cjs"
}
`
	assert.Equal(t, expected, string(written))
}
