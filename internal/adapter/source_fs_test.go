package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/packwright/packwright/internal/model"
)

func seedTree(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, file := range files {
		path := filepath.Join(root, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export {};\n"), 0o644))
	}
}

func TestGlob_RecursiveWithExtensionFilter(t *testing.T) {
	root := t.TempDir()
	seedTree(t, root,
		"src/index.ts",
		"src/audio/player.mts",
		"src/audio/README.md",
		"src/styles/app.css",
		"docs/notes.ts",
	)

	fs := NewLocalSourceFS()

	files, err := fs.Glob(m.Path(root), []string{"src/**/*"}, []string{".ts", ".mts"})
	require.NoError(t, err)

	assert.Equal(t, []m.Path{
		m.Path(filepath.Join(root, "src/audio/player.mts")),
		m.Path(filepath.Join(root, "src/index.ts")),
	}, files)
}

func TestGlob_MultiplePatternsDeduplicate(t *testing.T) {
	root := t.TempDir()
	seedTree(t, root, "src/index.ts")

	fs := NewLocalSourceFS()

	files, err := fs.Glob(m.Path(root), []string{"src/**/*", "src/*.ts"}, []string{".ts"})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestGlob_NoMatches(t *testing.T) {
	fs := NewLocalSourceFS()

	files, err := fs.Glob(m.Path(t.TempDir()), []string{"src/**/*"}, []string{".ts"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	root := t.TempDir()
	target := m.Path(filepath.Join(root, "dist", "nested", "conditions.d.ts"))

	fs := NewLocalSourceFS()
	require.NoError(t, fs.WriteFile(target, []byte("export const NODE: boolean;\n"), 0o644))

	content, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "export const NODE: boolean;\n", string(content))
}
