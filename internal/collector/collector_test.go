package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and its parents) under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollect_MatchesPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", "x")
	writeFile(t, root, "src/components/Button.jsx", "x")
	writeFile(t, root, "src/style.css", "x")
	writeFile(t, root, "README.md", "x")

	c := New(root)
	files := c.Collect("**/*.js", "**/*.jsx")

	require.Equal(t, []string{"src/app.js", "src/components/Button.jsx"}, files)
}

func TestCollect_PrunesIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", "x")
	writeFile(t, root, "node_modules/react/index.js", "x")
	writeFile(t, root, "dist/bundle.js", "x")
	writeFile(t, root, "build/main.js", "x")

	c := New(root)
	files := c.Collect("**/*.js")

	require.Equal(t, []string{"src/app.js"}, files)
}

func TestCollect_ExtraIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", "x")
	writeFile(t, root, "src/generated/api.js", "x")
	writeFile(t, root, "legacy/old.js", "x")

	c := New(root, "src/generated", "legacy")
	files := c.Collect("**/*.js")

	require.Equal(t, []string{"src/app.js"}, files)
}

func TestCollect_MissingRoot(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nope"))
	require.Empty(t, c.Collect("**/*.js"))
}

func TestCollect_SortedOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.js", "x")
	writeFile(t, root, "a.js", "x")
	writeFile(t, root, "m/b.js", "x")

	c := New(root)
	files := c.Collect("**/*.js")

	require.Equal(t, []string{"a.js", "m/b.js", "z.js"}, files)
}

func TestRead_BestEffort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "hello")

	c := New(root)
	require.Equal(t, "hello", c.Read("a.txt"))
	require.Equal(t, "", c.Read("missing.txt"))
}

func TestExistsAndDirExists(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.js", "x")

	c := New(root)
	require.True(t, c.Exists("src/index.js"))
	require.False(t, c.Exists("src"))
	require.True(t, c.DirExists("src"))
	require.False(t, c.DirExists("src/index.js"))
	require.False(t, c.DirExists("missing"))
}

func TestListDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/components/Button/index.jsx", "x")
	writeFile(t, root, "src/components/Card/index.jsx", "x")
	writeFile(t, root, "src/components/notes.txt", "x")
	writeFile(t, root, "src/components/node_modules/x/y.js", "x")

	c := New(root)
	require.Equal(t, []string{"Button", "Card"}, c.ListDirs("src/components"))
	require.Nil(t, c.ListDirs("missing"))
}
