package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#end\n"), 0644))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.dme"))
	writeFile(t, filepath.Join(root, "a.DME"))
	writeFile(t, filepath.Join(root, "units", "knights.dme"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "out", "mod.dm"))

	files, err := NewWalker("").Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.DME"),
		filepath.Join(root, "b.dme"),
		filepath.Join(root, "units", "knights.dme"),
	}, files)
}

func TestWalkSkip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.dme"))
	writeFile(t, filepath.Join(root, "b.dme"))

	files, err := NewWalker("dme").Skip(filepath.Join(root, "a.dme")).Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.dme")}, files)
}

func TestWalkRejectsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.dme")
	writeFile(t, path)

	_, err := NewWalker("").Walk(path)
	assert.Error(t, err)

	_, err = NewWalker("").Walk(filepath.Join(root, "absent"))
	assert.Error(t, err)
}
