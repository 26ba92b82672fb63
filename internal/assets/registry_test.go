package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDeduplicates(t *testing.T) {
	checks := 0
	r := NewRegistry(func(string) bool {
		checks++
		return false
	})

	r.Add("missing.tga", `#icon "missing.tga"`)
	r.Add("missing.tga", `#icon "missing.tga"`)

	assert.Equal(t, []string{"missing.tga"}, r.Paths())
	assert.Equal(t, []string{"missing.tga"}, r.Missing())
	assert.Equal(t, 1, checks)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryExisting(t *testing.T) {
	r := NewRegistry(func(p string) bool { return p == "art/a.tga" })
	r.Add("art/a.tga", `#spr1 "art/a.tga"`)
	r.Add("art/b.tga", `#spr2 "art/b.tga"`)

	assert.Equal(t, []string{"art/a.tga", "art/b.tga"}, r.Paths())
	assert.Equal(t, []string{"art/b.tga"}, r.Missing())
}

func TestFileExists(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "art"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "art", "knight.tga"), []byte("tga"), 0644))

	exists := FileExists(root)
	assert.True(t, exists("art/knight.tga"))
	assert.False(t, exists("art/missing.tga"))
}

func TestCopyAll(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "art", "units"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "art", "units", "knight.tga"), []byte("knight"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "banner.tga"), []byte("banner"), 0644))

	err := NewCopier(2).CopyAll(context.Background(), src, dst, []string{"art/units/knight.tga", "banner.tga"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dst, "art", "units", "knight.tga"))
	require.NoError(t, err)
	assert.Equal(t, "knight", string(data))
	data, err = os.ReadFile(filepath.Join(dst, "banner.tga"))
	require.NoError(t, err)
	assert.Equal(t, "banner", string(data))
}

func TestCopyAllReportsMissing(t *testing.T) {
	err := NewCopier(1).CopyAll(context.Background(), t.TempDir(), t.TempDir(), []string{"nope.tga"})
	assert.Error(t, err)
}
