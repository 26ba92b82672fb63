package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dom-compiler/internal/config"
	"dom-compiler/internal/entry"
)

type fakeSource struct {
	entries *entry.Collection
}

func (f fakeSource) Entries() *entry.Collection { return f.entries }
func (f fakeSource) Assets() []string           { return []string{"a.tga", "b.tga"} }
func (f fakeSource) MissingAssets() []string    { return []string{"b.tga"} }
func (f fakeSource) Files() int                 { return 2 }

func TestReport(t *testing.T) {
	c := entry.NewCollection()
	c.Add(&entry.Entry{Category: entry.Weapon, Lines: []string{"#newweapon 1000", "#end"}})
	c.Add(&entry.Entry{Category: entry.Weapon, Lines: []string{"#newweapon 1001", "#end"}})
	c.Add(&entry.Entry{Category: entry.Meta, Lines: []string{`#modname "x"`}})

	r := New(fakeSource{entries: c}, config.DefaultOffsets(), "out/mod.dm", []byte("data"))
	assert.Equal(t, map[string]int{"Weapon": 2, "Meta": 1}, r.Entries)
	assert.Len(t, r.Digest, 64)

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, *r, decoded)
}

func TestReportDryRunHasNoDigest(t *testing.T) {
	r := New(fakeSource{entries: entry.NewCollection()}, config.DefaultOffsets(), "", nil)
	assert.Empty(t, r.Digest)
	assert.Empty(t, r.Entries)
}
