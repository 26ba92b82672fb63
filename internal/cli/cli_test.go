package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dom-compiler/internal/parser"
	"dom-compiler/internal/report"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newWorkDir(t *testing.T) string {
	t.Helper()
	work := t.TempDir()
	writeFile(t, filepath.Join(work, "units", "knight.dme"), `#modname "Test Mod"
#icon "art/banner.tga"
#newmonster $1
#name "Knight"
#spr1 "art/knight.tga"
#weapon $0
#end
`)
	writeFile(t, filepath.Join(work, "weapons.dme"), `#newweapon $0
#name "Lance"
#end
`)
	writeFile(t, filepath.Join(work, "art", "banner.tga"), "banner")
	writeFile(t, filepath.Join(work, "art", "knight.tga"), "knight")
	return work
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestCompile(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)
	out := filepath.Join(t.TempDir(), "mod")
	output := filepath.Join(out, "test.dm")
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, run(t, "compile", output, work, "--mindex=6000", "--report", reportPath))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "#newmonster 6001\n")
	assert.Contains(t, text, "#weapon 1000\n")
	assert.Contains(t, text, "#newweapon 1000\n")
	assert.Contains(t, text, "#icon \"art/banner.tga\"\n")

	banner, err := os.ReadFile(filepath.Join(out, "art", "banner.tga"))
	require.NoError(t, err)
	assert.Equal(t, "banner", string(banner))
	_, err = os.Stat(filepath.Join(out, "art", "knight.tga"))
	assert.NoError(t, err)

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, yaml.Unmarshal(raw, &r))
	assert.Equal(t, 2, r.Files)
	assert.Equal(t, 6000, r.Offsets.Monster)
	assert.Equal(t, map[string]int{"Meta": 2, "Monster": 1, "Weapon": 1}, r.Entries)
	assert.Len(t, r.Digest, 64)
	assert.Empty(t, r.MissingAssets)
}

func TestCompileRelativeOutput(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)

	require.NoError(t, run(t, "compile", filepath.Join("build", "test.dm"), work))
	_, err := os.Stat(filepath.Join(work, "build", "test.dm"))
	assert.NoError(t, err)
}

func TestCompileMalformedWritesNothing(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)
	writeFile(t, filepath.Join(work, "broken.dme"), "#newarmor $0\n#prot 5\n")
	output := filepath.Join(t.TempDir(), "out", "test.dm")

	err := run(t, "compile", output, work)
	assert.ErrorIs(t, err, parser.ErrUnterminatedRecord)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCompileRejectsOutOfRangeOffset(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)
	err := run(t, "compile", filepath.Join(t.TempDir(), "x.dm"), work, "--windex=10")
	assert.Error(t, err)
}

func TestCompileCleanRefusesWorkDir(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)

	err := run(t, "compile", "test.dm", work, "--clean")
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(work, "weapons.dme"))
	assert.NoError(t, statErr)
}

func TestCompileClean(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)
	out := t.TempDir()
	writeFile(t, filepath.Join(out, "stale", "old.tga"), "old")

	require.NoError(t, run(t, "compile", filepath.Join(out, "test.dm"), work, "--clean"))
	_, err := os.Stat(filepath.Join(out, "stale"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "test.dm"))
	assert.NoError(t, err)
}

func TestCompileMissingAssetFailsAfterWriting(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)
	writeFile(t, filepath.Join(work, "extra.dme"), "#newmonster $2\n#spr1 \"art/missing.tga\"\n#end\n")
	output := filepath.Join(t.TempDir(), "test.dm")

	err := run(t, "compile", output, work)
	assert.Error(t, err)
	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestCheck(t *testing.T) {
	chdir(t, t.TempDir())
	work := newWorkDir(t)
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, run(t, "check", work, "--report", reportPath))

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, yaml.Unmarshal(raw, &r))
	assert.Empty(t, r.Digest)
	assert.Equal(t, []string{"art/banner.tga", "art/knight.tga"}, r.Assets)
}

func TestCheckReportsUnresolvable(t *testing.T) {
	chdir(t, t.TempDir())
	work := t.TempDir()
	writeFile(t, filepath.Join(work, "a.dme"), "#newmonster $1\n#hp $2\n#end\n")
	assert.Error(t, run(t, "check", work))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
