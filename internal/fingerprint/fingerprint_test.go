package fingerprint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pySet() map[string]struct{} {
	return map[string]struct{}{".py": {}}
}

func TestCompute_MissingDirYieldsEmpty(t *testing.T) {
	fp, err := Compute(filepath.Join(t.TempDir(), "nope"), pySet())
	require.NoError(t, err)
	assert.Equal(t, "", fp)
}

func TestCompute_DeterministicAndChurn(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1\n"), 0o644))

	fp1, err := Compute(dir, pySet())
	require.NoError(t, err)
	require.NotEmpty(t, fp1)

	fp1b, err := Compute(dir, pySet())
	require.NoError(t, err)
	assert.Equal(t, fp1, fp1b)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(a, []byte("x = 2\n"), 0o644))

	fp2, err := Compute(dir, pySet())
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("hi"), 0o644))
	fp3, err := Compute(dir, pySet())
	require.NoError(t, err)
	assert.Equal(t, fp2, fp3)
}

func TestCompute_ExcludesVendorAndGit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "dep.py"), []byte("ignored"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "hook.py"), []byte("ignored"), 0o644))

	empty, err := Compute(t.TempDir(), pySet())
	require.NoError(t, err)

	fp, err := Compute(dir, pySet())
	require.NoError(t, err)
	assert.Equal(t, empty, fp)
}
