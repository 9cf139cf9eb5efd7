package docstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_WriteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules", "core", "a.mdc")

	require.NoError(t, FS{}.Write(path, []byte("---\nid: a\n---\n")))

	got, err := FS{}.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nid: a\n---\n", string(got))
}

func TestFS_WriteReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mdc")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o600))

	require.NoError(t, FS{}.Write(path, []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFS_WritePreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "a.mdc")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chmod(path, 0o640))

	require.NoError(t, FS{}.Write(path, []byte("y")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestFS_WriteNewFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mdc")

	require.NoError(t, FS{}.Write(path, []byte("x")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.mdc", entries[0].Name())
}

func TestFS_WriteRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	err := FS{}.Write(dir, []byte("x"))
	assert.ErrorContains(t, err, "not a regular file")
}

func TestFS_ReadMissing(t *testing.T) {
	_, err := FS{}.Read(filepath.Join(t.TempDir(), "missing.mdc"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
