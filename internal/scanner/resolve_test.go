package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rulesTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, p := range []string{
		"core/b.mdc",
		"core/a.mdc",
		"core/readme.md",
		"core/nested/deep.mdc",
		"languages/go.mdc",
		"stacks/t3.mdc",
		"tools/git.mdc",
		"misc/other.mdc",
	} {
		createFile(t, dir, p, "---\n---\n")
	}
	return dir
}

func TestExpand_Literal(t *testing.T) {
	got, err := Expand("does/not/exist.mdc", ".mdc")
	require.NoError(t, err)
	assert.Equal(t, []string{"does/not/exist.mdc"}, got)
}

func TestExpand_DirectoryGlob(t *testing.T) {
	dir := rulesTree(t)

	got, err := Expand(filepath.Join(dir, "core", "*.mdc"), ".mdc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "core", "a.mdc"),
		filepath.Join(dir, "core", "b.mdc"),
	}, got)
}

func TestExpand_FiltersByExtension(t *testing.T) {
	dir := rulesTree(t)

	got, err := Expand(filepath.Join(dir, "core", "*"), ".mdc")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, ".mdc", filepath.Ext(p))
	}
}

func TestExpand_Doublestar(t *testing.T) {
	dir := rulesTree(t)

	got, err := Expand(filepath.ToSlash(dir)+"/core/**/*.mdc", ".mdc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "core", "a.mdc"),
		filepath.Join(dir, "core", "b.mdc"),
		filepath.Join(dir, "core", "nested", "deep.mdc"),
	}, got)
}

func TestExpand_UnreadableDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	_, err := Expand(filepath.Join(missing, "*.mdc"), ".mdc")
	var unreadable *UnreadableDirectoryError
	require.ErrorAs(t, err, &unreadable)
	assert.Equal(t, missing, unreadable.Dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "cannot read directory")
}

func TestResolve_DeduplicatesInOrder(t *testing.T) {
	dir := rulesTree(t)
	a := filepath.Join(dir, "core", "a.mdc")

	got, err := Resolve([]string{
		filepath.Join(dir, "languages", "go.mdc"),
		filepath.Join(dir, "core", "*.mdc"),
		a,
	}, ".mdc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "languages", "go.mdc"),
		a,
		filepath.Join(dir, "core", "b.mdc"),
	}, got)
}

func TestDiscover(t *testing.T) {
	dir := rulesTree(t)

	got, err := Discover(dir, []string{"core", "languages", "technologies", "stacks", "tools"}, ".mdc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "core", "a.mdc"),
		filepath.Join(dir, "core", "b.mdc"),
		filepath.Join(dir, "languages", "go.mdc"),
		filepath.Join(dir, "stacks", "t3.mdc"),
		filepath.Join(dir, "tools", "git.mdc"),
	}, got)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{"core"}, ".mdc")
	var unreadable *UnreadableDirectoryError
	assert.ErrorAs(t, err, &unreadable)
}
