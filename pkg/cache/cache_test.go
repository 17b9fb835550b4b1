package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDirCreatesMissing(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "scratch"))

	path, err := d.CleanDir("bank1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(d.Root(), "bank1"), path)
	assert.DirExists(t, path)
}

func TestCleanDirEmptiesExisting(t *testing.T) {
	d := New(t.TempDir())

	path, err := d.CleanDir("bank1")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(path, "stale.wav"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(path, "nested"), 0o755))

	again, err := d.CleanDir("bank1")
	require.NoError(t, err)
	assert.Equal(t, path, again)

	entries, err := os.ReadDir(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanDirLeavesSiblingsAlone(t *testing.T) {
	d := New(t.TempDir())

	other, err := d.CleanDir("other")
	require.NoError(t, err)
	keep := filepath.Join(other, "keep.wav")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	_, err = d.CleanDir("bank1")
	require.NoError(t, err)
	assert.FileExists(t, keep)
}

func TestCleanDirReplacesSquattingFile(t *testing.T) {
	d := New(t.TempDir())
	squatter := filepath.Join(d.Root(), "bank1")
	require.NoError(t, os.WriteFile(squatter, []byte("not a dir"), 0o644))

	path, err := d.CleanDir("bank1")
	require.NoError(t, err)
	assert.Equal(t, squatter, path)
	assert.DirExists(t, path)
}

func TestCleanDirRejectsEscapingNames(t *testing.T) {
	d := New(t.TempDir())

	for _, name := range []string{"", "..", "a/b", "../escape", "/abs"} {
		_, err := d.CleanDir(name)
		assert.ErrorIs(t, err, ErrBadName, "name %q", name)
	}
}

func TestResetClearsRootContentsOnly(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "scratch")
	d := New(root)

	require.NoError(t, d.Reset())
	require.NoError(t, os.WriteFile(filepath.Join(root, "junk"), []byte("x"), 0o644))
	outside := filepath.Join(parent, "outside")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, d.Reset())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, outside)
}

func TestResetReplacesSquattingFile(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "scratch")
	require.NoError(t, os.WriteFile(root, []byte("not a dir"), 0o644))

	d := New(root)
	require.NoError(t, d.Reset())
	assert.DirExists(t, root)
}
