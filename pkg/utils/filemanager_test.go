package utils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicFileCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ate.csv")

	f, err := CreateAtomic(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, path, f.Path())
	assert.Equal(t, dir, filepath.Dir(f.TempPath()))

	_, err = io.WriteString(f, "宛名区分\n")
	require.NoError(t, err)
	assert.NoFileExists(t, path, "nothing at the final path before commit")

	require.NoError(t, f.Commit())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "宛名区分\n", string(data))
	assert.NoFileExists(t, f.TempPath())
	require.Error(t, f.Commit())
}

func TestAtomicFileClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ate.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	f, err := CreateAtomic(path)
	require.NoError(t, err)
	_, err = io.WriteString(f, "partial")
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateAtomicMissingDir(t *testing.T) {
	_, err := CreateAtomic(filepath.Join(t.TempDir(), "missing", "ate.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("氏名\n"), 0644))

	r, err := OpenInput(path)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "氏名\n", string(data))

	stdin, err := OpenInput(StdioName)
	require.NoError(t, err)
	require.NoError(t, stdin.Close())

	_, err = OpenInput(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
