package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "1"))
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("never-set"))
	assert.Equal(t, []string{"b"}, s.Keys())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Keys())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "history.yaml"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.yaml")

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("historyTableSize", "1"))
	require.NoError(t, s.Set("historyTableEntry0", "0 h 0 m 0 s,GMT+0,NULL,NULL,NULL"))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	v, ok := reopened.Get("historyTableEntry0")
	require.True(t, ok)
	assert.Equal(t, "0 h 0 m 0 s,GMT+0,NULL,NULL,NULL", v)
	assert.Equal(t, path, reopened.Path())
}

func TestOpenFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [not, a, map"), 0o644))

	_, err := OpenFile(path)
	assert.Error(t, err)
}

func TestOpenFileUnusableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := OpenFile(filepath.Join(blocker, "history.yaml"))
	assert.Error(t, err)
}
