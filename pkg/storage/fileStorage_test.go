package storage

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundtrip(t *testing.T) {
	store := NewFileStorage(t.TempDir())

	require.False(t, store.Exists("a.png"))
	require.NoError(t, store.Save("a.png", []byte("payload")))
	require.True(t, store.Exists("a.png"))

	reader, err := store.Get("a.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestFileStorageList(t *testing.T) {
	store := NewFileStorage(t.TempDir())

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.Save("b.png", []byte("b")))
	require.NoError(t, store.Save("a.png", []byte("a")))

	names, err = store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.png", "b.png"}, names)
}

func TestFileStorageListMissingDir(t *testing.T) {
	store := NewFileStorage(t.TempDir() + "/nope")

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStorageModTime(t *testing.T) {
	store := NewFileStorage(t.TempDir())

	_, err := store.ModTime("a.png")
	require.Error(t, err)

	require.NoError(t, store.Save("a.png", []byte("a")))

	modTime, err := store.ModTime("a.png")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), modTime, time.Minute)
}

func TestFileStorageDelete(t *testing.T) {
	store := NewFileStorage(t.TempDir())

	require.NoError(t, store.Save("a.png", []byte("a")))
	require.NoError(t, store.Delete("a.png"))
	assert.False(t, store.Exists("a.png"))
}
