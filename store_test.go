package webostv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := &MemoryStore{}

	key, err := store.ClientKey()
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, store.SetClientKey("key-1"))

	key, err = store.ClientKey()
	require.NoError(t, err)
	assert.Equal(t, "key-1", key)
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webostv.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	key, err := store.ClientKey()
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webostv.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetClientKey("key-persisted"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	key, err := reopened.ClientKey()
	require.NoError(t, err)
	assert.Equal(t, "key-persisted", key)
}

func TestFileStore_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webostv.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetClientKey("first"))
	require.NoError(t, store.SetClientKey("second"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	key, err := reopened.ClientKey()
	require.NoError(t, err)
	assert.Equal(t, "second", key)
}
