// ABOUTME: Tests for the SQLite key-value backend
// ABOUTME: Exercises store.KV semantics against a temp database file
package db

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/store"
)

func setupKV(t *testing.T) *KVStore {
	t.Helper()
	kv, err := OpenKVStore(filepath.Join(t.TempDir(), "touchbase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVStoreGetMissing(t *testing.T) {
	kv := setupKV(t)

	_, err := kv.Get([]byte("companies"))
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestKVStoreUpsert(t *testing.T) {
	kv := setupKV(t)

	require.NoError(t, kv.Set([]byte("companies"), []byte(`[1]`)))
	require.NoError(t, kv.Set([]byte("companies"), []byte(`[1,2]`)))

	v, err := kv.Get([]byte("companies"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), v)

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("companies")}, keys)
}

func TestKVStoreDelete(t *testing.T) {
	kv := setupKV(t)

	require.NoError(t, kv.Set([]byte("a"), []byte(`1`)))
	require.NoError(t, kv.Delete([]byte("a")))
	require.NoError(t, kv.Delete([]byte("never-set")))

	_, err := kv.Get([]byte("a"))
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestKVStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchbase.db")

	kv, err := OpenKVStore(path)
	require.NoError(t, err)
	s := store.New(kv, log.New(io.Discard))
	require.NoError(t, s.Save(store.KeyVersion, "2"))
	require.NoError(t, kv.Close())

	kv, err = OpenKVStore(path)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	s = store.New(kv, log.New(io.Discard))
	assert.Equal(t, "2", store.Load(s, store.KeyVersion, ""))
}
