// ABOUTME: Tests for opening the SQLite file behind the sqlite backend
// ABOUTME: Covers WAL mode, unwritable paths, and reopening an existing store
package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDatabaseCreatesKVTableInWALMode(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "touchbase.db")

	database, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	var table string
	require.NoError(t, database.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&table))
	assert.Equal(t, "kv", table)

	var mode string
	require.NoError(t, database.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenDatabaseUnwritablePath(t *testing.T) {
	// A regular file sits where the parent directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := OpenDatabase(filepath.Join(blocker, "nested", "touchbase.db"))
	assert.Error(t, err)
}

func TestOpenDatabaseTwiceKeepsRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "touchbase.db")

	first, err := OpenKVStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Set([]byte("localStorageVersion"), []byte(`"1"`)))
	require.NoError(t, first.Close())

	database, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count))
	assert.Equal(t, 1, count)
}
