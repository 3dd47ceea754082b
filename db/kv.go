// ABOUTME: SQLite-backed implementation of store.KV
// ABOUTME: Each storage key is one row; values are opaque JSON blobs
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/touchbase/store"
)

type KVStore struct {
	db *sql.DB
}

var _ store.KV = (*KVStore)(nil)

func NewKVStore(database *sql.DB) *KVStore {
	return &KVStore{db: database}
}

// OpenKVStore opens the database at path and wraps it.
func OpenKVStore(path string) (*KVStore, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewKVStore(database), nil
}

func (s *KVStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	return value, err
}

func (s *KVStore) Set(key, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC())
	return err
}

func (s *KVStore) Delete(key []byte) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, string(key))
	return err
}

func (s *KVStore) Keys() ([][]byte, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys [][]byte
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, []byte(k))
	}
	return keys, rows.Err()
}

func (s *KVStore) Close() error {
	return s.db.Close()
}
