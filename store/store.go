// ABOUTME: JSON persistence adapter over a pluggable key-value backend
// ABOUTME: Best-effort load/save with logging, plus the storage version check

package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
)

// Storage keys.
const (
	KeyCompanies            = "companies"
	KeyCommunicationMethods = "communicationMethods"
	KeyCommunications       = "communications"
	KeyVersion              = "localStorageVersion"
)

// StorageVersion is the expected schema version tag. Override at build time:
//
//	go build -ldflags "-X github.com/harperreed/touchbase/store.StorageVersion=3"
var StorageVersion = "2"

var (
	// ErrKeyNotFound is returned by backends when a key does not exist.
	ErrKeyNotFound = errors.New("key not found")
	// ErrStorageRead wraps corrupt or unreadable stored values.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite wraps failed writes.
	ErrStorageWrite = errors.New("storage write failed")
)

// KV is the durable key-value backend.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
}

// Store encodes values as JSON on top of a KV backend.
type Store struct {
	kv     KV
	logger *log.Logger
}

// New creates a store. A nil logger falls back to the default charm logger.
func New(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{kv: kv, logger: logger.WithPrefix("store")}
}

// Load decodes the value at key into a T. A missing key yields def without
// logging; an unreadable or corrupt value is logged and also yields def.
func Load[T any](s *Store, key string, def T) T {
	data, err := s.kv.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Error("failed to read key", "key", key, "err", fmt.Errorf("%w: %w", ErrStorageRead, err))
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Error("failed to decode key", "key", key, "err", fmt.Errorf("%w: %w", ErrStorageRead, err))
		return def
	}
	return v
}

// Save encodes value and writes it under key. Failures are logged and
// returned; they are not retried.
func (s *Store) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("%w: encode %s: %w", ErrStorageWrite, key, err)
		s.logger.Error("failed to encode key", "key", key, "err", err)
		return err
	}

	if err := s.kv.Set([]byte(key), data); err != nil {
		err = fmt.Errorf("%w: set %s: %w", ErrStorageWrite, key, err)
		s.logger.Error("failed to write key", "key", key, "err", err)
		return err
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if err := s.kv.Delete([]byte(key)); err != nil && !errors.Is(err, ErrKeyNotFound) {
		err = fmt.Errorf("%w: delete %s: %w", ErrStorageWrite, key, err)
		s.logger.Error("failed to delete key", "key", key, "err", err)
		return err
	}
	return nil
}

// CheckVersion compares the stored version tag with expected. On mismatch,
// including a missing tag, it wipes companies and communications and
// writes the expected tag. Communication methods are kept.
func (s *Store) CheckVersion(expected string) (bool, error) {
	stored := Load(s, KeyVersion, "")
	if stored == expected {
		return false, nil
	}

	s.logger.Warn("storage version mismatch, wiping data", "stored", stored, "expected", expected)

	for _, key := range []string{KeyCompanies, KeyCommunications} {
		if err := s.Delete(key); err != nil {
			return true, err
		}
	}

	if err := s.Save(KeyVersion, expected); err != nil {
		return true, err
	}
	return true, nil
}

// Dump returns every stored key with its raw value.
func (s *Store) Dump() (map[string]json.RawMessage, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		v, err := s.kv.Get(k)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", k, err)
		}
		out[string(k)] = json.RawMessage(v)
	}
	return out, nil
}

// Restore writes raw values back, in key order.
func (s *Store) Restore(data map[string]json.RawMessage) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := s.kv.Set([]byte(k), data[k]); err != nil {
			return fmt.Errorf("%w: set %s: %w", ErrStorageWrite, k, err)
		}
	}
	return nil
}
