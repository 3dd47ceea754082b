// ABOUTME: Tests for the JSON store adapter
// ABOUTME: Covers defaults on missing/corrupt data, write failures, and version wipes
package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// failingKV rejects every write.
type failingKV struct {
	*Memory
}

func (f failingKV) Set(key, value []byte) error {
	return errors.New("quota exceeded")
}

func newTestStore(t *testing.T) (*Store, *Memory, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mem := NewMemory()
	return New(mem, log.New(&buf)), mem, &buf
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	s, _, logs := newTestStore(t)

	got := Load(s, KeyCompanies, []item{})
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Empty(t, logs.String(), "missing key should not log")
}

func TestSaveThenLoad(t *testing.T) {
	s, _, _ := newTestStore(t)

	want := []item{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, s.Save(KeyCommunications, want))

	got := Load(s, KeyCommunications, []item{})
	assert.Equal(t, want, got)
}

func TestLoadCorruptValueLogsAndReturnsDefault(t *testing.T) {
	s, mem, logs := newTestStore(t)
	require.NoError(t, mem.Set([]byte(KeyCompanies), []byte("{not json")))

	got := Load(s, KeyCompanies, []item{})
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "failed to decode key")
	assert.Contains(t, logs.String(), ErrStorageRead.Error())
}

func TestSaveFailureIsLoggedAndReturned(t *testing.T) {
	var buf bytes.Buffer
	s := New(failingKV{NewMemory()}, log.New(&buf))

	err := s.Save(KeyCompanies, []item{{Name: "a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Contains(t, buf.String(), "failed to write key")
}

func TestCheckVersionWipesOnMissingTag(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Save(KeyCompanies, []item{{Name: "c"}}))
	require.NoError(t, s.Save(KeyCommunications, []item{{Name: "e"}}))
	require.NoError(t, s.Save(KeyCommunicationMethods, []item{{Name: "m"}}))

	wiped, err := s.CheckVersion("2")
	require.NoError(t, err)
	assert.True(t, wiped)

	assert.Empty(t, Load(s, KeyCompanies, []item{}))
	assert.Empty(t, Load(s, KeyCommunications, []item{}))
	assert.Len(t, Load(s, KeyCommunicationMethods, []item{}), 1, "methods survive a wipe")
	assert.Equal(t, "2", Load(s, KeyVersion, ""))
}

func TestCheckVersionKeepsMatchingData(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Save(KeyVersion, "2"))
	require.NoError(t, s.Save(KeyCompanies, []item{{Name: "c"}}))

	wiped, err := s.CheckVersion("2")
	require.NoError(t, err)
	assert.False(t, wiped)
	assert.Len(t, Load(s, KeyCompanies, []item{}), 1)
}

func TestCheckVersionWipesOnMismatch(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Save(KeyVersion, "1"))
	require.NoError(t, s.Save(KeyCommunications, []item{{Name: "e"}}))

	wiped, err := s.CheckVersion("2")
	require.NoError(t, err)
	assert.True(t, wiped)
	assert.Empty(t, Load(s, KeyCommunications, []item{}))
}

func TestDumpRestore(t *testing.T) {
	src, _, _ := newTestStore(t)
	require.NoError(t, src.Save(KeyCompanies, []item{{Name: "c", Count: 3}}))
	require.NoError(t, src.Save(KeyVersion, "2"))

	dump, err := src.Dump()
	require.NoError(t, err)
	assert.Len(t, dump, 2)

	dst, _, _ := newTestStore(t)
	require.NoError(t, dst.Restore(dump))

	assert.Equal(t, []item{{Name: "c", Count: 3}}, Load(dst, KeyCompanies, []item{}))
	assert.Equal(t, "2", Load(dst, KeyVersion, ""))
}

func TestMemoryCopiesValues(t *testing.T) {
	mem := NewMemory()
	value := []byte("abc")
	require.NoError(t, mem.Set([]byte("k"), value))
	value[0] = 'z'

	got, err := mem.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = mem.Get([]byte("missing"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
