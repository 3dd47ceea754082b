// ABOUTME: Tests for the charm client over a local BadgerDB
// ABOUTME: Checks store.KV semantics including not-found translation
package charm

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/store"
)

func TestClientSetGetDelete(t *testing.T) {
	c := NewTestClient(t)

	require.NoError(t, c.Set([]byte("companies"), []byte(`[]`)))

	v, err := c.Get([]byte("companies"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	require.NoError(t, c.Delete([]byte("companies")))

	_, err = c.Get([]byte("companies"))
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestClientKeysAndReset(t *testing.T) {
	c := NewTestClient(t)

	require.NoError(t, c.Set([]byte("a"), []byte("1")))
	require.NoError(t, c.Set([]byte("b"), []byte("2")))

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	require.NoError(t, c.Reset())

	keys, err = c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocalClientIsNotRemote(t *testing.T) {
	c := NewTestClient(t)

	assert.False(t, c.IsRemote())
	assert.NoError(t, c.Sync())
	assert.False(t, c.Config().AutoSync)

	_, err := c.ID()
	assert.Error(t, err)
}

func TestClientBacksStore(t *testing.T) {
	c := NewTestClient(t)
	s := store.New(c, log.New(io.Discard))

	require.NoError(t, s.Save(store.KeyVersion, "2"))
	assert.Equal(t, "2", store.Load(s, store.KeyVersion, ""))
	assert.Empty(t, store.Load(s, store.KeyCompanies, []string{}))
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{AutoSync: false}).withDefaults()
	assert.Equal(t, DefaultCharmHost, cfg.Host)
	assert.NotZero(t, cfg.StaleThreshold)
	assert.False(t, cfg.AutoSync)

	assert.Equal(t, DefaultConfig(), (*Config)(nil).withDefaults())
}

func TestSyncWipeCommandRequiresConfirm(t *testing.T) {
	c := NewTestClient(t)
	require.NoError(t, c.Set([]byte("a"), []byte("1")))

	var out bytes.Buffer
	require.NoError(t, SyncWipeCommand(c, &out, nil))
	assert.Contains(t, out.String(), "--confirm")

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	out.Reset()
	require.NoError(t, SyncWipeCommand(c, &out, []string{"--confirm"}))
	assert.Contains(t, out.String(), "All data wiped")

	keys, err = c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSyncStatusCommandLocal(t *testing.T) {
	c := NewTestClient(t)

	var out bytes.Buffer
	require.NoError(t, SyncStatusCommand(c, &out, nil))
	assert.Contains(t, out.String(), "local (no sync)")
	assert.Contains(t, out.String(), "Keys:      0")
}
