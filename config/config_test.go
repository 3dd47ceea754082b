// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, file values, env overrides, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, BackendCharm, cfg.Backend)
	assert.Equal(t, PolicyTouched, cfg.RecomputePolicy)
	assert.True(t, cfg.Seed)
	assert.True(t, cfg.AutoSync)
	assert.Equal(t, 8080, cfg.WebPort)
}

func TestLoadFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"backend": "sqlite",
		"data_dir": "/tmp/tb",
		"recompute_policy": "latest",
		"seed": false,
		"location": "UTC"
	}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/tb", cfg.DataDir)
	assert.Equal(t, PolicyLatest, cfg.RecomputePolicy)
	assert.False(t, cfg.Seed)
	assert.Equal(t, filepath.Join("/tmp/tb", "touchbase.db"), cfg.SQLitePath())

	loc, err := cfg.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadInvalidFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendCharm, cfg.Backend)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOUCHBASE_BACKEND", "local")
	t.Setenv("TOUCHBASE_DATA_DIR", "/data")
	t.Setenv("TOUCHBASE_AUTO_SYNC", "0")
	t.Setenv("TOUCHBASE_RECOMPUTE_POLICY", "latest")
	t.Setenv("TOUCHBASE_WEB_PORT", "9090")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.False(t, cfg.AutoSync)
	assert.Equal(t, PolicyLatest, cfg.RecomputePolicy)
	assert.Equal(t, 9090, cfg.WebPort)
	assert.Equal(t, filepath.Join("/data", "badger"), cfg.BadgerDir())
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cfg := Default()
	cfg.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RecomputePolicy = "sometimes"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Location = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Backend = BackendSQLite
	cfg.Seed = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, loaded.Backend)
	assert.False(t, loaded.Seed)
}
