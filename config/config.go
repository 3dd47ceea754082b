// ABOUTME: Application configuration stored at XDG paths
// ABOUTME: JSON file, then .env, then TOUCHBASE_* environment overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG config and data directories.
	AppName = "touchbase"

	// FileName is the config file inside the XDG config directory.
	FileName = "config.json"
)

// Storage backends.
const (
	BackendCharm  = "charm"
	BackendLocal  = "local"
	BackendSQLite = "sqlite"
)

// Recompute policies.
const (
	PolicyTouched = "touched"
	PolicyLatest  = "latest"
)

type Config struct {
	Backend         string `json:"backend"`
	DataDir         string `json:"data_dir,omitempty"`
	CharmHost       string `json:"charm_host,omitempty"`
	AutoSync        bool   `json:"auto_sync"`
	RecomputePolicy string `json:"recompute_policy,omitempty"`
	Seed            bool   `json:"seed"`
	LogLevel        string `json:"log_level,omitempty"`
	WebPort         int    `json:"web_port,omitempty"`
	// Location is an IANA zone name used for "due today" checks. Empty
	// means the system local zone.
	Location string `json:"location,omitempty"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Backend:         BackendCharm,
		DataDir:         filepath.Join(xdg.DataHome, AppName),
		CharmHost:       "charm.2389.dev",
		AutoSync:        true,
		RecomputePolicy: PolicyTouched,
		Seed:            true,
		LogLevel:        "info",
		WebPort:         8080,
	}
}

// Path returns the XDG config file path.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, FileName)
}

// Load reads the config file at path (Path() when empty), applies .env and
// environment overrides, and validates the result. A missing or invalid
// file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			// Invalid config, use defaults
			cfg = Default()
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides:
// - TOUCHBASE_BACKEND
// - TOUCHBASE_DATA_DIR
// - TOUCHBASE_CHARM_HOST
// - TOUCHBASE_AUTO_SYNC
// - TOUCHBASE_RECOMPUTE_POLICY
// - TOUCHBASE_SEED
// - TOUCHBASE_LOG_LEVEL
// - TOUCHBASE_WEB_PORT
// - TOUCHBASE_LOCATION.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOUCHBASE_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TOUCHBASE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TOUCHBASE_CHARM_HOST"); v != "" {
		cfg.CharmHost = v
	}
	if v := os.Getenv("TOUCHBASE_AUTO_SYNC"); v != "" {
		cfg.AutoSync = parseBool(v)
	}
	if v := os.Getenv("TOUCHBASE_RECOMPUTE_POLICY"); v != "" {
		cfg.RecomputePolicy = v
	}
	if v := os.Getenv("TOUCHBASE_SEED"); v != "" {
		cfg.Seed = parseBool(v)
	}
	if v := os.Getenv("TOUCHBASE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TOUCHBASE_WEB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.WebPort = port
		}
	}
	if v := os.Getenv("TOUCHBASE_LOCATION"); v != "" {
		cfg.Location = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes"
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.CharmHost == "" {
		c.CharmHost = def.CharmHost
	}
	if c.RecomputePolicy == "" {
		c.RecomputePolicy = def.RecomputePolicy
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.WebPort == 0 {
		c.WebPort = def.WebPort
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCharm, BackendLocal, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: must be one of charm, local, sqlite", c.Backend)
	}

	switch c.RecomputePolicy {
	case PolicyTouched, PolicyLatest:
	default:
		return fmt.Errorf("invalid recompute_policy %q: must be touched or latest", c.RecomputePolicy)
	}

	if c.WebPort < 0 || c.WebPort > 65535 {
		return fmt.Errorf("invalid web_port %d", c.WebPort)
	}

	if _, err := c.TimeLocation(); err != nil {
		return err
	}
	return nil
}

// TimeLocation resolves Location, defaulting to time.Local.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return loc, nil
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "touchbase.db")
}

// BadgerDir is the directory used by the local backend.
func (c *Config) BadgerDir() string {
	return filepath.Join(c.DataDir, "badger")
}

// Save persists the config to path (Path() when empty).
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
