// ABOUTME: Migration utility that copies touchbase data between storage backends
// ABOUTME: Supports charm, local BadgerDB, and SQLite with dry-run and JSON backup

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/harperreed/touchbase/charm"
	"github.com/harperreed/touchbase/config"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/store"
)

type options struct {
	from     string
	fromPath string
	to       string
	toPath   string
	backup   string
	dryRun   bool
	force    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.from, "from", config.BackendCharm, "Source backend (charm, local, sqlite)")
	flag.StringVar(&opts.fromPath, "from-path", "", "Source path (badger dir or sqlite file)")
	flag.StringVar(&opts.to, "to", config.BackendSQLite, "Destination backend (charm, local, sqlite)")
	flag.StringVar(&opts.toPath, "to-path", "", "Destination path (badger dir or sqlite file)")
	flag.StringVar(&opts.backup, "backup", "", "Write a JSON dump of the source to this file first")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Show what would happen without making changes")
	flag.BoolVar(&opts.force, "force", false, "Overwrite a destination that already holds data")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate"})

	n, err := migrate(opts, logger)
	if err != nil {
		logger.Fatal("Migration failed", "err", err)
	}

	if opts.dryRun {
		logger.Info("Dry run complete", "keys", n)
		return
	}
	logger.Info("Migration completed successfully", "keys", n)
}

// migrate copies every key from the source backend to the destination and
// returns how many keys were copied (or would be, on a dry run).
func migrate(opts options, logger *log.Logger) (int, error) {
	if opts.from == opts.to && filepath.Clean(opts.fromPath) == filepath.Clean(opts.toPath) {
		return 0, errors.New("source and destination are the same")
	}

	src, closeSrc, err := openBackend(opts.from, opts.fromPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer closeSrc()

	data, err := store.New(src, logger).Dump()
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}
	logger.Info("Read source", "backend", opts.from, "keys", len(data))

	if opts.backup != "" && !opts.dryRun {
		if err := writeBackup(opts.backup, data); err != nil {
			return 0, err
		}
		logger.Info("Backup created", "path", opts.backup)
	}

	if opts.dryRun {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			logger.Info("[DRY RUN] Would copy", "key", k, "bytes", len(data[k]))
		}
		return len(data), nil
	}

	dst, closeDst, err := openBackend(opts.to, opts.toPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open destination: %w", err)
	}
	defer closeDst()

	existing, err := dst.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to inspect destination: %w", err)
	}
	if len(existing) > 0 && !opts.force {
		logger.Warn("Destination already holds data", "keys", len(existing))
		return 0, errors.New("destination is not empty: use -force to overwrite")
	}

	if err := store.New(dst, logger).Restore(data); err != nil {
		return 0, fmt.Errorf("failed to write destination: %w", err)
	}
	return len(data), nil
}

func openBackend(kind, path string) (store.KV, func(), error) {
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.Default()
	}

	switch kind {
	case config.BackendCharm:
		c, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, AutoSync: cfg.AutoSync})
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case config.BackendLocal:
		if path == "" {
			path = cfg.BadgerDir()
		}
		c, err := charm.OpenLocal(path)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case config.BackendSQLite:
		if path == "" {
			path = cfg.SQLitePath()
		}
		kv, err := db.OpenKVStore(path)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", kind)
}

func writeBackup(path string, data map[string]json.RawMessage) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	return nil
}
