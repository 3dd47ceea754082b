// ABOUTME: Entry point for the touchbase CLI, TUI, web UI, and MCP server
// ABOUTME: Loads config, opens the storage backend, and routes to commands
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"github.com/harperreed/touchbase/charm"
	"github.com/harperreed/touchbase/cli"
	"github.com/harperreed/touchbase/config"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/schedule"
	"github.com/harperreed/touchbase/store"
	"github.com/harperreed/touchbase/tui"
	"github.com/harperreed/touchbase/web"
)

const version = "0.2.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	configPath := flag.String("config", "", "Config file (default: ~/.config/touchbase/config.json)")
	backend := flag.String("backend", "", "Storage backend: charm, local, or sqlite")
	dataDir := flag.String("data-dir", "", "Data directory for local and sqlite backends")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("touchbase version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 || args[0] == "help" {
		printUsage()
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "touchbase"})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", "err", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", "err", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, args); err != nil {
		stop()
		logger.Fatal("Error", "err", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	kv, client, closer, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}
	defer closer()
	logger.Debug("Opened storage", "backend", cfg.Backend)

	command := args[0]
	commandArgs := args[1:]

	// Sync commands operate on the raw KV, before any engine load
	if command == "sync" {
		return syncCommand(client, os.Stdout, commandArgs)
	}

	loc, err := cfg.TimeLocation()
	if err != nil {
		return err
	}

	st := store.New(kv, logger)
	engine, err := schedule.Open(st,
		schedule.WithLogger(logger),
		schedule.WithLocation(loc),
		schedule.WithPolicy(schedule.Policy(cfg.RecomputePolicy)),
		schedule.WithSeed(cfg.Seed),
	)
	if err != nil {
		return fmt.Errorf("failed to open schedule: %w", err)
	}

	out := os.Stdout

	switch command {
	case "log":
		return cli.LogCommand(engine, out, commandArgs)
	case "update":
		return cli.UpdateCommand(engine, out, commandArgs)
	case "delete":
		return cli.DeleteCommand(engine, out, commandArgs)
	case "history":
		return cli.HistoryCommand(engine, out, commandArgs)
	case "next":
		return cli.NextCommand(engine, out, commandArgs)
	case "status":
		return cli.StatusCommand(engine, out, commandArgs)
	case "notifications":
		return cli.NotificationsCommand(engine, out, commandArgs)
	case "calendar":
		return cli.CalendarCommand(engine, out, commandArgs)
	case "company":
		return cli.CompanyCommand(engine, out, commandArgs)
	case "method":
		return cli.MethodCommand(engine, out, commandArgs)
	case "report":
		return cli.ReportCommand(engine, out, commandArgs)
	case "dashboard":
		return cli.DashboardCommand(engine, out, commandArgs)
	case "viz":
		return cli.VizCommand(ctx, engine, out, commandArgs)
	case "seed":
		return cli.SeedCommand(engine, out, commandArgs)
	case "import":
		return cli.ImportCommand(ctx, engine, st, logger, out, commandArgs)
	case "mcp":
		return cli.MCPCommand(ctx, engine, logger, version)
	case "tui":
		return tui.Run(engine)
	case "web":
		fs := flag.NewFlagSet("web", flag.ContinueOnError)
		port := fs.Int("port", cfg.WebPort, "Port to listen on")
		if err := fs.Parse(commandArgs); err != nil {
			return err
		}
		server, err := web.NewServer(engine, logger)
		if err != nil {
			return err
		}
		return server.Start(*port)
	}

	printUsage()
	return fmt.Errorf("unknown command: %s", command)
}

// openBackend returns the KV for cfg.Backend. client is nil for sqlite.
func openBackend(cfg *config.Config) (store.KV, *charm.Client, func(), error) {
	switch cfg.Backend {
	case config.BackendCharm:
		c, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, AutoSync: cfg.AutoSync})
		if err != nil {
			return nil, nil, nil, err
		}
		return c, c, func() { _ = c.Close() }, nil
	case config.BackendLocal:
		c, err := charm.OpenLocal(cfg.BadgerDir())
		if err != nil {
			return nil, nil, nil, err
		}
		return c, c, func() { _ = c.Close() }, nil
	case config.BackendSQLite:
		kv, err := db.OpenKVStore(cfg.SQLitePath())
		if err != nil {
			return nil, nil, nil, err
		}
		return kv, nil, func() { _ = kv.Close() }, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func syncCommand(client *charm.Client, out io.Writer, args []string) error {
	if client == nil {
		return fmt.Errorf("sync is not available for the sqlite backend")
	}
	if len(args) == 0 {
		return fmt.Errorf("sync requires a subcommand: status, now, or wipe")
	}

	switch args[0] {
	case "status":
		return charm.SyncStatusCommand(client, out, args[1:])
	case "now":
		return charm.SyncNowCommand(client, out, args[1:])
	case "wipe":
		return charm.SyncWipeCommand(client, out, args[1:])
	}
	return fmt.Errorf("unknown sync command: %s", args[0])
}

func printUsage() {
	fmt.Printf(`touchbase v%s - keep in touch on a schedule

USAGE:
  touchbase [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --config <path>        Config file (default: ~/.config/touchbase/config.json)
  --backend <name>       Storage backend: charm, local, or sqlite
  --data-dir <path>      Data directory for local and sqlite backends

COMMUNICATIONS:
  touchbase log             Log a communication
    --company <id>            Company ID (required)
    --type <id>               Communication method ID
    --date <date>             RFC 3339, YYYY-MM-DDTHH:MM, or YYYY-MM-DD (default: now)
    --notes <text>            Notes

  touchbase update [flags] <id>  Edit a logged communication
    --type <id>               Communication method ID
    --date <date>             Date (required)
    --notes <text>            Notes
    Note: flags must come before the communication ID

  touchbase delete <id>     Delete a logged communication
  touchbase history <company-id>  Show a company's communications, newest first
  touchbase next <company-id>     Show the next scheduled dates

SCHEDULE:
  touchbase status          Show every company's schedule status
    --overdue-only            Only overdue companies
    --due-today               Only companies due today
  touchbase notifications   Show overdue and due-today companies
  touchbase calendar        Show past and scheduled communications
    --upcoming                Hide past communications

COMPANIES AND METHODS:
  touchbase company add|list|update|delete
    --name, --periodicity, --location, --linkedin, --comments
    --email, --phone          Repeatable, up to 5 each
  touchbase method add|list|delete
    --name, --description, --sequence (1-5), --mandatory

REPORTS:
  touchbase report frequency        Communications per method
  touchbase report trend --days N   Overdue companies per day
  touchbase report activity         Activity log (--sort date|company|type, --asc)
  touchbase dashboard               Summary dashboard
  touchbase viz --output <file>     Communication graph in DOT format
  touchbase seed                    Load demo data into an empty store

INTERFACES:
  touchbase tui             Interactive terminal UI
  touchbase web --port N    Web UI (default port from config)
  touchbase mcp             MCP server on stdio

GOOGLE IMPORT:
  touchbase import auth     Authorize Google access (needs GOOGLE_CLIENT_ID/SECRET)
  touchbase import calendar [--initial] [--method name]  Log past meetings (default: Phone Call)
  touchbase import gmail [--days N] [--method name]      Log sent mail (default: Email)
  touchbase import contacts [--periodicity N]            Create companies from contacts
  touchbase import status   Show import state

SYNC:
  touchbase sync status     Show sync status
  touchbase sync now        Sync with the charm server
  touchbase sync wipe --confirm  Delete all local data

`, version)
}
