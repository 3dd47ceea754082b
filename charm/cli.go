// ABOUTME: CLI commands for Charm KV sync operations
// ABOUTME: Simplified sync with SSH key auth - no login/logout needed

package charm

import (
	"flag"
	"fmt"
	"io"
)

// SyncStatusCommand shows current sync configuration and status.
func SyncStatusCommand(c *Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := c.Config()
	_, _ = fmt.Fprintln(out, "Charm Sync Status")
	_, _ = fmt.Fprintln(out, "─────────────────")

	if !c.IsRemote() {
		_, _ = fmt.Fprintln(out, "Backend:   local (no sync)")
	} else {
		_, _ = fmt.Fprintf(out, "Server:    %s\n", cfg.Host)
		_, _ = fmt.Fprintf(out, "Auto-sync: %v\n", cfg.AutoSync)

		// Try to get user ID to check connection status
		id, err := c.ID()
		if err != nil {
			_, _ = fmt.Fprintln(out, "\nStatus: Not connected")
			_, _ = fmt.Fprintln(out, "Charm uses SSH keys for authentication - no login required!")
		} else {
			_, _ = fmt.Fprintln(out, "\nStatus: Connected to Charm Cloud")
			_, _ = fmt.Fprintf(out, "ID:        %s\n", id)
		}
	}

	keys, err := c.Keys()
	if err == nil {
		_, _ = fmt.Fprintf(out, "Keys:      %d\n", len(keys))
	}

	return nil
}

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(c *Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		_, _ = fmt.Fprintln(out, "Syncing with server...")
	}

	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, "✓ Synced")
	return nil
}

// SyncWipeCommand completely resets the KV store
// WARNING: This deletes all local data!
func SyncWipeCommand(c *Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ContinueOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*confirm {
		_, _ = fmt.Fprintln(out, "WARNING: This will delete ALL local data!")
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, "To confirm, run:")
		_, _ = fmt.Fprintln(out, "  touchbase sync wipe --confirm")
		return nil
	}

	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}

	_, _ = fmt.Fprintln(out, "✓ All data wiped")
	return nil
}
