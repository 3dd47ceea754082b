// ABOUTME: Google import CLI commands
// ABOUTME: OAuth setup plus calendar, Gmail, and contacts imports into the schedule
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/harperreed/touchbase/schedule"
	"github.com/harperreed/touchbase/store"
	"github.com/harperreed/touchbase/sync"
)

// ImportCommand routes `import auth|calendar|gmail|contacts|status`.
func ImportCommand(ctx context.Context, e *schedule.Engine, st *store.Store, logger *log.Logger, out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires a subcommand: auth, calendar, gmail, contacts, or status")
	}

	importer := sync.NewImporter(e, st, logger)
	rest := args[1:]

	switch args[0] {
	case "auth":
		return importAuth(ctx, out, rest)
	case "calendar":
		return importCalendar(ctx, e, importer, out, rest)
	case "gmail":
		return importGmail(ctx, e, importer, out, rest)
	case "contacts":
		return importContacts(ctx, importer, out, rest)
	case "status":
		_, _ = fmt.Fprintln(out, "Google Import Status")
		_, _ = fmt.Fprintln(out, "────────────────────")
		for _, line := range importer.State().StatusLines() {
			_, _ = fmt.Fprintln(out, line)
		}
		return nil
	}
	return fmt.Errorf("unknown import command: %s", args[0])
}

func importAuth(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("import auth", flag.ContinueOnError)
	tokenPath := fs.String("token", sync.TokenPath(), "Token file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := sync.Authorize(ctx, sync.NewOAuthConfig(), func(url string) error {
		_, _ = fmt.Fprintln(out, "Opening browser for Google OAuth...")
		_, _ = fmt.Fprintf(out, "\nIf browser doesn't open, visit this URL:\n%s\n\n", url)
		_ = sync.OpenBrowser(url)
		return nil
	})
	if err != nil {
		return fmt.Errorf("OAuth flow failed: %w", err)
	}

	if err := sync.SaveToken(*tokenPath, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\n✓ Authenticated successfully\n")
	_, _ = fmt.Fprintf(out, "✓ Tokens saved to %s\n", *tokenPath)
	return nil
}

func importCalendar(ctx context.Context, e *schedule.Engine, importer *sync.Importer, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("import calendar", flag.ContinueOnError)
	initial := fs.Bool("initial", false, "Full import (last 6 months)")
	method := fs.String("method", "Phone Call", "Communication method to log meetings as")
	tokenPath := fs.String("token", sync.TokenPath(), "Token file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	methodID, err := sync.ResolveMethod(e, *method)
	if err != nil {
		return err
	}

	token, err := sync.LoadToken(*tokenPath)
	if err != nil {
		return fmt.Errorf("no authentication token found. Run 'touchbase import auth' first: %w", err)
	}
	client, err := sync.NewCalendarClient(ctx, token)
	if err != nil {
		return err
	}

	res, err := importer.ImportCalendar(ctx, client, methodID, *initial)
	if err != nil {
		return fmt.Errorf("calendar import failed: %w", err)
	}

	_, _ = fmt.Fprint(out, res.Summary("event"))
	return nil
}

func importGmail(ctx context.Context, e *schedule.Engine, importer *sync.Importer, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("import gmail", flag.ContinueOnError)
	initial := fs.Bool("initial", false, "Ignore the last import time")
	days := fs.Int("days", 30, "Days of sent mail to scan")
	method := fs.String("method", "Email", "Communication method to log emails as")
	tokenPath := fs.String("token", sync.TokenPath(), "Token file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	methodID, err := sync.ResolveMethod(e, *method)
	if err != nil {
		return err
	}

	token, err := sync.LoadToken(*tokenPath)
	if err != nil {
		return fmt.Errorf("no authentication token found. Run 'touchbase import auth' first: %w", err)
	}
	client, err := sync.NewGmailClient(ctx, token)
	if err != nil {
		return err
	}

	res, err := importer.ImportGmail(ctx, client, methodID, *days, *initial)
	if err != nil {
		return fmt.Errorf("gmail import failed: %w", err)
	}

	_, _ = fmt.Fprint(out, res.Summary("email"))
	return nil
}

func importContacts(ctx context.Context, importer *sync.Importer, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("import contacts", flag.ContinueOnError)
	periodicity := fs.Int("periodicity", sync.DefaultImportPeriodicity, "Days between contacts for new companies")
	tokenPath := fs.String("token", sync.TokenPath(), "Token file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := sync.LoadToken(*tokenPath)
	if err != nil {
		return fmt.Errorf("no authentication token found. Run 'touchbase import auth' first: %w", err)
	}
	client, err := sync.NewPeopleClient(ctx, token)
	if err != nil {
		return err
	}

	res, err := importer.ImportContacts(ctx, client, *periodicity)
	if err != nil {
		return fmt.Errorf("contacts import failed: %w", err)
	}

	_, _ = fmt.Fprint(out, res.Summary())
	return nil
}
