// ABOUTME: Communication CLI commands
// ABOUTME: Log, update, delete, and inspect communications per company
package cli

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

// LogCommand logs a communication with a company
func LogCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	company := fs.String("company", "", "Company ID (required)")
	method := fs.String("type", "", "Communication method ID")
	date := fs.String("date", "", "Date (RFC 3339, YYYY-MM-DDTHH:MM, or YYYY-MM-DD; default now)")
	notes := fs.String("notes", "", "Notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	companyID, err := parseCompanyID(*company)
	if err != nil {
		return err
	}
	methodID, err := parseMethodID(*method)
	if err != nil {
		return err
	}
	if methodID == uuid.Nil {
		if methods := e.Methods(); len(methods) > 0 {
			methodID = methods[0].ID
		}
	}
	if *date == "" {
		*date = e.Now().Format(time.RFC3339)
	}

	comm, err := e.LogCommunication(companyID, models.CommunicationInput{
		CommunicationType: methodID,
		Date:              *date,
		Notes:             *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to log communication: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Logged %s with %s (ID: %s)\n",
		e.MethodName(comm.CommunicationType), e.CompanyName(comm.CompanyID), comm.ID)

	if c, err := e.Company(companyID); err == nil {
		_, _ = fmt.Fprintf(out, "  Next: %s\n", formatDate(c.NextCommunication, e.Location()))
	}
	return nil
}

// UpdateCommand changes a logged communication
func UpdateCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	method := fs.String("type", "", "Communication method ID (default: unchanged)")
	date := fs.String("date", "", "Date (required)")
	notes := fs.String("notes", "", "Notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseCommunicationID(fs.Arg(0))
	if err != nil {
		return err
	}
	methodID, err := parseMethodID(*method)
	if err != nil {
		return err
	}
	if methodID == uuid.Nil {
		// Keep the logged method when --type is omitted
		existing, err := e.Communication(id)
		if err != nil {
			return fmt.Errorf("failed to update communication: %w", err)
		}
		methodID = existing.CommunicationType
	}

	comm, err := e.UpdateCommunication(id, models.CommunicationInput{
		CommunicationType: methodID,
		Date:              *date,
		Notes:             *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to update communication: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Updated %s (%s)\n", comm.ID, formatDate(&comm.Date, e.Location()))
	return nil
}

// DeleteCommand removes a logged communication
func DeleteCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseCommunicationID(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := e.DeleteCommunication(id); err != nil {
		return fmt.Errorf("failed to delete communication: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Deleted %s\n", id)
	return nil
}

// HistoryCommand lists a company's communications, newest first
func HistoryCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	companyID, err := parseCompanyID(fs.Arg(0))
	if err != nil {
		return err
	}
	company, err := e.Company(companyID)
	if err != nil {
		return err
	}

	history := e.CompanyCommunications(companyID)
	if len(history) == 0 {
		_, _ = fmt.Fprintf(out, "No communications logged for %s\n", company.Name)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tMETHOD\tNOTES\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-----\t--")
	for _, c := range history {
		notes := c.Notes
		if notes == "" {
			notes = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatDate(&c.Date, e.Location()), e.MethodName(c.CommunicationType), notes, c.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\nTotal: %d communication(s) with %s\n", len(history), company.Name)
	return nil
}

// NextCommand shows a company's upcoming touchpoints
func NextCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("next", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	companyID, err := parseCompanyID(fs.Arg(0))
	if err != nil {
		return err
	}
	company, err := e.Company(companyID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s %s (every %d days)\n", statusIcon(e.Status(company)), company.Name, company.CommunicationPeriodicity)
	_, _ = fmt.Fprintf(out, "  Last: %s\n", formatDate(company.LastCommunication, e.Location()))
	if company.NextCommunicationType != nil {
		_, _ = fmt.Fprintf(out, "  Next type: %s\n", e.MethodName(*company.NextCommunicationType))
	}
	_, _ = fmt.Fprintln(out, "  Upcoming:")
	for _, t := range e.NextCommunications(company) {
		_, _ = fmt.Fprintf(out, "    %s\n", formatDate(&t, e.Location()))
	}
	return nil
}
