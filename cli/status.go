// ABOUTME: Schedule status CLI commands
// ABOUTME: Company status table, notification summary, and calendar listing
package cli

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

func statusIcon(s models.ScheduleStatus) string {
	switch s {
	case models.StatusOverdue:
		return "🔴"
	case models.StatusDueToday:
		return "🟡"
	case models.StatusScheduled:
		return "🟢"
	default:
		return "⚪"
	}
}

// StatusCommand lists companies with their schedule status
func StatusCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	overdueOnly := fs.Bool("overdue-only", false, "Show only overdue companies")
	dueToday := fs.Bool("due-today", false, "Show only companies due today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var rows []models.Company
	for _, c := range e.Companies() {
		if *overdueOnly && !(c.HasSchedule() && e.IsOverdue(c)) {
			continue
		}
		if *dueToday && !(c.HasSchedule() && e.IsDueToday(c)) {
			continue
		}
		rows = append(rows, c)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(out, "No companies found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEVERY\tLAST\tNEXT\tNEXT TYPE\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t----\t----\t---------\t--")
	for _, c := range rows {
		nextType := "-"
		if c.NextCommunicationType != nil {
			nextType = e.MethodName(*c.NextCommunicationType)
		}
		_, _ = fmt.Fprintf(w, "%s %s\t%dd\t%s\t%s\t%s\t%s\n",
			statusIcon(e.Status(c)), c.Name, c.CommunicationPeriodicity,
			formatDate(c.LastCommunication, e.Location()),
			formatDate(c.NextCommunication, e.Location()),
			nextType, shortID(c.ID))
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\nTotal: %d company(ies)\n", len(rows))
	return nil
}

// NotificationsCommand summarizes overdue and due-today companies
func NotificationsCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sum := e.Notifications()
	_, _ = fmt.Fprintf(out, "🔔 %d overdue, %d due today\n", len(sum.Overdue), len(sum.DueToday))

	if len(sum.Overdue) > 0 {
		_, _ = fmt.Fprintln(out, "\nOVERDUE")
		for _, c := range sum.Overdue {
			_, _ = fmt.Fprintf(out, "  🔴 %s (due %s)\n", c.Name, formatDate(c.NextCommunication, e.Location()))
		}
	}
	if len(sum.DueToday) > 0 {
		_, _ = fmt.Fprintln(out, "\nDUE TODAY")
		for _, c := range sum.DueToday {
			_, _ = fmt.Fprintf(out, "  🟡 %s\n", c.Name)
		}
	}
	return nil
}

// CalendarCommand lists past and projected touchpoints in time order
func CalendarCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)
	upcoming := fs.Bool("upcoming", false, "Hide past communications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tKIND\tCOMPANY\tMETHOD")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t------")
	for _, entry := range e.Calendar() {
		if *upcoming && entry.Kind == schedule.KindPast {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatDate(&entry.Time, e.Location()), entry.Kind, entry.CompanyName, entry.MethodName)
	}
	return w.Flush()
}
