// ABOUTME: Reporting CLI commands
// ABOUTME: Method frequency, overdue trend, activity log, dashboard, graph, and demo seeding
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/touchbase/schedule"
	"github.com/harperreed/touchbase/viz"
)

// ReportCommand dispatches report subcommands
func ReportCommand(e *schedule.Engine, out io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: report frequency|trend|activity")
	}

	switch args[0] {
	case "frequency":
		return frequencyReport(e, out)
	case "trend":
		return trendReport(e, out, args[1:])
	case "activity":
		return activityReport(e, out, args[1:])
	default:
		return fmt.Errorf("unknown report: %s", args[0])
	}
}

func frequencyReport(e *schedule.Engine, out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "METHOD\tCOUNT")
	_, _ = fmt.Fprintln(w, "------\t-----")
	for _, f := range e.FrequencyReport() {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", f.Method.Name, f.Count)
	}
	return w.Flush()
}

func trendReport(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("report trend", flag.ContinueOnError)
	days := fs.Int("days", schedule.DefaultTrendDays, "Number of days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "OVERDUE TREND")
	for _, p := range e.OverdueTrend(*days) {
		_, _ = fmt.Fprintf(out, "  %s  %s %d\n", p.Day.Format("Jan 02"), strings.Repeat("█", p.Count), p.Count)
	}
	return nil
}

func activityReport(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("report activity", flag.ContinueOnError)
	sortBy := fs.String("sort", schedule.SortByDate, "Sort by date, company, or type")
	asc := fs.Bool("asc", false, "Sort ascending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries := e.ActivityLog(*sortBy, !*asc)
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No activity yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tCOMPANY\tMETHOD\tNOTES")
	_, _ = fmt.Fprintln(w, "----\t-------\t------\t-----")
	for _, a := range entries {
		notes := a.Notes
		if notes == "" {
			notes = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatDate(&a.Date, e.Location()), a.CompanyName, a.MethodName, notes)
	}
	return w.Flush()
}

// DashboardCommand renders the terminal dashboard
func DashboardCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, _ = fmt.Fprint(out, viz.RenderDashboard(viz.GenerateDashboardStats(e)))
	return nil
}

// VizCommand writes the communication graph as DOT source
func VizCommand(ctx context.Context, e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("viz", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dot, err := viz.NewGraphGenerator(e).GenerateCommunicationGraph(ctx)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		_, _ = fmt.Fprintf(out, "✓ Graph written to %s\n", *output)
		return nil
	}

	_, _ = fmt.Fprintln(out, dot)
	return nil
}

// SeedCommand fills empty collections with demo data
func SeedCommand(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	companies, methods := e.Seed()
	if companies == 0 && methods == 0 {
		_, _ = fmt.Fprintln(out, "Nothing to seed: companies and methods already exist")
		return nil
	}
	_, _ = fmt.Fprintf(out, "✓ Seeded %d companies and %d methods\n", companies, methods)
	return nil
}
