// ABOUTME: Communication method CLI commands
// ABOUTME: Add, list, and delete the methods used to reach companies
package cli

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

// MethodCommand dispatches method subcommands
func MethodCommand(e *schedule.Engine, out io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: method add|list|delete")
	}

	switch args[0] {
	case "add":
		return addMethod(e, out, args[1:])
	case "list":
		return listMethods(e, out, args[1:])
	case "delete":
		return deleteMethod(e, out, args[1:])
	default:
		return fmt.Errorf("unknown method command: %s", args[0])
	}
}

func addMethod(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("method add", flag.ContinueOnError)
	name := fs.String("name", "", "Method name (required)")
	description := fs.String("description", "", "Description")
	sequence := fs.Int("sequence", models.MaxSequence, "Preference order, 1-5")
	mandatory := fs.Bool("mandatory", false, "Mark as mandatory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := e.AddMethod(models.CommunicationMethod{
		Name:        *name,
		Description: *description,
		Sequence:    *sequence,
		Mandatory:   *mandatory,
	})
	if err != nil {
		return fmt.Errorf("failed to create method: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Method created: %s (ID: %s)\n", m.Name, m.ID)
	return nil
}

func listMethods(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("method list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	methods := e.Methods()
	if len(methods) == 0 {
		_, _ = fmt.Fprintln(out, "No methods found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SEQ\tNAME\tMANDATORY\tID")
	_, _ = fmt.Fprintln(w, "---\t----\t---------\t--")
	for _, m := range methods {
		mandatory := "no"
		if m.Mandatory {
			mandatory = "yes"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.Sequence, m.Name, mandatory, m.ID)
	}
	return w.Flush()
}

func deleteMethod(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("method delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.Arg(0) == "" {
		return fmt.Errorf("method ID required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid method ID: %w", err)
	}

	name := e.MethodName(id)
	if err := e.DeleteMethod(id); err != nil {
		return fmt.Errorf("failed to delete method: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Method deleted: %s\n", name)
	return nil
}
