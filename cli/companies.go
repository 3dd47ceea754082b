// ABOUTME: Company CLI commands
// ABOUTME: Add, list, update, and delete companies and their cadence
package cli

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

// CompanyCommand dispatches company subcommands
func CompanyCommand(e *schedule.Engine, out io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: company add|list|update|delete")
	}

	switch args[0] {
	case "add":
		return addCompany(e, out, args[1:])
	case "list":
		return listCompanies(e, out, args[1:])
	case "update":
		return updateCompany(e, out, args[1:])
	case "delete":
		return deleteCompany(e, out, args[1:])
	default:
		return fmt.Errorf("unknown company command: %s", args[0])
	}
}

func companyFlags(name string, c *models.Company) (*flag.FlagSet, *stringList, *stringList) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&c.Name, "name", c.Name, "Company name")
	fs.IntVar(&c.CommunicationPeriodicity, "periodicity", c.CommunicationPeriodicity, "Days between contacts")
	fs.StringVar(&c.Location, "location", c.Location, "Location")
	fs.StringVar(&c.LinkedInProfile, "linkedin", c.LinkedInProfile, "LinkedIn profile URL")
	fs.StringVar(&c.Comments, "comments", c.Comments, "Comments")

	emails := &stringList{}
	phones := &stringList{}
	fs.Var(emails, "email", "Email address (repeatable, max 5)")
	fs.Var(phones, "phone", "Phone number (repeatable, max 5)")
	return fs, emails, phones
}

func addCompany(e *schedule.Engine, out io.Writer, args []string) error {
	var c models.Company
	fs, emails, phones := companyFlags("company add", &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.Emails = *emails
	c.PhoneNumbers = *phones

	company, err := e.AddCompany(c)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Company created: %s (ID: %s)\n", company.Name, company.ID)
	_, _ = fmt.Fprintf(out, "  Every %d days\n", company.CommunicationPeriodicity)
	if company.Location != "" {
		_, _ = fmt.Fprintf(out, "  Location: %s\n", company.Location)
	}
	return nil
}

func listCompanies(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("company list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	companies := e.Companies()
	if len(companies) == 0 {
		_, _ = fmt.Fprintln(out, "No companies found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tLOCATION\tEVERY\tEMAILS\tID")
	_, _ = fmt.Fprintln(w, "----\t--------\t-----\t------\t--")
	for _, c := range companies {
		location := c.Location
		if location == "" {
			location = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%dd\t%d\t%s\n",
			c.Name, location, c.CommunicationPeriodicity, len(c.Emails), c.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\nTotal: %d company(ies)\n", len(companies))
	return nil
}

func updateCompany(e *schedule.Engine, out io.Writer, args []string) error {
	// Parse once to find the ID, then again over the existing values.
	var scratch models.Company
	idFlags, _, _ := companyFlags("company update", &scratch)
	idFlags.SetOutput(io.Discard)
	if err := idFlags.Parse(args); err != nil {
		return err
	}

	id, err := parseCompanyID(idFlags.Arg(0))
	if err != nil {
		return err
	}
	c, err := e.Company(id)
	if err != nil {
		return err
	}

	fs, emails, phones := companyFlags("company update", &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(*emails) > 0 {
		c.Emails = *emails
	}
	if len(*phones) > 0 {
		c.PhoneNumbers = *phones
	}

	updated, err := e.UpdateCompany(c)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Company updated: %s\n", updated.Name)
	if updated.NextCommunication != nil {
		_, _ = fmt.Fprintf(out, "  Next: %s\n", formatDate(updated.NextCommunication, e.Location()))
	}
	return nil
}

func deleteCompany(e *schedule.Engine, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("company delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseCompanyID(fs.Arg(0))
	if err != nil {
		return err
	}
	name := e.CompanyName(id)
	if err := e.DeleteCompany(id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Company deleted: %s\n", name)
	return nil
}
