// ABOUTME: Google Contacts API importer
// ABOUTME: Groups contacts by organization into companies, merging into existing ones
package sync

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/api/people/v1"

	"github.com/harperreed/touchbase/models"
)

// DefaultImportPeriodicity is the cadence given to companies created from
// contacts.
const DefaultImportPeriodicity = 30

// ContactsResult summarises a contacts import.
type ContactsResult struct {
	Fetched int
	Created int
	Updated int
	Skipped int
}

// GoogleContact is the subset of a People API person touchbase uses.
type GoogleContact struct {
	ResourceName string
	Name         string
	Emails       []string
	Phones       []string
	Company      string
}

// convertPerson converts a People API Person to GoogleContact.
func convertPerson(person *people.Person) GoogleContact {
	gc := GoogleContact{ResourceName: person.ResourceName}

	if len(person.Names) > 0 {
		gc.Name = person.Names[0].DisplayName
	}

	// Primary values first, then the rest in API order
	for _, email := range person.EmailAddresses {
		if email.Value == "" {
			continue
		}
		if email.Metadata != nil && email.Metadata.Primary {
			gc.Emails = append([]string{email.Value}, gc.Emails...)
		} else {
			gc.Emails = append(gc.Emails, email.Value)
		}
	}
	for _, phone := range person.PhoneNumbers {
		if phone.Value == "" {
			continue
		}
		if phone.Metadata != nil && phone.Metadata.Primary {
			gc.Phones = append([]string{phone.Value}, gc.Phones...)
		} else {
			gc.Phones = append(gc.Phones, phone.Value)
		}
	}

	if len(person.Organizations) > 0 {
		gc.Company = strings.TrimSpace(person.Organizations[0].Name)
	}

	return gc
}

// appendUnique adds values not already present, case-insensitively, up to
// limit entries. It reports whether anything was added.
func appendUnique(dst []string, values []string, limit int) ([]string, bool) {
	changed := false
	for _, v := range values {
		if len(dst) >= limit {
			break
		}
		dup := false
		for _, existing := range dst {
			if strings.EqualFold(existing, v) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
			changed = true
		}
	}
	return dst, changed
}

// CompaniesFromContacts groups contacts by organization name. Contacts with
// no organization are left out. Results are ordered by name.
func CompaniesFromContacts(contacts []GoogleContact) []models.Company {
	byName := make(map[string]*models.Company)
	var names []string

	for _, gc := range contacts {
		if gc.Company == "" {
			continue
		}
		key := strings.ToLower(gc.Company)
		c, ok := byName[key]
		if !ok {
			c = &models.Company{Name: gc.Company}
			byName[key] = c
			names = append(names, key)
		}
		c.Emails, _ = appendUnique(c.Emails, gc.Emails, models.MaxEmails)
		c.PhoneNumbers, _ = appendUnique(c.PhoneNumbers, gc.Phones, models.MaxPhoneNumbers)
	}

	sort.Strings(names)
	out := make([]models.Company, 0, len(names))
	for _, n := range names {
		out = append(out, *byName[n])
	}
	return out
}

// MergeCompanies creates companies that do not exist yet (matched by name)
// and adds new emails and phone numbers to those that do.
func (im *Importer) MergeCompanies(imported []models.Company, periodicity int, res *ContactsResult) error {
	if periodicity <= 0 {
		periodicity = DefaultImportPeriodicity
	}

	existing := make(map[string]models.Company)
	for _, c := range im.engine.Companies() {
		existing[strings.ToLower(c.Name)] = c
	}

	for _, c := range imported {
		current, ok := existing[strings.ToLower(c.Name)]
		if !ok {
			c.CommunicationPeriodicity = periodicity
			c.Comments = "Imported from Google Contacts"
			if _, err := im.engine.AddCompany(c); err != nil {
				return fmt.Errorf("failed to add %q: %w", c.Name, err)
			}
			res.Created++
			continue
		}

		var addedEmails, addedPhones bool
		current.Emails, addedEmails = appendUnique(current.Emails, c.Emails, models.MaxEmails)
		current.PhoneNumbers, addedPhones = appendUnique(current.PhoneNumbers, c.PhoneNumbers, models.MaxPhoneNumbers)
		if !addedEmails && !addedPhones {
			continue
		}
		if _, err := im.engine.UpdateCompany(current); err != nil {
			return fmt.Errorf("failed to update %q: %w", c.Name, err)
		}
		res.Updated++
	}

	return nil
}

// ImportContacts fetches every Google contact and merges their
// organizations into the company roster.
func (im *Importer) ImportContacts(ctx context.Context, client *people.Service, periodicity int) (ContactsResult, error) {
	var res ContactsResult
	var contacts []GoogleContact
	pageToken := ""

	im.logger.Info("Syncing Google Contacts")
	for {
		call := client.People.Connections.List("people/me").
			Context(ctx).
			PageSize(1000).
			PersonFields("names,emailAddresses,phoneNumbers,organizations")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return res, fmt.Errorf("failed to fetch contacts: %w", err)
		}
		if response == nil {
			break
		}

		for _, person := range response.Connections {
			res.Fetched++
			gc := convertPerson(person)
			if gc.Company == "" {
				res.Skipped++
				continue
			}
			contacts = append(contacts, gc)
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if err := im.MergeCompanies(CompaniesFromContacts(contacts), periodicity, &res); err != nil {
		return res, err
	}

	now := im.engine.Now()
	im.state.LastContactsSync = &now
	return res, SaveState(im.store, im.state)
}

// Summary renders a ContactsResult the way the import commands print it.
func (r ContactsResult) Summary() string {
	return fmt.Sprintf("✓ Fetched %d contacts from Google\n  ✓ Skipped %d without an organization\n✓ Created %d companies\n✓ Updated %d companies\n",
		r.Fetched, r.Skipped, r.Created, r.Updated)
}
