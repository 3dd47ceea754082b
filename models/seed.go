// ABOUTME: Demo companies and communication methods
// ABOUTME: Used to repopulate storage after a version wipe or on first run
package models

import (
	"github.com/google/uuid"
)

// SeedCompanies returns the demo company roster with fresh IDs.
func SeedCompanies() []Company {
	return []Company{
		{
			ID:                       uuid.New(),
			Name:                     "Tech Solutions Inc.",
			Location:                 "New York",
			LinkedInProfile:          "https://www.linkedin.com/company/techsolutionsinc",
			Emails:                   []string{"info@techsolutions.com"},
			PhoneNumbers:             []string{"+1 212-555-1212"},
			Comments:                 "A leading tech company",
			CommunicationPeriodicity: 14,
		},
		{
			ID:                       uuid.New(),
			Name:                     "Global Marketing Agency",
			Location:                 "London",
			LinkedInProfile:          "https://www.linkedin.com/company/globalmarketing",
			Emails:                   []string{"contact@globalmarketing.com"},
			PhoneNumbers:             []string{"+44 20 7946 0000"},
			Comments:                 "Global marketing agency",
			CommunicationPeriodicity: 7,
		},
		{
			ID:                       uuid.New(),
			Name:                     "Creative Designs Ltd.",
			Location:                 "San Francisco",
			LinkedInProfile:          "https://www.linkedin.com/company/creativedesignsltd",
			Emails:                   []string{"hello@creativedesigns.com"},
			PhoneNumbers:             []string{"+1 415-888-7777"},
			Comments:                 "Creative design agency.",
			CommunicationPeriodicity: 10,
		},
		{
			ID:                       uuid.New(),
			Name:                     "Data Analytics Corp",
			Location:                 "Singapore",
			LinkedInProfile:          "https://www.linkedin.com/company/dataanalytics",
			Emails:                   []string{"info@dataanalytics.sg"},
			PhoneNumbers:             []string{"+65 6222 3333"},
			Comments:                 "Data analysis solutions.",
			CommunicationPeriodicity: 21,
		},
		{
			ID:                       uuid.New(),
			Name:                     "Health Innovators Group",
			Location:                 "Sydney",
			LinkedInProfile:          "https://www.linkedin.com/company/healthinnovators",
			Emails:                   []string{"contact@healthinnovators.au"},
			PhoneNumbers:             []string{"+61 2 9876 5432"},
			Comments:                 "Innovations in health technology.",
			CommunicationPeriodicity: 30,
		},
	}
}

// SeedMethods returns the demo communication method catalog with fresh IDs.
func SeedMethods() []CommunicationMethod {
	return []CommunicationMethod{
		{ID: uuid.New(), Name: "LinkedIn Post", Description: "Post a new update on LinkedIn.", Sequence: 1},
		{ID: uuid.New(), Name: "LinkedIn Message", Description: "Send a private message on LinkedIn.", Sequence: 2},
		{ID: uuid.New(), Name: "Email", Description: "Send an email.", Sequence: 3, Mandatory: true},
		{ID: uuid.New(), Name: "Phone Call", Description: "Call the company", Sequence: 4, Mandatory: true},
		{ID: uuid.New(), Name: "Other", Description: "Other communication method.", Sequence: 5},
	}
}
