// ABOUTME: Shared output shapes for MCP tools and resources
// ABOUTME: Converts engine models into flat JSON-friendly structs
package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

type CompanyOutput struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Location                 string   `json:"location,omitempty"`
	LinkedInProfile          string   `json:"linkedin_profile,omitempty"`
	Emails                   []string `json:"emails,omitempty"`
	PhoneNumbers             []string `json:"phone_numbers,omitempty"`
	Comments                 string   `json:"comments,omitempty"`
	CommunicationPeriodicity int      `json:"communication_periodicity"`
	LastCommunication        *string  `json:"last_communication,omitempty"`
	NextCommunication        *string  `json:"next_communication,omitempty"`
	NextCommunicationType    string   `json:"next_communication_type,omitempty"`
	Status                   string   `json:"status"`
}

type CommunicationOutput struct {
	ID                string `json:"id"`
	CompanyID         string `json:"company_id"`
	CompanyName       string `json:"company_name"`
	CommunicationType string `json:"communication_type"`
	MethodName        string `json:"method_name"`
	Date              string `json:"date"`
	Notes             string `json:"notes,omitempty"`
}

type MethodOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Sequence    int    `json:"sequence"`
	Mandatory   bool   `json:"mandatory"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func companyToOutput(e *schedule.Engine, c models.Company) CompanyOutput {
	out := CompanyOutput{
		ID:                       c.ID.String(),
		Name:                     c.Name,
		Location:                 c.Location,
		LinkedInProfile:          c.LinkedInProfile,
		Emails:                   c.Emails,
		PhoneNumbers:             c.PhoneNumbers,
		Comments:                 c.Comments,
		CommunicationPeriodicity: c.CommunicationPeriodicity,
		LastCommunication:        formatTime(c.LastCommunication),
		NextCommunication:        formatTime(c.NextCommunication),
		Status:                   string(e.Status(c)),
	}
	if c.NextCommunicationType != nil {
		out.NextCommunicationType = e.MethodName(*c.NextCommunicationType)
	}
	return out
}

func communicationToOutput(e *schedule.Engine, c models.Communication) CommunicationOutput {
	return CommunicationOutput{
		ID:                c.ID.String(),
		CompanyID:         c.CompanyID.String(),
		CompanyName:       e.CompanyName(c.CompanyID),
		CommunicationType: c.CommunicationType.String(),
		MethodName:        e.MethodName(c.CommunicationType),
		Date:              c.Date.Format(time.RFC3339),
		Notes:             c.Notes,
	}
}

func methodToOutput(m models.CommunicationMethod) MethodOutput {
	return MethodOutput{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Sequence:    m.Sequence,
		Mandatory:   m.Mandatory,
	}
}

// parseOptionalUUID treats an empty string as uuid.Nil.
func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
