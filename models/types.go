// ABOUTME: Data models for companies, communication methods, and logged communications
// ABOUTME: Field names match the persisted JSON layout shared with the dashboard
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Limits on company contact lists.
const (
	MaxEmails       = 5
	MaxPhoneNumbers = 5
)

// Method sequence bounds.
const (
	MinSequence = 1
	MaxSequence = 5
)

type Company struct {
	ID                       uuid.UUID  `json:"id"`
	Name                     string     `json:"name"`
	Location                 string     `json:"location,omitempty"`
	LinkedInProfile          string     `json:"linkedInProfile,omitempty"`
	Emails                   []string   `json:"emails,omitempty"`
	PhoneNumbers             []string   `json:"phoneNumbers,omitempty"`
	Comments                 string     `json:"comments,omitempty"`
	CommunicationPeriodicity int        `json:"communicationPeriodicity"`
	LastCommunication        *time.Time `json:"lastCommunication,omitempty"`
	NextCommunication        *time.Time `json:"nextCommunication,omitempty"`
	NextCommunicationType    *uuid.UUID `json:"nextCommunicationType,omitempty"`
}

// HasSchedule reports whether a communication has ever been logged for the company.
func (c Company) HasSchedule() bool {
	return c.NextCommunication != nil
}

// ApplySchedule overwrites the cached scheduling fields.
func (c *Company) ApplySchedule(s ScheduleState) {
	c.LastCommunication = s.Last
	c.NextCommunication = s.Next
	c.NextCommunicationType = s.NextType
}

// Schedule returns the cached scheduling fields.
func (c Company) Schedule() ScheduleState {
	return ScheduleState{
		Last:     c.LastCommunication,
		Next:     c.NextCommunication,
		NextType: c.NextCommunicationType,
	}
}

// RederiveNext recomputes NextCommunication from LastCommunication and the
// current periodicity, counting calendar days in loc (UTC when nil). Used
// after a periodicity edit.
func (c *Company) RederiveNext(loc *time.Location) {
	if c.LastCommunication == nil {
		return
	}
	if loc == nil {
		loc = time.UTC
	}
	next := c.LastCommunication.In(loc).AddDate(0, 0, c.CommunicationPeriodicity).UTC()
	c.NextCommunication = &next
}

type CommunicationMethod struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sequence    int       `json:"sequence"`
	Mandatory   bool      `json:"mandatory"`
}

// Communication is a single entry in the event log.
type Communication struct {
	ID                ulid.ULID `json:"id"`
	CompanyID         uuid.UUID `json:"companyId"`
	CommunicationType uuid.UUID `json:"communicationType"`
	Date              time.Time `json:"date"`
	Notes             string    `json:"notes,omitempty"`
}

// CommunicationInput carries the user-editable fields of a communication.
// Date is parsed by the engine so malformed input can be rejected before
// any state changes.
type CommunicationInput struct {
	CommunicationType uuid.UUID `json:"communicationType"`
	Date              string    `json:"date"`
	Notes             string    `json:"notes,omitempty"`
}

// ScheduleState is the cached "most recent communication" view of a company.
type ScheduleState struct {
	Last     *time.Time `json:"lastCommunication,omitempty"`
	Next     *time.Time `json:"nextCommunication,omitempty"`
	NextType *uuid.UUID `json:"nextCommunicationType,omitempty"`
}

// ScheduleStatus is derived from the wall clock, never stored.
type ScheduleStatus string

const (
	StatusUnscheduled ScheduleStatus = "unscheduled"
	StatusScheduled   ScheduleStatus = "scheduled"
	StatusDueToday    ScheduleStatus = "due_today"
	StatusOverdue     ScheduleStatus = "overdue"
)

