// ABOUTME: Read-only schedule queries over companies and the event log
// ABOUTME: History, next date, projections, overdue and due-today checks

package schedule

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
)

// CompanyCommunications returns the company's events, most recent first.
// Events with equal dates keep their log order.
func (e *Engine) CompanyCommunications(companyID uuid.UUID) []models.Communication {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.Communication
	for _, c := range e.communications {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Communication) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// NextCommunication returns the cached next date, or nil when nothing has
// been logged for the company.
func (e *Engine) NextCommunication(c models.Company) *time.Time {
	if c.NextCommunication == nil {
		return nil
	}
	next := *c.NextCommunication
	return &next
}

// NextCommunications projects the next ProjectionLength contact dates,
// starting at the cached next date or now.
func (e *Engine) NextCommunications(c models.Company) []time.Time {
	start := e.clock.Now()
	if c.NextCommunication != nil {
		start = *c.NextCommunication
	}

	out := make([]time.Time, ProjectionLength)
	out[0] = start
	for i := 1; i < ProjectionLength; i++ {
		out[i] = AddDays(out[i-1], c.CommunicationPeriodicity, e.loc)
	}
	return out
}

// reference is the instant a company is measured against. Unscheduled
// companies are measured against now.
func (e *Engine) reference(c models.Company, now time.Time) time.Time {
	if c.NextCommunication != nil {
		return *c.NextCommunication
	}
	return now
}

// IsOverdue reports whether now is strictly past the company's next date.
func (e *Engine) IsOverdue(c models.Company) bool {
	now := e.clock.Now()
	return After(now, e.reference(c, now))
}

// IsDueToday reports whether the company's next date falls on today's
// calendar day in the engine's location. An unscheduled company is always
// due today.
func (e *Engine) IsDueToday(c models.Company) bool {
	now := e.clock.Now()
	return SameDay(now, e.reference(c, now), e.loc)
}

// Status classifies a company. Same-day takes precedence over overdue so a
// company due this morning still reads as due today.
func (e *Engine) Status(c models.Company) models.ScheduleStatus {
	if !c.HasSchedule() {
		return models.StatusUnscheduled
	}
	now := e.clock.Now()
	next := *c.NextCommunication
	switch {
	case SameDay(now, next, e.loc):
		return models.StatusDueToday
	case After(now, next):
		return models.StatusOverdue
	default:
		return models.StatusScheduled
	}
}
