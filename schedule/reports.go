// ABOUTME: Reporting views derived from the event log and schedule cache
// ABOUTME: Notifications, per-method frequency, overdue trend, activity log, calendar

package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
)

// NotificationSummary groups scheduled companies needing attention.
type NotificationSummary struct {
	Overdue  []models.Company `json:"overdue"`
	DueToday []models.Company `json:"dueToday"`
}

// Notifications lists scheduled companies that are overdue or due today. A
// company due earlier today appears in both lists.
func (e *Engine) Notifications() NotificationSummary {
	sum := NotificationSummary{
		Overdue:  []models.Company{},
		DueToday: []models.Company{},
	}
	for _, c := range e.Companies() {
		if !c.HasSchedule() {
			continue
		}
		if e.IsOverdue(c) {
			sum.Overdue = append(sum.Overdue, c)
		}
		if e.IsDueToday(c) {
			sum.DueToday = append(sum.DueToday, c)
		}
	}
	return sum
}

type MethodFrequency struct {
	Method models.CommunicationMethod `json:"method"`
	Count  int                        `json:"count"`
}

// FrequencyReport counts events per method. Every method is present, in
// sequence order; events with unknown methods are skipped.
func (e *Engine) FrequencyReport() []MethodFrequency {
	methods := e.Methods()
	counts := make(map[uuid.UUID]int, len(methods))
	for _, c := range e.Communications() {
		counts[c.CommunicationType]++
	}

	out := make([]MethodFrequency, len(methods))
	for i, m := range methods {
		out[i] = MethodFrequency{Method: m, Count: counts[m.ID]}
	}
	return out
}

type TrendPoint struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// DefaultTrendDays is used when OverdueTrend is given a non-positive span.
const DefaultTrendDays = 7

// OverdueTrend returns, for each of the last days calendar days (oldest
// first), how many currently overdue companies were already due by then.
func (e *Engine) OverdueTrend(days int) []TrendPoint {
	if days <= 0 {
		days = DefaultTrendDays
	}

	var overdue []time.Time
	for _, c := range e.Companies() {
		if c.HasSchedule() && e.IsOverdue(c) {
			overdue = append(overdue, StartOfDay(*c.NextCommunication, e.loc))
		}
	}

	today := StartOfDay(e.clock.Now(), e.loc)
	out := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := AddDays(today, -i, e.loc).In(e.loc)
		n := 0
		for _, due := range overdue {
			if !due.After(day) {
				n++
			}
		}
		out = append(out, TrendPoint{Day: day, Count: n})
	}
	return out
}

// ActivityEntry is a communication with its names resolved.
type ActivityEntry struct {
	models.Communication
	CompanyName string `json:"companyName"`
	MethodName  string `json:"methodName"`
}

// Activity sort keys.
const (
	SortByDate    = "date"
	SortByCompany = "company"
	SortByType    = "type"
)

// ActivityLog lists every event with names resolved. Unknown sort keys fall
// back to date.
func (e *Engine) ActivityLog(sortBy string, descending bool) []ActivityEntry {
	e.mu.RLock()
	out := make([]ActivityEntry, len(e.communications))
	for i, c := range e.communications {
		out[i] = ActivityEntry{
			Communication: c,
			CompanyName:   e.companyNameLocked(c.CompanyID),
			MethodName:    e.methodNameLocked(c.CommunicationType),
		}
	}
	e.mu.RUnlock()

	var less func(a, b ActivityEntry) int
	switch sortBy {
	case SortByCompany:
		less = func(a, b ActivityEntry) int { return strings.Compare(a.CompanyName, b.CompanyName) }
	case SortByType:
		less = func(a, b ActivityEntry) int { return strings.Compare(a.MethodName, b.MethodName) }
	default:
		less = func(a, b ActivityEntry) int { return a.Date.Compare(b.Date) }
	}

	slices.SortStableFunc(out, func(a, b ActivityEntry) int {
		if descending {
			return less(b, a)
		}
		return less(a, b)
	})
	return out
}

// Calendar entry kinds.
const (
	KindPast      = "past"
	KindScheduled = "scheduled"
)

type CalendarEntry struct {
	ID          string    `json:"id"`
	Time        time.Time `json:"time"`
	Kind        string    `json:"kind"`
	CompanyID   uuid.UUID `json:"companyId"`
	CompanyName string    `json:"companyName"`
	MethodName  string    `json:"methodName"`
	Notes       string    `json:"notes,omitempty"`
}

// Calendar merges logged events for known companies with each company's
// projected dates, sorted by time.
func (e *Engine) Calendar() []CalendarEntry {
	companies := e.Companies()

	e.mu.RLock()
	var out []CalendarEntry
	for _, c := range e.communications {
		if _, ok := e.companyIdx[c.CompanyID]; !ok {
			continue
		}
		out = append(out, CalendarEntry{
			ID:          c.ID.String(),
			Time:        c.Date,
			Kind:        KindPast,
			CompanyID:   c.CompanyID,
			CompanyName: e.companyNameLocked(c.CompanyID),
			MethodName:  e.methodNameLocked(c.CommunicationType),
			Notes:       c.Notes,
		})
	}

	for _, c := range companies {
		method := "Scheduled"
		if c.NextCommunicationType != nil {
			method = e.methodNameLocked(*c.NextCommunicationType)
		}
		for i, t := range e.NextCommunications(c) {
			out = append(out, CalendarEntry{
				ID:          fmt.Sprintf("%s-%d", c.ID, i),
				Time:        t,
				Kind:        KindScheduled,
				CompanyID:   c.ID,
				CompanyName: c.Name,
				MethodName:  method,
			})
		}
	}
	e.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b CalendarEntry) int {
		return a.Time.Compare(b.Time)
	})
	return out
}
