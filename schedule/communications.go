// ABOUTME: Event log mutators: log, update, and delete communications
// ABOUTME: Each mutation refreshes the owning company's schedule cache and persists

package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/store"
)

// LogCommunication appends a new event for companyID and refreshes the
// company's schedule. Logging against an unknown company still records the
// event but leaves every cache unchanged.
func (e *Engine) LogCommunication(companyID uuid.UUID, in models.CommunicationInput) (models.Communication, error) {
	if companyID == uuid.Nil {
		return models.Communication{}, fmt.Errorf("%w: company id is required", ErrInvalidInput)
	}
	date, err := ParseDate(in.Date, e.loc)
	if err != nil {
		return models.Communication{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	comm := models.Communication{
		ID:                ulid.Make(),
		CompanyID:         companyID,
		CommunicationType: in.CommunicationType,
		Date:              date,
		Notes:             in.Notes,
	}
	e.communications = append(e.communications, comm)
	e.commIdx[comm.ID] = len(e.communications) - 1

	if idx, ok := e.companyIdx[companyID]; ok {
		e.recompute(idx, &comm)
	} else {
		e.logger.Warn("communication logged for unknown company", "company", companyID, "id", comm.ID)
	}

	e.persist(store.KeyCommunications, store.KeyCompanies)

	e.logger.Debug("communication logged", "id", comm.ID, "company", companyID, "date", comm.Date)
	return comm, nil
}

// UpdateCommunication replaces the type, date, and notes of an existing
// event and refreshes its company's schedule.
func (e *Engine) UpdateCommunication(id ulid.ULID, in models.CommunicationInput) (models.Communication, error) {
	date, err := ParseDate(in.Date, e.loc)
	if err != nil {
		return models.Communication{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.commIdx[id]
	if !ok {
		return models.Communication{}, fmt.Errorf("%w: %s", ErrCommunicationNotFound, id)
	}

	comm := &e.communications[i]
	comm.CommunicationType = in.CommunicationType
	comm.Date = date
	comm.Notes = in.Notes
	updated := *comm

	if idx, ok := e.companyIdx[updated.CompanyID]; ok {
		e.recompute(idx, &updated)
	}

	e.persist(store.KeyCommunications, store.KeyCompanies)

	e.logger.Debug("communication updated", "id", id, "company", updated.CompanyID, "date", updated.Date)
	return updated, nil
}

// DeleteCommunication removes an event. Under PolicyTouched the company's
// cached schedule is left as it was.
func (e *Engine) DeleteCommunication(id ulid.ULID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.commIdx[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCommunicationNotFound, id)
	}

	companyID := e.communications[i].CompanyID
	e.communications = append(e.communications[:i], e.communications[i+1:]...)
	e.reindex()

	keys := []string{store.KeyCommunications}
	if e.policy == PolicyLatest {
		if idx, ok := e.companyIdx[companyID]; ok {
			e.recompute(idx, nil)
			keys = append(keys, store.KeyCompanies)
		}
	}
	e.persist(keys...)

	e.logger.Debug("communication deleted", "id", id, "company", companyID)
	return nil
}

// recompute refreshes companies[idx] after a change. touched is the event
// just logged or updated, nil for deletes.
func (e *Engine) recompute(idx int, touched *models.Communication) {
	c := &e.companies[idx]

	if e.policy == PolicyLatest {
		c.ApplySchedule(ComputeScheduleState(c.ID, e.communications, c.CommunicationPeriodicity, e.loc))
		return
	}
	if touched == nil {
		return
	}
	c.ApplySchedule(stateFrom(*touched, c.CommunicationPeriodicity, e.loc))
}

func stateFrom(comm models.Communication, periodicity int, loc *time.Location) models.ScheduleState {
	last := comm.Date
	next := AddDays(last, periodicity, loc)
	nextType := comm.CommunicationType
	return models.ScheduleState{
		Last:     &last,
		Next:     &next,
		NextType: &nextType,
	}
}

// ComputeScheduleState derives a company's schedule from its latest event.
// Ties on date go to the event that appears later in events. A company with
// no events gets the empty state.
func ComputeScheduleState(companyID uuid.UUID, events []models.Communication, periodicity int, loc *time.Location) models.ScheduleState {
	var latest *models.Communication
	for i := range events {
		ev := &events[i]
		if ev.CompanyID != companyID {
			continue
		}
		if latest == nil || !ev.Date.Before(latest.Date) {
			latest = ev
		}
	}
	if latest == nil {
		return models.ScheduleState{}
	}
	return stateFrom(*latest, periodicity, loc)
}
