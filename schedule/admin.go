// ABOUTME: Company and communication method administration
// ABOUTME: CRUD with validation plus copy-returning read accessors

package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/store"
)

// UnknownName labels references to deleted companies or methods.
const UnknownName = "Unknown"

func validateCompany(c models.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if c.CommunicationPeriodicity <= 0 {
		return fmt.Errorf("%w: communication periodicity must be positive", ErrInvalidInput)
	}
	if len(c.Emails) > models.MaxEmails {
		return fmt.Errorf("%w: at most %d emails", ErrInvalidInput, models.MaxEmails)
	}
	if len(c.PhoneNumbers) > models.MaxPhoneNumbers {
		return fmt.Errorf("%w: at most %d phone numbers", ErrInvalidInput, models.MaxPhoneNumbers)
	}
	return nil
}

func validateMethod(m models.CommunicationMethod) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: method name is required", ErrInvalidInput)
	}
	if m.Sequence < models.MinSequence || m.Sequence > models.MaxSequence {
		return fmt.Errorf("%w: sequence must be between %d and %d", ErrInvalidInput, models.MinSequence, models.MaxSequence)
	}
	return nil
}

// AddCompany registers a new company with a fresh ID and no schedule.
func (e *Engine) AddCompany(c models.Company) (models.Company, error) {
	if err := validateCompany(c); err != nil {
		return models.Company{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c = cloneCompany(c)
	c.ID = uuid.New()
	c.ApplySchedule(models.ScheduleState{})

	e.companies = append(e.companies, c)
	e.companyIdx[c.ID] = len(e.companies) - 1
	e.persist(store.KeyCompanies)

	e.logger.Info("company added", "id", c.ID, "name", c.Name)
	return cloneCompany(c), nil
}

// UpdateCompany replaces a company's descriptive fields and periodicity.
// The cached schedule is kept; a periodicity change rederives the next date.
func (e *Engine) UpdateCompany(c models.Company) (models.Company, error) {
	if err := validateCompany(c); err != nil {
		return models.Company{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.companyIdx[c.ID]
	if !ok {
		return models.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, c.ID)
	}

	existing := e.companies[idx]
	updated := cloneCompany(c)
	updated.ApplySchedule(existing.Schedule())

	if updated.CommunicationPeriodicity != existing.CommunicationPeriodicity {
		if e.policy == PolicyLatest {
			updated.ApplySchedule(ComputeScheduleState(updated.ID, e.communications, updated.CommunicationPeriodicity, e.loc))
		} else {
			updated.RederiveNext(e.loc)
		}
	}

	e.companies[idx] = updated
	e.persist(store.KeyCompanies)

	e.logger.Info("company updated", "id", updated.ID, "name", updated.Name)
	return cloneCompany(updated), nil
}

// DeleteCompany removes a company. Its events stay in the log.
func (e *Engine) DeleteCompany(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.companyIdx[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}

	e.companies = append(e.companies[:idx], e.companies[idx+1:]...)
	e.reindex()
	e.persist(store.KeyCompanies)

	e.logger.Info("company deleted", "id", id)
	return nil
}

// AddMethod registers a new communication method.
func (e *Engine) AddMethod(m models.CommunicationMethod) (models.CommunicationMethod, error) {
	if err := validateMethod(m); err != nil {
		return models.CommunicationMethod{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	m.ID = uuid.New()
	e.methods = append(e.methods, m)
	e.methodIdx[m.ID] = len(e.methods) - 1
	e.persist(store.KeyCommunicationMethods)

	e.logger.Info("communication method added", "id", m.ID, "name", m.Name)
	return m, nil
}

func (e *Engine) UpdateMethod(m models.CommunicationMethod) (models.CommunicationMethod, error) {
	if err := validateMethod(m); err != nil {
		return models.CommunicationMethod{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.methodIdx[m.ID]
	if !ok {
		return models.CommunicationMethod{}, fmt.Errorf("%w: %s", ErrMethodNotFound, m.ID)
	}
	e.methods[idx] = m
	e.persist(store.KeyCommunicationMethods)

	e.logger.Info("communication method updated", "id", m.ID, "name", m.Name)
	return m, nil
}

// DeleteMethod removes a method. Events and caches that reference it keep
// the ID and render as UnknownName.
func (e *Engine) DeleteMethod(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.methodIdx[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMethodNotFound, id)
	}
	e.methods = append(e.methods[:idx], e.methods[idx+1:]...)
	e.reindex()
	e.persist(store.KeyCommunicationMethods)

	e.logger.Info("communication method deleted", "id", id)
	return nil
}

// Companies returns every company in insertion order.
func (e *Engine) Companies() []models.Company {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Company, len(e.companies))
	for i, c := range e.companies {
		out[i] = cloneCompany(c)
	}
	return out
}

func (e *Engine) Company(id uuid.UUID) (models.Company, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.companyIdx[id]
	if !ok {
		return models.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	return cloneCompany(e.companies[idx]), nil
}

// Methods returns every method ordered by sequence, then name.
func (e *Engine) Methods() []models.CommunicationMethod {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := slices.Clone(e.methods)
	slices.SortStableFunc(out, func(a, b models.CommunicationMethod) int {
		if c := cmp.Compare(a.Sequence, b.Sequence); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (e *Engine) Method(id uuid.UUID) (models.CommunicationMethod, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.methodIdx[id]
	if !ok {
		return models.CommunicationMethod{}, fmt.Errorf("%w: %s", ErrMethodNotFound, id)
	}
	return e.methods[idx], nil
}

// Communications returns the full event log in insertion order.
func (e *Engine) Communications() []models.Communication {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.communications)
}

func (e *Engine) Communication(id ulid.ULID) (models.Communication, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	i, ok := e.commIdx[id]
	if !ok {
		return models.Communication{}, fmt.Errorf("%w: %s", ErrCommunicationNotFound, id)
	}
	return e.communications[i], nil
}

// CompanyName resolves a company ID, falling back to UnknownName.
func (e *Engine) CompanyName(id uuid.UUID) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.companyNameLocked(id)
}

// MethodName resolves a method ID, falling back to UnknownName.
func (e *Engine) MethodName(id uuid.UUID) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.methodNameLocked(id)
}

func (e *Engine) companyNameLocked(id uuid.UUID) string {
	if idx, ok := e.companyIdx[id]; ok {
		return e.companies[idx].Name
	}
	return UnknownName
}

func (e *Engine) methodNameLocked(id uuid.UUID) string {
	if idx, ok := e.methodIdx[id]; ok {
		return e.methods[idx].Name
	}
	return UnknownName
}

// Seed fills empty company and method collections with demo data and
// reports how many of each were added.
func (e *Engine) Seed() (companies, methods int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := [2]int{len(e.companies), len(e.methods)}
	e.seedEmpty()
	return len(e.companies) - before[0], len(e.methods) - before[1]
}
