// ABOUTME: Scheduling engine owning the event log and the per-company schedule cache
// ABOUTME: Construction, options, loading from storage, and best-effort persistence

package schedule

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/store"
)

// ProjectionLength is the number of upcoming dates NextCommunications returns.
const ProjectionLength = 5

// Policy controls how a company's cached schedule is recomputed after a
// change to the event log.
type Policy string

const (
	// PolicyTouched rewrites the cache from whichever event was just logged
	// or updated, even a backdated one. Deletes leave the cache alone.
	PolicyTouched Policy = "touched"
	// PolicyLatest rederives the cache from the company's latest event after
	// every change, including deletes.
	PolicyLatest Policy = "latest"
)

// Engine is the single owner of scheduling state for a process.
type Engine struct {
	mu      sync.RWMutex
	store   *store.Store
	clock   Clock
	loc     *time.Location
	logger  *log.Logger
	policy  Policy
	seed    bool
	version string

	companies      []models.Company
	methods        []models.CommunicationMethod
	communications []models.Communication

	companyIdx map[uuid.UUID]int
	methodIdx  map[uuid.UUID]int
	commIdx    map[ulid.ULID]int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of "now".
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLocation sets the zone used for calendar-day comparisons.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithSeed enables demo data for empty collections.
func WithSeed(seed bool) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithVersion overrides the expected storage version tag.
func WithVersion(v string) Option {
	return func(e *Engine) { e.version = v }
}

// Open checks the storage version, loads all collections, and seeds empty
// collections when seeding is enabled.
func Open(st *store.Store, opts ...Option) (*Engine, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidInput)
	}

	e := &Engine{
		store:   st,
		clock:   SystemClock{},
		loc:     time.Local,
		logger:  log.Default(),
		policy:  PolicyTouched,
		version: store.StorageVersion,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithPrefix("schedule")

	switch e.policy {
	case PolicyTouched, PolicyLatest:
	default:
		return nil, fmt.Errorf("%w: unknown recompute policy %q", ErrInvalidInput, e.policy)
	}

	// CheckVersion logs its own failures; a failed wipe still leaves
	// readable data behind.
	if wiped, err := st.CheckVersion(e.version); err == nil && wiped {
		e.logger.Info("storage reset for new version", "version", e.version)
	}

	e.load()

	if e.seed {
		e.seedEmpty()
	}

	e.logger.Debug("engine opened",
		"companies", len(e.companies),
		"methods", len(e.methods),
		"communications", len(e.communications),
		"policy", e.policy)
	return e, nil
}

// Location returns the zone used for calendar-day comparisons.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Policy returns the active recompute policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) load() {
	e.companies = store.Load(e.store, store.KeyCompanies, []models.Company{})
	e.methods = store.Load(e.store, store.KeyCommunicationMethods, []models.CommunicationMethod{})
	e.communications = store.Load(e.store, store.KeyCommunications, []models.Communication{})

	for i := range e.communications {
		e.communications[i].Date = e.communications[i].Date.UTC()
	}
	e.reindex()
}

func (e *Engine) seedEmpty() {
	if len(e.companies) == 0 {
		e.companies = models.SeedCompanies()
		e.persist(store.KeyCompanies)
		e.logger.Info("seeded demo companies", "count", len(e.companies))
	}
	if len(e.methods) == 0 {
		e.methods = models.SeedMethods()
		e.persist(store.KeyCommunicationMethods)
		e.logger.Info("seeded communication methods", "count", len(e.methods))
	}
	e.reindex()
}

func (e *Engine) reindex() {
	e.companyIdx = make(map[uuid.UUID]int, len(e.companies))
	for i, c := range e.companies {
		e.companyIdx[c.ID] = i
	}
	e.methodIdx = make(map[uuid.UUID]int, len(e.methods))
	for i, m := range e.methods {
		e.methodIdx[m.ID] = i
	}
	e.commIdx = make(map[ulid.ULID]int, len(e.communications))
	for i, c := range e.communications {
		e.commIdx[c.ID] = i
	}
}

// persist writes the named collections. Failures are logged by the store
// and the in-memory state is kept.
func (e *Engine) persist(keys ...string) {
	for _, key := range keys {
		var value any
		switch key {
		case store.KeyCompanies:
			value = e.companies
		case store.KeyCommunicationMethods:
			value = e.methods
		case store.KeyCommunications:
			value = e.communications
		default:
			continue
		}
		_ = e.store.Save(key, value)
	}
}

func cloneCompany(c models.Company) models.Company {
	c.Emails = slices.Clone(c.Emails)
	c.PhoneNumbers = slices.Clone(c.PhoneNumbers)
	return c
}
