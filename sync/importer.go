// ABOUTME: Turns external records into logged communications
// ABOUTME: Matches participants to companies, skips duplicates, logs oldest first
package sync

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
	"github.com/harperreed/touchbase/store"
)

// Record is one external interaction, such as a meeting or a sent email.
type Record struct {
	Source     string
	ExternalID string
	Date       time.Time
	Emails     []string
	Notes      string
}

// Result summarises one import run.
type Result struct {
	Fetched    int
	Imported   int
	Duplicates int
	Unmatched  int
	Skipped    map[string]int
}

func newResult() Result {
	return Result{Skipped: make(map[string]int)}
}

// TotalSkipped sums the skip reasons.
func (r Result) TotalSkipped() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

type Importer struct {
	engine *schedule.Engine
	store  *store.Store
	logger *log.Logger
	state  State
}

// NewImporter loads the saved import state from st.
func NewImporter(engine *schedule.Engine, st *store.Store, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{
		engine: engine,
		store:  st,
		logger: logger.WithPrefix("import"),
		state:  LoadState(st),
	}
}

// State returns the current import state.
func (im *Importer) State() State {
	return im.state
}

// ResolveMethod finds a communication method by case-insensitive name.
func ResolveMethod(engine *schedule.Engine, name string) (uuid.UUID, error) {
	for _, m := range engine.Methods() {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%w: %q", schedule.ErrMethodNotFound, name)
}

// SkipOlderThanLast counts records dated before a company's last logged
// communication. Under the touched policy they would pull the schedule back.
const SkipOlderThanLast = "older than last communication"

// ImportRecords logs one communication per record and matched company.
// Records are applied oldest first. Under the touched policy a record older
// than the company's current last communication is skipped, so an import
// never moves a schedule backwards.
func (im *Importer) ImportRecords(records []Record, methodID uuid.UUID, res *Result) error {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	matcher := NewCompanyMatcher(im.engine.Companies())

	for _, r := range sorted {
		var companies []uuid.UUID
		seen := make(map[uuid.UUID]bool)
		for _, email := range r.Emails {
			id, ok := matcher.Match(email)
			if ok && !seen[id] {
				seen[id] = true
				companies = append(companies, id)
			}
		}
		if len(companies) == 0 {
			res.Unmatched++
			continue
		}

		for _, companyID := range companies {
			key := importKey(r.Source, r.ExternalID, companyID.String())
			if _, done := im.state.Imported[key]; done {
				res.Duplicates++
				continue
			}
			if im.wouldRewind(companyID, r.Date) {
				res.Skipped[SkipOlderThanLast]++
				continue
			}

			comm, err := im.engine.LogCommunication(companyID, models.CommunicationInput{
				CommunicationType: methodID,
				Date:              r.Date.Format(time.RFC3339Nano),
				Notes:             r.Notes,
			})
			if err != nil {
				return fmt.Errorf("failed to log %s %s: %w", r.Source, r.ExternalID, err)
			}

			im.state.Imported[key] = comm.ID.String()
			res.Imported++
			im.logger.Debug("imported", "source", r.Source, "id", r.ExternalID, "company", companyID)
		}
	}

	return SaveState(im.store, im.state)
}

func (im *Importer) wouldRewind(companyID uuid.UUID, date time.Time) bool {
	if im.engine.Policy() != schedule.PolicyTouched {
		return false
	}
	c, err := im.engine.Company(companyID)
	if err != nil || c.LastCommunication == nil {
		return false
	}
	return date.Before(*c.LastCommunication)
}

// pluralize returns "s" if count != 1, otherwise ""
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// Summary renders a Result the way the import commands print it.
func (r Result) Summary(noun string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Fetched %d %s%s\n", r.Fetched, noun, pluralize(r.Fetched))

	reasons := make([]string, 0, len(r.Skipped))
	for reason := range r.Skipped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&b, "  ✓ Skipped %d %s\n", r.Skipped[reason], reason)
	}

	if r.Duplicates > 0 {
		fmt.Fprintf(&b, "  ✓ %d already imported\n", r.Duplicates)
	}
	if r.Unmatched > 0 {
		fmt.Fprintf(&b, "  → %d with no matching company\n", r.Unmatched)
	}
	fmt.Fprintf(&b, "✓ Logged %d communication%s\n", r.Imported, pluralize(r.Imported))
	return b.String()
}
