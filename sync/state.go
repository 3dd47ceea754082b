// ABOUTME: Persisted Google import state
// ABOUTME: Sync tokens, last run times, and the external ids already imported
package sync

import (
	"fmt"
	"time"

	"github.com/harperreed/touchbase/store"
)

// StateKey is the storage key holding State.
const StateKey = "googleSync"

const (
	SourceCalendar = "calendar"
	SourceGmail    = "gmail"
	SourceContacts = "contacts"
)

type State struct {
	CalendarSyncToken string     `json:"calendarSyncToken,omitempty"`
	LastCalendarSync  *time.Time `json:"lastCalendarSync,omitempty"`
	LastGmailSync     *time.Time `json:"lastGmailSync,omitempty"`
	LastContactsSync  *time.Time `json:"lastContactsSync,omitempty"`

	// Imported maps "<source>:<external id>:<company id>" to the id of the
	// communication logged for it.
	Imported map[string]string `json:"imported,omitempty"`
}

// LoadState reads the import state, or an empty one.
func LoadState(st *store.Store) State {
	s := store.Load(st, StateKey, State{})
	if s.Imported == nil {
		s.Imported = make(map[string]string)
	}
	return s
}

// SaveState writes the import state.
func SaveState(st *store.Store, s State) error {
	return st.Save(StateKey, s)
}

func importKey(source, externalID, companyID string) string {
	return source + ":" + externalID + ":" + companyID
}

// lastSync formats an optional sync time for status output.
func lastSync(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// StatusLines describes the saved import state.
func (s State) StatusLines() []string {
	token := "none"
	if s.CalendarSyncToken != "" {
		token = "saved"
	}
	return []string{
		fmt.Sprintf("Calendar:  last sync %s (sync token %s)", lastSync(s.LastCalendarSync), token),
		fmt.Sprintf("Gmail:     last sync %s", lastSync(s.LastGmailSync)),
		fmt.Sprintf("Contacts:  last sync %s", lastSync(s.LastContactsSync)),
		fmt.Sprintf("Imported:  %d communications", len(s.Imported)),
	}
}
