// ABOUTME: Tests for CLI commands
// ABOUTME: Runs each command against a test engine and checks its output
package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

var now = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

func setupTestCLI(t *testing.T) (*schedule.Engine, models.Company, models.CommunicationMethod) {
	t.Helper()
	e, _ := schedule.NewTestEngine(t, now)

	c, err := e.AddCompany(models.Company{Name: "Acme", CommunicationPeriodicity: 14})
	require.NoError(t, err)
	m, err := e.AddMethod(models.CommunicationMethod{Name: "Email", Sequence: 1})
	require.NoError(t, err)
	return e, c, m
}

func run(t *testing.T, cmd func(*schedule.Engine, *bytes.Buffer) error, e *schedule.Engine) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, cmd(e, &out))
	return out.String()
}

func TestLogCommand(t *testing.T) {
	e, c, m := setupTestCLI(t)

	var out bytes.Buffer
	err := LogCommand(e, &out, []string{
		"--company", c.ID.String(),
		"--type", m.ID.String(),
		"--date", "2024-01-01",
		"--notes", "kickoff",
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Logged Email with Acme")
	assert.Contains(t, out.String(), "Next: 2024-01-15 00:00")
	assert.Len(t, e.Communications(), 1)
}

func TestLogCommandDefaultsToFirstMethod(t *testing.T) {
	e, c, _ := setupTestCLI(t)
	_, err := e.AddMethod(models.CommunicationMethod{Name: "Phone Call", Sequence: 2})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, LogCommand(e, &out, []string{"--company", c.ID.String()}))

	assert.Contains(t, out.String(), "✓ Logged Email with Acme")
	comms := e.Communications()
	require.Len(t, comms, 1)
	assert.True(t, comms[0].Date.Equal(now))
}

func TestLogCommandErrors(t *testing.T) {
	e, c, _ := setupTestCLI(t)
	var out bytes.Buffer

	assert.Error(t, LogCommand(e, &out, []string{}))
	assert.Error(t, LogCommand(e, &out, []string{"--company", "not-a-uuid"}))
	assert.Error(t, LogCommand(e, &out, []string{"--company", c.ID.String(), "--type", "bad"}))

	err := LogCommand(e, &out, []string{"--company", c.ID.String(), "--date", "someday"})
	assert.ErrorIs(t, err, schedule.ErrInvalidInput)
	assert.Empty(t, e.Communications())
}

func TestUpdateAndDeleteCommands(t *testing.T) {
	e, c, m := setupTestCLI(t)
	comm, err := e.LogCommunication(c.ID, models.CommunicationInput{Date: "2024-01-01"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, UpdateCommand(e, &out, []string{"--type", m.ID.String(), "--date", "2024-01-10", comm.ID.String()}))
	assert.Contains(t, out.String(), "✓ Updated")

	company, err := e.Company(c.ID)
	require.NoError(t, err)
	assert.True(t, company.NextCommunication.Equal(time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC)))

	out.Reset()
	require.NoError(t, DeleteCommand(e, &out, []string{comm.ID.String()}))
	assert.Contains(t, out.String(), "✓ Deleted")
	assert.Empty(t, e.Communications())

	err = DeleteCommand(e, &out, []string{comm.ID.String()})
	assert.ErrorIs(t, err, schedule.ErrCommunicationNotFound)
	assert.Error(t, DeleteCommand(e, &out, nil))
}

func TestUpdateCommandKeepsMethodWhenOmitted(t *testing.T) {
	e, c, m := setupTestCLI(t)
	comm, err := e.LogCommunication(c.ID, models.CommunicationInput{CommunicationType: m.ID, Date: "2024-01-01"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, UpdateCommand(e, &out, []string{"--date", "2024-01-10", comm.ID.String()}))

	updated, err := e.Communication(comm.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, updated.CommunicationType)
	assert.Equal(t, "Email", e.MethodName(updated.CommunicationType))

	company, err := e.Company(c.ID)
	require.NoError(t, err)
	require.NotNil(t, company.NextCommunicationType)
	assert.Equal(t, m.ID, *company.NextCommunicationType)

	err = UpdateCommand(e, &out, []string{"--date", "2024-01-10", ulid.Make().String()})
	assert.ErrorIs(t, err, schedule.ErrCommunicationNotFound)
}

func TestHistoryAndNextCommands(t *testing.T) {
	e, c, m := setupTestCLI(t)

	out := run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return HistoryCommand(e, b, []string{c.ID.String()})
	}, e)
	assert.Contains(t, out, "No communications logged for Acme")

	for _, d := range []string{"2024-01-02", "2024-01-09"} {
		_, err := e.LogCommunication(c.ID, models.CommunicationInput{CommunicationType: m.ID, Date: d, Notes: "note " + d})
		require.NoError(t, err)
	}

	out = run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return HistoryCommand(e, b, []string{c.ID.String()})
	}, e)
	assert.Less(t, strings.Index(out, "2024-01-09"), strings.Index(out, "2024-01-02"))
	assert.Contains(t, out, "Total: 2 communication(s) with Acme")

	out = run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return NextCommand(e, b, []string{c.ID.String()})
	}, e)
	assert.Contains(t, out, "🟢 Acme (every 14 days)")
	assert.Contains(t, out, "Next type: Email")
	assert.Contains(t, out, "2024-01-23 00:00")
	assert.Contains(t, out, "2024-03-19 00:00")

	var b bytes.Buffer
	assert.ErrorIs(t, NextCommand(e, &b, []string{uuid.New().String()}), schedule.ErrCompanyNotFound)
}

func TestStatusCommand(t *testing.T) {
	e, c, _ := setupTestCLI(t)
	_, err := e.AddCompany(models.Company{Name: "Idle", CommunicationPeriodicity: 7})
	require.NoError(t, err)
	_, err = e.LogCommunication(c.ID, models.CommunicationInput{Date: "2024-01-01"})
	require.NoError(t, err)

	out := run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return StatusCommand(e, b, nil)
	}, e)
	assert.Contains(t, out, "🔴 Acme")
	assert.Contains(t, out, "⚪ Idle")
	assert.Contains(t, out, "Total: 2 company(ies)")

	out = run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return StatusCommand(e, b, []string{"--overdue-only"})
	}, e)
	assert.Contains(t, out, "Acme")
	assert.NotContains(t, out, "Idle")

	out = run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return StatusCommand(e, b, []string{"--due-today"})
	}, e)
	assert.Contains(t, out, "No companies found")
}

func TestNotificationsCommand(t *testing.T) {
	e, c, _ := setupTestCLI(t)
	_, err := e.LogCommunication(c.ID, models.CommunicationInput{Date: "2024-01-01"})
	require.NoError(t, err)

	out := run(t, func(e *schedule.Engine, b *bytes.Buffer) error {
		return NotificationsCommand(e, b, nil)
	}, e)
	assert.Contains(t, out, "1 overdue, 0 due today")
	assert.Contains(t, out, "Acme (due 2024-01-15 00:00)")
}

func TestCompanyCommand(t *testing.T) {
	e, c, _ := setupTestCLI(t)
	var out bytes.Buffer

	require.NoError(t, CompanyCommand(e, &out, []string{"add",
		"--name", "Beta Labs", "--periodicity", "7",
		"--email", "a@beta.test", "--email", "b@beta.test",
		"--location", "Chicago",
	}))
	assert.Contains(t, out.String(), "✓ Company created: Beta Labs")

	var beta models.Company
	for _, co := range e.Companies() {
		if co.Name == "Beta Labs" {
			beta = co
		}
	}
	assert.Equal(t, []string{"a@beta.test", "b@beta.test"}, beta.Emails)

	out.Reset()
	require.NoError(t, CompanyCommand(e, &out, []string{"list"}))
	assert.Contains(t, out.String(), "Chicago")
	assert.Contains(t, out.String(), "Total: 2 company(ies)")

	out.Reset()
	require.NoError(t, CompanyCommand(e, &out, []string{"update", "--periodicity", "30", c.ID.String()}))
	updated, err := e.Company(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.CommunicationPeriodicity)
	assert.Equal(t, "Acme", updated.Name)

	out.Reset()
	require.NoError(t, CompanyCommand(e, &out, []string{"delete", beta.ID.String()}))
	assert.Contains(t, out.String(), "✓ Company deleted: Beta Labs")

	assert.ErrorIs(t, CompanyCommand(e, &out, []string{"add", "--name", "No Cadence"}), schedule.ErrInvalidInput)
	assert.Error(t, CompanyCommand(e, &out, []string{"frobnicate"}))
	assert.Error(t, CompanyCommand(e, &out, nil))
}

func TestMethodCommand(t *testing.T) {
	e, _, m := setupTestCLI(t)
	var out bytes.Buffer

	require.NoError(t, MethodCommand(e, &out, []string{"add", "--name", "Phone Call", "--sequence", "4", "--mandatory"}))
	assert.Contains(t, out.String(), "✓ Method created: Phone Call")

	out.Reset()
	require.NoError(t, MethodCommand(e, &out, []string{"list"}))
	assert.Less(t, strings.Index(out.String(), "Email"), strings.Index(out.String(), "Phone Call"))

	out.Reset()
	require.NoError(t, MethodCommand(e, &out, []string{"delete", m.ID.String()}))
	assert.Contains(t, out.String(), "✓ Method deleted: Email")

	assert.ErrorIs(t, MethodCommand(e, &out, []string{"add", "--name", "Fax", "--sequence", "9"}), schedule.ErrInvalidInput)
}

func TestReportCommands(t *testing.T) {
	e, c, m := setupTestCLI(t)
	_, err := e.LogCommunication(c.ID, models.CommunicationInput{CommunicationType: m.ID, Date: "2024-01-01", Notes: "kickoff"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ReportCommand(e, &out, []string{"frequency"}))
	assert.Contains(t, out.String(), "Email")

	out.Reset()
	require.NoError(t, ReportCommand(e, &out, []string{"trend", "--days", "3"}))
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))

	out.Reset()
	require.NoError(t, ReportCommand(e, &out, []string{"activity", "--sort", "company"}))
	assert.Contains(t, out.String(), "kickoff")

	out.Reset()
	require.NoError(t, CalendarCommand(e, &out, []string{"--upcoming"}))
	assert.NotContains(t, out.String(), "past")
	assert.Contains(t, out.String(), "scheduled")

	out.Reset()
	require.NoError(t, DashboardCommand(e, &out, nil))
	assert.Contains(t, out.String(), "TOUCHBASE DASHBOARD")

	assert.Error(t, ReportCommand(e, &out, []string{"pipeline"}))
}

func TestVizCommandWritesFile(t *testing.T) {
	e, c, m := setupTestCLI(t)
	_, err := e.LogCommunication(c.ID, models.CommunicationInput{CommunicationType: m.ID, Date: "2024-01-01"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph.dot")
	var out bytes.Buffer
	require.NoError(t, VizCommand(context.Background(), e, &out, []string{"--output", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme")
}

func TestSeedCommand(t *testing.T) {
	e, _ := schedule.NewTestEngine(t, now)
	var out bytes.Buffer

	require.NoError(t, SeedCommand(e, &out, nil))
	assert.Contains(t, out.String(), "✓ Seeded 5 companies and 5 methods")

	out.Reset()
	require.NoError(t, SeedCommand(e, &out, nil))
	assert.Contains(t, out.String(), "Nothing to seed")
}
