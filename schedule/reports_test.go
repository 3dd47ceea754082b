package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/models"
)

func TestNotifications(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(date("2024-02-01T12:00:00Z"))

	overdue := f.addCompany(t, "Overdue Co", 7)
	today := f.addCompany(t, "Today Co", 7)
	future := f.addCompany(t, "Future Co", 30)
	f.addCompany(t, "Never Co", 7)

	for id, d := range map[uuid.UUID]string{
		overdue.ID: "2024-01-10T00:00:00Z",
		today.ID:   "2024-01-25T15:00:00Z",
		future.ID:  "2024-01-30T00:00:00Z",
	} {
		_, err := f.engine.LogCommunication(id, models.CommunicationInput{Date: d})
		require.NoError(t, err)
	}

	sum := f.engine.Notifications()
	require.Len(t, sum.Overdue, 1)
	assert.Equal(t, "Overdue Co", sum.Overdue[0].Name)
	require.Len(t, sum.DueToday, 1)
	assert.Equal(t, "Today Co", sum.DueToday[0].Name)
}

func TestFrequencyReport(t *testing.T) {
	f := newFixture(t)
	c := f.addCompany(t, "Acme", 7)
	call := f.addMethod(t, "Phone Call", 2)
	mail := f.addMethod(t, "Email", 1)
	f.addMethod(t, "Other", 5)

	for _, m := range []uuid.UUID{mail.ID, mail.ID, call.ID, uuid.New()} {
		_, err := f.engine.LogCommunication(c.ID, models.CommunicationInput{CommunicationType: m, Date: "2024-01-01"})
		require.NoError(t, err)
	}

	report := f.engine.FrequencyReport()
	require.Len(t, report, 3)
	assert.Equal(t, "Email", report[0].Method.Name)
	assert.Equal(t, 2, report[0].Count)
	assert.Equal(t, "Phone Call", report[1].Method.Name)
	assert.Equal(t, 1, report[1].Count)
	assert.Equal(t, "Other", report[2].Method.Name)
	assert.Zero(t, report[2].Count)
}

func TestOverdueTrend(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(date("2024-01-10T12:00:00Z"))

	a := f.addCompany(t, "A", 1)
	b := f.addCompany(t, "B", 1)
	_, err := f.engine.LogCommunication(a.ID, models.CommunicationInput{Date: "2024-01-05"}) // due 01-06
	require.NoError(t, err)
	_, err = f.engine.LogCommunication(b.ID, models.CommunicationInput{Date: "2024-01-07"}) // due 01-08
	require.NoError(t, err)

	trend := f.engine.OverdueTrend(5)
	require.Len(t, trend, 5)
	assert.True(t, trend[0].Day.Equal(date("2024-01-06T00:00:00Z")))
	assert.True(t, trend[4].Day.Equal(date("2024-01-10T00:00:00Z")))

	counts := []int{}
	for _, p := range trend {
		counts = append(counts, p.Count)
	}
	assert.Equal(t, []int{1, 1, 2, 2, 2}, counts)

	assert.Len(t, f.engine.OverdueTrend(0), DefaultTrendDays)
}

func TestActivityLog(t *testing.T) {
	f := newFixture(t)
	zeta := f.addCompany(t, "Zeta", 7)
	alpha := f.addCompany(t, "Alpha", 7)
	mail := f.addMethod(t, "Email", 1)
	call := f.addMethod(t, "Call", 2)

	_, err := f.engine.LogCommunication(zeta.ID, models.CommunicationInput{CommunicationType: mail.ID, Date: "2024-01-02"})
	require.NoError(t, err)
	_, err = f.engine.LogCommunication(alpha.ID, models.CommunicationInput{CommunicationType: call.ID, Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = f.engine.LogCommunication(uuid.New(), models.CommunicationInput{CommunicationType: uuid.New(), Date: "2024-01-03"})
	require.NoError(t, err)

	byDate := f.engine.ActivityLog(SortByDate, true)
	require.Len(t, byDate, 3)
	assert.Equal(t, UnknownName, byDate[0].CompanyName)
	assert.Equal(t, UnknownName, byDate[0].MethodName)
	assert.Equal(t, "Zeta", byDate[1].CompanyName)
	assert.Equal(t, "Email", byDate[1].MethodName)

	byCompany := f.engine.ActivityLog(SortByCompany, false)
	assert.Equal(t, "Alpha", byCompany[0].CompanyName)
	assert.Equal(t, "Zeta", byCompany[2].CompanyName)

	byType := f.engine.ActivityLog(SortByType, false)
	assert.Equal(t, "Call", byType[0].MethodName)

	fallback := f.engine.ActivityLog("bogus", false)
	assert.Equal(t, "Alpha", fallback[0].CompanyName)
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)
	c := f.addCompany(t, "Acme", 7)
	f.addCompany(t, "Idle", 7)
	mail := f.addMethod(t, "Email", 1)

	_, err := f.engine.LogCommunication(c.ID, models.CommunicationInput{CommunicationType: mail.ID, Date: "2023-12-25", Notes: "hello"})
	require.NoError(t, err)
	_, err = f.engine.LogCommunication(uuid.New(), models.CommunicationInput{Date: "2023-12-20"})
	require.NoError(t, err)

	entries := f.engine.Calendar()
	// one known past event plus five projections per company
	require.Len(t, entries, 1+2*ProjectionLength)

	assert.Equal(t, KindPast, entries[0].Kind)
	assert.Equal(t, "hello", entries[0].Notes)
	assert.Equal(t, "Email", entries[0].MethodName)

	var scheduled, idle int
	for i, e := range entries {
		if i > 0 {
			assert.False(t, e.Time.Before(entries[i-1].Time))
		}
		if e.Kind == KindScheduled {
			scheduled++
			if e.CompanyName == "Idle" {
				idle++
				assert.Equal(t, "Scheduled", e.MethodName)
			}
		}
	}
	assert.Equal(t, 2*ProjectionLength, scheduled)
	assert.Equal(t, ProjectionLength, idle)
}
