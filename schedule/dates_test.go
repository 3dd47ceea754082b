package schedule

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/models"
)

func TestParseDate(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name string
		in   string
		loc  *time.Location
		want time.Time
	}{
		{"rfc3339 utc", "2024-01-01T00:00:00Z", time.UTC, date("2024-01-01T00:00:00Z")},
		{"rfc3339 offset", "2024-01-01T00:00:00+02:00", time.UTC, date("2023-12-31T22:00:00Z")},
		{"fractional seconds", "2024-01-01T00:00:00.000Z", time.UTC, date("2024-01-01T00:00:00Z")},
		{"datetime-local", "2024-01-01T09:30", est, date("2024-01-01T14:30:00Z")},
		{"date only", "2024-01-01", est, date("2024-01-01T05:00:00Z")},
		{"padded", "  2024-01-01  ", time.UTC, date("2024-01-01T00:00:00Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in, tt.loc)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2024-13-01", "01/02/2024"} {
		_, err := ParseDate(in, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestSameDay(t *testing.T) {
	a := date("2024-01-01T23:30:00Z")
	b := date("2024-01-02T00:30:00Z")

	assert.False(t, SameDay(a, b, time.UTC))
	assert.True(t, SameDay(a, b, time.FixedZone("CET", 60*60)))
	assert.True(t, SameDay(a, a, time.UTC))
}

func TestAddDaysAndStartOfDay(t *testing.T) {
	d := date("2024-02-28T10:00:00Z")
	assert.True(t, AddDays(d, 2, time.UTC).Equal(date("2024-03-01T10:00:00Z")))
	assert.True(t, AddDays(d, -28, nil).Equal(date("2024-01-31T10:00:00Z")))
	assert.True(t, StartOfDay(d, time.UTC).Equal(date("2024-02-28T00:00:00Z")))
	assert.True(t, After(AddDays(d, 1, time.UTC), d))
}

func TestAddDaysKeepsLocalWallClockAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-01 23:30 EST; clocks spring forward on 2024-03-10
	start := time.Date(2024, 3, 1, 23, 30, 0, 0, ny)
	got := AddDays(start, 14, ny)

	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(time.Date(2024, 3, 15, 23, 30, 0, 0, ny)), "got %s", got.In(ny))
}

func TestDueTodayAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	e, clock := NewTestEngine(t, time.Date(2024, 3, 1, 23, 45, 0, 0, ny), WithLocation(ny))
	c, err := e.AddCompany(models.Company{Name: "Acme", CommunicationPeriodicity: 14})
	require.NoError(t, err)

	_, err = e.LogCommunication(c.ID, models.CommunicationInput{Date: "2024-03-01T23:30"})
	require.NoError(t, err)

	company, err := e.Company(c.ID)
	require.NoError(t, err)
	require.NotNil(t, company.NextCommunication)
	assert.Equal(t, "2024-03-15 23:30", company.NextCommunication.In(ny).Format("2006-01-02 15:04"))

	clock.Set(time.Date(2024, 3, 15, 12, 0, 0, 0, ny))
	assert.True(t, e.IsDueToday(company))
	assert.False(t, e.IsOverdue(company))

	projection := e.NextCommunications(company)
	assert.Equal(t, "2024-03-29 23:30", projection[1].In(ny).Format("2006-01-02 15:04"))
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(date("2024-01-01T00:00:00Z"))
	c.Advance(36 * time.Hour)
	assert.True(t, c.Now().Equal(date("2024-01-02T12:00:00Z")))

	c.Set(date("2025-06-01T00:00:00Z"))
	assert.True(t, c.Now().Equal(date("2025-06-01T00:00:00Z")))

	var sys Clock = SystemClock{}
	assert.WithinDuration(t, time.Now(), sys.Now(), time.Second)
}
