// ABOUTME: Dashboard statistics and terminal rendering
// ABOUTME: Totals, notification counts, method usage bars, and recent activity
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

// RecentActivityDays bounds the activity section of the dashboard.
const RecentActivityDays = 7

type DashboardStats struct {
	TotalCompanies      int
	TotalMethods        int
	TotalCommunications int

	Unscheduled int
	Scheduled   int
	DueToday    int
	Overdue     int

	Frequency      []schedule.MethodFrequency
	RecentActivity []ActivityItem

	// Companies needing attention, overdue first
	NeedsAttention []AttentionItem
}

type ActivityItem struct {
	Date        time.Time
	Description string
}

type AttentionItem struct {
	Name     string
	Status   models.ScheduleStatus
	Next     time.Time
	DaysLate int
}

func GenerateDashboardStats(engine *schedule.Engine) *DashboardStats {
	companies := engine.Companies()
	stats := &DashboardStats{
		TotalCompanies:      len(companies),
		TotalMethods:        len(engine.Methods()),
		TotalCommunications: len(engine.Communications()),
		Frequency:           engine.FrequencyReport(),
	}

	now := engine.Now()
	var overdue, dueToday []AttentionItem
	for _, c := range companies {
		status := engine.Status(c)
		switch status {
		case models.StatusUnscheduled:
			stats.Unscheduled++
		case models.StatusScheduled:
			stats.Scheduled++
		case models.StatusDueToday:
			stats.DueToday++
			dueToday = append(dueToday, AttentionItem{Name: c.Name, Status: status, Next: *c.NextCommunication})
		case models.StatusOverdue:
			stats.Overdue++
			overdue = append(overdue, AttentionItem{
				Name:     c.Name,
				Status:   status,
				Next:     *c.NextCommunication,
				DaysLate: int(now.Sub(*c.NextCommunication).Hours() / 24),
			})
		}
	}
	stats.NeedsAttention = append(overdue, dueToday...)

	cutoff := schedule.AddDays(now, -RecentActivityDays, engine.Location())
	for _, entry := range engine.ActivityLog(schedule.SortByDate, true) {
		if entry.Date.Before(cutoff) {
			break
		}
		if entry.Date.After(now) {
			continue
		}
		stats.RecentActivity = append(stats.RecentActivity, ActivityItem{
			Date:        entry.Date,
			Description: fmt.Sprintf("%s with %s", entry.MethodName, entry.CompanyName),
		})
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  TOUCHBASE DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🏢 %d companies  📨 %d methods  📝 %d communications\n\n",
		stats.TotalCompanies, stats.TotalMethods, stats.TotalCommunications))

	out.WriteString("SCHEDULE\n")
	out.WriteString(fmt.Sprintf("  🔴 %d overdue  🟡 %d due today  🟢 %d scheduled  ⚪ %d unscheduled\n\n",
		stats.Overdue, stats.DueToday, stats.Scheduled, stats.Unscheduled))

	if len(stats.Frequency) > 0 {
		out.WriteString("METHODS\n")
		renderFrequency(&out, stats.Frequency)
		out.WriteString("\n")
	}

	if len(stats.NeedsAttention) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		for _, item := range stats.NeedsAttention {
			if item.Status == models.StatusOverdue {
				out.WriteString(fmt.Sprintf("  ⚠️  %s - overdue by %d days\n", item.Name, item.DaysLate))
			} else {
				out.WriteString(fmt.Sprintf("  📅 %s - due today\n", item.Name))
			}
		}
		out.WriteString("\n")
	}

	if len(stats.RecentActivity) > 0 {
		out.WriteString(fmt.Sprintf("LAST %d DAYS\n", RecentActivityDays))
		for _, item := range stats.RecentActivity {
			out.WriteString(fmt.Sprintf("  %s  %s\n", item.Date.Format("Jan 02"), item.Description))
		}
	}

	return out.String()
}

func renderFrequency(out *strings.Builder, freq []schedule.MethodFrequency) {
	maxCount := 0
	for _, f := range freq {
		if f.Count > maxCount {
			maxCount = f.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, f := range freq {
		barLength := (f.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-17s %s  %3d\n", f.Method.Name, bar, f.Count))
	}
}
