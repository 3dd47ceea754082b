package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

const listDateLayout = "2006-01-02"

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TOUCHBASE"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderTable())
	s.WriteString("\n\n")

	s.WriteString(m.renderMessage())
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	sum := m.engine.Notifications()
	tabs := []string{
		"Companies",
		fmt.Sprintf("Notifications (%d)", len(sum.Overdue)+len(sum.DueToday)),
		"Activity",
	}

	var rendered []string
	for i, tab := range tabs {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func statusBadge(s models.ScheduleStatus) string {
	switch s {
	case models.StatusOverdue:
		return "🔴"
	case models.StatusDueToday:
		return "🟡"
	case models.StatusScheduled:
		return "🟢"
	default:
		return "⚪"
	}
}

func (m Model) scheduleDate(c *models.Company, next bool) string {
	v := c.LastCommunication
	if next {
		v = c.NextCommunication
	}
	if v == nil {
		return "-"
	}
	return v.In(m.engine.Location()).Format(listDateLayout)
}

// listRows returns the rows of the active tab and the company each row opens.
func (m Model) listRows() ([]table.Column, []table.Row, []uuid.UUID) {
	switch m.tab {
	case TabNotifications:
		columns := []table.Column{
			{Title: "", Width: 10},
			{Title: "Company", Width: 30},
			{Title: "Due", Width: 12},
		}
		var rows []table.Row
		var ids []uuid.UUID
		sum := m.engine.Notifications()
		for _, c := range sum.Overdue {
			rows = append(rows, table.Row{"overdue", c.Name, m.scheduleDate(&c, true)})
			ids = append(ids, c.ID)
		}
		for _, c := range sum.DueToday {
			rows = append(rows, table.Row{"due today", c.Name, m.scheduleDate(&c, true)})
			ids = append(ids, c.ID)
		}
		return columns, rows, ids

	case TabActivity:
		columns := []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Company", Width: 25},
			{Title: "Method", Width: 18},
			{Title: "Notes", Width: 25},
		}
		var rows []table.Row
		var ids []uuid.UUID
		for _, a := range m.engine.ActivityLog(schedule.SortByDate, true) {
			rows = append(rows, table.Row{
				a.Date.In(m.engine.Location()).Format(listDateLayout),
				a.CompanyName,
				a.MethodName,
				a.Notes,
			})
			ids = append(ids, a.CompanyID)
		}
		return columns, rows, ids

	default:
		columns := []table.Column{
			{Title: "", Width: 2},
			{Title: "Name", Width: 25},
			{Title: "Every", Width: 6},
			{Title: "Last", Width: 12},
			{Title: "Next", Width: 12},
			{Title: "Next Type", Width: 16},
		}
		var rows []table.Row
		var ids []uuid.UUID
		for _, c := range m.engine.Companies() {
			nextType := "-"
			if c.NextCommunicationType != nil {
				nextType = m.engine.MethodName(*c.NextCommunicationType)
			}
			rows = append(rows, table.Row{
				statusBadge(m.engine.Status(c)),
				c.Name,
				fmt.Sprintf("%dd", c.CommunicationPeriodicity),
				m.scheduleDate(&c, false),
				m.scheduleDate(&c, true),
				nextType,
			})
			ids = append(ids, c.ID)
		}
		return columns, rows, ids
	}
}

func (m Model) renderTable() string {
	columns, rows, _ := m.listRows()
	if len(rows) == 0 {
		return "Nothing here yet."
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"g: Dashboard",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, rows, ids := m.listRows()

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(rows)-1 {
			m.selectedRow++
		}
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		m.selectedRow = 0
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.selectedRow = 0
	case "enter":
		if m.selectedRow < len(ids) {
			m.selectedID = ids[m.selectedRow]
			m.historyRow = 0
			m.message = ""
			m.viewMode = ViewDetail
		}
	case "g":
		m.viewMode = ViewDashboard
	}

	return m, nil
}
