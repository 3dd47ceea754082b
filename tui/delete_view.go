// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Confirms removal of a logged communication
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/touchbase/schedule"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmDeleteView() string {
	description := "unknown communication"
	for _, c := range m.history() {
		if c.ID == m.deleteTarget {
			description = fmt.Sprintf("%s on %s",
				m.engine.MethodName(c.CommunicationType),
				c.Date.In(m.engine.Location()).Format(detailDateLayout))
		}
	}

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := "Are you sure you want to delete this communication?"
	info := fmt.Sprintf("\n%s with %s\n", description, m.engine.CompanyName(m.selectedID))
	note := "\nThe company's next date is not recalculated."
	if m.engine.Policy() != schedule.PolicyTouched {
		note = "\nThe company's schedule will be recalculated."
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		info,
		note,
		"",
		buttons,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		confirmBoxStyle.Render(content),
	)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.engine.DeleteCommunication(m.deleteTarget); err != nil {
			m.flash("Error: "+err.Error(), true)
		} else {
			m.flash("✓ Communication deleted", false)
			m.historyRow = 0
		}
		m.viewMode = ViewDetail
	case "n", "N", "esc":
		m.viewMode = ViewDetail
	}

	return m, nil
}
