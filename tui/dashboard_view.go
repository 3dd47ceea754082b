package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/touchbase/viz"
)

func (m Model) renderDashboardView() string {
	var s strings.Builder

	s.WriteString(viz.RenderDashboard(viz.GenerateDashboardStats(m.engine)))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Esc: Back • q: Quit"))

	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.viewMode = ViewList
	}
	return m, nil
}
