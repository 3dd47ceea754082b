package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/touchbase/models"
)

const detailDateLayout = "2006-01-02 15:04"

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sectionStyle = lipgloss.NewStyle().Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)
)

func (m Model) history() []models.Communication {
	return m.engine.CompanyCommunications(m.selectedID)
}

func (m Model) renderDetailView() string {
	var s strings.Builder

	company, err := m.engine.Company(m.selectedID)
	if err != nil {
		s.WriteString(titleStyle.Render("DETAIL VIEW"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Error: %v\n\n", err))
		s.WriteString(helpStyle.Render("Esc: Back"))
		return s.String()
	}

	s.WriteString(titleStyle.Render(strings.ToUpper(company.Name)))
	s.WriteString("\n\n")

	loc := m.engine.Location()
	s.WriteString(m.renderField("Status", fmt.Sprintf("%s %s", statusBadge(m.engine.Status(company)), m.engine.Status(company))))
	s.WriteString(m.renderField("Every", fmt.Sprintf("%d days", company.CommunicationPeriodicity)))
	s.WriteString(m.renderField("Location", company.Location))
	s.WriteString(m.renderField("LinkedIn", company.LinkedInProfile))
	s.WriteString(m.renderField("Emails", strings.Join(company.Emails, ", ")))
	s.WriteString(m.renderField("Phones", strings.Join(company.PhoneNumbers, ", ")))
	s.WriteString(m.renderField("Comments", company.Comments))

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("HISTORY"))
	s.WriteString("\n")
	history := m.history()
	if len(history) == 0 {
		s.WriteString("  No communications yet\n")
	}
	for i, c := range history {
		cursor := "  "
		if i == m.historyRow {
			cursor = cursorStyle.Render("› ")
		}
		line := fmt.Sprintf("%s %s", c.Date.In(loc).Format(detailDateLayout), m.engine.MethodName(c.CommunicationType))
		if c.Notes != "" {
			line += " - " + c.Notes
		}
		s.WriteString(cursor + line + "\n")
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("UPCOMING"))
	s.WriteString("\n")
	for _, t := range m.engine.NextCommunications(company) {
		s.WriteString(fmt.Sprintf("  • %s\n", t.In(loc).Format(detailDateLayout)))
	}

	s.WriteString("\n")
	s.WriteString(m.renderMessage())
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"↑/↓: Select",
		"l: Log",
		"e: Edit",
		"d: Delete",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.history()

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.message = ""
	case "up", "k":
		if m.historyRow > 0 {
			m.historyRow--
		}
	case "down", "j":
		if m.historyRow < len(history)-1 {
			m.historyRow++
		}
	case "l":
		m.editingID = nil
		m.initFormInputs(nil)
		m.viewMode = ViewLog
		return m, m.formInputs[0].Focus()
	case "e":
		if m.historyRow < len(history) {
			c := history[m.historyRow]
			m.editingID = &c.ID
			m.initFormInputs(&c)
			m.viewMode = ViewLog
			return m, m.formInputs[0].Focus()
		}
	case "d":
		if m.historyRow < len(history) {
			m.deleteTarget = history[m.historyRow].ID
			m.viewMode = ViewConfirmDelete
		}
	}

	return m, nil
}
