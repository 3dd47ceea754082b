// ABOUTME: Log and edit form for communications
// ABOUTME: Date and notes inputs plus a method picker; invalid input keeps the form open
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

const (
	fieldDate = iota
	fieldNotes
	fieldMethod
	fieldCount
)

const formDateLayout = "2006-01-02T15:04"

func (m *Model) initFormInputs(existing *models.Communication) {
	date := textinput.New()
	date.Placeholder = formDateLayout
	date.CharLimit = 32

	notes := textinput.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 500

	m.methodIndex = 0
	methods := m.engine.Methods()

	if existing != nil {
		date.SetValue(existing.Date.In(m.engine.Location()).Format(formDateLayout))
		notes.SetValue(existing.Notes)
		for i, method := range methods {
			if method.ID == existing.CommunicationType {
				m.methodIndex = i
			}
		}
	} else {
		date.SetValue(m.engine.Now().In(m.engine.Location()).Format(formDateLayout))
	}

	m.formInputs = []textinput.Model{date, notes}
	m.focusIndex = fieldDate
	m.message = ""
}

func (m Model) selectedMethod() (models.CommunicationMethod, bool) {
	methods := m.engine.Methods()
	if m.methodIndex < 0 || m.methodIndex >= len(methods) {
		return models.CommunicationMethod{}, false
	}
	return methods[m.methodIndex], true
}

func (m Model) renderLogView() string {
	var s strings.Builder

	title := "LOG COMMUNICATION"
	if m.editingID != nil {
		title = "EDIT COMMUNICATION"
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Company: %s\n\n", m.engine.CompanyName(m.selectedID)))

	labels := []string{"Date", "Notes"}
	for i, input := range m.formInputs {
		cursor := "  "
		if i == m.focusIndex {
			cursor = cursorStyle.Render("› ")
		}
		s.WriteString(fmt.Sprintf("%s%s %s\n", cursor, fieldLabelStyle.Render(labels[i]+":"), input.View()))
	}

	cursor := "  "
	if m.focusIndex == fieldMethod {
		cursor = cursorStyle.Render("› ")
	}
	method := "(none)"
	if mt, ok := m.selectedMethod(); ok {
		method = "◀ " + mt.Name + " ▶"
	}
	s.WriteString(fmt.Sprintf("%s%s %s\n\n", cursor, fieldLabelStyle.Render("Method:"), method))

	s.WriteString(m.renderMessage())
	help := []string{
		"Tab: Next field",
		"←/→: Change method",
		"Enter: Save",
		"Esc: Cancel",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

func (m Model) handleLogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewDetail
		m.message = ""
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focusIndex + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focusIndex + fieldCount - 1) % fieldCount)
	case "enter":
		return m.submitLog()
	}

	if m.focusIndex == fieldMethod {
		n := len(m.engine.Methods())
		switch msg.String() {
		case "left", "h":
			if n > 0 {
				m.methodIndex = (m.methodIndex + n - 1) % n
			}
		case "right", "l":
			if n > 0 {
				m.methodIndex = (m.methodIndex + 1) % n
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focusIndex = i
	var cmd tea.Cmd
	for j := range m.formInputs {
		if j == i {
			cmd = m.formInputs[j].Focus()
		} else {
			m.formInputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) submitLog() (tea.Model, tea.Cmd) {
	methodID := uuid.Nil
	if mt, ok := m.selectedMethod(); ok {
		methodID = mt.ID
	}
	in := models.CommunicationInput{
		CommunicationType: methodID,
		Date:              m.formInputs[fieldDate].Value(),
		Notes:             m.formInputs[fieldNotes].Value(),
	}

	var err error
	if m.editingID != nil {
		_, err = m.engine.UpdateCommunication(*m.editingID, in)
	} else {
		_, err = m.engine.LogCommunication(m.selectedID, in)
	}

	if err != nil {
		// Stay on the form so the input can be fixed
		if errors.Is(err, schedule.ErrInvalidInput) {
			m.flash("Invalid input: check the date", true)
		} else {
			m.flash("Error: "+err.Error(), true)
		}
		return m, nil
	}

	if m.editingID != nil {
		m.flash("✓ Communication updated", false)
	} else {
		m.flash("✓ Communication logged", false)
	}
	m.editingID = nil
	m.historyRow = 0
	m.viewMode = ViewDetail
	return m, nil
}
