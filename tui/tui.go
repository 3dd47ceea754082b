// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive company schedule browser with logging and notifications
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/touchbase/schedule"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewLog
	ViewDashboard
	ViewConfirmDelete
)

// Tab is a list view tab
type Tab int

const (
	TabCompanies Tab = iota
	TabNotifications
	TabActivity
	tabCount
)

// Model is the main bubbletea model
type Model struct {
	engine   *schedule.Engine
	viewMode ViewMode
	tab      Tab

	// List view state
	selectedRow int

	// Detail view state
	selectedID uuid.UUID
	historyRow int

	// Log form state
	formInputs  []textinput.Model
	focusIndex  int
	methodIndex int
	editingID   *ulid.ULID

	// Delete confirmation state
	deleteTarget ulid.ULID

	// Flash message shown under the current view
	message string
	isError bool

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(engine *schedule.Engine) Model {
	return Model{
		engine:   engine,
		viewMode: ViewList,
		tab:      TabCompanies,
		width:    80,
		height:   24,
	}
}

// Run starts the TUI in the alternate screen.
func Run(engine *schedule.Engine) error {
	_, err := tea.NewProgram(NewModel(engine), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewLog:
		return m.renderLogView()
	case ViewDashboard:
		return m.renderDashboardView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// q types into the log form
	if msg.String() == "q" && m.viewMode != ViewLog {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewLog:
		return m.handleLogKeys(msg)
	case ViewDashboard:
		return m.handleDashboardKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

func (m *Model) flash(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

func (m Model) renderMessage() string {
	if m.message == "" {
		return ""
	}
	if m.isError {
		return errorStyle.Render(m.message) + "\n"
	}
	return successStyle.Render(m.message) + "\n"
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)
