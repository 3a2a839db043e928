// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FunKite/astrotimes/internal/astro"
	"github.com/FunKite/astrotimes/internal/state"
	"github.com/FunKite/astrotimes/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewCalendar
)

// Msg types for Bubble Tea
type (
	// TickMsg drives the 1-second clock line.
	TickMsg time.Time

	// DataUpdateMsg signals a freshly computed snapshot.
	DataUpdateMsg struct {
		State state.State
	}

	// ErrorMsg signals a compute error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	loc astro.Location
	tz  *time.Location

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	now      time.Time

	dashboard DashboardModel
	calendar  CalendarModel

	snapshot state.State
}

// New creates the root UI model.
func New(stateMgr *state.Manager, loc astro.Location, tz *time.Location) Model {
	return Model{
		state:     stateMgr,
		loc:       loc,
		tz:        tz,
		viewMode:  ViewDashboard,
		now:       time.Now(),
		dashboard: NewDashboardModel(),
		calendar:  NewCalendarModel(loc, tz),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d", "1":
			m.viewMode = ViewDashboard
		case "c", "2":
			if m.viewMode != ViewCalendar {
				m.calendar = m.calendar.EnsureMonth(m.now.In(m.tz))
			}
			m.viewMode = ViewCalendar
		case "tab":
			if m.viewMode == ViewDashboard {
				m.calendar = m.calendar.EnsureMonth(m.now.In(m.tz))
				m.viewMode = ViewCalendar
			} else {
				m.viewMode = ViewDashboard
			}
		default:
			if m.viewMode == ViewCalendar {
				m.calendar = m.calendar.Update(msg)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.now = time.Time(msg)
		m.snapshot = m.state.Snapshot()

	case DataUpdateMsg:
		m.snapshot = msg.State
		m.dashboard = m.dashboard.UpdateData(msg.State)

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewCalendar:
		content = m.calendar.View()
	default:
		content = m.dashboard.View(m.now.In(m.tz))
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  ☀ astrotimes ☾"))
	b.WriteString(mutedStyle.Render("  sun & moon ephemeris · v" + version.Version))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"[d] Dashboard", "[c] Calendar"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, mutedStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.HasData:
		countdown := time.Until(m.snapshot.NextRefresh).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = mutedStyle.Render("positions refresh in ") + accentStyle.Render(countdown.String())
	default:
		status = mutedStyle.Render("computing...")
	}

	var help string
	if m.viewMode == ViewCalendar {
		help = mutedStyle.Render("←/→: month | d: dashboard | q: quit")
	} else {
		help = mutedStyle.Render("c: calendar | q: quit")
	}

	return "  " + status + "  " + mutedStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendDataUpdate creates a command that delivers a new snapshot.
func SendDataUpdate(s state.State) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{State: s}
	}
}
