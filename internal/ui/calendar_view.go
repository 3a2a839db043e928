package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FunKite/astrotimes/internal/astro"
	"github.com/FunKite/astrotimes/internal/calendar"
)

// CalendarModel renders one month of the calendar aggregator and pages
// between months with the arrow keys.
type CalendarModel struct {
	loc astro.Location
	tz  *time.Location

	year  int
	month time.Month
	rows  []calendar.Row
	err   error
}

// NewCalendarModel creates an empty month view; EnsureMonth populates it.
func NewCalendarModel(loc astro.Location, tz *time.Location) CalendarModel {
	return CalendarModel{loc: loc, tz: tz}
}

// EnsureMonth loads the month containing ref if it is not already shown.
func (c CalendarModel) EnsureMonth(ref time.Time) CalendarModel {
	if c.rows != nil && c.year == ref.Year() && c.month == ref.Month() {
		return c
	}
	return c.load(ref.Year(), ref.Month())
}

func (c CalendarModel) load(year int, month time.Month) CalendarModel {
	c.year, c.month = year, month
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.tz)
	end := start.AddDate(0, 1, -1)
	c.rows, c.err = calendar.GenerateParallel(c.loc, c.tz, start, end, 0)
	return c
}

// Update handles month paging.
func (c CalendarModel) Update(msg tea.Msg) CalendarModel {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}
	switch key.String() {
	case "left", "h":
		prev := time.Date(c.year, c.month, 1, 0, 0, 0, 0, c.tz).AddDate(0, -1, 0)
		return c.load(prev.Year(), prev.Month())
	case "right", "l":
		next := time.Date(c.year, c.month, 1, 0, 0, 0, 0, c.tz).AddDate(0, 1, 0)
		return c.load(next.Year(), next.Month())
	}
	return c
}

var calHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)

// View renders the month table.
func (c CalendarModel) View() string {
	if c.err != nil {
		return "\n  " + errorStyle.Render("calendar error: "+c.err.Error()) + "\n"
	}
	if c.rows == nil {
		return "\n  " + dimStyle.Render("loading month...") + "\n"
	}

	var b strings.Builder
	title := time.Date(c.year, c.month, 1, 0, 0, 0, 0, c.tz).Format("January 2006")
	b.WriteString("  " + calHeadStyle.Render(title) + "\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf(
		"%-10s %-6s %-6s %-6s %-6s %-6s %-6s %-13s %s",
		"Date", "Rise", "Noon", "Set", "M.Rise", "M.Set", "Trans", "Phase", "Illum")) + "\n")

	for _, row := range c.rows {
		line := fmt.Sprintf("%-10s %-6s %-6s %-6s %-6s %-6s %-6s %s %-11s %3.0f%%",
			row.Date,
			orDash(row.Sunrise), orDash(row.SolarNoon), orDash(row.Sunset),
			orDash(row.Moonrise), orDash(row.Moonset), orDash(row.MoonTransit),
			row.PhaseEmoji, row.PhaseName, row.IlluminationPct)
		if len(row.PhaseEvents) > 0 {
			line += "  " + calHeadStyle.Render(row.PhaseEvents[0].Kind+" "+row.PhaseEvents[0].Local)
		}
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDash(s *string) string {
	if s == nil {
		return "--:--"
	}
	return *s
}
