package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/FunKite/astrotimes/internal/report"
	"github.com/FunKite/astrotimes/internal/state"
)

// DashboardModel renders the live snapshot: clock, event schedule, current
// positions, and the moon detail panel.
type DashboardModel struct {
	snapshot state.State
	err      error
}

// NewDashboardModel creates an empty dashboard.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// UpdateData installs a new snapshot.
func (d DashboardModel) UpdateData(s state.State) DashboardModel {
	d.snapshot = s
	d.err = nil
	return d
}

// SetError records a compute error for display.
func (d DashboardModel) SetError(err error) DashboardModel {
	d.err = err
	return d
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
	headStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)
	nextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// View renders the dashboard for the given wall-clock instant.
func (d DashboardModel) View(now time.Time) string {
	if d.err != nil {
		return "\n  " + errorStyle.Render("compute error: "+d.err.Error()) + "\n"
	}
	if !d.snapshot.HasData {
		return "\n  " + dimStyle.Render("computing ephemeris...") + "\n"
	}

	rep := d.snapshot.Report

	clock := d.renderClock(rep, now)
	left := panelStyle.Render(d.renderEvents(rep, now))
	right := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(d.renderPositions(rep)),
		panelStyle.Render(d.renderMoon(rep)),
		panelStyle.Render(d.renderPhases(rep)),
	)

	return clock + lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (d DashboardModel) renderClock(rep report.Snapshot, now time.Time) string {
	where := fmt.Sprintf("%.4f°, %.4f°", rep.Location.Lat, rep.Location.Lon)
	if rep.Location.City != "" {
		where = rep.Location.City + "  " + dimStyle.Render(where)
	}
	line := fmt.Sprintf("  %s   %s %s\n",
		where,
		headStyle.Render(now.Format("15:04:05")),
		dimStyle.Render(now.Format("Mon 2006-01-02 MST")))
	return line
}

func (d DashboardModel) renderEvents(rep report.Snapshot, now time.Time) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Today"))
	b.WriteString("\n")

	if len(rep.Events) == 0 {
		b.WriteString(dimStyle.Render("no events on this date"))
		return b.String()
	}

	for _, ev := range rep.Events {
		local, err := time.Parse(time.RFC3339, ev.Local)
		stamp := "--:--:--"
		if err == nil {
			stamp = local.Format("15:04:05")
		}

		line := fmt.Sprintf("%-18s %s", ev.Kind, stamp)
		switch {
		case ev.IsNext:
			b.WriteString(nextStyle.Render("▶ " + line))
			b.WriteString(dimStyle.Render("  in " + formatCountdown(ev.SecondsFromNow)))
		case ev.SecondsFromNow < 0:
			b.WriteString(dimStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d DashboardModel) renderPositions(rep report.Snapshot) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Positions"))
	b.WriteString("\n")
	sun := rep.Positions.Sun
	moon := rep.Positions.Moon
	fmt.Fprintf(&b, "☀ alt %+7.2f°  az %6.2f° %-3s\n", sun.AltDeg, sun.AzDeg, sun.AzCardinal)
	fmt.Fprintf(&b, "☾ alt %+7.2f°  az %6.2f° %-3s", moon.AltDeg, moon.AzDeg, moon.AzCardinal)
	return b.String()
}

func (d DashboardModel) renderMoon(rep report.Snapshot) string {
	m := rep.Moon
	var b strings.Builder
	b.WriteString(headStyle.Render("Moon"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %.1f%% lit\n", m.PhaseEmoji, m.PhaseName, m.IlluminationPct)
	fmt.Fprintf(&b, "age %.1f d  Ø %.1f′\n", m.AgeDays, m.DiameterArcmin)
	fmt.Fprintf(&b, "%.0f km  %s", m.DistanceKm, dimStyle.Render(m.SizeCategory))
	return b.String()
}

func (d DashboardModel) renderPhases(rep report.Snapshot) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("This Month"))
	b.WriteString("\n")
	if len(rep.LunarPhases) == 0 {
		b.WriteString(dimStyle.Render("no phase data"))
		return b.String()
	}
	for i, p := range rep.LunarPhases {
		local, err := time.Parse(time.RFC3339, p.Local)
		stamp := p.Local
		if err == nil {
			stamp = local.Format("Jan 02 15:04")
		}
		fmt.Fprintf(&b, "%-14s %s", p.Kind, stamp)
		if i < len(rep.LunarPhases)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// formatCountdown renders a positive seconds-from-now as h/m/s.
func formatCountdown(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	dur := time.Duration(secs) * time.Second
	switch {
	case dur >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(dur.Hours()), int(dur.Minutes())%60)
	case dur >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(dur.Minutes()), int(dur.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(dur.Seconds()))
	}
}
