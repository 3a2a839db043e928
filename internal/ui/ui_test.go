package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FunKite/astrotimes/internal/astro"
	"github.com/FunKite/astrotimes/internal/report"
	"github.com/FunKite/astrotimes/internal/state"
)

var testLoc = astro.Location{Lat: 42.3601, Lon: -71.0589}

func readyModel(t *testing.T) Model {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, testLoc, time.UTC)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func TestModelInitializing(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, testLoc, time.UTC)

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before window size = %q", got)
	}
}

func TestModelQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		m := readyModel(t)
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Errorf("key %q should produce a quit command", key.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q did not quit", key.String())
		}
	}
}

func TestDashboardRendersSnapshot(t *testing.T) {
	m := readyModel(t)

	now := time.Date(2025, 10, 22, 14, 0, 0, 0, time.UTC)
	snap := report.Build(testLoc, time.UTC, now, "Boston")

	next, _ := m.Update(DataUpdateMsg{State: state.State{
		Report:      snap,
		HasData:     true,
		LastCompute: now,
		NextRefresh: now.Add(10 * time.Second),
	}})
	m = next.(Model)

	out := m.View()
	for _, want := range []string{"astrotimes", "Dashboard", "Boston", "Positions", "Moon", "This Month"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}

func TestDashboardShowsError(t *testing.T) {
	m := readyModel(t)

	next, _ := m.Update(ErrorMsg{Error: errors.New("zone lookup failed")})
	m = next.(Model)

	if out := m.View(); !strings.Contains(out, "zone lookup failed") {
		t.Error("error message not rendered")
	}
}

func TestCalendarViewToggle(t *testing.T) {
	m := readyModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = next.(Model)
	if m.viewMode != ViewCalendar {
		t.Fatal("'c' did not switch to the calendar view")
	}

	out := m.View()
	for _, want := range []string{"Date", "Rise", "Illum"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar view missing %q", want)
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = next.(Model)
	if m.viewMode != ViewDashboard {
		t.Error("'d' did not switch back to the dashboard")
	}
}

func TestTickRequestsSnapshot(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	now := time.Now()
	mgr.Update(report.Build(testLoc, time.UTC, now, ""), time.Millisecond, nil)

	m := New(mgr, testLoc, time.UTC)
	next, cmd := m.Update(TickMsg(now))
	m = next.(Model)

	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !m.snapshot.HasData {
		t.Error("tick did not pull the manager snapshot")
	}
}
