package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/FunKite/astrotimes/internal/report"
)

func TestManagerUpdate(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m.HasData() {
		t.Error("fresh manager should have no data")
	}

	snap := report.Snapshot{
		Location: report.LocationInfo{Lat: 42.36, Lon: -71.06, City: "Boston"},
	}
	m.Update(snap, 3*time.Millisecond, nil)

	got := m.Snapshot()
	if !got.HasData {
		t.Fatal("HasData false after successful update")
	}
	if got.Report.Location.City != "Boston" {
		t.Errorf("snapshot city = %q", got.Report.Location.City)
	}
	if got.ComputeDuration != 3*time.Millisecond {
		t.Errorf("compute duration = %v", got.ComputeDuration)
	}
	if got.LastCompute.IsZero() {
		t.Error("LastCompute not recorded")
	}
	if !got.NextRefresh.After(got.LastCompute) {
		t.Error("NextRefresh should follow LastCompute")
	}
}

func TestManagerUpdateErrorKeepsData(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Update(report.Snapshot{
		Location: report.LocationInfo{City: "Tokyo"},
	}, time.Millisecond, nil)

	// A failed refresh records the error but preserves the last good data.
	m.Update(report.Snapshot{}, time.Millisecond, errors.New("zone lookup failed"))

	got := m.Snapshot()
	if got.LastError == nil {
		t.Error("error not recorded")
	}
	if got.Report.Location.City != "Tokyo" {
		t.Errorf("last good snapshot lost: city = %q", got.Report.Location.City)
	}
}

func TestManagerRefreshInterval(t *testing.T) {
	m := NewManager(Config{RefreshInterval: -1})
	if m.RefreshInterval() <= 0 {
		t.Error("non-positive interval should fall back to a default")
	}

	m.SetRefreshInterval(time.Minute)
	if m.RefreshInterval() != time.Minute {
		t.Errorf("interval = %v, want 1m", m.RefreshInterval())
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Update(report.Snapshot{}, time.Microsecond, nil)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	if !m.HasData() {
		t.Error("data lost after concurrent updates")
	}
}
