package astro

import (
	"math"
	"testing"
	"time"
)

func TestPhaseInstantNewMoon1977(t *testing.T) {
	// Meeus example 49.a: the New Moon of February 1977, k = -283, falls at
	// JDE 2443192.65118, i.e. 1977 Feb 18 03:37:42 TD. Delta-T in 1977 is
	// about 48 s, so UT is ~03:36:54.
	got := phaseInstantUTC(-283, NewMoon)
	want := time.Date(1977, 2, 18, 3, 36, 54, 0, time.UTC)

	if diff := got.Sub(want); math.Abs(diff.Minutes()) > 1 {
		t.Errorf("new moon = %s, want %s ±1 min", got, want)
	}
}

func TestPhaseInstantLastQuarter2044(t *testing.T) {
	// Meeus example 49.b: the Last Quarter of January 2044, k = 544.75,
	// JDE 2467636.49186, i.e. 2044 Jan 21 23:48:17 TD.
	got := phaseInstantUTC(544.75, LastQuarter)
	want := time.Date(2044, 1, 21, 23, 48, 17, 0, time.UTC).
		Add(-time.Duration(DeltaT(2044.05)) * time.Second)

	if diff := got.Sub(want); math.Abs(diff.Minutes()) > 1 {
		t.Errorf("last quarter = %s, want %s ±1 min", got, want)
	}
}

func TestFirstNewMoon2026(t *testing.T) {
	// Phases are geocentric; the observer's location plays no part.
	phases, err := PhasesForMonth(2026, time.January, time.UTC)
	if err != nil {
		t.Fatal(err)
	}

	var newMoon, firstQuarter *PhaseInstant
	for i := range phases {
		switch phases[i].Kind {
		case NewMoon:
			if newMoon == nil {
				newMoon = &phases[i]
			}
		case FirstQuarter:
			if newMoon != nil && firstQuarter == nil {
				firstQuarter = &phases[i]
			}
		}
	}
	if newMoon == nil {
		t.Fatal("no New Moon found in January 2026")
	}

	want := time.Date(2026, 1, 18, 19, 52, 0, 0, time.UTC)
	if diff := newMoon.Time.Sub(want); math.Abs(diff.Minutes()) > 2 {
		t.Errorf("New Moon = %s, want %s ±2 min", newMoon.Time, want)
	}

	if firstQuarter != nil {
		gap := firstQuarter.Time.Sub(newMoon.Time).Hours() / 24
		if math.Abs(gap-7.38) > 0.4 {
			t.Errorf("New Moon to First Quarter = %.2f days, want ~7.38", gap)
		}
	}
}

func TestPhasesInRangeOrdering(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	phases, err := PhasesInRange(start, end)
	if err != nil {
		t.Fatal(err)
	}

	// A year holds 12 or 13 of each principal phase.
	if len(phases) < 48 || len(phases) > 52 {
		t.Fatalf("got %d phases in a year, want 48-52", len(phases))
	}

	expectedNext := map[PhaseKind]PhaseKind{
		NewMoon:      FirstQuarter,
		FirstQuarter: FullMoon,
		FullMoon:     LastQuarter,
		LastQuarter:  NewMoon,
	}

	for i := 1; i < len(phases); i++ {
		if !phases[i].Time.After(phases[i-1].Time) {
			t.Errorf("phase %d at %s not after phase %d", i, phases[i].Time, i-1)
		}
		if phases[i].Kind != expectedNext[phases[i-1].Kind] {
			t.Errorf("phase %d: %s follows %s", i, phases[i].Kind, phases[i-1].Kind)
		}
		gap := phases[i].Time.Sub(phases[i-1].Time).Hours() / 24
		if gap < 6.4 || gap > 8.3 {
			t.Errorf("gap between consecutive phases = %.2f days, want 6.4-8.3", gap)
		}
	}

	// Consecutive New Moons are one synodic month apart.
	var lastNew time.Time
	for _, p := range phases {
		if p.Kind != NewMoon {
			continue
		}
		if !lastNew.IsZero() {
			lun := p.Time.Sub(lastNew).Hours() / 24
			if math.Abs(lun-SynodicMonth) > 0.5 {
				t.Errorf("lunation = %.3f days, want %.3f ±0.5", lun, SynodicMonth)
			}
		}
		lastNew = p.Time
	}

	// Range boundaries are honored.
	for _, p := range phases {
		if p.Time.Before(start) || !p.Time.Before(end) {
			t.Errorf("phase at %s outside [%s, %s)", p.Time, start, end)
		}
	}
}

func TestPhasesInRangeErrors(t *testing.T) {
	if _, err := PhasesInRange(
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	); err == nil {
		t.Error("inverted range should error")
	}

	if _, err := PhasesInRange(
		time.Date(3001, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(3001, 2, 1, 0, 0, 0, 0, time.UTC),
	); err == nil {
		t.Error("out-of-range year should error")
	}
}

func TestNextPhase(t *testing.T) {
	at := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	p, err := NextPhase(at)
	if err != nil {
		t.Fatal(err)
	}
	if p.Time.Before(at) {
		t.Errorf("next phase %s precedes %s", p.Time, at)
	}
	if p.Kind != NewMoon {
		t.Errorf("next phase after Jan 15 2026 = %s, want New Moon (Jan 18)", p.Kind)
	}
}
