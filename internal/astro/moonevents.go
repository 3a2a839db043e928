package astro

import (
	"fmt"
	"math"
	"time"
)

// LunarEventKind identifies a lunar horizon event.
type LunarEventKind int

const (
	Moonrise LunarEventKind = iota
	Moonset
	MoonTransit
)

func (k LunarEventKind) String() string {
	switch k {
	case Moonrise:
		return "Moonrise"
	case Moonset:
		return "Moonset"
	case MoonTransit:
		return "Moon Transit"
	default:
		return fmt.Sprintf("LunarEventKind(%d)", int(k))
	}
}

const (
	// moonScanStep is the coarse bracketing grid. The Moon moves slowly
	// enough that no rise/set pair fits inside ten minutes.
	moonScanStep = 10 * time.Minute
	// moonScanHalfWindow extends the search either side of local noon, so
	// an event that slides just past the civil day's edge is still caught.
	moonScanHalfWindow = 24 * time.Hour
	moonBisectMaxIter  = 64
)

// moonTargetAltitude is the true topocentric altitude of the Moon's center
// at rise/set: horizon refraction (34') plus the distance-dependent
// semidiameter, plus horizon dip for an elevated observer. Parallax does not
// appear because the altitude being tested is already topocentric.
func moonTargetAltitude(loc Location, distKm float64) float64 {
	sd := math.Asin(clampUnit(moonMeanRadiusKm/distKm)) * radToDeg
	return -0.566 - sd - horizonDipDeg(loc.ElevM)
}

// moonAltError is the solver objective: topocentric altitude minus the
// rise/set target at time t.
func moonAltError(loc Location, t time.Time) float64 {
	alt, dist := moonTopoAltitude(loc, t)
	return alt - moonTargetAltitude(loc, dist)
}

// LunarEventTime computes moonrise, moonset, or upper transit for the civil
// date carried by date, in date's zone. The search covers a +-24 h window
// centered on local noon; when the window holds more than one candidate the
// one nearest local noon wins, so each civil day reports at most one of
// each. ok is false when the Moon stays above (or below) the horizon across
// the whole window.
func LunarEventTime(loc Location, date time.Time, kind LunarEventKind) (eventTime time.Time, ok bool, err error) {
	if !validYear(date.Year()) {
		return time.Time{}, false, fmt.Errorf("%w: year %d", ErrDateOutOfRange, date.Year())
	}

	noon, err := ResolveLocal(date.Location(), date.Year(), date.Month(), date.Day(), 12, 0, 0)
	if err != nil {
		return time.Time{}, false, err
	}

	if kind == MoonTransit {
		return lunarTransit(loc, noon)
	}

	rising := kind == Moonrise
	start := noon.Add(-moonScanHalfWindow)

	steps := int(2 * moonScanHalfWindow / moonScanStep)
	var (
		best      time.Time
		bestDelta time.Duration
		found     bool
	)

	prevT := start
	prevF := moonAltError(loc, prevT)
	for i := 1; i <= steps; i++ {
		t := start.Add(time.Duration(i) * moonScanStep)
		f := moonAltError(loc, t)

		crossed := (rising && prevF <= 0 && f > 0) || (!rising && prevF >= 0 && f < 0)
		if crossed {
			hit := bisectCrossing(loc, prevT, t, rising)
			delta := hit.Sub(noon)
			if delta < 0 {
				delta = -delta
			}
			if !found || delta < bestDelta {
				best, bestDelta, found = hit, delta, true
			}
		}
		prevT, prevF = t, f
	}

	if !found {
		return time.Time{}, false, nil
	}
	return best.In(date.Location()), true, nil
}

// bisectCrossing narrows a bracketed sign change of the altitude error to
// under one second.
func bisectCrossing(loc Location, lo, hi time.Time, rising bool) time.Time {
	for i := 0; i < moonBisectMaxIter && hi.Sub(lo) > time.Second; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		midF := moonAltError(loc, mid)

		// Keep the bracket endpoint on the pre-crossing side.
		if (rising && midF <= 0) || (!rising && midF >= 0) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}

// lunarTransit locates the Moon's upper culmination nearest local noon:
// coarse scan for the highest altitude sample, parabolic interpolation on
// its neighbors, then step-halving refinement to sub-second resolution.
func lunarTransit(loc Location, noon time.Time) (time.Time, bool, error) {
	start := noon.Add(-moonScanHalfWindow)
	steps := int(2 * moonScanHalfWindow / moonScanStep)

	alts := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		alt, _ := moonTopoAltitude(loc, start.Add(time.Duration(i)*moonScanStep))
		alts[i] = alt
	}

	// Interior local maxima, nearest to noon first.
	bestIdx := -1
	var bestDelta time.Duration
	for i := 1; i < steps; i++ {
		if alts[i] >= alts[i-1] && alts[i] >= alts[i+1] {
			t := start.Add(time.Duration(i) * moonScanStep)
			delta := t.Sub(noon)
			if delta < 0 {
				delta = -delta
			}
			if bestIdx < 0 || delta < bestDelta {
				bestIdx, bestDelta = i, delta
			}
		}
	}
	if bestIdx < 0 {
		return time.Time{}, false, nil
	}

	peak := start.Add(time.Duration(bestIdx) * moonScanStep)
	step := moonScanStep

	// Each pass fits a parabola through (peak-step, peak, peak+step) and
	// jumps to its vertex, then halves the step. Converges well inside the
	// iteration bound because the altitude curve is smooth near culmination.
	for i := 0; i < moonBisectMaxIter && step > time.Second; i++ {
		lo, _ := moonTopoAltitude(loc, peak.Add(-step))
		mid, _ := moonTopoAltitude(loc, peak)
		hi, _ := moonTopoAltitude(loc, peak.Add(step))

		denom := lo - 2*mid + hi
		if denom < 0 {
			// Vertex offset in units of step, clamped to the bracket.
			offset := 0.5 * (lo - hi) / denom
			if offset > 1 {
				offset = 1
			} else if offset < -1 {
				offset = -1
			}
			peak = peak.Add(time.Duration(offset * float64(step)))
		}
		step /= 2
	}

	return peak, true, nil
}

// ResolveLocal builds a wall-clock instant in a named zone, applying the
// DST policy: a nonexistent local time (spring-forward gap) is nudged
// forward one hour; an ambiguous one resolves to the offset the zone
// database reports first. Returns ErrAmbiguousLocalTime only when even the
// nudged time cannot be represented.
func ResolveLocal(tz *time.Location, year int, month time.Month, day, hour, min, sec int) (time.Time, error) {
	t := time.Date(year, month, day, hour, min, sec, 0, tz)
	if t.Hour() == hour && t.Minute() == min {
		return t, nil
	}
	// Landed in a DST gap; retry one hour later.
	t = time.Date(year, month, day, hour+1, min, sec, 0, tz)
	if t.Hour() == hour+1 || t.Day() != day {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d in %s",
		ErrAmbiguousLocalTime, year, month, day, hour, min, tz)
}
