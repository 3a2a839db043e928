package astro

import (
	"fmt"
	"math"
	"time"
)

// SolarEventKind identifies one of the nine solar horizon events.
type SolarEventKind int

const (
	Sunrise SolarEventKind = iota
	Sunset
	SolarNoon
	CivilDawn
	CivilDusk
	NauticalDawn
	NauticalDusk
	AstronomicalDawn
	AstronomicalDusk
)

// SolarEventKinds lists all nine kinds in display order.
var SolarEventKinds = []SolarEventKind{
	AstronomicalDawn, NauticalDawn, CivilDawn, Sunrise,
	SolarNoon,
	Sunset, CivilDusk, NauticalDusk, AstronomicalDusk,
}

func (k SolarEventKind) String() string {
	switch k {
	case Sunrise:
		return "Sunrise"
	case Sunset:
		return "Sunset"
	case SolarNoon:
		return "Solar Noon"
	case CivilDawn:
		return "Civil Dawn"
	case CivilDusk:
		return "Civil Dusk"
	case NauticalDawn:
		return "Nautical Dawn"
	case NauticalDusk:
		return "Nautical Dusk"
	case AstronomicalDawn:
		return "Astronomical Dawn"
	case AstronomicalDusk:
		return "Astronomical Dusk"
	default:
		return fmt.Sprintf("SolarEventKind(%d)", int(k))
	}
}

// TargetAltitude returns the geometric solar altitude h0 defining the event.
// -0.833 folds 34' of horizon refraction with the 16' solar semidiameter.
// SolarNoon has no threshold and reports 0.
func (k SolarEventKind) TargetAltitude() float64 {
	switch k {
	case Sunrise, Sunset:
		return -0.833
	case CivilDawn, CivilDusk:
		return -6
	case NauticalDawn, NauticalDusk:
		return -12
	case AstronomicalDawn, AstronomicalDusk:
		return -18
	default:
		return 0
	}
}

// IsMorning reports whether the event occurs on the morning side of solar
// noon (the hour angle is subtracted rather than added).
func (k SolarEventKind) IsMorning() bool {
	switch k {
	case Sunrise, CivilDawn, NauticalDawn, AstronomicalDawn:
		return true
	default:
		return false
	}
}

// SolarEventTime computes the instant of a solar event on the civil date
// carried by date (its wall-clock zone names the civil day). The returned
// instant is expressed in the same zone. ok is false when the event does not
// occur at this latitude and season (polar day or night); that outcome is
// not an error.
//
// All internal arithmetic runs in UTC; the zone is consulted only to pick
// the civil date and to convert the result back.
func SolarEventTime(loc Location, date time.Time, kind SolarEventKind) (eventTime time.Time, ok bool, err error) {
	if !validYear(date.Year()) {
		return time.Time{}, false, fmt.Errorf("%w: year %d", ErrDateOutOfRange, date.Year())
	}

	y, m, d := date.Date()
	utcMidnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	// First pass anchored at 12:00 UTC of the calendar date.
	minutes, ok := solarEventMinutes(loc, JulianDay(utcMidnight)+0.5, kind)
	if !ok {
		return time.Time{}, false, nil
	}

	// Fixed-point refinement: re-evaluate the solar model at the candidate
	// instant until the correction drops below half a second.
	const maxIter = 5
	for i := 0; i < maxIter; i++ {
		jd := JulianDay(utcMidnight) + minutes/1440
		next, stillOK := solarEventMinutes(loc, jd, kind)
		if !stillOK {
			return time.Time{}, false, nil
		}
		if math.Abs(next-minutes) < 0.5/60 {
			minutes = next
			break
		}
		minutes = next
	}

	utc := utcMidnight.Add(time.Duration(minutes * float64(time.Minute)))
	return utc.In(date.Location()), true, nil
}

// solarEventMinutes returns the event time as minutes from UTC midnight of
// the anchor date, evaluating the solar model at jd.
func solarEventMinutes(loc Location, jd float64, kind SolarEventKind) (float64, bool) {
	sc := solarModel(JulianCenturies(jd))

	noon := 720 - 4*loc.Lon - sc.eqTimeMin
	if kind == SolarNoon {
		return noon, true
	}

	h0 := kind.TargetAltitude() - horizonDipDeg(loc.ElevM)
	latRad := loc.Lat * degToRad
	decRad := sc.decl * degToRad

	cosHA := (math.Sin(h0*degToRad) - math.Sin(latRad)*math.Sin(decRad)) /
		(math.Cos(latRad) * math.Cos(decRad))
	if cosHA < -1 || cosHA > 1 {
		// Sun never reaches h0 today: polar day or polar night for this
		// threshold.
		return 0, false
	}
	ha := math.Acos(cosHA) * radToDeg

	if kind.IsMorning() {
		return noon - 4*ha, true
	}
	return noon + 4*ha, true
}
