package astro

import (
	"math"
	"time"
)

// j2000 is the Julian Day of the J2000.0 epoch (2000 January 1, 12:00 UT).
const j2000 = 2451545.0

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// JulianDay converts a time (taken as UTC) to a Julian Day number.
// Uses the standard algorithm for the proleptic Gregorian calendar and
// accepts astronomical year numbering, so BCE dates work (year 0 = 1 BCE).
func JulianDay(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24

	// January/February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// JulianCenturies returns the Julian centuries elapsed since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - j2000) / 36525.0
}

// TimeFromJulianDay converts a Julian Day back to a UTC time, to nanosecond
// resolution. Inverse of JulianDay for the proleptic Gregorian calendar.
func TimeFromJulianDay(jd float64) time.Time {
	jd0 := jd + 0.5
	z := math.Floor(jd0)
	f := jd0 - z

	// The Gregorian correction applies for all z: the calendar is proleptic,
	// matching JulianDay, with no Julian-calendar branch before 1582.
	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a := z + 1 + alpha - math.Floor(alpha/4)

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e)

	month := e - 1
	if e >= 14 {
		month = e - 13
	}
	year := c - 4716
	if month <= 2 {
		year = c - 4715
	}

	secs := f * 86400
	whole := math.Floor(secs)
	nanos := (secs - whole) * 1e9

	return time.Date(int(year), time.Month(month), int(day), 0, 0, int(whole), int(math.Round(nanos)), time.UTC)
}

// normalize360 reduces an angle in degrees to [0, 360).
func normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// normalize180 reduces an angle in degrees to (-180, +180].
func normalize180(deg float64) float64 {
	deg = normalize360(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// clampUnit clamps an inverse-trig argument to [-1, 1]. Well-formed inputs
// only exceed the range by floating-point noise; anything past 1e-9 would
// indicate a model bug, but the clamp keeps NaN from escaping either way.
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// validYear reports whether a civil year is inside the supported envelope.
func validYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}
