package astro

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// PhaseKind identifies one of the four principal lunar phases.
type PhaseKind int

const (
	NewMoon PhaseKind = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

func (k PhaseKind) String() string {
	switch k {
	case NewMoon:
		return "New Moon"
	case FirstQuarter:
		return "First Quarter"
	case FullMoon:
		return "Full Moon"
	case LastQuarter:
		return "Last Quarter"
	default:
		return fmt.Sprintf("PhaseKind(%d)", int(k))
	}
}

// Emoji returns the glyph for the principal phase.
func (k PhaseKind) Emoji() string {
	switch k {
	case NewMoon:
		return "🌑"
	case FirstQuarter:
		return "🌓"
	case FullMoon:
		return "🌕"
	case LastQuarter:
		return "🌗"
	default:
		return "🌑"
	}
}

// kOffset is the fractional lunation offset of the phase within the Meeus
// ch. 49 k series.
func (k PhaseKind) kOffset() float64 {
	switch k {
	case FirstQuarter:
		return 0.25
	case FullMoon:
		return 0.5
	case LastQuarter:
		return 0.75
	default:
		return 0
	}
}

// PhaseInstant is one principal phase and the instant it occurs.
type PhaseInstant struct {
	Kind PhaseKind
	Time time.Time
}

// phaseTerm is one periodic correction row: integer multipliers of
// (M, M', F, Omega), the eccentricity power applied (0, 1, or 2), and the
// amplitude in days.
type phaseTerm struct {
	m, mp, f, om int
	ePow         int
	coef         float64
}

// newMoonTerms are the Meeus ch. 49 corrections for New Moon.
var newMoonTerms = []phaseTerm{
	{0, 1, 0, 0, 0, -0.40720},
	{1, 0, 0, 0, 1, 0.17241},
	{0, 2, 0, 0, 0, 0.01608},
	{0, 0, 2, 0, 0, 0.01039},
	{-1, 1, 0, 0, 1, 0.00739},
	{1, 1, 0, 0, 1, -0.00514},
	{2, 0, 0, 0, 2, 0.00208},
	{0, 1, -2, 0, 0, -0.00111},
	{0, 1, 2, 0, 0, -0.00057},
	{1, 2, 0, 0, 1, 0.00056},
	{0, 3, 0, 0, 0, -0.00042},
	{1, 0, 2, 0, 1, 0.00042},
	{1, 0, -2, 0, 1, 0.00038},
	{-1, 2, 0, 0, 1, -0.00024},
	{0, 0, 0, 1, 0, -0.00017},
	{2, 1, 0, 0, 0, -0.00007},
	{0, 2, -2, 0, 0, 0.00004},
	{3, 0, 0, 0, 0, 0.00004},
	{1, 1, -2, 0, 0, 0.00003},
	{0, 2, 2, 0, 0, 0.00003},
	{1, 1, 2, 0, 0, -0.00003},
	{-1, 1, 2, 0, 0, 0.00003},
	{-1, 1, -2, 0, 0, -0.00002},
	{1, 3, 0, 0, 0, -0.00002},
	{0, 4, 0, 0, 0, 0.00002},
}

// fullMoonTerms match newMoonTerms except for the first seven amplitudes.
var fullMoonTerms = []phaseTerm{
	{0, 1, 0, 0, 0, -0.40614},
	{1, 0, 0, 0, 1, 0.17302},
	{0, 2, 0, 0, 0, 0.01614},
	{0, 0, 2, 0, 0, 0.01043},
	{-1, 1, 0, 0, 1, 0.00734},
	{1, 1, 0, 0, 1, -0.00515},
	{2, 0, 0, 0, 2, 0.00209},
	{0, 1, -2, 0, 0, -0.00111},
	{0, 1, 2, 0, 0, -0.00057},
	{1, 2, 0, 0, 1, 0.00056},
	{0, 3, 0, 0, 0, -0.00042},
	{1, 0, 2, 0, 1, 0.00042},
	{1, 0, -2, 0, 1, 0.00038},
	{-1, 2, 0, 0, 1, -0.00024},
	{0, 0, 0, 1, 0, -0.00017},
	{2, 1, 0, 0, 0, -0.00007},
	{0, 2, -2, 0, 0, 0.00004},
	{3, 0, 0, 0, 0, 0.00004},
	{1, 1, -2, 0, 0, 0.00003},
	{0, 2, 2, 0, 0, 0.00003},
	{1, 1, 2, 0, 0, -0.00003},
	{-1, 1, 2, 0, 0, 0.00003},
	{-1, 1, -2, 0, 0, -0.00002},
	{1, 3, 0, 0, 0, -0.00002},
	{0, 4, 0, 0, 0, 0.00002},
}

// quarterTerms are the shared corrections for first and last quarter; the
// W term then splits the two.
var quarterTerms = []phaseTerm{
	{0, 1, 0, 0, 0, -0.62801},
	{1, 0, 0, 0, 1, 0.17172},
	{1, 1, 0, 0, 1, -0.01183},
	{0, 2, 0, 0, 0, 0.00862},
	{0, 0, 2, 0, 0, 0.00804},
	{-1, 1, 0, 0, 1, 0.00454},
	{2, 0, 0, 0, 2, 0.00204},
	{0, 1, -2, 0, 0, -0.00180},
	{0, 1, 2, 0, 0, -0.00070},
	{0, 3, 0, 0, 0, -0.00040},
	{-1, 2, 0, 0, 1, -0.00034},
	{1, 0, 2, 0, 1, 0.00032},
	{1, 0, -2, 0, 1, 0.00032},
	{2, 1, 0, 0, 2, -0.00028},
	{1, 2, 0, 0, 1, 0.00027},
	{0, 0, 0, 1, 0, -0.00017},
	{-1, 1, -2, 0, 0, -0.00005},
	{0, 2, 2, 0, 0, 0.00004},
	{1, 1, 2, 0, 0, -0.00004},
	{-2, 1, 0, 0, 0, 0.00004},
	{1, 1, -2, 0, 0, 0.00003},
	{3, 0, 0, 0, 0, 0.00003},
	{0, 2, -2, 0, 0, 0.00002},
	{-1, 1, 2, 0, 0, 0.00002},
	{1, 3, 0, 0, 0, -0.00002},
}

// planetaryTerm is one row of the additional-correction table: a mean
// angle at k = 0, its rate per lunation, and the amplitude in days. The
// quadratic T term applies only to the first row.
type planetaryTerm struct {
	base, rate, coef float64
}

var planetaryTerms = []planetaryTerm{
	{299.77, 0.107408, 0.000325},
	{251.88, 0.016321, 0.000165},
	{251.83, 26.651886, 0.000164},
	{349.42, 36.412478, 0.000126},
	{84.66, 18.206239, 0.000110},
	{141.74, 53.303771, 0.000062},
	{207.14, 2.453732, 0.000060},
	{154.84, 7.306860, 0.000056},
	{34.52, 27.261239, 0.000047},
	{207.19, 0.121824, 0.000042},
	{291.34, 1.844379, 0.000040},
	{161.72, 24.198154, 0.000037},
	{239.56, 25.513099, 0.000035},
	{331.55, 3.592518, 0.000023},
}

// phaseInstantUTC computes the instant of the phase at lunation number k
// (k integer at New Moon, offset per kind), in UTC.
func phaseInstantUTC(k float64, kind PhaseKind) time.Time {
	T := k / 1236.85

	jde := 2451550.09766 + 29.530588861*k +
		T*T*(0.00015437+T*(-0.000000150+T*0.00000000073))

	e := 1 - 0.002516*T - 0.0000074*T*T

	m := normalize360(2.5534 + 29.10535670*k - T*T*(0.0000014+0.00000011*T)) * degToRad
	mp := normalize360(201.5643 + 385.81693528*k +
		T*T*(0.0107582+T*(0.00001238-T*0.000000058))) * degToRad
	f := normalize360(160.7108 + 390.67050284*k -
		T*T*(0.0016118+T*(0.00000227-T*0.000000011))) * degToRad
	om := normalize360(124.7746 - 1.56375588*k + T*T*(0.0020672+0.00000215*T)) * degToRad

	var table []phaseTerm
	switch kind {
	case NewMoon:
		table = newMoonTerms
	case FullMoon:
		table = fullMoonTerms
	default:
		table = quarterTerms
	}

	var corr float64
	for _, t := range table {
		amp := t.coef
		switch t.ePow {
		case 1:
			amp *= e
		case 2:
			amp *= e * e
		}
		arg := float64(t.m)*m + float64(t.mp)*mp + float64(t.f)*f + float64(t.om)*om
		corr += amp * math.Sin(arg)
	}

	if kind == FirstQuarter || kind == LastQuarter {
		w := 0.00306 - 0.00038*e*math.Cos(m) + 0.00026*math.Cos(mp) -
			0.00002*math.Cos(mp-m) + 0.00002*math.Cos(mp+m) + 0.00002*math.Cos(2*f)
		if kind == FirstQuarter {
			corr += w
		} else {
			corr -= w
		}
	}

	var planetary float64
	for i, pt := range planetaryTerms {
		a := pt.base + pt.rate*k
		if i == 0 {
			a -= 0.009173 * T * T
		}
		planetary += pt.coef * math.Sin(normalize360(a)*degToRad)
	}

	jde += corr + planetary

	// JDE is in Terrestrial Time; shift to UT.
	t := TimeFromJulianDay(jde)
	year := float64(t.Year()) + float64(t.YearDay())/365.25
	return TimeFromJulianDay(jde - DeltaT(year)/86400)
}

// PhasesInRange returns every principal phase instant in [start, end),
// chronologically ordered, expressed in start's zone.
func PhasesInRange(start, end time.Time) ([]PhaseInstant, error) {
	if !validYear(start.Year()) || !validYear(end.Year()) {
		return nil, fmt.Errorf("%w: range %d..%d", ErrDateOutOfRange, start.Year(), end.Year())
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end precedes start", ErrInvalidDateRange)
	}

	// Approximate lunation number at the range start, backed off one so a
	// phase just before the first New Moon estimate is not missed.
	yearFrac := float64(start.Year()) + float64(start.YearDay())/365.25
	k0 := math.Floor((yearFrac-2000)*12.3685) - 1

	kinds := []PhaseKind{NewMoon, FirstQuarter, FullMoon, LastQuarter}
	var out []PhaseInstant
	for k := k0; ; k++ {
		pastEnd := true
		for _, kind := range kinds {
			t := phaseInstantUTC(k+kind.kOffset(), kind)
			if t.Before(end) {
				pastEnd = false
			}
			if !t.Before(start) && t.Before(end) {
				out = append(out, PhaseInstant{Kind: kind, Time: t.In(start.Location())})
			}
		}
		if pastEnd {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// PhasesForMonth returns the principal phases falling within a calendar
// month of the given zone.
func PhasesForMonth(year int, month time.Month, tz *time.Location) ([]PhaseInstant, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, tz)
	return PhasesInRange(start, start.AddDate(0, 1, 0))
}

// NextPhase returns the first principal phase at or after t.
func NextPhase(t time.Time) (PhaseInstant, error) {
	phases, err := PhasesInRange(t, t.AddDate(0, 0, 10))
	if err != nil {
		return PhaseInstant{}, err
	}
	if len(phases) == 0 {
		return PhaseInstant{}, fmt.Errorf("%w: no phase within 10 days of %s", ErrDateOutOfRange, t)
	}
	return phases[0], nil
}
