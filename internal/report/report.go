// Package report assembles the point-in-time snapshot consumed by the TUI
// and the --json output: current positions, today's event schedule with the
// next event flagged, the moon detail block, and the month's phase list.
package report

import (
	"encoding/json"
	"io"
	"math"
	"sort"
	"time"

	"github.com/FunKite/astrotimes/internal/astro"
)

// Snapshot is the schema-stable JSON record. Field additions are
// non-breaking; existing names never change.
type Snapshot struct {
	Location    LocationInfo `json:"location"`
	Datetime    DatetimeInfo `json:"datetime"`
	Events      []Event      `json:"events"`
	Positions   Positions    `json:"positions"`
	Moon        MoonInfo     `json:"moon"`
	LunarPhases []LunarPhase `json:"lunar_phases"`
}

type LocationInfo struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	ElevM float64 `json:"elev,omitempty"`
	City  string  `json:"city,omitempty"`
}

type DatetimeInfo struct {
	Local            string `json:"local"`
	TZName           string `json:"tz_name"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
}

// Event is one horizon event of the current civil date. SecondsFromNow is
// negative for events already past; IsNext marks the soonest future event.
type Event struct {
	Kind           string `json:"kind"`
	UTC            string `json:"utc"`
	Local          string `json:"local"`
	SecondsFromNow int64  `json:"seconds_from_now"`
	IsNext         bool   `json:"is_next"`

	at time.Time
}

type BodyPosition struct {
	AltDeg     float64 `json:"alt_deg"`
	AzDeg      float64 `json:"az_deg"`
	AzCardinal string  `json:"az_cardinal"`
}

type Positions struct {
	Sun  BodyPosition `json:"sun"`
	Moon BodyPosition `json:"moon"`
}

type MoonInfo struct {
	PhaseName       string  `json:"phase_name"`
	PhaseEmoji      string  `json:"phase_emoji"`
	PhaseAngleDeg   float64 `json:"phase_angle_deg"`
	IlluminationPct float64 `json:"illumination_pct"`
	DistanceKm      float64 `json:"distance_km"`
	DiameterArcmin  float64 `json:"apparent_diameter_arcmin"`
	SizeCategory    string  `json:"size_category"`
	AgeDays         float64 `json:"age_days"`
}

type LunarPhase struct {
	Kind  string `json:"kind"`
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

var cardinals = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Cardinal maps an azimuth to its 16-wind compass point.
func Cardinal(azDeg float64) string {
	idx := int(math.Round(azDeg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return cardinals[idx]
}

// SizeCategory bins the Moon's distance relative to its orbit. The mean
// distance is 384,400 km; perigee ~356,500 km, apogee ~406,700 km.
func SizeCategory(distanceKm float64) string {
	switch {
	case distanceKm < 370000:
		return "Near Perigee (appears larger)"
	case distanceKm < 381000:
		return "Closer Than Average"
	case distanceKm < 388000:
		return "Average Distance"
	case distanceKm < 399000:
		return "Farther Than Average"
	default:
		return "Near Apogee (appears smaller)"
	}
}

// Build evaluates the full snapshot at now for an observer in tz. Pure: the
// clock instant is an argument, never read from the system.
func Build(loc astro.Location, tz *time.Location, now time.Time, city string) Snapshot {
	local := now.In(tz)
	_, offset := local.Zone()

	snap := Snapshot{
		Location: LocationInfo{Lat: loc.Lat, Lon: loc.Lon, ElevM: loc.ElevM, City: city},
		Datetime: DatetimeInfo{
			Local:            local.Format(time.RFC3339),
			TZName:           tz.String(),
			UTCOffsetSeconds: offset,
		},
	}

	snap.Events = collectEvents(loc, local, now)

	sun := astro.SunPositionAt(loc, now)
	moon := astro.MoonPositionAt(loc, now)
	snap.Positions = Positions{
		Sun:  BodyPosition{AltDeg: sun.Altitude, AzDeg: sun.Azimuth, AzCardinal: Cardinal(sun.Azimuth)},
		Moon: BodyPosition{AltDeg: moon.Altitude, AzDeg: moon.Azimuth, AzCardinal: Cardinal(moon.Azimuth)},
	}
	snap.Moon = MoonInfo{
		PhaseName:       astro.PhaseName(moon.PhaseAngle),
		PhaseEmoji:      astro.PhaseEmoji(moon.PhaseAngle),
		PhaseAngleDeg:   moon.PhaseAngle,
		IlluminationPct: moon.Illuminated * 100,
		DistanceKm:      moon.DistanceKm,
		DiameterArcmin:  moon.DiameterArcmin,
		SizeCategory:    SizeCategory(moon.DistanceKm),
		AgeDays:         moon.AgeDays,
	}

	if phases, err := astro.PhasesForMonth(local.Year(), local.Month(), tz); err == nil {
		for _, p := range phases {
			snap.LunarPhases = append(snap.LunarPhases, LunarPhase{
				Kind:  p.Kind.String(),
				UTC:   p.Time.UTC().Format(time.RFC3339),
				Local: p.Time.In(tz).Format(time.RFC3339),
			})
		}
	}

	return snap
}

// collectEvents gathers today's solar and lunar events in ascending order
// and marks the next upcoming one.
func collectEvents(loc astro.Location, date, now time.Time) []Event {
	var events []Event

	add := func(kind string, at time.Time, ok bool, err error) {
		if err != nil || !ok {
			return
		}
		events = append(events, Event{
			Kind:           kind,
			UTC:            at.UTC().Format(time.RFC3339),
			Local:          at.Format(time.RFC3339),
			SecondsFromNow: int64(at.Sub(now).Seconds()),
			at:             at,
		})
	}

	for _, kind := range astro.SolarEventKinds {
		at, ok, err := astro.SolarEventTime(loc, date, kind)
		add(kind.String(), at, ok, err)
	}
	for _, kind := range []astro.LunarEventKind{astro.Moonrise, astro.Moonset, astro.MoonTransit} {
		at, ok, err := astro.LunarEventTime(loc, date, kind)
		add(kind.String(), at, ok, err)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

	for i := range events {
		if events[i].SecondsFromNow > 0 {
			events[i].IsNext = true
			break
		}
	}
	return events
}

// NextEvent returns the event flagged IsNext, if any.
func (s Snapshot) NextEvent() (Event, bool) {
	for _, e := range s.Events {
		if e.IsNext {
			return e, true
		}
	}
	return Event{}, false
}

// WriteJSON renders the snapshot as indented JSON.
func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
