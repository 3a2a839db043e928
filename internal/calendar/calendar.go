// Package calendar batches the per-date ephemeris into rows suitable for
// JSON and HTML rendering. Each civil date is evaluated independently, so
// ranges parallelize across a worker pool without coordination.
package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/FunKite/astrotimes/internal/astro"
)

// PhaseEvent is a principal lunar phase attributed to a civil date.
type PhaseEvent struct {
	Kind  string `json:"kind"`
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

// Row is one civil date of the calendar. Event fields hold local wall-clock
// times ("15:04"); nil marks an event that does not occur on that date
// (polar day/night, or a lunar event skipped by the Moon's drift).
type Row struct {
	Date             string       `json:"date"`
	Sunrise          *string      `json:"sunrise"`
	SolarNoon        *string      `json:"solar_noon"`
	Sunset           *string      `json:"sunset"`
	CivilDawn        *string      `json:"civil_dawn"`
	CivilDusk        *string      `json:"civil_dusk"`
	NauticalDawn     *string      `json:"nautical_dawn"`
	NauticalDusk     *string      `json:"nautical_dusk"`
	AstronomicalDawn *string      `json:"astronomical_dawn"`
	AstronomicalDusk *string      `json:"astronomical_dusk"`
	Moonrise         *string      `json:"moonrise"`
	Moonset          *string      `json:"moonset"`
	MoonTransit      *string      `json:"moon_transit"`
	PhaseEvents      []PhaseEvent `json:"phase_events,omitempty"`
	PhaseName        string       `json:"phase_name"`
	PhaseEmoji       string       `json:"phase_emoji"`
	IlluminationPct  float64      `json:"illumination_pct"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Generate builds one Row per civil date in [start, end] (inclusive,
// interpreted in tz), sequentially.
func Generate(loc astro.Location, tz *time.Location, start, end time.Time) ([]Row, error) {
	days, phases, err := prepare(tz, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(days))
	for i, day := range days {
		rows[i] = buildRow(loc, tz, day, phases)
	}
	return rows, nil
}

// GenerateParallel is Generate with dates fanned across a worker pool.
// workers <= 0 selects GOMAXPROCS. Output ordering matches Generate exactly.
func GenerateParallel(loc astro.Location, tz *time.Location, start, end time.Time, workers int) ([]Row, error) {
	days, phases, err := prepare(tz, start, end)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(days) {
		workers = len(days)
	}

	rows := make([]Row, len(days))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows[i] = buildRow(loc, tz, days[i], phases)
			}
		}()
	}
	for i := range days {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return rows, nil
}

// prepare validates the range, expands it into civil dates, and computes the
// principal phases once for the whole span keyed by local civil date.
func prepare(tz *time.Location, start, end time.Time) ([]time.Time, map[string][]PhaseEvent, error) {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, tz)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, tz)

	if startDay.Year() < astro.MinYear || endDay.Year() > astro.MaxYear {
		return nil, nil, fmt.Errorf("%w: %d..%d", astro.ErrDateOutOfRange, startDay.Year(), endDay.Year())
	}
	if endDay.Before(startDay) {
		return nil, nil, fmt.Errorf("%w: %s after %s", astro.ErrInvalidDateRange,
			startDay.Format(dateLayout), endDay.Format(dateLayout))
	}

	var days []time.Time
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	// One phase pass over the span, padded a day either side so a phase near
	// midnight lands on the right local date.
	instants, err := astro.PhasesInRange(startDay.AddDate(0, 0, -1), endDay.AddDate(0, 0, 2))
	if err != nil {
		return nil, nil, err
	}
	phases := make(map[string][]PhaseEvent)
	for _, p := range instants {
		local := p.Time.In(tz)
		key := local.Format(dateLayout)
		phases[key] = append(phases[key], PhaseEvent{
			Kind:  p.Kind.String(),
			UTC:   p.Time.UTC().Format(time.RFC3339),
			Local: local.Format("15:04:05"),
		})
	}
	return days, phases, nil
}

func buildRow(loc astro.Location, tz *time.Location, day time.Time, phases map[string][]PhaseEvent) Row {
	row := Row{Date: day.Format(dateLayout)}

	set := func(dst **string, at time.Time, ok bool) {
		if !ok {
			return
		}
		s := at.In(tz).Format(timeLayout)
		*dst = &s
	}

	solar := []struct {
		kind astro.SolarEventKind
		dst  **string
	}{
		{astro.Sunrise, &row.Sunrise},
		{astro.SolarNoon, &row.SolarNoon},
		{astro.Sunset, &row.Sunset},
		{astro.CivilDawn, &row.CivilDawn},
		{astro.CivilDusk, &row.CivilDusk},
		{astro.NauticalDawn, &row.NauticalDawn},
		{astro.NauticalDusk, &row.NauticalDusk},
		{astro.AstronomicalDawn, &row.AstronomicalDawn},
		{astro.AstronomicalDusk, &row.AstronomicalDusk},
	}
	for _, ev := range solar {
		at, ok, err := astro.SolarEventTime(loc, day, ev.kind)
		if err == nil {
			set(ev.dst, at, ok)
		}
	}

	lunar := []struct {
		kind astro.LunarEventKind
		dst  **string
	}{
		{astro.Moonrise, &row.Moonrise},
		{astro.Moonset, &row.Moonset},
		{astro.MoonTransit, &row.MoonTransit},
	}
	for _, ev := range lunar {
		at, ok, err := astro.LunarEventTime(loc, day, ev.kind)
		if err == nil {
			set(ev.dst, at, ok)
		}
	}

	// Illumination and phase name are sampled at local noon of the date.
	noon := day.Add(12 * time.Hour)
	pos := astro.MoonPositionAt(loc, noon)
	row.PhaseName = astro.PhaseName(pos.PhaseAngle)
	row.PhaseEmoji = astro.PhaseEmoji(pos.PhaseAngle)
	row.IlluminationPct = pos.Illuminated * 100

	row.PhaseEvents = phases[row.Date]
	return row
}

// WriteJSON renders the rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
