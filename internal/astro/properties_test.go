package astro

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// randomCase draws an observer inside |lat| <= 65 and a date in [1900, 2100].
func randomCase(rng *rand.Rand) (Location, time.Time) {
	loc := Location{
		Lat: rng.Float64()*130 - 65,
		Lon: rng.Float64()*360 - 180,
	}
	if loc.Lon <= -180 {
		loc.Lon = 180
	}
	year := 1900 + rng.Intn(201)
	day := 1 + rng.Intn(365)
	date := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
	return loc, date
}

func TestSolarEventOrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		loc, date := randomCase(rng)

		var prev time.Time
		havePrev := false
		for _, kind := range SolarEventKinds {
			at, ok, err := SolarEventTime(loc, date, kind)
			if err != nil {
				t.Fatalf("case %d %s: %v", i, kind, err)
			}
			if !ok {
				// Absent events break the chain but not the ordering of the
				// rest.
				havePrev = false
				continue
			}
			if havePrev && at.Before(prev) {
				t.Errorf("case %d (lat %.2f, %s): %s at %s precedes previous event %s",
					i, loc.Lat, date.Format("2006-01-02"), kind, at, prev)
			}
			prev, havePrev = at, true
		}
	}
}

func TestTwilightNesting(t *testing.T) {
	// Wherever both are defined, a deeper twilight threshold starts earlier
	// in the morning and ends later in the evening than a shallower one.
	rng := rand.New(rand.NewSource(7))

	morning := []SolarEventKind{AstronomicalDawn, NauticalDawn, CivilDawn, Sunrise}
	evening := []SolarEventKind{Sunset, CivilDusk, NauticalDusk, AstronomicalDusk}

	for i := 0; i < 100; i++ {
		loc, date := randomCase(rng)

		for j := 1; j < len(morning); j++ {
			a, okA, _ := SolarEventTime(loc, date, morning[j-1])
			b, okB, _ := SolarEventTime(loc, date, morning[j])
			if okA && okB && b.Before(a) {
				t.Errorf("case %d: %s %s before %s %s", i, morning[j], b, morning[j-1], a)
			}
		}
		for j := 1; j < len(evening); j++ {
			a, okA, _ := SolarEventTime(loc, date, evening[j-1])
			b, okB, _ := SolarEventTime(loc, date, evening[j])
			if okA && okB && b.Before(a) {
				t.Errorf("case %d: %s %s before %s %s", i, evening[j], b, evening[j-1], a)
			}
		}
	}
}

func TestLunarEventConvergenceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 60; i++ {
		loc, date := randomCase(rng)

		for _, kind := range []LunarEventKind{Moonrise, Moonset} {
			at, ok, err := LunarEventTime(loc, date, kind)
			if err != nil {
				t.Fatalf("case %d %s: %v", i, kind, err)
			}
			if !ok {
				continue
			}
			if e := moonAltError(loc, at); math.Abs(e) > 0.01 {
				t.Errorf("case %d (lat %.2f, %s): %s altitude error %.4f°",
					i, loc.Lat, date.Format("2006-01-02"), kind, e)
			}
		}
	}
}

func TestPositionsFiniteProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 300; i++ {
		loc, date := randomCase(rng)
		at := date.Add(time.Duration(rng.Intn(86400)) * time.Second)

		sun := SunPositionAt(loc, at)
		moon := MoonPositionAt(loc, at)

		for _, v := range []float64{
			sun.Altitude, sun.Azimuth,
			moon.Altitude, moon.Azimuth, moon.DistanceKm,
			moon.Illuminated, moon.PhaseAngle, moon.DiameterArcmin, moon.AgeDays,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("case %d: non-finite value in positions (lat %.2f lon %.2f %s)",
					i, loc.Lat, loc.Lon, at)
			}
		}
		if sun.Azimuth < 0 || sun.Azimuth >= 360 || moon.Azimuth < 0 || moon.Azimuth >= 360 {
			t.Errorf("case %d: azimuth out of range", i)
		}
		if sun.Altitude > 90 || moon.Altitude > 90 {
			t.Errorf("case %d: altitude above zenith", i)
		}
	}
}

func TestJulianRoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		year := -999 + rng.Intn(4000)
		at := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, rng.Intn(365)).
			Add(time.Duration(rng.Intn(86400)) * time.Second)

		got := TimeFromJulianDay(JulianDay(at))
		diff := got.Sub(at)
		if diff < 0 {
			diff = -diff
		}
		if diff > time.Second {
			t.Errorf("round trip of %v drifted by %v", at, diff)
		}
	}
}
