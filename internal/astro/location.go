// Package astro computes sun and moon ephemerides for a ground observer:
// positions, rise/set/twilight times, lunar phases, and the supporting
// Julian-day and coordinate machinery.
//
// Solar calculations follow NOAA's polynomial expansions; lunar calculations
// follow Meeus, "Astronomical Algorithms" (2nd ed.), chapters 47-49, with
// full periodic-term tables, nutation, and topocentric parallax. All public
// entry points are pure functions over value types; the package owns no
// mutable state beyond constant tables.
package astro

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors. Inputs that are well-typed but outside the model's validity
// envelope surface as one of these (possibly wrapped); "no such event"
// outcomes are not errors and are reported as a (time, ok) pair instead.
var (
	ErrInvalidLatitude    = errors.New("latitude out of range [-90, +90]")
	ErrInvalidLongitude   = errors.New("longitude out of range (-180, +180]")
	ErrDateOutOfRange     = errors.New("date outside astronomical years [-999, +3000]")
	ErrAmbiguousLocalTime = errors.New("local time is ambiguous or nonexistent in this zone")
	ErrInvalidDateRange   = errors.New("end date precedes start date")
)

// MinYear and MaxYear bound the supported date range, in astronomical year
// numbering (year 0 = 1 BCE).
const (
	MinYear = -999
	MaxYear = 3000
)

// Location is an observer's geodetic position. Latitude is north-positive,
// longitude east-positive, elevation in meters above sea level. Immutable
// once constructed.
type Location struct {
	Lat   float64
	Lon   float64
	ElevM float64
}

// NewLocation validates and constructs a Location. Elevation below zero is
// treated as sea level (the horizon-dip term is only defined for h >= 0).
func NewLocation(lat, lon, elevM float64) (Location, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidLatitude, lat)
	}
	if math.IsNaN(lon) || lon <= -180 || lon > 180 {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidLongitude, lon)
	}
	if math.IsNaN(elevM) || elevM < 0 {
		elevM = 0
	}
	return Location{Lat: lat, Lon: lon, ElevM: elevM}, nil
}
