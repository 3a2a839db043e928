package astro

import (
	"math"
	"time"
)

// astronomicalUnitKm is one AU in kilometers.
const astronomicalUnitKm = 149597870.7

// SunPosition is the Sun's refraction-corrected horizontal position.
// Azimuth is measured from north through east.
type SunPosition struct {
	Altitude float64
	Azimuth  float64
}

// solarCoords bundles the NOAA solar model outputs for one instant.
// All angles in degrees, the equation of time in minutes.
type solarCoords struct {
	meanLon    float64 // geometric mean longitude L0
	meanAnom   float64 // mean anomaly M
	eccent     float64 // orbital eccentricity e
	trueLon    float64 // true longitude
	apparLon   float64 // apparent longitude (aberration + nutation in Omega)
	obliquity  float64 // corrected obliquity epsilon
	decl       float64 // declination
	rightAsc   float64 // right ascension, [0, 360)
	eqTimeMin  float64 // equation of time, minutes
	distanceKm float64 // Earth-Sun distance
}

// solarModel evaluates the NOAA polynomial chain at Julian centuries T.
func solarModel(T float64) solarCoords {
	l0 := normalize360(280.46646 + T*(36000.76983+T*0.0003032))
	m := 357.52911 + T*(35999.05029-T*0.0001537)
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)

	mRad := m * degToRad
	c := math.Sin(mRad)*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(2*mRad)*(0.019993-T*0.000101) +
		math.Sin(3*mRad)*0.000289

	trueLon := l0 + c
	omega := 125.04 - 1934.136*T
	apparLon := trueLon - 0.00569 - 0.00478*math.Sin(omega*degToRad)

	eps := meanObliquity(T) + 0.00256*math.Cos(omega*degToRad)

	lonRad := apparLon * degToRad
	epsRad := eps * degToRad

	decl := math.Asin(clampUnit(math.Sin(epsRad)*math.Sin(lonRad))) * radToDeg
	ra := normalize360(math.Atan2(math.Cos(epsRad)*math.Sin(lonRad), math.Cos(lonRad)) * radToDeg)

	// Equation of time as the gap between mean longitude and apparent RA,
	// the 0.0057183 deg constant being the aberration + light-time offset.
	// normalize180 keeps the wrapped difference small; the physical value
	// never leaves (-20, +20) minutes.
	eqTime := 4 * normalize180(l0-0.0057183-ra)

	// Radius vector (Meeus eq. 25.5) via the true anomaly.
	nu := (m + c) * degToRad
	rAU := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))

	return solarCoords{
		meanLon:    l0,
		meanAnom:   normalize360(m),
		eccent:     e,
		trueLon:    trueLon,
		apparLon:   apparLon,
		obliquity:  eps,
		decl:       decl,
		rightAsc:   ra,
		eqTimeMin:  eqTime,
		distanceKm: rAU * astronomicalUnitKm,
	}
}

// SunPositionAt returns the Sun's topocentric altitude and azimuth for an
// observer at loc. Solar parallax (<9 arcsec) is ignored; refraction is
// applied for altitudes where it is meaningful.
func SunPositionAt(loc Location, t time.Time) SunPosition {
	jd := JulianDay(t)
	sc := solarModel(JulianCenturies(jd))

	lst := localSiderealTime(jd, loc.Lon)
	ha := normalize180(lst - sc.rightAsc)

	alt, az := altAz(loc.Lat, sc.decl, ha)
	alt += refractionDeg(alt)
	if alt > 90 {
		alt = 90
	}
	return SunPosition{Altitude: alt, Azimuth: az}
}
