package astro

import "math"

// earthRadiusKm is the equatorial radius used for parallax and horizon dip.
const earthRadiusKm = 6378.14

// greenwichMeanSiderealTime returns GMST in degrees for a UT Julian Day
// (IAU 1982 polynomial, Meeus eq. 12.4).
func greenwichMeanSiderealTime(jd float64) float64 {
	T := JulianCenturies(jd)
	gmst := 280.46061837 +
		360.98564736629*(jd-j2000) +
		0.000387933*T*T -
		T*T*T/38710000.0
	return normalize360(gmst)
}

// apparentSiderealTime returns Greenwich apparent sidereal time in degrees,
// GMST corrected by the equation of the equinoxes.
func apparentSiderealTime(jd float64) float64 {
	T := JulianCenturies(jd)
	dPsi, dEps := nutation(T)
	eps := meanObliquity(T) + dEps
	return normalize360(greenwichMeanSiderealTime(jd) + dPsi*math.Cos(eps*degToRad))
}

// localSiderealTime returns the local apparent sidereal time in degrees for
// an east-positive longitude.
func localSiderealTime(jd, lonDeg float64) float64 {
	return normalize360(apparentSiderealTime(jd) + lonDeg)
}

// altAz converts an hour angle and declination to horizontal coordinates for
// an observer latitude. All arguments and results in degrees; azimuth is
// measured 0 = north, 90 = east.
//
// The azimuth comes from atan2 of independent sine/cosine components; the
// acos-of-ratio form loses the sign of H and goes unstable near the zenith.
func altAz(latDeg, decDeg, haDeg float64) (alt, az float64) {
	lat := latDeg * degToRad
	dec := decDeg * degToRad
	ha := haDeg * degToRad

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
	alt = math.Asin(clampUnit(sinAlt)) * radToDeg

	// Meeus eq. 13.5 measures azimuth from south; rotate to north-based.
	azSouth := math.Atan2(math.Sin(ha), math.Cos(ha)*math.Sin(lat)-math.Tan(dec)*math.Cos(lat))
	az = normalize360(azSouth*radToDeg + 180)
	return alt, az
}

// refractionDeg returns the Bennett atmospheric refraction in degrees for a
// true altitude in degrees. Below -1 deg the formula is held at its horizon
// value; a body that far down is not meaningfully refracted into view.
func refractionDeg(trueAltDeg float64) float64 {
	h := trueAltDeg
	if h < -1 {
		h = -1
	}
	rArcmin := 1.02 / math.Tan((h+10.3/(h+5.11))*degToRad)
	if rArcmin < 0 {
		rArcmin = 0
	}
	return rArcmin / 60
}

// horizonDipDeg returns the horizon depression in degrees for an observer
// elevation in meters: acos(R/(R+h)), about 0.0353 deg * sqrt(h).
func horizonDipDeg(elevM float64) float64 {
	if elevM <= 0 {
		return 0
	}
	r := earthRadiusKm * 1000
	return math.Acos(clampUnit(r/(r+elevM))) * radToDeg
}
