package astro

import (
	"math"
	"time"
)

const (
	moonMeanRadiusKm = 1737.4
	// SynodicMonth is the mean length of a lunation in days.
	SynodicMonth = 29.530588
)

// MoonPosition is the Moon's topocentric, refraction-corrected horizontal
// position together with the quantities derived from the same evaluation.
// PhaseAngle uses the 0 = new, 180 = full, 360 = next new convention; Age
// counts days since new moon.
type MoonPosition struct {
	Altitude       float64
	Azimuth        float64
	DistanceKm     float64
	Illuminated    float64 // fraction of the disk lit, [0, 1]
	PhaseAngle     float64 // degrees, [0, 360)
	DiameterArcmin float64
	AgeDays        float64
}

// moonMeanArgs holds the Meeus ch. 47 fundamental arguments in degrees,
// plus the eccentricity scale E.
type moonMeanArgs struct {
	lp, d, m, mp, f, e float64
}

func moonArgs(T float64) moonMeanArgs {
	return moonMeanArgs{
		lp: normalize360(218.3164477 + 481267.88123421*T - 0.0015786*T*T + T*T*T/538841 - T*T*T*T/65194000),
		d:  normalize360(297.8501921 + 445267.1114034*T - 0.0018819*T*T + T*T*T/545868 - T*T*T*T/113065000),
		m:  normalize360(357.5291092 + 35999.0502909*T - 0.0001536*T*T + T*T*T/24490000),
		mp: normalize360(134.9633964 + 477198.8675055*T + 0.0087414*T*T + T*T*T/69699 - T*T*T*T/14712000),
		f:  normalize360(93.2720950 + 483202.0175233*T - 0.0036539*T*T - T*T*T/3526000 + T*T*T*T/863310000),
		e:  1 - 0.002516*T - 0.0000074*T*T,
	}
}

// eScale returns the eccentricity multiplier for a term's M multiplier:
// E for |m| = 1, E^2 for |m| = 2.
func eScale(e float64, m int) float64 {
	switch m {
	case 1, -1:
		return e
	case 2, -2:
		return e * e
	default:
		return 1
	}
}

// moonEcliptic evaluates the full 47.A/47.B series and returns the Moon's
// geocentric ecliptic longitude and latitude (degrees, without nutation)
// and its distance in kilometers.
func moonEcliptic(T float64) (lonDeg, latDeg, distKm float64) {
	a := moonArgs(T)

	dRad := a.d * degToRad
	mRad := a.m * degToRad
	mpRad := a.mp * degToRad
	fRad := a.f * degToRad

	var sumL, sumR, sumB float64
	for _, term := range moonLonDistTable {
		arg := float64(term.d)*dRad + float64(term.m)*mRad + float64(term.mp)*mpRad + float64(term.f)*fRad
		scale := eScale(a.e, term.m)
		sumL += term.sinCoef * scale * math.Sin(arg)
		sumR += term.cosCoef * scale * math.Cos(arg)
	}
	for _, term := range moonLatTable {
		arg := float64(term.d)*dRad + float64(term.m)*mRad + float64(term.mp)*mpRad + float64(term.f)*fRad
		sumB += term.sinCoef * eScale(a.e, term.m) * math.Sin(arg)
	}

	// Additive terms: Venus (A1), Jupiter (A2), and Earth's flattening.
	a1 := normalize360(119.75 + 131.849*T)
	a2 := normalize360(53.09 + 479264.290*T)
	a3 := normalize360(313.45 + 481266.484*T)

	sumL += 3958*math.Sin(a1*degToRad) +
		1962*math.Sin((a.lp-a.f)*degToRad) +
		318*math.Sin(a2*degToRad)
	sumB += -2235*math.Sin(a.lp*degToRad) +
		382*math.Sin(a3*degToRad) +
		175*math.Sin((a1-a.f)*degToRad) +
		175*math.Sin((a1+a.f)*degToRad) +
		127*math.Sin((a.lp-a.mp)*degToRad) -
		115*math.Sin((a.lp+a.mp)*degToRad)

	lonDeg = normalize360(a.lp + sumL/1e6)
	latDeg = sumB / 1e6
	distKm = 385000.56 + sumR/1000
	return lonDeg, latDeg, distKm
}

// moonEquatorial returns the Moon's apparent geocentric right ascension and
// declination (degrees, nutation applied) and distance in km at a UT Julian
// Day.
func moonEquatorial(jd float64) (raDeg, decDeg, distKm float64) {
	T := JulianCenturies(jd)
	lon, lat, dist := moonEcliptic(T)

	dPsi, dEps := nutation(T)
	lon = normalize360(lon + dPsi)
	eps := (meanObliquity(T) + dEps) * degToRad

	lonRad := lon * degToRad
	latRad := lat * degToRad

	ra := math.Atan2(
		math.Sin(lonRad)*math.Cos(eps)-math.Tan(latRad)*math.Sin(eps),
		math.Cos(lonRad),
	)
	dec := math.Asin(clampUnit(
		math.Sin(latRad)*math.Cos(eps) + math.Cos(latRad)*math.Sin(eps)*math.Sin(lonRad),
	))

	return normalize360(ra * radToDeg), dec * radToDeg, dist
}

// topocentric applies the Meeus ch. 40 parallax shift to geocentric RA/Dec
// for an observer, given the local sidereal time. The observer's geocentric
// radius uses the WGS-84 flattening with a = 6378.14 km, f = 1/298.257.
func topocentric(raDeg, decDeg, distKm float64, loc Location, lstDeg float64) (raTopo, decTopo float64) {
	const flattening = 1 - 1/298.257 // polar/equatorial axis ratio b/a

	latRad := loc.Lat * degToRad
	u := math.Atan(flattening * math.Tan(latRad))
	hFrac := loc.ElevM / (earthRadiusKm * 1000)
	rhoSin := flattening*math.Sin(u) + hFrac*math.Sin(latRad)
	rhoCos := math.Cos(u) + hFrac*math.Cos(latRad)

	// sin of the horizontal parallax, sin(pi) = a / Delta.
	sinPar := clampUnit(earthRadiusKm / distKm)
	haRad := normalize180(lstDeg-raDeg) * degToRad
	decRad := decDeg * degToRad

	dAlpha := math.Atan2(
		-rhoCos*sinPar*math.Sin(haRad),
		math.Cos(decRad)-rhoCos*sinPar*math.Cos(haRad),
	)
	decT := math.Atan2(
		(math.Sin(decRad)-rhoSin*sinPar)*math.Cos(dAlpha),
		math.Cos(decRad)-rhoCos*sinPar*math.Cos(haRad),
	)

	return normalize360(raDeg + dAlpha*radToDeg), decT * radToDeg
}

// moonTopoAltitude returns the Moon's true (unrefracted) topocentric
// altitude in degrees and its distance in km. This is the altitude the
// rise/set solver compares against its distance-dependent target.
func moonTopoAltitude(loc Location, t time.Time) (altDeg, distKm float64) {
	jd := JulianDay(t)
	ra, dec, dist := moonEquatorial(jd)
	lst := localSiderealTime(jd, loc.Lon)

	raT, decT := topocentric(ra, dec, dist, loc, lst)
	ha := normalize180(lst - raT)
	alt, _ := altAz(loc.Lat, decT, ha)
	return alt, dist
}

// MoonPositionAt returns the Moon's topocentric position and the derived
// phase, illumination, distance, diameter, and age at an instant.
func MoonPositionAt(loc Location, t time.Time) MoonPosition {
	jd := JulianDay(t)
	T := JulianCenturies(jd)

	ra, dec, dist := moonEquatorial(jd)
	lst := localSiderealTime(jd, loc.Lon)

	raT, decT := topocentric(ra, dec, dist, loc, lst)
	ha := normalize180(lst - raT)
	alt, az := altAz(loc.Lat, decT, ha)
	alt += refractionDeg(alt)
	if alt > 90 {
		alt = 90
	}

	sc := solarModel(T)
	phase, illum := phaseAndIllumination(sc, ra, dec, dist, T)

	diam := 2 * math.Atan(moonMeanRadiusKm/dist) * radToDeg * 60

	return MoonPosition{
		Altitude:       alt,
		Azimuth:        az,
		DistanceKm:     dist,
		Illuminated:    illum,
		PhaseAngle:     phase,
		DiameterArcmin: diam,
		AgeDays:        phase * SynodicMonth / 360,
	}
}

// phaseAndIllumination derives the display phase angle (0 = new -> 360) and
// illuminated fraction from the geocentric positions of Sun and Moon
// (Meeus ch. 48).
func phaseAndIllumination(sc solarCoords, moonRA, moonDec, moonDist, T float64) (phase, illum float64) {
	sunDecRad := sc.decl * degToRad
	moonDecRad := moonDec * degToRad

	// Geocentric elongation of the Moon from the Sun.
	cosPsi := clampUnit(math.Sin(sunDecRad)*math.Sin(moonDecRad) +
		math.Cos(sunDecRad)*math.Cos(moonDecRad)*math.Cos((sc.rightAsc-moonRA)*degToRad))
	psi := math.Acos(cosPsi)

	// Phase angle (Sun-Moon-Earth): 180 at new, 0 at full.
	i := math.Atan2(sc.distanceKm*math.Sin(psi), moonDist-sc.distanceKm*math.Cos(psi)) * radToDeg
	illum = (1 + math.Cos(i*degToRad)) / 2

	// Waxing while the Moon's ecliptic longitude leads the Sun's by < 180.
	moonLon, _, _ := moonEcliptic(T)
	waxing := normalize360(moonLon-sc.apparLon) < 180

	if waxing {
		phase = normalize360(180 - i)
	} else {
		phase = normalize360(180 + i)
	}
	return phase, illum
}

// PhaseName maps a display phase angle to its common name. Primary phases
// get narrow 22.5-degree windows centered on the exact angle.
func PhaseName(phaseAngle float64) string {
	switch a := normalize360(phaseAngle); {
	case a < 11.25:
		return "New Moon"
	case a < 78.75:
		return "Waxing Crescent"
	case a < 101.25:
		return "First Quarter"
	case a < 168.75:
		return "Waxing Gibbous"
	case a < 191.25:
		return "Full Moon"
	case a < 258.75:
		return "Waning Gibbous"
	case a < 281.25:
		return "Last Quarter"
	case a < 348.75:
		return "Waning Crescent"
	default:
		return "New Moon"
	}
}

// PhaseEmoji maps a display phase angle to the matching moon glyph.
func PhaseEmoji(phaseAngle float64) string {
	switch a := normalize360(phaseAngle); {
	case a < 11.25:
		return "🌑"
	case a < 78.75:
		return "🌒"
	case a < 101.25:
		return "🌓"
	case a < 168.75:
		return "🌔"
	case a < 191.25:
		return "🌕"
	case a < 258.75:
		return "🌖"
	case a < 281.25:
		return "🌗"
	case a < 348.75:
		return "🌘"
	default:
		return "🌑"
	}
}
