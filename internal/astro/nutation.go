package astro

import "math"

// nutationTerm is one row of the abbreviated IAU 1980 nutation series:
// integer multipliers of (D, M, M', F, Omega) and coefficients in units of
// 0.0001 arcseconds (with their T-rates) for Delta-psi and Delta-epsilon.
type nutationTerm struct {
	d, m, mp, f, om      int
	psi, psiT, eps, epsT float64
}

// Principal terms of the IAU 1980 series (Meeus ch. 22). Thirteen terms keep
// Delta-psi within a few hundredths of an arcsecond of the full series, far
// below this package's accuracy contract.
var nutationTable = []nutationTerm{
	{0, 0, 0, 0, 1, -171996, -174.2, 92025, 8.9},
	{-2, 0, 0, 2, 2, -13187, -1.6, 5736, -3.1},
	{0, 0, 0, 2, 2, -2274, -0.2, 977, -0.5},
	{0, 0, 0, 0, 2, 2062, 0.2, -895, 0.5},
	{0, 1, 0, 0, 0, 1426, -3.4, 54, -0.1},
	{0, 0, 1, 0, 0, 712, 0.1, -7, 0},
	{-2, 1, 0, 2, 2, -517, 1.2, 224, -0.6},
	{0, 0, 0, 2, 1, -386, -0.4, 200, 0},
	{0, 0, 1, 2, 2, -301, 0, 129, -0.1},
	{-2, -1, 0, 2, 2, 217, -0.5, -95, 0.3},
	{-2, 0, 1, 0, 0, -158, 0, 0, 0},
	{-2, 0, 0, 2, 1, 129, 0.1, -70, 0},
	{0, 0, -1, 2, 2, 123, 0, -53, 0},
}

// nutation returns Delta-psi (nutation in longitude) and Delta-epsilon
// (nutation in obliquity), both in degrees, for Julian centuries T.
func nutation(T float64) (dPsi, dEps float64) {
	d := normalize360(297.85036 + 445267.111480*T - 0.0019142*T*T + T*T*T/189474)
	m := normalize360(357.52772 + 35999.050340*T - 0.0001603*T*T - T*T*T/300000)
	mp := normalize360(134.96298 + 477198.867398*T + 0.0086972*T*T + T*T*T/56250)
	f := normalize360(93.27191 + 483202.017538*T - 0.0036825*T*T + T*T*T/327270)
	om := normalize360(125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000)

	var sumPsi, sumEps float64
	for _, term := range nutationTable {
		arg := (float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp +
			float64(term.f)*f + float64(term.om)*om) * degToRad
		sumPsi += (term.psi + term.psiT*T) * math.Sin(arg)
		sumEps += (term.eps + term.epsT*T) * math.Cos(arg)
	}

	// Coefficients are in 0.0001", convert to degrees.
	dPsi = sumPsi * 0.0001 / 3600
	dEps = sumEps * 0.0001 / 3600
	return dPsi, dEps
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees
// (truncated beyond T^3; the higher-order terms matter only millennia out).
func meanObliquity(T float64) float64 {
	return 23.439291 - T*(0.0130042+T*(1.64e-7-T*5.03e-7))
}
