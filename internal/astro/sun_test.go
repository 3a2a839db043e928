package astro

import (
	"math"
	"testing"
	"time"
)

func solarModelAt(t time.Time) solarCoords {
	return solarModel(JulianCenturies(JulianDay(t)))
}

func TestSolarModelSeasons(t *testing.T) {
	tests := []struct {
		name       string
		time       time.Time
		wantRAMin  float64
		wantRAMax  float64
		wantDecMin float64
		wantDecMax float64
	}{
		{
			name:       "spring equinox 2024",
			time:       time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			wantRAMin:  359,
			wantRAMax:  2,
			wantDecMin: -1,
			wantDecMax: 1,
		},
		{
			name:       "summer solstice 2024",
			time:       time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
			wantRAMin:  88,
			wantRAMax:  92,
			wantDecMin: 23,
			wantDecMax: 24,
		},
		{
			name:       "autumn equinox 2024",
			time:       time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC),
			wantRAMin:  178,
			wantRAMax:  182,
			wantDecMin: -1,
			wantDecMax: 1,
		},
		{
			name:       "winter solstice 2024",
			time:       time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC),
			wantRAMin:  268,
			wantRAMax:  272,
			wantDecMin: -24,
			wantDecMax: -23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := solarModelAt(tt.time)

			raOK := false
			if tt.wantRAMin > tt.wantRAMax {
				// Wrap-around case near 0h.
				raOK = sc.rightAsc >= tt.wantRAMin || sc.rightAsc <= tt.wantRAMax
			} else {
				raOK = sc.rightAsc >= tt.wantRAMin && sc.rightAsc <= tt.wantRAMax
			}
			if !raOK {
				t.Errorf("RA = %.2f°, want between %.2f° and %.2f°",
					sc.rightAsc, tt.wantRAMin, tt.wantRAMax)
			}
			if sc.decl < tt.wantDecMin || sc.decl > tt.wantDecMax {
				t.Errorf("Dec = %.2f°, want between %.2f° and %.2f°",
					sc.decl, tt.wantDecMin, tt.wantDecMax)
			}
		})
	}
}

func TestEquationOfTimeEnvelope(t *testing.T) {
	// The equation of time stays inside (-20, +20) minutes; check a year of
	// daily samples and the two well-known extremes.
	for day := 0; day < 365; day++ {
		at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		sc := solarModelAt(at)
		if sc.eqTimeMin < -20 || sc.eqTimeMin > 20 {
			t.Fatalf("equation of time %v min on %v outside (-20, 20)", sc.eqTimeMin, at)
		}
	}

	// Early November: EoT near its +16.4 min maximum.
	nov := solarModelAt(time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC))
	if nov.eqTimeMin < 15.5 || nov.eqTimeMin > 17 {
		t.Errorf("EoT in early November = %.2f min, want ~16.4", nov.eqTimeMin)
	}

	// Mid-February: EoT near its -14.2 min minimum.
	feb := solarModelAt(time.Date(2025, 2, 11, 12, 0, 0, 0, time.UTC))
	if feb.eqTimeMin > -13.5 || feb.eqTimeMin < -15 {
		t.Errorf("EoT in mid-February = %.2f min, want ~-14.2", feb.eqTimeMin)
	}
}

func TestSunDistanceEnvelope(t *testing.T) {
	// Perihelion in early January (~0.9833 AU), aphelion in early July
	// (~1.0167 AU).
	jan := solarModelAt(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC))
	jul := solarModelAt(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC))

	if d := jan.distanceKm / astronomicalUnitKm; math.Abs(d-0.9833) > 0.001 {
		t.Errorf("perihelion distance = %.4f AU, want ~0.9833", d)
	}
	if d := jul.distanceKm / astronomicalUnitKm; math.Abs(d-1.0167) > 0.001 {
		t.Errorf("aphelion distance = %.4f AU, want ~1.0167", d)
	}
}

func TestSunPositionAt(t *testing.T) {
	greenwich := Location{Lat: 51.4769, Lon: 0}

	t.Run("noon altitude at summer solstice", func(t *testing.T) {
		// Culmination altitude = 90 - lat + dec, about 62° at Greenwich.
		pos := SunPositionAt(greenwich, time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC))
		if pos.Altitude < 60 || pos.Altitude > 64 {
			t.Errorf("altitude = %.2f°, want ~62°", pos.Altitude)
		}
		if math.Abs(pos.Azimuth-180) > 10 {
			t.Errorf("azimuth = %.2f°, want near 180° (south)", pos.Azimuth)
		}
	})

	t.Run("below horizon at midnight", func(t *testing.T) {
		pos := SunPositionAt(greenwich, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
		if pos.Altitude > 0 {
			t.Errorf("altitude = %.2f°, want below horizon", pos.Altitude)
		}
	})

	t.Run("azimuth in range over a day", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			pos := SunPositionAt(greenwich, time.Date(2024, 6, 21, hour, 0, 0, 0, time.UTC))
			if pos.Azimuth < 0 || pos.Azimuth >= 360 {
				t.Errorf("azimuth out of range at hour %d: %v", hour, pos.Azimuth)
			}
			if pos.Altitude < -90 || pos.Altitude > 90 {
				t.Errorf("altitude out of range at hour %d: %v", hour, pos.Altitude)
			}
		}
	})
}

func TestNutation(t *testing.T) {
	// Meeus example 22.a: 1987 April 10, 0h TT (JDE 2446895.5).
	// Delta-psi = -3.788", delta-eps = +9.443". The truncated 13-term series
	// is good to a few tenths of an arcsecond.
	T := JulianCenturies(2446895.5)
	dPsi, dEps := nutation(T)

	const arcsec = 1.0 / 3600
	if math.Abs(dPsi-(-3.788*arcsec)) > 0.5*arcsec {
		t.Errorf("nutation in longitude = %.4f\", want -3.788\"", dPsi/arcsec)
	}
	if math.Abs(dEps-9.443*arcsec) > 0.5*arcsec {
		t.Errorf("nutation in obliquity = %.4f\", want 9.443\"", dEps/arcsec)
	}

	// Mean obliquity at the same instant: 23°26'27.407".
	eps0 := meanObliquity(T)
	want := 23 + 26/60.0 + 27.407/3600.0
	if math.Abs(eps0-want) > 1*arcsec {
		t.Errorf("mean obliquity = %.6f°, want %.6f°", eps0, want)
	}
}

func TestHorizonDip(t *testing.T) {
	if got := horizonDipDeg(0); got != 0 {
		t.Errorf("dip at sea level = %v, want 0", got)
	}
	// Rule of thumb: dip ≈ 1.78' per sqrt(meter); about 0.56° at 100 m
	// geometric (without refraction the geometric value is ~0.32°).
	got := horizonDipDeg(100)
	if got < 0.25 || got > 0.6 {
		t.Errorf("dip at 100 m = %v°, want roughly 0.3-0.6°", got)
	}
	if horizonDipDeg(1000) <= got {
		t.Error("dip should grow with elevation")
	}
}
