package astro

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const arcsec = math.Pi / (180.0 * 3600.0)

func TestSphericalRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64
	}{
		{"equator", 1.2, 0.0},
		{"mid northern", 4.5, 0.8},
		{"near south pole", 0.3, -1.5},
		{"ra wraps", 6.2, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, dec := VecFromSpherical(tt.ra, tt.dec).Spherical()
			if math.Abs(ra-tt.ra) > 1e-12 || math.Abs(dec-tt.dec) > 1e-12 {
				t.Errorf("got (%v, %v), want (%v, %v)", ra, dec, tt.ra, tt.dec)
			}
		})
	}
}

func TestRotationOrthonormal(t *testing.T) {
	mats := map[string]*mat.Dense{
		"rotX":  RotX(0.7),
		"rotY":  RotY(-1.2),
		"rotZ":  RotZ(2.9),
		"precN": PrecessionNutationMatrix(60000.0),
	}
	for name, m := range mats {
		var prod mat.Dense
		prod.Mul(m, m.T())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				if math.Abs(prod.At(i, j)-want) > 1e-12 {
					t.Errorf("%s: (R R^T)[%d][%d] = %v, want %v", name, i, j, prod.At(i, j), want)
				}
			}
		}
	}
}

func TestGMSTAtJ2000(t *testing.T) {
	// GMST at JD 2451545.0 is 18h 41m 50.54841s = 280.46061837 degrees.
	got := GMST(MJDJ2000)
	want := 280.46061837 * math.Pi / 180.0
	if math.Abs(got-want) > 1e-8 {
		t.Errorf("GMST(J2000) = %v rad, want %v rad", got, want)
	}
}

func TestGMSTAdvancesAtSiderealRate(t *testing.T) {
	// One solar day advances sidereal time by ~3m56.6s = 0.98565 degrees.
	g0 := GMST(60000.0)
	g1 := GMST(60001.0)
	delta := math.Mod(g1-g0+2*math.Pi, 2*math.Pi)
	want := 0.9856473 * math.Pi / 180.0
	if math.Abs(delta-want) > 1e-6 {
		t.Errorf("daily GMST advance = %v rad, want %v rad", delta, want)
	}
}

func TestPrecessionPoleDrift(t *testing.T) {
	// Over one Julian century the celestial pole drifts by theta(1) =
	// 2004.3109 - 0.42665 - 0.041833 = 2003.8424 arcseconds.
	p := PrecessionMatrix(MJDJ2000 + DaysPerJulianCentury)
	pole := ApplyMat(p, Vec3{Z: 1})
	drift := math.Acos(pole.Dot(Vec3{Z: 1}))
	want := 2003.8424 * arcsec
	if math.Abs(drift-want) > 0.01*arcsec {
		t.Errorf("pole drift over a century = %v arcsec, want %v", drift/arcsec, want/arcsec)
	}
}

func TestPrecessionIdentityAtEpoch(t *testing.T) {
	p := PrecessionMatrix(MJDJ2000)
	v := ApplyMat(p, Vec3{X: 0.5, Y: 0.5, Z: 0.7071})
	if math.Abs(v.X-0.5) > 1e-12 || math.Abs(v.Y-0.5) > 1e-12 {
		t.Errorf("precession at J2000 is not the identity: %+v", v)
	}
}

func TestNutationBounded(t *testing.T) {
	// The four retained terms sum to 17.20+1.32+0.23+0.21 = 18.96 arcsec in
	// longitude at worst, 9.20+0.57+0.10+0.09 = 9.96 in obliquity.
	for mjd := 40000.0; mjd < 70000.0; mjd += 913.0 {
		dpsi, deps := nutationAngles(mjd)
		if math.Abs(dpsi) > 19.0*arcsec {
			t.Errorf("dpsi at mjd %v = %v arcsec", mjd, dpsi/arcsec)
		}
		if math.Abs(deps) > 10.0*arcsec {
			t.Errorf("deps at mjd %v = %v arcsec", mjd, deps/arcsec)
		}
	}
}

func TestEquationOfEquinoxesBounded(t *testing.T) {
	// Bounded by max |dpsi| * cos(eps), under 18 arcsec (1.2 seconds of time).
	for mjd := 50000.0; mjd < 62000.0; mjd += 517.0 {
		ee := EquationOfEquinoxes(mjd)
		if math.Abs(ee) > 18.0*arcsec {
			t.Errorf("equation of equinoxes at mjd %v = %v arcsec", mjd, ee/arcsec)
		}
	}
}

func TestEarthVelocityMagnitude(t *testing.T) {
	// Annual aberration constant is 20.5 arcsec, so |v|/c must sit near
	// 20.5 arcsec in radians throughout the orbit.
	for mjd := 60000.0; mjd < 60366.0; mjd += 30.5 {
		_, vel := EarthPosVel(mjd)
		frac := vel.Scale(1 / SpeedOfLightAUPerDay).Norm()
		if frac < 20.0*arcsec || frac > 21.0*arcsec {
			t.Errorf("aberration constant at mjd %v = %v arcsec", mjd, frac/arcsec)
		}
	}
}

func TestEarthPositionNearOneAU(t *testing.T) {
	for mjd := 60000.0; mjd < 60366.0; mjd += 30.5 {
		pos, _ := EarthPosVel(mjd)
		r := pos.Norm()
		if r < 0.98 || r > 1.02 {
			t.Errorf("Earth distance at mjd %v = %v AU", mjd, r)
		}
	}
}

func TestSpaceMotionProperMotion(t *testing.T) {
	// 1 arcsec/yr in RA over 10 years at the equator moves RA by 10 arcsec.
	ra0 := 1.0
	ra, dec := SpaceMotion(ra0, 0.0, arcsec, 0.0, 0.0, 0.0, 10.0)
	if math.Abs(ra-ra0-10.0*arcsec) > 0.001*arcsec {
		t.Errorf("RA moved by %v arcsec, want 10", (ra-ra0)/arcsec)
	}
	if math.Abs(dec) > 0.01*arcsec {
		t.Errorf("Dec moved by %v arcsec, want 0", dec/arcsec)
	}
}

func TestSpaceMotionZeroMotion(t *testing.T) {
	ra, dec := SpaceMotion(2.1, -0.4, 0, 0, 0, 0, 75.0)
	if math.Abs(ra-2.1) > 1e-12 || math.Abs(dec+0.4) > 1e-12 {
		t.Errorf("zero motion moved the star: (%v, %v)", ra, dec)
	}
}

func TestApparentPlaceNaNPropagates(t *testing.T) {
	ap := NewApparentPlaceParams(2000.0, 60000.0)
	ra, dec := ap.Apply(math.NaN(), 0.5, 0, 0, 0, 0)
	if !math.IsNaN(ra) || !math.IsNaN(dec) {
		t.Errorf("NaN input produced (%v, %v)", ra, dec)
	}
}

func TestApparentPlaceShiftIsSmall(t *testing.T) {
	// Aberration plus precession over ~23 years: the total shift must stay
	// under a degree and the aberration piece alone under 21 arcsec.
	ap := NewApparentPlaceParams(2000.0, 60000.0)
	ra0, dec0 := 1.3, 0.2
	ra, dec := ap.Apply(ra0, dec0, 0, 0, 0, 0)
	sep := math.Acos(VecFromSpherical(ra, dec).Dot(VecFromSpherical(ra0, dec0)))
	if sep > 1.0*math.Pi/180.0 {
		t.Errorf("apparent place moved by %v deg", sep*180/math.Pi)
	}
	if sep < 60.0*arcsec {
		t.Errorf("apparent place barely moved (%v arcsec), precession missing?", sep/arcsec)
	}
}

func TestRefractionCoefficients(t *testing.T) {
	// Standard-ish mountain site: 285 K, 749 mb, 0.5 um.
	a, b := RefractionCoefficients(285.0, 749.0, 0.5)
	if a < 35.0*arcsec || a > 55.0*arcsec {
		t.Errorf("A = %v arcsec, want roughly 43", a/arcsec)
	}
	if b >= 0 || math.Abs(b) > 0.2*arcsec {
		t.Errorf("B = %v arcsec, want small negative", b/arcsec)
	}

	// Bluer light refracts more.
	aBlue, _ := RefractionCoefficients(285.0, 749.0, 0.4)
	if aBlue <= a {
		t.Errorf("blue A %v not larger than visual A %v", aBlue/arcsec, a/arcsec)
	}
}

func TestRefract(t *testing.T) {
	a, b := RefractionCoefficients(285.0, 749.0, 0.5)

	zd := 45.0 * math.Pi / 180.0
	refracted := Refract(zd, a, b)
	shift := zd - refracted
	if shift < 30.0*arcsec || shift > 60.0*arcsec {
		t.Errorf("refraction at zd 45 = %v arcsec", shift/arcsec)
	}

	// Zenith is unrefracted.
	if got := Refract(0, a, b); got != 0 {
		t.Errorf("refraction at zenith = %v", got)
	}

	// Monotonic in zenith distance up to the clamp.
	prev := 0.0
	for deg := 5.0; deg <= 75.0; deg += 5.0 {
		z := deg * math.Pi / 180.0
		s := z - Refract(z, a, b)
		if s < prev {
			t.Errorf("refraction not monotonic at zd %v deg", deg)
		}
		prev = s
	}

	if !math.IsNaN(Refract(math.NaN(), a, b)) {
		t.Error("NaN zenith distance did not propagate")
	}
}

func TestDiurnalVelocityMagnitude(t *testing.T) {
	// Equatorial rotation speed is 0.465 km/s, about 0.32 arcsec of c.
	v := DiurnalVelocity(0.0, 1.0)
	want := SiderealRate * EarthRadiusKm / 299792.458
	if math.Abs(v.Norm()-want) > 1e-12 {
		t.Errorf("|v| = %v, want %v", v.Norm(), want)
	}
	// Vanishes at the pole.
	if DiurnalVelocity(math.Pi/2, 1.0).Norm() > 1e-15 {
		t.Error("diurnal velocity nonzero at the pole")
	}
}

func TestEpochConversionRoundTrip(t *testing.T) {
	for _, epoch := range []float64{1950.0, 2000.0, 2023.5} {
		mjd := MJDFromJulianEpoch(epoch)
		if got := JulianEpoch(mjd); math.Abs(got-epoch) > 1e-10 {
			t.Errorf("epoch %v round-tripped to %v", epoch, got)
		}
	}
}
