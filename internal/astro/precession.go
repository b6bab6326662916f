package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const arcsecToRad = math.Pi / (180.0 * 3600.0)

// meanObliquity returns the mean obliquity of the ecliptic in radians for an
// MJD (IAU 1980 expression).
func meanObliquity(mjd float64) float64 {
	t := JulianCenturies(mjd)
	eps := 84381.448 - 46.8150*t - 0.00059*t*t + 0.001813*t*t*t
	return eps * arcsecToRad
}

// nutationAngles returns the nutation in longitude and obliquity in radians
// for an MJD, from the four dominant terms of the IAU 1980 series. These
// terms carry over 99% of the full series amplitude.
func nutationAngles(mjd float64) (dpsi, deps float64) {
	t := JulianCenturies(mjd)

	// Fundamental arguments, degrees.
	omega := 125.04452 - 1934.136261*t // longitude of the Moon's ascending node
	lSun := 280.4665 + 36000.7698*t    // mean longitude of the Sun
	lMoon := 218.3165 + 481267.8813*t  // mean longitude of the Moon

	omega *= math.Pi / 180
	lSun *= math.Pi / 180
	lMoon *= math.Pi / 180

	dpsi = (-17.20*math.Sin(omega) -
		1.32*math.Sin(2*lSun) -
		0.23*math.Sin(2*lMoon) +
		0.21*math.Sin(2*omega)) * arcsecToRad

	deps = (9.20*math.Cos(omega) +
		0.57*math.Cos(2*lSun) +
		0.10*math.Cos(2*lMoon) -
		0.09*math.Cos(2*omega)) * arcsecToRad

	return dpsi, deps
}

// EquationOfEquinoxes returns the equation of the equinoxes (the difference
// between apparent and mean sidereal time) in radians for an MJD.
func EquationOfEquinoxes(mjd float64) float64 {
	dpsi, _ := nutationAngles(mjd)
	return dpsi * math.Cos(meanObliquity(mjd))
}

// PrecessionMatrix returns the IAU 1976 precession rotation taking mean
// equatorial coordinates of J2000.0 to mean coordinates of the given MJD.
func PrecessionMatrix(mjd float64) *mat.Dense {
	t := JulianCenturies(mjd)

	zeta := (2306.2181*t + 0.30188*t*t + 0.017998*t*t*t) * arcsecToRad
	z := (2306.2181*t + 1.09468*t*t + 0.018203*t*t*t) * arcsecToRad
	theta := (2004.3109*t - 0.42665*t*t - 0.041833*t*t*t) * arcsecToRad

	return MulMat(RotZ(-z), MulMat(RotY(theta), RotZ(-zeta)))
}

// NutationMatrix returns the rotation taking mean equatorial coordinates of
// date to true coordinates of date.
func NutationMatrix(mjd float64) *mat.Dense {
	dpsi, deps := nutationAngles(mjd)
	eps := meanObliquity(mjd)

	return MulMat(RotX(-(eps + deps)), MulMat(RotZ(-dpsi), RotX(eps)))
}

// PrecessionNutationMatrix returns the combined rotation taking mean J2000.0
// coordinates to true equatorial coordinates of date for the given MJD.
func PrecessionNutationMatrix(mjd float64) *mat.Dense {
	return MulMat(NutationMatrix(mjd), PrecessionMatrix(mjd))
}
