package astro

import "math"

// MJDJ2000 is the Modified Julian Date of the J2000.0 epoch
// (January 1, 2000, 12:00:00 TT).
const MJDJ2000 = 51544.5

// DaysPerJulianYear is the length of the Julian year in days.
const DaysPerJulianYear = 365.25

// DaysPerJulianCentury is the length of the Julian century in days.
const DaysPerJulianCentury = 36525.0

// JulianCenturies returns Julian centuries elapsed since J2000.0 for an MJD.
func JulianCenturies(mjd float64) float64 {
	return (mjd - MJDJ2000) / DaysPerJulianCentury
}

// JulianEpoch converts an MJD to a Julian epoch in years (e.g. 2000.0).
func JulianEpoch(mjd float64) float64 {
	return 2000.0 + (mjd-MJDJ2000)/DaysPerJulianYear
}

// MJDFromJulianEpoch converts a Julian epoch in years to an MJD. All kernel
// and engine time arguments are true MJD; callers holding Julian epochs
// convert at the boundary with this function.
func MJDFromJulianEpoch(epoch float64) float64 {
	return MJDJ2000 + (epoch-2000.0)*DaysPerJulianYear
}

// GMST returns Greenwich Mean Sidereal Time in radians for an MJD (UT1),
// using the IAU-82 model (Vallado Eq 3-47).
func GMST(mjd float64) float64 {
	tUT1 := JulianCenturies(mjd)

	// GMST in seconds of time. 876600h = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}
	return gmstSec / 86400.0 * 2.0 * math.Pi
}

// LAST returns Local Apparent Sidereal Time in radians for an MJD and an
// east-positive longitude in radians. The equation of the equinoxes comes
// from the nutation series.
func LAST(mjd, longitude float64) float64 {
	last := GMST(mjd) + longitude + EquationOfEquinoxes(mjd)
	last = math.Mod(last, 2*math.Pi)
	if last < 0 {
		last += 2 * math.Pi
	}
	return last
}
