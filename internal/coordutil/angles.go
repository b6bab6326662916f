package coordutil

import "math"

// ArcsecPerRadian is the number of arcseconds in one radian.
const ArcsecPerRadian = 180.0 * 3600.0 / math.Pi

// RadiansFromArcsec converts arcseconds to radians.
func RadiansFromArcsec(a float64) float64 {
	return a / ArcsecPerRadian
}

// ArcsecFromRadians converts radians to arcseconds.
func ArcsecFromRadians(r float64) float64 {
	return r * ArcsecPerRadian
}

// RadiansFromDegrees converts degrees to radians.
func RadiansFromDegrees(d float64) float64 {
	return d * math.Pi / 180.0
}

// DegreesFromRadians converts radians to degrees.
func DegreesFromRadians(r float64) float64 {
	return r * 180.0 / math.Pi
}

// SliceRadiansFromDegrees converts a slice of degrees to a new slice of
// radians. NaN elements stay NaN.
func SliceRadiansFromDegrees(d []float64) []float64 {
	if d == nil {
		return nil
	}
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = RadiansFromDegrees(v)
	}
	return out
}

// SliceDegreesFromRadians converts a slice of radians to a new slice of
// degrees. NaN elements stay NaN.
func SliceDegreesFromRadians(r []float64) []float64 {
	if r == nil {
		return nil
	}
	out := make([]float64, len(r))
	for i, v := range r {
		out[i] = DegreesFromRadians(v)
	}
	return out
}

// WrapTwoPi reduces an angle to [0, 2π).
func WrapTwoPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Haversine returns the angular separation in radians between two sky
// positions given in radians.
func Haversine(ra1, dec1, ra2, dec2 float64) float64 {
	sd := math.Sin((dec2 - dec1) / 2)
	sr := math.Sin((ra2 - ra1) / 2)
	h := sd*sd + math.Cos(dec1)*math.Cos(dec2)*sr*sr
	if h > 1 {
		h = 1
	}
	return 2 * math.Asin(math.Sqrt(h))
}
