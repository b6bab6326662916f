package astrometry

import (
	"github.com/star/skypix/internal/coordutil"
)

// Degree forms. Each converts angular arguments to radians, delegates to the
// Rad form, and converts the results back. Angular rates and parallaxes are
// degrees-based too (degrees per year, degrees); radial velocity stays km/s.

// ApplyProperMotion is the degrees form of ApplyProperMotionRad.
func ApplyProperMotion(ra, dec, pmRA, pmDec, parallax, vRad []float64, mjd float64) ([]float64, []float64, error) {
	raOut, decOut, err := ApplyProperMotionRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		coordutil.SliceRadiansFromDegrees(pmRA),
		coordutil.SliceRadiansFromDegrees(pmDec),
		coordutil.SliceRadiansFromDegrees(parallax),
		vRad, mjd)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(raOut), coordutil.SliceDegreesFromRadians(decOut), nil
}

// ApplyPrecession is the degrees form of ApplyPrecessionRad.
func ApplyPrecession(ra, dec []float64, mjd float64) ([]float64, []float64, error) {
	raOut, decOut, err := ApplyPrecessionRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec), mjd)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(raOut), coordutil.SliceDegreesFromRadians(decOut), nil
}

// AppGeoFromICRS is the degrees form of AppGeoFromICRSRad.
func AppGeoFromICRS(ra, dec, pmRA, pmDec, parallax, vRad []float64, epoch, mjd float64) ([]float64, []float64, error) {
	raOut, decOut, err := AppGeoFromICRSRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		coordutil.SliceRadiansFromDegrees(pmRA),
		coordutil.SliceRadiansFromDegrees(pmDec),
		coordutil.SliceRadiansFromDegrees(parallax),
		vRad, epoch, mjd)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(raOut), coordutil.SliceDegreesFromRadians(decOut), nil
}

// ApplyRefraction is the degrees form of ApplyRefractionRad; zenith distances
// in and out are degrees, coefficients stay radian-based.
func ApplyRefraction(zenithDistance []float64, a, b float64) ([]float64, error) {
	out, err := ApplyRefractionRad(coordutil.SliceRadiansFromDegrees(zenithDistance), a, b)
	if err != nil {
		return nil, err
	}
	return coordutil.SliceDegreesFromRadians(out), nil
}

// ObservedFromAppGeo is the degrees form of ObservedFromAppGeoRad.
func ObservedFromAppGeo(ra, dec []float64, ctx *Context, includeRefraction bool, wavelengthUm float64) ([]float64, []float64, error) {
	raObs, decObs, err := ObservedFromAppGeoRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		ctx, includeRefraction, wavelengthUm)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(raObs), coordutil.SliceDegreesFromRadians(decObs), nil
}

// ObservedAltAzFromAppGeo is the degrees form of ObservedAltAzFromAppGeoRad.
func ObservedAltAzFromAppGeo(ra, dec []float64, ctx *Context, includeRefraction bool, wavelengthUm float64) (raObs, decObs, alt, az []float64, err error) {
	raObs, decObs, alt, az, err = ObservedAltAzFromAppGeoRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		ctx, includeRefraction, wavelengthUm)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(raObs),
		coordutil.SliceDegreesFromRadians(decObs),
		coordutil.SliceDegreesFromRadians(alt),
		coordutil.SliceDegreesFromRadians(az), nil
}

// ObservedFromICRS is the degrees form of ObservedFromICRSRad.
func ObservedFromICRS(ra, dec, pmRA, pmDec, parallax, vRad []float64, ctx *Context, epoch float64, includeRefraction bool, wavelengthUm float64) ([]float64, []float64, error) {
	raObs, decObs, err := ObservedFromICRSRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		coordutil.SliceRadiansFromDegrees(pmRA),
		coordutil.SliceRadiansFromDegrees(pmDec),
		coordutil.SliceRadiansFromDegrees(parallax),
		vRad, ctx, epoch, includeRefraction, wavelengthUm)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(raObs), coordutil.SliceDegreesFromRadians(decObs), nil
}
