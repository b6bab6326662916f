package astrometry

import (
	"math"

	"github.com/star/skypix/internal/astro"
	"github.com/star/skypix/internal/coordutil"
)

// DefaultWavelengthUm is the effective observing wavelength assumed by
// refraction when the caller does not specify one.
const DefaultWavelengthUm = 0.5

var properMotionArgNames = []string{"ra", "dec", "pmRA", "pmDec", "parallax", "vRad"}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// ApplyProperMotionRad moves catalog positions forward from the J2000.0
// catalog epoch to mjd using linear proper motion plus the radial-velocity
// perspective term. All angles in radians, proper motions in radians per
// Julian year (pmRA includes the cos(dec) factor), parallax in radians, vRad
// in km/s. The six slices must be non-nil and of equal length.
func ApplyProperMotionRad(ra, dec, pmRA, pmDec, parallax, vRad []float64, mjd float64) ([]float64, []float64, error) {
	const op = "applyProperMotion"
	if math.IsNaN(mjd) {
		return nil, nil, coordutil.MissingContext(op, "an mjd")
	}
	if err := coordutil.CheckSameLength(op, properMotionArgNames, ra, dec, pmRA, pmDec, parallax, vRad); err != nil {
		return nil, nil, err
	}

	dt := (mjd - astro.MJDJ2000) / astro.DaysPerJulianYear
	raOut := make([]float64, len(ra))
	decOut := make([]float64, len(ra))
	for i := range ra {
		if math.IsNaN(ra[i]) || math.IsNaN(dec[i]) {
			raOut[i], decOut[i] = math.NaN(), math.NaN()
			continue
		}
		raOut[i], decOut[i] = astro.SpaceMotion(ra[i], dec[i], pmRA[i], pmDec[i], parallax[i], vRad[i], dt)
	}
	return raOut, decOut, nil
}

// ApplyProperMotionScalarRad is the single-star form of ApplyProperMotionRad.
func ApplyProperMotionScalarRad(ra, dec, pmRA, pmDec, parallax, vRad, mjd float64) (float64, float64, error) {
	if math.IsNaN(mjd) {
		return math.NaN(), math.NaN(), coordutil.MissingContext("applyProperMotion", "an mjd")
	}
	if math.IsNaN(ra) || math.IsNaN(dec) {
		return math.NaN(), math.NaN(), nil
	}
	dt := (mjd - astro.MJDJ2000) / astro.DaysPerJulianYear
	raOut, decOut := astro.SpaceMotion(ra, dec, pmRA, pmDec, parallax, vRad, dt)
	return raOut, decOut, nil
}

// ApplyPrecessionRad rotates mean J2000.0 coordinates to the true equator and
// equinox of mjd.
func ApplyPrecessionRad(ra, dec []float64, mjd float64) ([]float64, []float64, error) {
	const op = "applyPrecession"
	if math.IsNaN(mjd) {
		return nil, nil, coordutil.MissingContext(op, "an mjd")
	}
	if err := coordutil.CheckPair(op, "ra", ra, "dec", dec); err != nil {
		return nil, nil, err
	}

	pn := astro.PrecessionNutationMatrix(mjd)
	raOut := make([]float64, len(ra))
	decOut := make([]float64, len(ra))
	for i := range ra {
		if math.IsNaN(ra[i]) || math.IsNaN(dec[i]) {
			raOut[i], decOut[i] = math.NaN(), math.NaN()
			continue
		}
		raOut[i], decOut[i] = astro.ApplyMat(pn, astro.VecFromSpherical(ra[i], dec[i])).Spherical()
	}
	return raOut, decOut, nil
}

// ApplyPrecessionScalarRad is the single-star form of ApplyPrecessionRad.
func ApplyPrecessionScalarRad(ra, dec, mjd float64) (float64, float64, error) {
	if math.IsNaN(mjd) {
		return math.NaN(), math.NaN(), coordutil.MissingContext("applyPrecession", "an mjd")
	}
	if math.IsNaN(ra) || math.IsNaN(dec) {
		return math.NaN(), math.NaN(), nil
	}
	pn := astro.PrecessionNutationMatrix(mjd)
	raOut, decOut := astro.ApplyMat(pn, astro.VecFromSpherical(ra, dec)).Spherical()
	return raOut, decOut, nil
}

// appGeoSlices runs the apparent-place reduction. Validation is the caller's
// job.
func appGeoSlices(ra, dec, pmRA, pmDec, parallax, vRad []float64, epoch, mjd float64) ([]float64, []float64) {
	ap := astro.NewApparentPlaceParams(epoch, mjd)
	raOut := make([]float64, len(ra))
	decOut := make([]float64, len(ra))
	for i := range ra {
		raOut[i], decOut[i] = ap.Apply(ra[i], dec[i], pmRA[i], pmDec[i], parallax[i], vRad[i])
	}
	return raOut, decOut
}

// AppGeoFromICRSRad composes space motion, annual parallax, annual
// aberration, and precession-nutation into the apparent geocentric place at
// mjd for catalog positions referred to the given Julian epoch. This is the
// canonical entry point feeding the observed-coordinate stage.
func AppGeoFromICRSRad(ra, dec, pmRA, pmDec, parallax, vRad []float64, epoch, mjd float64) ([]float64, []float64, error) {
	const op = "appGeoFromICRS"
	if math.IsNaN(epoch) {
		return nil, nil, coordutil.MissingContext(op, "an epoch")
	}
	if math.IsNaN(mjd) {
		return nil, nil, coordutil.MissingContext(op, "an mjd")
	}
	if err := coordutil.CheckSameLength(op, properMotionArgNames, ra, dec, pmRA, pmDec, parallax, vRad); err != nil {
		return nil, nil, err
	}
	raOut, decOut := appGeoSlices(ra, dec, pmRA, pmDec, parallax, vRad, epoch, mjd)
	return raOut, decOut, nil
}

// AppGeoFromICRSScalarRad is the single-star form of AppGeoFromICRSRad.
func AppGeoFromICRSScalarRad(ra, dec, pmRA, pmDec, parallax, vRad, epoch, mjd float64) (float64, float64, error) {
	const op = "appGeoFromICRS"
	if math.IsNaN(epoch) {
		return math.NaN(), math.NaN(), coordutil.MissingContext(op, "an epoch")
	}
	if math.IsNaN(mjd) {
		return math.NaN(), math.NaN(), coordutil.MissingContext(op, "an mjd")
	}
	ap := astro.NewApparentPlaceParams(epoch, mjd)
	raOut, decOut := ap.Apply(ra, dec, pmRA, pmDec, parallax, vRad)
	return raOut, decOut, nil
}

// RefractionCoefficients computes the two constants of the refraction model
// for a site and an effective wavelength in micrometres. A wavelength that is
// NaN or not positive selects DefaultWavelengthUm. The site must carry its
// atmospheric fields.
func RefractionCoefficients(wavelengthUm float64, site *Site) (a, b float64, err error) {
	const op = "refractionCoefficients"
	if !site.refractionReady() {
		return 0, 0, coordutil.NoSite(op)
	}
	if math.IsNaN(wavelengthUm) || wavelengthUm <= 0 {
		wavelengthUm = DefaultWavelengthUm
	}
	a, b = astro.RefractionCoefficients(site.TemperatureK, site.PressureMb, wavelengthUm)
	return a, b, nil
}

// ApplyRefractionRad refracts a slice of true zenith distances (radians)
// using coefficients from RefractionCoefficients. NaN elements stay NaN.
func ApplyRefractionRad(zenithDistance []float64, a, b float64) ([]float64, error) {
	const op = "applyRefraction"
	if zenithDistance == nil {
		return nil, coordutil.NilArg(op, "zenithDistance")
	}
	out := make([]float64, len(zenithDistance))
	for i, zd := range zenithDistance {
		out[i] = astro.Refract(zd, a, b)
	}
	return out, nil
}

// ApplyRefractionScalarRad refracts a single true zenith distance.
func ApplyRefractionScalarRad(zenithDistance, a, b float64) float64 {
	return astro.Refract(zenithDistance, a, b)
}

// observedParams holds per-call quantities shared by every element of an
// observed-coordinate reduction.
type observedParams struct {
	last           float64
	sinLat, cosLat float64
	diurnal        astro.Vec3
	refract        bool
	refA, refB     float64
}

func newObservedParams(op string, ctx *Context, includeRefraction bool, wavelengthUm float64) (*observedParams, error) {
	if err := ctx.Require(op, FieldMJD, FieldSite); err != nil {
		return nil, err
	}
	site := ctx.Site()
	p := &observedParams{
		last:    astro.LAST(ctx.MJD(), site.LongitudeRad),
		refract: includeRefraction,
	}
	p.sinLat, p.cosLat = math.Sincos(site.LatitudeRad)
	p.diurnal = astro.DiurnalVelocity(site.LatitudeRad, p.last)
	if includeRefraction {
		var err error
		p.refA, p.refB, err = RefractionCoefficients(wavelengthUm, site)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// reduce takes one apparent geocentric position to observed topocentric
// coordinates, returning observed RA/Dec and alt/az. NaN in, NaN out.
func (p *observedParams) reduce(ra, dec float64) (raObs, decObs, alt, az float64) {
	if math.IsNaN(ra) || math.IsNaN(dec) {
		n := math.NaN()
		return n, n, n, n
	}

	// Diurnal aberration.
	v := astro.VecFromSpherical(ra, dec).Add(p.diurnal).Normalized()
	raT, decT := v.Spherical()

	// True equatorial to horizontal.
	h := p.last - raT
	sd, cd := math.Sincos(decT)
	sh, ch := math.Sincos(h)
	alt = math.Asin(clamp1(p.sinLat*sd + p.cosLat*cd*ch))
	az = math.Atan2(-cd*sh, sd*p.cosLat-cd*p.sinLat*ch)
	az = coordutil.WrapTwoPi(az)

	// Refraction lifts the apparent altitude.
	if p.refract {
		alt = math.Pi/2 - astro.Refract(math.Pi/2-alt, p.refA, p.refB)
	}

	// Back to equatorial, now refraction-bent.
	sa, ca := math.Sincos(alt)
	saz, caz := math.Sincos(az)
	decObs = math.Asin(clamp1(p.sinLat*sa + p.cosLat*ca*caz))
	hObs := math.Atan2(-ca*saz, sa*p.cosLat-ca*p.sinLat*caz)
	raObs = coordutil.WrapTwoPi(p.last - hObs)
	return raObs, decObs, alt, az
}

// ObservedFromAppGeoRad converts apparent geocentric positions to observed
// topocentric RA/Dec at the context's site and time, applying diurnal
// aberration and, when requested, refraction at the given wavelength
// (micrometres; NaN or non-positive selects the default).
func ObservedFromAppGeoRad(ra, dec []float64, ctx *Context, includeRefraction bool, wavelengthUm float64) ([]float64, []float64, error) {
	raObs, decObs, _, _, err := observedFromAppGeo("observedFromAppGeo", ra, dec, ctx, includeRefraction, wavelengthUm)
	return raObs, decObs, err
}

// ObservedAltAzFromAppGeoRad is ObservedFromAppGeoRad returning the
// horizontal coordinates alongside the observed RA/Dec.
func ObservedAltAzFromAppGeoRad(ra, dec []float64, ctx *Context, includeRefraction bool, wavelengthUm float64) (raObs, decObs, alt, az []float64, err error) {
	return observedFromAppGeo("observedFromAppGeo", ra, dec, ctx, includeRefraction, wavelengthUm)
}

func observedFromAppGeo(op string, ra, dec []float64, ctx *Context, includeRefraction bool, wavelengthUm float64) (raObs, decObs, alt, az []float64, err error) {
	if err := coordutil.CheckPair(op, "ra", ra, "dec", dec); err != nil {
		return nil, nil, nil, nil, err
	}
	p, err := newObservedParams(op, ctx, includeRefraction, wavelengthUm)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	raObs = make([]float64, len(ra))
	decObs = make([]float64, len(ra))
	alt = make([]float64, len(ra))
	az = make([]float64, len(ra))
	for i := range ra {
		raObs[i], decObs[i], alt[i], az[i] = p.reduce(ra[i], dec[i])
	}
	return raObs, decObs, alt, az, nil
}

// ObservedFromAppGeoScalarRad is the single-star form of
// ObservedFromAppGeoRad.
func ObservedFromAppGeoScalarRad(ra, dec float64, ctx *Context, includeRefraction bool, wavelengthUm float64) (float64, float64, error) {
	p, err := newObservedParams("observedFromAppGeo", ctx, includeRefraction, wavelengthUm)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	raObs, decObs, _, _ := p.reduce(ra, dec)
	return raObs, decObs, nil
}

// ObservedFromICRSRad runs the full reduction chain, catalog ICRS to observed
// topocentric RA/Dec: apparent geocentric place at the context's mjd followed
// by the observed-coordinate reduction. epoch is the Julian epoch of the
// catalog positions.
func ObservedFromICRSRad(ra, dec, pmRA, pmDec, parallax, vRad []float64, ctx *Context, epoch float64, includeRefraction bool, wavelengthUm float64) ([]float64, []float64, error) {
	const op = "observedFromICRS"
	if math.IsNaN(epoch) {
		return nil, nil, coordutil.MissingContext(op, "an epoch")
	}
	if err := coordutil.CheckSameLength(op, properMotionArgNames, ra, dec, pmRA, pmDec, parallax, vRad); err != nil {
		return nil, nil, err
	}
	p, err := newObservedParams(op, ctx, includeRefraction, wavelengthUm)
	if err != nil {
		return nil, nil, err
	}

	raGeo, decGeo := appGeoSlices(ra, dec, pmRA, pmDec, parallax, vRad, epoch, ctx.MJD())
	raObs := make([]float64, len(ra))
	decObs := make([]float64, len(ra))
	for i := range raGeo {
		raObs[i], decObs[i], _, _ = p.reduce(raGeo[i], decGeo[i])
	}
	return raObs, decObs, nil
}

// ObservedFromICRSScalarRad is the single-star form of ObservedFromICRSRad.
func ObservedFromICRSScalarRad(ra, dec, pmRA, pmDec, parallax, vRad float64, ctx *Context, epoch float64, includeRefraction bool, wavelengthUm float64) (float64, float64, error) {
	const op = "observedFromICRS"
	if math.IsNaN(epoch) {
		return math.NaN(), math.NaN(), coordutil.MissingContext(op, "an epoch")
	}
	p, err := newObservedParams(op, ctx, includeRefraction, wavelengthUm)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	ap := astro.NewApparentPlaceParams(epoch, ctx.MJD())
	raGeo, decGeo := ap.Apply(ra, dec, pmRA, pmDec, parallax, vRad)
	raObs, decObs, _, _ := p.reduce(raGeo, decGeo)
	return raObs, decObs, nil
}
