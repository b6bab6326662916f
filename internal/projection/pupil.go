// Package projection implements the camera projection engine: observed sky
// positions to tangent-plane pupil coordinates, chip lookup, focal-plane and
// pixel coordinates, and the inverse chain back to the sky.
//
// Pupil coordinates are always radians. Sky-facing operations come in a
// degrees form (default name) and a radians form (Rad suffix); slice forms
// use plural nouns (PixelCoords...) and scalar forms singular nouns
// (PixelCoord...). Per-element NaN inputs yield NaN outputs and an empty chip
// name; whole-call precondition failures return *coordutil.InputError.
package projection

import (
	"math"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/coordutil"
)

// pointingFrame caches the observed boresite and rotator trig for one
// context, shared across all points of a call.
type pointingFrame struct {
	raObs, decObs    float64
	sinDec0, cosDec0 float64
	sinRot, cosRot   float64
}

// newPointingFrame validates the context for a sky-to-pupil operation and
// reduces the boresite to observed coordinates at the context's time and
// site. A context without a site falls back to the default site.
func newPointingFrame(op string, ctx *astrometry.Context, epoch float64) (*pointingFrame, error) {
	if math.IsNaN(epoch) {
		return nil, coordutil.MissingContext(op, "an epoch")
	}
	if err := ctx.Require(op, astrometry.FieldPointing, astrometry.FieldMJD, astrometry.FieldRotSkyPos); err != nil {
		return nil, err
	}

	reduceCtx := ctx
	if ctx.Site() == nil {
		ra, dec := ctx.PointingRad()
		reduceCtx = astrometry.NewContext(
			astrometry.WithPointingRad(ra, dec),
			astrometry.WithMJD(ctx.MJD()),
			astrometry.WithRotSkyPosRad(ctx.RotSkyPosRad()),
			astrometry.WithSite(astrometry.DefaultSite()),
		)
	}

	raPtg, decPtg := ctx.PointingRad()
	raObs, decObs, err := astrometry.ObservedFromICRSScalarRad(raPtg, decPtg, 0, 0, 0, 0, reduceCtx, epoch, true, astrometry.DefaultWavelengthUm)
	if err != nil {
		return nil, err
	}

	f := &pointingFrame{raObs: raObs, decObs: decObs}
	f.sinDec0, f.cosDec0 = math.Sincos(decObs)
	f.sinRot, f.cosRot = math.Sincos(ctx.RotSkyPosRad())
	return f, nil
}

// toPupil projects one observed sky position to pupil coordinates: gnomonic
// projection about the observed boresite, then rotation by the rotator
// angle. Points on the far hemisphere and NaN inputs map to NaN.
func (f *pointingFrame) toPupil(ra, dec float64) (xPup, yPup float64) {
	if math.IsNaN(ra) || math.IsNaN(dec) {
		return math.NaN(), math.NaN()
	}
	sd, cd := math.Sincos(dec)
	sh, ch := math.Sincos(ra - f.raObs)

	denom := sd*f.sinDec0 + cd*f.cosDec0*ch
	if denom <= 1e-12 {
		return math.NaN(), math.NaN()
	}

	xi := cd * sh / denom
	eta := (sd*f.cosDec0 - cd*f.sinDec0*ch) / denom

	return xi*f.cosRot - eta*f.sinRot, xi*f.sinRot + eta*f.cosRot
}

// fromPupil inverts toPupil, returning observed RA/Dec.
func (f *pointingFrame) fromPupil(xPup, yPup float64) (ra, dec float64) {
	if math.IsNaN(xPup) || math.IsNaN(yPup) {
		return math.NaN(), math.NaN()
	}
	xi := xPup*f.cosRot + yPup*f.sinRot
	eta := -xPup*f.sinRot + yPup*f.cosRot

	denom := f.cosDec0 - eta*f.sinDec0
	d := math.Atan2(xi, denom)
	ra = coordutil.WrapTwoPi(f.raObs + d)
	dec = math.Atan2(math.Cos(d)*(f.sinDec0+eta*f.cosDec0), denom)
	return ra, dec
}

// PupilCoordsFromRaDecRad projects observed RA/Dec (radians) to pupil
// coordinates about the context's pointing. The context needs a pointing, an
// mjd, and a rotSkyPos; epoch is the catalog Julian epoch used to reduce the
// pointing to observed coordinates.
func PupilCoordsFromRaDecRad(ra, dec []float64, ctx *astrometry.Context, epoch float64) ([]float64, []float64, error) {
	const op = "pupilCoordsFromRaDec"
	if err := coordutil.CheckPair(op, "RA", ra, "Dec", dec); err != nil {
		return nil, nil, err
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return nil, nil, err
	}

	xPup := make([]float64, len(ra))
	yPup := make([]float64, len(ra))
	for i := range ra {
		xPup[i], yPup[i] = f.toPupil(ra[i], dec[i])
	}
	return xPup, yPup, nil
}

// PupilCoordFromRaDecRad is the single-point form of PupilCoordsFromRaDecRad.
func PupilCoordFromRaDecRad(ra, dec float64, ctx *astrometry.Context, epoch float64) (float64, float64, error) {
	f, err := newPointingFrame("pupilCoordsFromRaDec", ctx, epoch)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	x, y := f.toPupil(ra, dec)
	return x, y, nil
}

// RaDecFromPupilCoordsRad inverts PupilCoordsFromRaDecRad, returning observed
// RA/Dec in radians.
func RaDecFromPupilCoordsRad(xPup, yPup []float64, ctx *astrometry.Context, epoch float64) ([]float64, []float64, error) {
	const op = "raDecFromPupilCoords"
	if err := coordutil.CheckPair(op, "xPupil", xPup, "yPupil", yPup); err != nil {
		return nil, nil, err
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return nil, nil, err
	}

	ra := make([]float64, len(xPup))
	dec := make([]float64, len(xPup))
	for i := range xPup {
		ra[i], dec[i] = f.fromPupil(xPup[i], yPup[i])
	}
	return ra, dec, nil
}

// RaDecFromPupilCoordRad is the single-point form of RaDecFromPupilCoordsRad.
func RaDecFromPupilCoordRad(xPup, yPup float64, ctx *astrometry.Context, epoch float64) (float64, float64, error) {
	f, err := newPointingFrame("raDecFromPupilCoords", ctx, epoch)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	ra, dec := f.fromPupil(xPup, yPup)
	return ra, dec, nil
}
