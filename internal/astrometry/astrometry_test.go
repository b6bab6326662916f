package astrometry

import (
	"errors"
	"math"
	"testing"

	"github.com/star/skypix/internal/coordutil"
)

const arcsec = math.Pi / (180.0 * 3600.0)

func testContext() *Context {
	return NewContext(
		WithPointingDeg(25.0, -30.0),
		WithMJD(60000.0),
		WithRotSkyPosDeg(0.0),
		WithSite(DefaultSite()),
	)
}

func zeros(n int) []float64 { return make([]float64, n) }

func TestApplyProperMotionValidation(t *testing.T) {
	ra := []float64{1.0, 1.1}
	dec := []float64{0.1, 0.2}

	tests := []struct {
		name string
		call func() error
		kind coordutil.Kind
	}{
		{
			name: "NaN mjd",
			call: func() error {
				_, _, err := ApplyProperMotionRad(ra, dec, zeros(2), zeros(2), zeros(2), zeros(2), math.NaN())
				return err
			},
			kind: coordutil.KindMissingContext,
		},
		{
			name: "mismatched lengths",
			call: func() error {
				_, _, err := ApplyProperMotionRad(ra, dec[:1], zeros(2), zeros(2), zeros(2), zeros(2), 60000.0)
				return err
			},
			kind: coordutil.KindLengthMismatch,
		},
		{
			name: "nil slice",
			call: func() error {
				_, _, err := ApplyProperMotionRad(ra, dec, nil, zeros(2), zeros(2), zeros(2), 60000.0)
				return err
			},
			kind: coordutil.KindBadContainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var ie *coordutil.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InputError, got %v", err)
			}
			if ie.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", ie.Kind, tt.kind)
			}
		})
	}
}

func TestApplyProperMotionMoves(t *testing.T) {
	// 1 arcsec/yr over ~23 years from J2000 is ~23 arcsec.
	mjd := 60000.0
	years := (mjd - 51544.5) / 365.25
	ra, dec, err := ApplyProperMotionRad(
		[]float64{1.0}, []float64{0.0},
		[]float64{arcsec}, []float64{0.0},
		zeros(1), zeros(1), mjd)
	if err != nil {
		t.Fatal(err)
	}
	shift := (ra[0] - 1.0) / arcsec
	if math.Abs(shift-years) > 0.01 {
		t.Errorf("RA shift = %v arcsec, want %v", shift, years)
	}
	if math.Abs(dec[0]) > 0.01*arcsec {
		t.Errorf("Dec shifted by %v arcsec", dec[0]/arcsec)
	}
}

func TestApplyProperMotionNaNElement(t *testing.T) {
	ra := []float64{1.0, math.NaN(), 1.2}
	dec := []float64{0.1, 0.2, 0.3}
	raOut, decOut, err := ApplyProperMotionRad(ra, dec, zeros(3), zeros(3), zeros(3), zeros(3), 60000.0)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(raOut[1]) || !math.IsNaN(decOut[1]) {
		t.Errorf("NaN element survived: (%v, %v)", raOut[1], decOut[1])
	}
	for _, i := range []int{0, 2} {
		if math.IsNaN(raOut[i]) || math.IsNaN(decOut[i]) {
			t.Errorf("neighbor %d tainted: (%v, %v)", i, raOut[i], decOut[i])
		}
	}
}

func TestApplyPrecessionMagnitude(t *testing.T) {
	// General precession is ~50.3 arcsec/yr; over the ~23 years from J2000
	// to MJD 60000 a star should move by a few tenths of a degree.
	ra, dec, err := ApplyPrecessionRad([]float64{1.3}, []float64{0.2}, 60000.0)
	if err != nil {
		t.Fatal(err)
	}
	sep := coordutil.Haversine(1.3, 0.2, ra[0], dec[0])
	if sep < 500.0*arcsec || sep > 2000.0*arcsec {
		t.Errorf("precession moved star by %v arcsec", sep/arcsec)
	}
}

func TestApplyPrecessionScalarMatchesSlice(t *testing.T) {
	raS, decS, err := ApplyPrecessionScalarRad(2.2, -0.7, 61000.0)
	if err != nil {
		t.Fatal(err)
	}
	ra, dec, err := ApplyPrecessionRad([]float64{2.2}, []float64{-0.7}, 61000.0)
	if err != nil {
		t.Fatal(err)
	}
	if raS != ra[0] || decS != dec[0] {
		t.Errorf("scalar (%v, %v) != slice (%v, %v)", raS, decS, ra[0], dec[0])
	}
}

func TestAppGeoFromICRSValidation(t *testing.T) {
	ra := []float64{1.0}
	if _, _, err := AppGeoFromICRSRad(ra, ra, zeros(1), zeros(1), zeros(1), zeros(1), math.NaN(), 60000.0); err == nil {
		t.Error("NaN epoch accepted")
	}
	if _, _, err := AppGeoFromICRSRad(ra, ra, zeros(1), zeros(1), zeros(1), zeros(1), 2000.0, math.NaN()); err == nil {
		t.Error("NaN mjd accepted")
	}
}

func TestAppGeoShiftDominatedByPrecession(t *testing.T) {
	raOut, decOut, err := AppGeoFromICRSRad(
		[]float64{1.3}, []float64{0.2},
		zeros(1), zeros(1), zeros(1), zeros(1), 2000.0, 60000.0)
	if err != nil {
		t.Fatal(err)
	}
	sep := coordutil.Haversine(1.3, 0.2, raOut[0], decOut[0])
	// Precession of ~0.3 deg plus aberration of at most 20.5 arcsec.
	if sep < 500.0*arcsec || sep > 2000.0*arcsec {
		t.Errorf("apparent place moved by %v arcsec", sep/arcsec)
	}
}

func TestRefractionCoefficientsRequireSite(t *testing.T) {
	_, _, err := RefractionCoefficients(0.5, nil)
	var ie *coordutil.InputError
	if !errors.As(err, &ie) || ie.Kind != coordutil.KindMissingCollaborator {
		t.Fatalf("expected missing-collaborator InputError, got %v", err)
	}

	if _, _, err := RefractionCoefficients(0.5, DefaultSite()); err != nil {
		t.Errorf("valid site rejected: %v", err)
	}
}

func TestApplyRefractionSliceAndScalarAgree(t *testing.T) {
	a, b, err := RefractionCoefficients(0.5, DefaultSite())
	if err != nil {
		t.Fatal(err)
	}
	zd := []float64{0.2, 0.7, math.NaN(), 1.1}
	out, err := ApplyRefractionRad(zd, a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i, z := range zd {
		s := ApplyRefractionScalarRad(z, a, b)
		if math.IsNaN(z) {
			if !math.IsNaN(out[i]) || !math.IsNaN(s) {
				t.Errorf("NaN zenith distance at %d produced %v / %v", i, out[i], s)
			}
			continue
		}
		if out[i] != s {
			t.Errorf("element %d: slice %v != scalar %v", i, out[i], s)
		}
		if out[i] >= z {
			t.Errorf("refraction did not shrink zenith distance at %d", i)
		}
	}

	if _, err := ApplyRefractionRad(nil, a, b); err == nil {
		t.Error("nil zenith-distance slice accepted")
	}
}

func TestObservedFromAppGeoValidation(t *testing.T) {
	ra := []float64{0.5}

	tests := []struct {
		name string
		ctx  *Context
		kind coordutil.Kind
	}{
		{"nil context", nil, coordutil.KindMissingContext},
		{"no mjd", NewContext(WithSite(DefaultSite())), coordutil.KindMissingContext},
		{"no site", NewContext(WithMJD(60000.0)), coordutil.KindMissingCollaborator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ObservedFromAppGeoRad(ra, ra, tt.ctx, true, 0.5)
			var ie *coordutil.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InputError, got %v", err)
			}
			if ie.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", ie.Kind, tt.kind)
			}
		})
	}

	if _, _, err := ObservedFromAppGeoRad(ra, []float64{1, 2}, testContext(), true, 0.5); err == nil {
		t.Error("mismatched ra/dec lengths accepted")
	}
}

func TestRefractionRaisesAltitude(t *testing.T) {
	ctx := testContext()
	// A field some 40 degrees from the zenith at this site and time.
	ra := []float64{ctx.pointingRA}
	dec := []float64{ctx.pointingDec + 0.7}

	_, _, altRef, _, err := ObservedAltAzFromAppGeoRad(ra, dec, ctx, true, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	_, _, altRaw, _, err := ObservedAltAzFromAppGeoRad(ra, dec, ctx, false, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	lift := altRef[0] - altRaw[0]
	if lift <= 0 {
		t.Fatalf("refraction lowered altitude by %v arcsec", -lift/arcsec)
	}
	if lift > 300.0*arcsec {
		t.Errorf("refraction lift %v arcsec is implausibly large", lift/arcsec)
	}
}

func TestObservedFromICRSChain(t *testing.T) {
	ctx := testContext()
	ra := []float64{ctx.pointingRA, math.NaN()}
	dec := []float64{ctx.pointingDec, 0.1}

	raObs, decObs, err := ObservedFromICRSRad(ra, dec, zeros(2), zeros(2), zeros(2), zeros(2), ctx, 2000.0, true, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	// The observed position stays within a degree of the catalog position
	// (precession dominates), and NaN elements stay NaN.
	sep := coordutil.Haversine(ra[0], dec[0], raObs[0], decObs[0])
	if sep > math.Pi/180 {
		t.Errorf("observed position %v deg from catalog", sep*180/math.Pi)
	}
	if !math.IsNaN(raObs[1]) || !math.IsNaN(decObs[1]) {
		t.Errorf("NaN element survived the chain: (%v, %v)", raObs[1], decObs[1])
	}

	if _, _, err := ObservedFromICRSRad(ra, dec, zeros(2), zeros(2), zeros(2), zeros(2), ctx, math.NaN(), true, 0.5); err == nil {
		t.Error("NaN epoch accepted")
	}
}

func TestObservedScalarMatchesSlice(t *testing.T) {
	ctx := testContext()
	raS, decS, err := ObservedFromICRSScalarRad(ctx.pointingRA, ctx.pointingDec, 0, 0, 0, 0, ctx, 2000.0, true, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	ra, dec, err := ObservedFromICRSRad(
		[]float64{ctx.pointingRA}, []float64{ctx.pointingDec},
		zeros(1), zeros(1), zeros(1), zeros(1), ctx, 2000.0, true, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if raS != ra[0] || decS != dec[0] {
		t.Errorf("scalar (%v, %v) != slice (%v, %v)", raS, decS, ra[0], dec[0])
	}
}

func TestDegreesFormsAgreeWithRadians(t *testing.T) {
	ctx := testContext()
	raDeg := []float64{24.8, 25.2}
	decDeg := []float64{-29.7, -30.4}

	raD, decD, err := ObservedFromICRS(raDeg, decDeg, zeros(2), zeros(2), zeros(2), zeros(2), ctx, 2000.0, true, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	raR, decR, err := ObservedFromICRSRad(
		coordutil.SliceRadiansFromDegrees(raDeg),
		coordutil.SliceRadiansFromDegrees(decDeg),
		zeros(2), zeros(2), zeros(2), zeros(2), ctx, 2000.0, true, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range raD {
		if math.Abs(coordutil.RadiansFromDegrees(raD[i])-raR[i]) > 1e-12 {
			t.Errorf("ra[%d]: degrees form disagrees with radians form", i)
		}
		if math.Abs(coordutil.RadiansFromDegrees(decD[i])-decR[i]) > 1e-12 {
			t.Errorf("dec[%d]: degrees form disagrees with radians form", i)
		}
	}
}

func TestContextRequireNamesFields(t *testing.T) {
	ctx := NewContext(WithMJD(60000.0))
	err := ctx.Require("pixelCoordsFromRaDec", FieldPointing, FieldMJD, FieldRotSkyPos)
	if err == nil {
		t.Fatal("missing pointing accepted")
	}
	want := "pixelCoordsFromRaDec: you need an observation context with a pointing RA and Dec"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
