package projection

import (
	"math"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
)

// FocalPlaneCoordsFromPupilCoords converts pupil coordinates (radians) to
// focal-plane millimeters through the camera's plate scale. The map is
// global and does not depend on which detector, if any, contains the point.
func FocalPlaneCoordsFromPupilCoords(xPup, yPup []float64, cam *camera.Camera) ([]float64, []float64, error) {
	const op = "focalPlaneCoordsFromPupilCoords"
	if cam == nil {
		return nil, nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "xPupil", xPup, "yPupil", yPup); err != nil {
		return nil, nil, err
	}

	xmm := make([]float64, len(xPup))
	ymm := make([]float64, len(xPup))
	for i := range xPup {
		if math.IsNaN(xPup[i]) || math.IsNaN(yPup[i]) {
			xmm[i], ymm[i] = math.NaN(), math.NaN()
			continue
		}
		xmm[i], ymm[i] = cam.FocalFromPupil(xPup[i], yPup[i])
	}
	return xmm, ymm, nil
}

// FocalPlaneCoordFromPupilCoords is the single-point form of
// FocalPlaneCoordsFromPupilCoords.
func FocalPlaneCoordFromPupilCoords(xPup, yPup float64, cam *camera.Camera) (float64, float64, error) {
	if cam == nil {
		return math.NaN(), math.NaN(), coordutil.NoCamera("focalPlaneCoordsFromPupilCoords")
	}
	if math.IsNaN(xPup) || math.IsNaN(yPup) {
		return math.NaN(), math.NaN(), nil
	}
	xmm, ymm := cam.FocalFromPupil(xPup, yPup)
	return xmm, ymm, nil
}

// FocalPlaneCoordsFromRaDecRad composes the pupil projection with the plate
// scale for observed RA/Dec in radians.
func FocalPlaneCoordsFromRaDecRad(ra, dec []float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera) ([]float64, []float64, error) {
	const op = "focalPlaneCoordsFromRaDec"
	if cam == nil {
		return nil, nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "RA", ra, "Dec", dec); err != nil {
		return nil, nil, err
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return nil, nil, err
	}

	xmm := make([]float64, len(ra))
	ymm := make([]float64, len(ra))
	for i := range ra {
		x, y := f.toPupil(ra[i], dec[i])
		if math.IsNaN(x) || math.IsNaN(y) {
			xmm[i], ymm[i] = math.NaN(), math.NaN()
			continue
		}
		xmm[i], ymm[i] = cam.FocalFromPupil(x, y)
	}
	return xmm, ymm, nil
}

// FocalPlaneCoordsFromRaDec is the degrees form of
// FocalPlaneCoordsFromRaDecRad.
func FocalPlaneCoordsFromRaDec(ra, dec []float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera) ([]float64, []float64, error) {
	return FocalPlaneCoordsFromRaDecRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		ctx, epoch, cam)
}
