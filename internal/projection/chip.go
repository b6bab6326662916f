package projection

import (
	"math"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
)

// ChipNamesFromPupilCoords resolves, for each pupil coordinate pair, the
// detector whose pixel bounds contain the point under the
// distortion-inclusive transform. A miss or a NaN input yields the empty
// string, a first-class "off chip" value. Ties between overlapping detectors
// go to the first match in the camera's enumeration order.
func ChipNamesFromPupilCoords(xPup, yPup []float64, cam *camera.Camera) ([]string, error) {
	const op = "chipNameFromPupilCoords"
	if cam == nil {
		return nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "xPupil", xPup, "yPupil", yPup); err != nil {
		return nil, err
	}

	names := make([]string, len(xPup))
	for i := range xPup {
		names[i] = chipNameOnePupil(xPup[i], yPup[i], cam)
	}
	return names, nil
}

// ChipNameFromPupilCoords is the single-point form of
// ChipNamesFromPupilCoords.
func ChipNameFromPupilCoords(xPup, yPup float64, cam *camera.Camera) (string, error) {
	if cam == nil {
		return "", coordutil.NoCamera("chipNameFromPupilCoords")
	}
	return chipNameOnePupil(xPup, yPup, cam), nil
}

func chipNameOnePupil(xPup, yPup float64, cam *camera.Camera) string {
	if math.IsNaN(xPup) || math.IsNaN(yPup) {
		return ""
	}
	d := cam.ChipFromFocal(cam.FocalFromPupil(xPup, yPup))
	if d == nil {
		return ""
	}
	return d.Name
}

// ChipNamesFromRaDecRad resolves detectors for observed RA/Dec positions in
// radians: pupil projection about the context's pointing followed by chip
// lookup.
func ChipNamesFromRaDecRad(ra, dec []float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera) ([]string, error) {
	const op = "chipNameFromRaDec"
	if cam == nil {
		return nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "RA", ra, "Dec", dec); err != nil {
		return nil, err
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(ra))
	for i := range ra {
		x, y := f.toPupil(ra[i], dec[i])
		names[i] = chipNameOnePupil(x, y, cam)
	}
	return names, nil
}

// ChipNameFromRaDecRad is the single-point form of ChipNamesFromRaDecRad.
func ChipNameFromRaDecRad(ra, dec float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera) (string, error) {
	const op = "chipNameFromRaDec"
	if cam == nil {
		return "", coordutil.NoCamera(op)
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return "", err
	}
	x, y := f.toPupil(ra, dec)
	return chipNameOnePupil(x, y, cam), nil
}

// ChipNamesFromRaDec is the degrees form of ChipNamesFromRaDecRad.
func ChipNamesFromRaDec(ra, dec []float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera) ([]string, error) {
	return ChipNamesFromRaDecRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		ctx, epoch, cam)
}

// ChipNameFromRaDec is the degrees form of ChipNameFromRaDecRad.
func ChipNameFromRaDec(ra, dec float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera) (string, error) {
	return ChipNameFromRaDecRad(
		coordutil.RadiansFromDegrees(ra),
		coordutil.RadiansFromDegrees(dec),
		ctx, epoch, cam)
}
