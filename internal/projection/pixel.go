package projection

import (
	"math"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
)

// resolveChipNames normalizes the optional chipNames argument of the pixel
// entry points: nil means "look each point up", a single name broadcasts to
// all points, and any other length must equal the point count.
func resolveChipNames(op string, chipNames []string, n int) (func(i int) (string, bool), error) {
	switch {
	case chipNames == nil:
		return nil, nil
	case len(chipNames) == 1:
		return func(int) (string, bool) { return chipNames[0], true }, nil
	case len(chipNames) == n:
		return func(i int) (string, bool) { return chipNames[i], true }, nil
	default:
		return nil, coordutil.CountMismatch(op, n, "chipNames", len(chipNames))
	}
}

// pixelOnePupil runs one pupil point through chip resolution (unless a name
// was supplied) and the detector's forward pixel transform. Off-chip and NaN
// points come back as NaN.
func pixelOnePupil(op string, xPup, yPup float64, name string, haveName bool, cam *camera.Camera, includeDistortion bool) (xPix, yPix float64, err error) {
	if math.IsNaN(xPup) || math.IsNaN(yPup) {
		return math.NaN(), math.NaN(), nil
	}
	xmm, ymm := cam.FocalFromPupil(xPup, yPup)

	var det *camera.Detector
	if haveName {
		if name == "" {
			return math.NaN(), math.NaN(), nil
		}
		d, ok := cam.Detector(name)
		if !ok {
			return math.NaN(), math.NaN(), coordutil.UnknownDetector(op, name)
		}
		det = d
	} else {
		det = cam.ChipFromFocal(xmm, ymm)
		if det == nil {
			return math.NaN(), math.NaN(), nil
		}
	}

	xPix, yPix = det.PixelFromFocal(xmm, ymm, includeDistortion)
	return xPix, yPix, nil
}

// PixelCoordsFromPupilCoords converts pupil coordinates (radians) to
// detector pixel coordinates. With a nil chipNames each point resolves its
// own detector; a supplied list pins the detector per point (one name
// broadcasts to every point). Points off every detector, points pinned to
// the empty name, and NaN inputs yield NaN pixels.
func PixelCoordsFromPupilCoords(xPup, yPup []float64, chipNames []string, cam *camera.Camera, includeDistortion bool) ([]float64, []float64, error) {
	const op = "pixelCoordsFromPupilCoords"
	if cam == nil {
		return nil, nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "xPupil", xPup, "yPupil", yPup); err != nil {
		return nil, nil, err
	}
	nameAt, err := resolveChipNames(op, chipNames, len(xPup))
	if err != nil {
		return nil, nil, err
	}

	xPix := make([]float64, len(xPup))
	yPix := make([]float64, len(xPup))
	for i := range xPup {
		name, haveName := "", false
		if nameAt != nil {
			name, haveName = nameAt(i)
		}
		xPix[i], yPix[i], err = pixelOnePupil(op, xPup[i], yPup[i], name, haveName, cam, includeDistortion)
		if err != nil {
			return nil, nil, err
		}
	}
	return xPix, yPix, nil
}

// PixelCoordFromPupilCoords is the single-point form of
// PixelCoordsFromPupilCoords; chipName "" means "resolve it for me".
func PixelCoordFromPupilCoords(xPup, yPup float64, chipName string, cam *camera.Camera, includeDistortion bool) (float64, float64, error) {
	const op = "pixelCoordsFromPupilCoords"
	if cam == nil {
		return math.NaN(), math.NaN(), coordutil.NoCamera(op)
	}
	return pixelOnePupil(op, xPup, yPup, chipName, chipName != "", cam, includeDistortion)
}

// PixelCoordsFromRaDecRad converts observed RA/Dec in radians to pixel
// coordinates: pupil projection, chip resolution, forward pixel transform.
// The context needs a pointing, an mjd, and a rotSkyPos.
func PixelCoordsFromRaDecRad(ra, dec []float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera, chipNames []string, includeDistortion bool) ([]float64, []float64, error) {
	const op = "pixelCoordsFromRaDec"
	if cam == nil {
		return nil, nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "RA", ra, "Dec", dec); err != nil {
		return nil, nil, err
	}
	nameAt, err := resolveChipNames(op, chipNames, len(ra))
	if err != nil {
		return nil, nil, err
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return nil, nil, err
	}

	xPix := make([]float64, len(ra))
	yPix := make([]float64, len(ra))
	for i := range ra {
		x, y := f.toPupil(ra[i], dec[i])
		name, haveName := "", false
		if nameAt != nil {
			name, haveName = nameAt(i)
		}
		xPix[i], yPix[i], err = pixelOnePupil(op, x, y, name, haveName, cam, includeDistortion)
		if err != nil {
			return nil, nil, err
		}
	}
	return xPix, yPix, nil
}

// PixelCoordsFromRaDec is the degrees form of PixelCoordsFromRaDecRad.
func PixelCoordsFromRaDec(ra, dec []float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera, chipNames []string, includeDistortion bool) ([]float64, []float64, error) {
	return PixelCoordsFromRaDecRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		ctx, epoch, cam, chipNames, includeDistortion)
}

// PixelCoordFromRaDecRad is the single-point form of PixelCoordsFromRaDecRad.
func PixelCoordFromRaDecRad(ra, dec float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera, chipName string, includeDistortion bool) (float64, float64, error) {
	const op = "pixelCoordsFromRaDec"
	if cam == nil {
		return math.NaN(), math.NaN(), coordutil.NoCamera(op)
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	x, y := f.toPupil(ra, dec)
	return pixelOnePupil(op, x, y, chipName, chipName != "", cam, includeDistortion)
}

// PixelCoordFromRaDec is the degrees form of PixelCoordFromRaDecRad.
func PixelCoordFromRaDec(ra, dec float64, ctx *astrometry.Context, epoch float64, cam *camera.Camera, chipName string, includeDistortion bool) (float64, float64, error) {
	return PixelCoordFromRaDecRad(
		coordutil.RadiansFromDegrees(ra),
		coordutil.RadiansFromDegrees(dec),
		ctx, epoch, cam, chipName, includeDistortion)
}

// PupilCoordsFromPixelCoords inverts the pixel transform. chipNames is
// required here: each point needs a detector to interpret its pixel frame
// (one name broadcasts). The empty name marks an off-chip point and yields
// NaN pupil coordinates.
func PupilCoordsFromPixelCoords(xPix, yPix []float64, chipNames []string, cam *camera.Camera, includeDistortion bool) ([]float64, []float64, error) {
	const op = "pupilCoordsFromPixelCoords"
	if cam == nil {
		return nil, nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "xPix", xPix, "yPix", yPix); err != nil {
		return nil, nil, err
	}
	if chipNames == nil {
		return nil, nil, coordutil.NilNames(op, "chipNames")
	}
	nameAt, err := resolveChipNames(op, chipNames, len(xPix))
	if err != nil {
		return nil, nil, err
	}

	xPup := make([]float64, len(xPix))
	yPup := make([]float64, len(xPix))
	for i := range xPix {
		name, _ := nameAt(i)
		xPup[i], yPup[i], err = pupilOnePixel(op, xPix[i], yPix[i], name, cam, includeDistortion)
		if err != nil {
			return nil, nil, err
		}
	}
	return xPup, yPup, nil
}

func pupilOnePixel(op string, xPix, yPix float64, chipName string, cam *camera.Camera, includeDistortion bool) (float64, float64, error) {
	if chipName == "" || math.IsNaN(xPix) || math.IsNaN(yPix) {
		return math.NaN(), math.NaN(), nil
	}
	det, ok := cam.Detector(chipName)
	if !ok {
		return math.NaN(), math.NaN(), coordutil.UnknownDetector(op, chipName)
	}
	xmm, ymm := det.FocalFromPixel(xPix, yPix, includeDistortion)
	xPup, yPup := cam.PupilFromFocal(xmm, ymm)
	return xPup, yPup, nil
}

// PupilCoordFromPixelCoords is the single-point form of
// PupilCoordsFromPixelCoords.
func PupilCoordFromPixelCoords(xPix, yPix float64, chipName string, cam *camera.Camera, includeDistortion bool) (float64, float64, error) {
	if cam == nil {
		return math.NaN(), math.NaN(), coordutil.NoCamera("pupilCoordsFromPixelCoords")
	}
	return pupilOnePixel("pupilCoordsFromPixelCoords", xPix, yPix, chipName, cam, includeDistortion)
}

// RaDecFromPixelCoordsRad runs the full inverse chain, pixel to pupil to
// observed sky, in radians.
func RaDecFromPixelCoordsRad(xPix, yPix []float64, chipNames []string, ctx *astrometry.Context, epoch float64, cam *camera.Camera, includeDistortion bool) ([]float64, []float64, error) {
	const op = "raDecFromPixelCoords"
	if cam == nil {
		return nil, nil, coordutil.NoCamera(op)
	}
	if err := coordutil.CheckPair(op, "xPix", xPix, "yPix", yPix); err != nil {
		return nil, nil, err
	}
	if chipNames == nil {
		return nil, nil, coordutil.NilNames(op, "chipNames")
	}
	nameAt, err := resolveChipNames(op, chipNames, len(xPix))
	if err != nil {
		return nil, nil, err
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return nil, nil, err
	}

	ra := make([]float64, len(xPix))
	dec := make([]float64, len(xPix))
	for i := range xPix {
		name, _ := nameAt(i)
		xPup, yPup, err := pupilOnePixel(op, xPix[i], yPix[i], name, cam, includeDistortion)
		if err != nil {
			return nil, nil, err
		}
		ra[i], dec[i] = f.fromPupil(xPup, yPup)
	}
	return ra, dec, nil
}

// RaDecFromPixelCoords is the degrees form of RaDecFromPixelCoordsRad.
func RaDecFromPixelCoords(xPix, yPix []float64, chipNames []string, ctx *astrometry.Context, epoch float64, cam *camera.Camera, includeDistortion bool) ([]float64, []float64, error) {
	ra, dec, err := RaDecFromPixelCoordsRad(xPix, yPix, chipNames, ctx, epoch, cam, includeDistortion)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(ra), coordutil.SliceDegreesFromRadians(dec), nil
}
