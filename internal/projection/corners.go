package projection

import (
	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
)

// CornerPixels returns a detector's four pixel-frame corners in the order
// (min,min), (min,max), (max,min), (max,max).
func CornerPixels(chipName string, cam *camera.Camera) ([4][2]float64, error) {
	const op = "getCornerPixels"
	var zero [4][2]float64
	if cam == nil {
		return zero, coordutil.NoCamera(op)
	}
	det, ok := cam.Detector(chipName)
	if !ok {
		return zero, coordutil.UnknownDetector(op, chipName)
	}
	return det.CornerPixels(), nil
}

// CornerRaDecRad pushes a detector's four pixel corners through the inverse
// chain to observed RA/Dec in radians, in the same corner order as
// CornerPixels.
func CornerRaDecRad(chipName string, cam *camera.Camera, ctx *astrometry.Context, epoch float64) ([4][2]float64, error) {
	const op = "getCornerRaDec"
	var zero [4][2]float64
	if cam == nil {
		return zero, coordutil.NoCamera(op)
	}
	det, ok := cam.Detector(chipName)
	if !ok {
		return zero, coordutil.UnknownDetector(op, chipName)
	}
	f, err := newPointingFrame(op, ctx, epoch)
	if err != nil {
		return zero, err
	}

	var out [4][2]float64
	for i, c := range det.CornerPixels() {
		xmm, ymm := det.FocalFromPixel(c[0], c[1], true)
		xPup, yPup := cam.PupilFromFocal(xmm, ymm)
		out[i][0], out[i][1] = f.fromPupil(xPup, yPup)
	}
	return out, nil
}

// CornerRaDec is the degrees form of CornerRaDecRad.
func CornerRaDec(chipName string, cam *camera.Camera, ctx *astrometry.Context, epoch float64) ([4][2]float64, error) {
	corners, err := CornerRaDecRad(chipName, cam, ctx, epoch)
	if err != nil {
		return corners, err
	}
	for i := range corners {
		corners[i][0] = coordutil.DegreesFromRadians(corners[i][0])
		corners[i][1] = coordutil.DegreesFromRadians(corners[i][1])
	}
	return corners, nil
}
