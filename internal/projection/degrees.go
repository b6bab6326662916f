package projection

import (
	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/coordutil"
)

// Pupil coordinates are radians in every form; only the sky side converts.

// PupilCoordsFromRaDec is the degrees form of PupilCoordsFromRaDecRad.
func PupilCoordsFromRaDec(ra, dec []float64, ctx *astrometry.Context, epoch float64) ([]float64, []float64, error) {
	return PupilCoordsFromRaDecRad(
		coordutil.SliceRadiansFromDegrees(ra),
		coordutil.SliceRadiansFromDegrees(dec),
		ctx, epoch)
}

// PupilCoordFromRaDec is the degrees form of PupilCoordFromRaDecRad.
func PupilCoordFromRaDec(ra, dec float64, ctx *astrometry.Context, epoch float64) (float64, float64, error) {
	return PupilCoordFromRaDecRad(
		coordutil.RadiansFromDegrees(ra),
		coordutil.RadiansFromDegrees(dec),
		ctx, epoch)
}

// RaDecFromPupilCoords is the degrees form of RaDecFromPupilCoordsRad.
func RaDecFromPupilCoords(xPup, yPup []float64, ctx *astrometry.Context, epoch float64) ([]float64, []float64, error) {
	ra, dec, err := RaDecFromPupilCoordsRad(xPup, yPup, ctx, epoch)
	if err != nil {
		return nil, nil, err
	}
	return coordutil.SliceDegreesFromRadians(ra), coordutil.SliceDegreesFromRadians(dec), nil
}

// RaDecFromPupilCoord is the degrees form of RaDecFromPupilCoordRad.
func RaDecFromPupilCoord(xPup, yPup float64, ctx *astrometry.Context, epoch float64) (float64, float64, error) {
	ra, dec, err := RaDecFromPupilCoordRad(xPup, yPup, ctx, epoch)
	if err != nil {
		return ra, dec, err
	}
	return coordutil.DegreesFromRadians(ra), coordutil.DegreesFromRadians(dec), nil
}
