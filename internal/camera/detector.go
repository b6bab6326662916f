// Package camera models the segmented focal plane: a plate scale tying pupil
// radians to millimeters, and an ordered list of detectors, each with its own
// pixel grid, placement, and radial distortion. The projection engine queries
// it and never mutates it, so a Camera is safe for concurrent use.
package camera

import "math"

// Detector is one segment of the focal plane. Pixel coordinates are
// detector-local with the origin at the (-0.5, -0.5) corner, so an n-pixel
// axis spans [-0.5, n-0.5] and the detector center sits at (n-1)/2.
//
// The pixel grid is rotated relative to the focal plane: pixel +x runs along
// focal-plane +y and pixel +y along focal-plane -x.
type Detector struct {
	Name        string
	CenterXmm   float64
	CenterYmm   float64
	XPixels     int
	YPixels     int
	PixelSizeMm float64

	// Distortion holds the odd radial polynomial coefficients c1, c2, ...
	// applied in detector-local mm: r' = r (1 + c1 r^2 + c2 r^4 + ...).
	// Empty means the detector is distortion-free.
	Distortion []float64
}

// distortScale returns r'/r for a local radius r.
func (d *Detector) distortScale(r float64) float64 {
	s := 1.0
	r2 := r * r
	p := r2
	for _, c := range d.Distortion {
		s += c * p
		p *= r2
	}
	return s
}

// distort maps an undistorted local offset (mm) to its distorted position.
func (d *Detector) distort(dx, dy float64) (float64, float64) {
	if len(d.Distortion) == 0 {
		return dx, dy
	}
	s := d.distortScale(math.Hypot(dx, dy))
	return dx * s, dy * s
}

// undistort inverts distort by Newton iteration on the radius.
func (d *Detector) undistort(dx, dy float64) (float64, float64) {
	if len(d.Distortion) == 0 {
		return dx, dy
	}
	rd := math.Hypot(dx, dy)
	if rd == 0 {
		return dx, dy
	}
	r := rd
	for i := 0; i < 20; i++ {
		f := r*d.distortScale(r) - rd
		// Derivative of r + c1 r^3 + c2 r^5 + ...
		df := 1.0
		r2 := r * r
		p := r2
		for k, c := range d.Distortion {
			df += float64(2*k+3) * c * p
			p *= r2
		}
		step := f / df
		r -= step
		if math.Abs(step) < 1e-14 {
			break
		}
	}
	s := r / rd
	return dx * s, dy * s
}

// PixelFromFocal maps a focal-plane position (mm) to this detector's pixel
// coordinates, applying the pixel/focal axis swap and, when requested, the
// detector's distortion.
func (d *Detector) PixelFromFocal(xmm, ymm float64, includeDistortion bool) (xPix, yPix float64) {
	dx := xmm - d.CenterXmm
	dy := ymm - d.CenterYmm
	if includeDistortion {
		dx, dy = d.distort(dx, dy)
	}
	cx := float64(d.XPixels-1) / 2
	cy := float64(d.YPixels-1) / 2
	return cx + dy/d.PixelSizeMm, cy - dx/d.PixelSizeMm
}

// FocalFromPixel inverts PixelFromFocal for the same distortion flag.
func (d *Detector) FocalFromPixel(xPix, yPix float64, includeDistortion bool) (xmm, ymm float64) {
	cx := float64(d.XPixels-1) / 2
	cy := float64(d.YPixels-1) / 2
	dy := (xPix - cx) * d.PixelSizeMm
	dx := -(yPix - cy) * d.PixelSizeMm
	if includeDistortion {
		dx, dy = d.undistort(dx, dy)
	}
	return d.CenterXmm + dx, d.CenterYmm + dy
}

// ContainsPixel reports whether a pixel coordinate lies on the detector.
func (d *Detector) ContainsPixel(xPix, yPix float64) bool {
	return xPix >= -0.5 && xPix <= float64(d.XPixels)-0.5 &&
		yPix >= -0.5 && yPix <= float64(d.YPixels)-0.5
}

// CornerPixels returns the four pixel-frame corners in the order
// (min,min), (min,max), (max,min), (max,max).
func (d *Detector) CornerPixels() [4][2]float64 {
	xMax := float64(d.XPixels) - 0.5
	yMax := float64(d.YPixels) - 0.5
	return [4][2]float64{
		{-0.5, -0.5},
		{-0.5, yMax},
		{xMax, -0.5},
		{xMax, yMax},
	}
}
