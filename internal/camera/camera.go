package camera

import (
	"fmt"

	"github.com/star/skypix/internal/coordutil"
)

// Camera is the focal-plane model: a global plate scale and an ordered
// detector list. Detector order is fixed at construction and is the
// documented tie-break for chip lookup when bounding regions overlap.
type Camera struct {
	name          string
	plateScaleAmm float64 // arcsec per mm

	detectors []*Detector
	byName    map[string]*Detector
}

// New builds a Camera. The plate scale is arcseconds per millimeter; the
// detector order given here is the enumeration order for chip lookup.
func New(name string, plateScaleArcsecPerMm float64, detectors []*Detector) (*Camera, error) {
	if plateScaleArcsecPerMm <= 0 {
		return nil, fmt.Errorf("camera %q: plate scale must be positive, got %v", name, plateScaleArcsecPerMm)
	}
	if len(detectors) == 0 {
		return nil, fmt.Errorf("camera %q: no detectors", name)
	}
	byName := make(map[string]*Detector, len(detectors))
	for _, d := range detectors {
		if d.Name == "" {
			return nil, fmt.Errorf("camera %q: detector with empty name", name)
		}
		if d.XPixels <= 0 || d.YPixels <= 0 || d.PixelSizeMm <= 0 {
			return nil, fmt.Errorf("camera %q: detector %q has an invalid pixel grid", name, d.Name)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("camera %q: duplicate detector %q", name, d.Name)
		}
		byName[d.Name] = d
	}
	return &Camera{
		name:          name,
		plateScaleAmm: plateScaleArcsecPerMm,
		detectors:     detectors,
		byName:        byName,
	}, nil
}

// Name returns the camera name.
func (c *Camera) Name() string { return c.name }

// PlateScale returns the plate scale in arcseconds per millimeter.
func (c *Camera) PlateScale() float64 { return c.plateScaleAmm }

// Detectors returns the detectors in enumeration order. Callers must not
// modify the returned slice.
func (c *Camera) Detectors() []*Detector { return c.detectors }

// Detector looks a detector up by name.
func (c *Camera) Detector(name string) (*Detector, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// FocalFromPupil converts pupil coordinates (radians) to focal-plane mm via
// the plate scale.
func (c *Camera) FocalFromPupil(xPup, yPup float64) (xmm, ymm float64) {
	k := coordutil.ArcsecPerRadian / c.plateScaleAmm
	return xPup * k, yPup * k
}

// PupilFromFocal converts focal-plane mm to pupil radians.
func (c *Camera) PupilFromFocal(xmm, ymm float64) (xPup, yPup float64) {
	k := c.plateScaleAmm / coordutil.ArcsecPerRadian
	return xmm * k, ymm * k
}

// ChipFromFocal returns the first detector in enumeration order whose pixel
// bounds contain the focal-plane point under the distortion-inclusive
// transform, or nil when the point misses every detector.
func (c *Camera) ChipFromFocal(xmm, ymm float64) *Detector {
	for _, d := range c.detectors {
		if d.ContainsPixel(d.PixelFromFocal(xmm, ymm, true)) {
			return d
		}
	}
	return nil
}
