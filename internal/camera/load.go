package camera

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type detectorSpec struct {
	Name        string    `yaml:"name"`
	CenterMm    []float64 `yaml:"center_mm"`
	Pixels      []int     `yaml:"pixels"`
	PixelSizeMm float64   `yaml:"pixel_size_mm"`
	Distortion  []float64 `yaml:"distortion"`
}

type cameraSpec struct {
	Name               string         `yaml:"name"`
	PlateScaleArcsecMm float64        `yaml:"plate_scale_arcsec_per_mm"`
	Detectors          []detectorSpec `yaml:"detectors"`
}

// Parse builds a Camera from a YAML description. Detector order in the file
// is the enumeration order.
func Parse(data []byte) (*Camera, error) {
	var spec cameraSpec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("parse camera description: %w", err)
	}

	detectors := make([]*Detector, 0, len(spec.Detectors))
	for _, ds := range spec.Detectors {
		if len(ds.CenterMm) != 2 {
			return nil, fmt.Errorf("detector %q: center_mm needs two values, got %d", ds.Name, len(ds.CenterMm))
		}
		if len(ds.Pixels) != 2 {
			return nil, fmt.Errorf("detector %q: pixels needs two values, got %d", ds.Name, len(ds.Pixels))
		}
		detectors = append(detectors, &Detector{
			Name:        ds.Name,
			CenterXmm:   ds.CenterMm[0],
			CenterYmm:   ds.CenterMm[1],
			XPixels:     ds.Pixels[0],
			YPixels:     ds.Pixels[1],
			PixelSizeMm: ds.PixelSizeMm,
			Distortion:  ds.Distortion,
		})
	}
	return New(spec.Name, spec.PlateScaleArcsecMm, detectors)
}

// Load reads a YAML camera description from disk.
func Load(path string) (*Camera, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read camera description: %w", err)
	}
	return Parse(data)
}
