// Package astrometry implements the reduction engine that moves star
// positions between catalog ICRS coordinates and observed coordinates at a
// site: proper motion, precession-nutation, apparent geocentric place,
// diurnal aberration, and atmospheric refraction.
//
// Angles are radians internally. Each operation has a degrees form (the
// default name) and a radians form (Rad suffix); slice forms process parallel
// coordinate slices and scalar forms (Scalar) handle a single star. NaN
// coordinates propagate per element and never abort a call.
package astrometry

// Site is an observing location. All fields must be populated for
// refraction; temperature and pressure are the physically required pair and
// gate validity.
type Site struct {
	LatitudeRad    float64
	LongitudeRad   float64 // east positive
	HeightM        float64
	TemperatureK   float64
	PressureMb     float64
	LapseRateKPerM float64
}

// DefaultSite returns a Cerro Pachon-like mountain site.
func DefaultSite() *Site {
	return &Site{
		LatitudeRad:    -0.5278006557610982, // -30.2444 deg
		LongitudeRad:   -1.2349848612667577, // -70.7494 deg
		HeightM:        2650.0,
		TemperatureK:   284.65,
		PressureMb:     749.3,
		LapseRateKPerM: 0.0065,
	}
}

// refractionReady reports whether the site carries the fields the refraction
// model needs.
func (s *Site) refractionReady() bool {
	return s != nil && s.TemperatureK > 0 && s.PressureMb > 0
}
