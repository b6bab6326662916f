package astro

import "math"

// RefractionCoefficients computes the two-constant refraction model
// zdObserved = zdTrue - (A tan z + B tan^3 z) for a site. Temperature in
// kelvin, pressure in millibars, observing wavelength in micrometres. The
// gamma term carries the wavelength dependence of the refractive index of dry
// air; the beta term folds in the scale height of the atmosphere.
func RefractionCoefficients(temperatureK, pressureMb, wavelengthUm float64) (a, b float64) {
	w2 := wavelengthUm * wavelengthUm
	gamma := (77.53484e-6 + (4.39108e-7+3.666e-9/w2)/w2) * pressureMb / temperatureK
	beta := 4.4474e-6 * temperatureK

	a = gamma * (1 - beta)
	b = -gamma * (beta - gamma/2)
	return a, b
}

// Refract applies the two-constant refraction model to a true zenith distance
// in radians, returning the refracted (observed) zenith distance. The model
// diverges toward the horizon; beyond 75 degrees the tangent is held at its
// 75-degree value so the correction stays finite.
func Refract(zd, a, b float64) float64 {
	if math.IsNaN(zd) {
		return math.NaN()
	}
	const zdMax = 75.0 * math.Pi / 180.0
	t := math.Tan(math.Min(zd, zdMax))
	return zd - (a*t + b*t*t*t)
}
