package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Physical constants for the apparent-place reduction.
const (
	// SpeedOfLightAUPerDay is c expressed in AU per day.
	SpeedOfLightAUPerDay = 173.1446326846693

	// KmPerSecToAUPerYear converts km/s to AU per Julian year. Used to fold
	// radial velocity into the perspective term of space motion.
	KmPerSecToAUPerYear = 0.21094502

	// AUKm is the astronomical unit in kilometres.
	AUKm = 1.495978707e8

	// EarthRadiusKm is the mean equatorial radius of the Earth.
	EarthRadiusKm = 6378.137

	// SiderealRate is the Earth's rotation rate in radians per second.
	SiderealRate = 7.2921151467e-5
)

// EarthPosVel returns a low-precision heliocentric position (AU) and velocity
// (AU/day) of the Earth in equatorial J2000 coordinates. Good to about 1e-4 AU
// in position, which keeps annual parallax and aberration below the
// milliarcsecond error floor of this pipeline.
func EarthPosVel(mjd float64) (pos, vel Vec3) {
	n := mjd - MJDJ2000

	// Mean longitude and mean anomaly of the Sun, degrees.
	l := 280.460 + 0.9856474*n
	g := (357.528 + 0.9856003*n) * math.Pi / 180

	// Ecliptic longitude of the Sun and Sun-Earth distance.
	lambda := (l + 1.915*math.Sin(g) + 0.020*math.Sin(2*g)) * math.Pi / 180
	r := 1.00014 - 0.01671*math.Cos(g) - 0.00014*math.Cos(2*g)

	eps := meanObliquity(mjd)
	se, ce := math.Sin(eps), math.Cos(eps)
	sl, cl := math.Sin(lambda), math.Cos(lambda)

	// Earth is opposite the Sun.
	pos = Vec3{
		X: -r * cl,
		Y: -r * sl * ce,
		Z: -r * sl * se,
	}

	// Orbital speed, nearly circular: 29.79 km/s along the direction of
	// motion (perpendicular to the Sun-Earth line in the ecliptic).
	vKmS := 29.79
	vAUDay := vKmS * 86400.0 / AUKm
	vel = Vec3{
		X: vAUDay * sl,
		Y: -vAUDay * cl * ce,
		Z: -vAUDay * cl * se,
	}

	return pos, vel
}

// SpaceMotion moves a catalog position forward from its catalog epoch by dt
// Julian years of proper motion, including the perspective (radial velocity
// times parallax) term. Angles in radians; pmRA is the coordinate rate
// d(RA)/dt times cos(Dec), in radians per year; parallax in radians; vRad in
// km/s (positive receding).
func SpaceMotion(ra, dec, pmRA, pmDec, parallax, vRad, dt float64) (raOut, decOut float64) {
	p := VecFromSpherical(ra, dec)

	sr, cr := math.Sincos(ra)
	sd, cd := math.Sincos(dec)

	// Unit vectors toward increasing RA and Dec.
	east := Vec3{X: -sr, Y: cr, Z: 0}
	north := Vec3{X: -cr * sd, Y: -sr * sd, Z: cd}

	// Radial motion enters as a rate of change of the unit vector scaled by
	// parallax (rad/yr), the classical perspective acceleration term.
	radialRate := vRad * KmPerSecToAUPerYear * parallax

	motion := east.Scale(pmRA).Add(north.Scale(pmDec)).Add(p.Scale(radialRate))
	return p.Add(motion.Scale(dt)).Normalized().Spherical()
}

// ApparentPlaceParams caches the time-dependent pieces of the mean-to-apparent
// reduction for a single observation instant so that array entry points pay
// the trig cost once.
type ApparentPlaceParams struct {
	mjd     float64
	dtYears float64 // years from catalog epoch to date
	earthP  Vec3    // heliocentric Earth position, AU
	earthV  Vec3    // heliocentric Earth velocity, fraction of c
	pn      *mat.Dense
}

// NewApparentPlaceParams prepares the reduction from a catalog mean place at
// the given Julian epoch to the apparent geocentric place at the given MJD.
func NewApparentPlaceParams(epoch, mjd float64) *ApparentPlaceParams {
	pos, vel := EarthPosVel(mjd)
	return &ApparentPlaceParams{
		mjd:     mjd,
		dtYears: (mjd - MJDFromJulianEpoch(epoch)) / DaysPerJulianYear,
		earthP:  pos,
		earthV:  vel.Scale(1 / SpeedOfLightAUPerDay),
		pn:      PrecessionNutationMatrix(mjd),
	}
}

// Apply reduces one mean catalog place to apparent geocentric RA/Dec of date.
// Steps: space motion to date, annual parallax, annual aberration, then
// precession-nutation to the true equator and equinox of date. NaN inputs
// propagate to NaN outputs.
func (ap *ApparentPlaceParams) Apply(ra, dec, pmRA, pmDec, parallax, vRad float64) (raOut, decOut float64) {
	if math.IsNaN(ra) || math.IsNaN(dec) {
		return math.NaN(), math.NaN()
	}

	raM, decM := SpaceMotion(ra, dec, pmRA, pmDec, parallax, vRad, ap.dtYears)
	p := VecFromSpherical(raM, decM)

	// Annual parallax shifts the direction by -parallax * Earth position
	// projected on the sky.
	if parallax != 0 {
		p = p.Sub(ap.earthP.Scale(parallax)).Normalized()
	}

	// First-order annual aberration.
	p = p.Add(ap.earthV).Normalized()

	return ApplyMat(ap.pn, p).Spherical()
}

// DiurnalVelocity returns the observer's velocity due to Earth rotation as a
// fraction of c, in the true equatorial frame of date, for a site at the given
// geodetic latitude (radians) and the given local apparent sidereal time.
func DiurnalVelocity(latitude, last float64) Vec3 {
	speed := SiderealRate * EarthRadiusKm * math.Cos(latitude) // km/s, eastward
	frac := speed / 299792.458
	// Eastward unit vector at the site in the frame of date.
	sl, cl := math.Sincos(last)
	return Vec3{X: -frac * sl, Y: frac * cl, Z: 0}
}
