package astrometry

import (
	"github.com/star/skypix/internal/coordutil"
)

// Field names a Context requirement an operation can declare.
type Field int

const (
	// FieldPointing is the boresite RA/Dec.
	FieldPointing Field = iota
	// FieldMJD is the observation time.
	FieldMJD
	// FieldRotSkyPos is the sky rotation angle of the camera.
	FieldRotSkyPos
	// FieldSite is the observing location.
	FieldSite
)

// Context is an immutable observation description: where the telescope
// points, when, how the camera is rotated on the sky, and from where. It is
// built with options so an operation can tell a zero-valued field from an
// unset one and report the missing field by name.
type Context struct {
	pointingRA  float64
	pointingDec float64
	mjd         float64
	rotSkyPos   float64
	site        *Site

	hasPointing bool
	hasMJD      bool
	hasRot      bool
}

// Option configures a Context.
type Option func(*Context)

// NewContext builds an observation context from options.
func NewContext(opts ...Option) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithPointingRad sets the boresite RA/Dec in radians.
func WithPointingRad(ra, dec float64) Option {
	return func(c *Context) {
		c.pointingRA, c.pointingDec = ra, dec
		c.hasPointing = true
	}
}

// WithPointingDeg sets the boresite RA/Dec in degrees.
func WithPointingDeg(ra, dec float64) Option {
	return WithPointingRad(coordutil.RadiansFromDegrees(ra), coordutil.RadiansFromDegrees(dec))
}

// WithMJD sets the observation time as a true Modified Julian Date.
func WithMJD(mjd float64) Option {
	return func(c *Context) {
		c.mjd = mjd
		c.hasMJD = true
	}
}

// WithRotSkyPosRad sets the camera rotation angle on the sky in radians.
func WithRotSkyPosRad(rot float64) Option {
	return func(c *Context) {
		c.rotSkyPos = rot
		c.hasRot = true
	}
}

// WithRotSkyPosDeg sets the camera rotation angle on the sky in degrees.
func WithRotSkyPosDeg(rot float64) Option {
	return WithRotSkyPosRad(coordutil.RadiansFromDegrees(rot))
}

// WithSite sets the observing site.
func WithSite(s *Site) Option {
	return func(c *Context) { c.site = s }
}

// PointingRad returns the boresite RA/Dec in radians.
func (c *Context) PointingRad() (ra, dec float64) { return c.pointingRA, c.pointingDec }

// MJD returns the observation Modified Julian Date.
func (c *Context) MJD() float64 { return c.mjd }

// RotSkyPosRad returns the sky rotation angle in radians.
func (c *Context) RotSkyPosRad() float64 { return c.rotSkyPos }

// Site returns the observing site, or nil if none was supplied.
func (c *Context) Site() *Site { return c.site }

// Require checks that the named fields were supplied, returning an
// *coordutil.InputError naming the first missing one. A nil Context fails for
// any requirement.
func (c *Context) Require(op string, fields ...Field) error {
	if c == nil {
		return coordutil.NoContext(op)
	}
	for _, f := range fields {
		switch f {
		case FieldPointing:
			if !c.hasPointing {
				return coordutil.MissingContext(op, "a pointing RA and Dec")
			}
		case FieldMJD:
			if !c.hasMJD {
				return coordutil.MissingContext(op, "an mjd")
			}
		case FieldRotSkyPos:
			if !c.hasRot {
				return coordutil.MissingContext(op, "a rotSkyPos")
			}
		case FieldSite:
			if c.site == nil {
				return coordutil.NoSite(op)
			}
		}
	}
	return nil
}
