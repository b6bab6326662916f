package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/coordutil"
	"github.com/star/skypix/internal/metrics"
	"github.com/star/skypix/internal/projection"
)

// obsSpec is the wire form of an observation context. Pointer fields let a
// missing field stay missing, so the engines can name it in their errors.
type obsSpec struct {
	RADeg        *float64 `json:"raDeg"`
	DecDeg       *float64 `json:"decDeg"`
	MJD          *float64 `json:"mjd"`
	RotSkyPosDeg *float64 `json:"rotSkyPosDeg"`
}

// context builds an astrometry.Context carrying only the fields the request
// supplied, plus the server's site.
func (o *obsSpec) context(site *astrometry.Site) *astrometry.Context {
	if o == nil {
		return nil
	}
	var opts []astrometry.Option
	if o.RADeg != nil && o.DecDeg != nil {
		opts = append(opts, astrometry.WithPointingDeg(*o.RADeg, *o.DecDeg))
	}
	if o.MJD != nil {
		opts = append(opts, astrometry.WithMJD(*o.MJD))
	}
	if o.RotSkyPosDeg != nil {
		opts = append(opts, astrometry.WithRotSkyPosDeg(*o.RotSkyPosDeg))
	}
	opts = append(opts, astrometry.WithSite(site))
	return astrometry.NewContext(opts...)
}

func epochOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// nullableFloats replaces NaN with JSON null, which encoding/json cannot
// represent as a bare number.
func nullableFloats(v []float64) []*float64 {
	out := make([]*float64, len(v))
	for i := range v {
		if !math.IsNaN(v[i]) {
			out[i] = &v[i]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps InputError to 400 with its kind; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var ie *coordutil.InputError
	if errors.As(err, &ie) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": ie.Error(),
			"kind":  ie.Kind.String(),
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// handleCamera describes the loaded camera model.
func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	type detectorInfo struct {
		Name        string    `json:"name"`
		CenterMm    []float64 `json:"centerMm"`
		Pixels      []int     `json:"pixels"`
		PixelSizeMm float64   `json:"pixelSizeMm"`
		Distortion  []float64 `json:"distortion,omitempty"`
	}
	dets := make([]detectorInfo, 0, len(s.cam.Detectors()))
	for _, d := range s.cam.Detectors() {
		dets = append(dets, detectorInfo{
			Name:        d.Name,
			CenterMm:    []float64{d.CenterXmm, d.CenterYmm},
			Pixels:      []int{d.XPixels, d.YPixels},
			PixelSizeMm: d.PixelSizeMm,
			Distortion:  d.Distortion,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":                  s.cam.Name(),
		"plateScaleArcsecPerMm": s.cam.PlateScale(),
		"detectors":             dets,
	})
}

type observedRequest struct {
	Obs               *obsSpec  `json:"obs"`
	Epoch             *float64  `json:"epoch"`
	RA                []float64 `json:"ra"`
	Dec               []float64 `json:"dec"`
	PmRA              []float64 `json:"pmRa"`
	PmDec             []float64 `json:"pmDec"`
	Parallax          []float64 `json:"parallax"`
	VRad              []float64 `json:"vRad"`
	IncludeRefraction *bool     `json:"includeRefraction"`
	WavelengthUm      float64   `json:"wavelengthUm"`
}

// handleObserved runs the full ICRS-to-observed reduction in degrees. The
// kinematic arrays default to zeros when omitted.
func (s *Server) handleObserved(w http.ResponseWriter, r *http.Request) {
	var req observedRequest
	if !decode(w, r, &req) {
		return
	}

	n := len(req.RA)
	fill := func(v []float64) []float64 {
		if v == nil {
			return make([]float64, n)
		}
		return v
	}
	includeRefraction := req.IncludeRefraction == nil || *req.IncludeRefraction

	ra, dec, err := astrometry.ObservedFromICRS(
		req.RA, req.Dec,
		fill(req.PmRA), fill(req.PmDec), fill(req.Parallax), fill(req.VRad),
		req.Obs.context(s.site), epochOrNaN(req.Epoch),
		includeRefraction, req.WavelengthUm)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.ObservePoints("observed", n)
	writeJSON(w, http.StatusOK, map[string]any{
		"ra":  nullableFloats(ra),
		"dec": nullableFloats(dec),
	})
}

type projectRequest struct {
	Obs               *obsSpec  `json:"obs"`
	Epoch             *float64  `json:"epoch"`
	RA                []float64 `json:"ra"`
	Dec               []float64 `json:"dec"`
	XPupil            []float64 `json:"xPupil"`
	YPupil            []float64 `json:"yPupil"`
	ChipNames         []string  `json:"chipNames"`
	IncludeDistortion *bool     `json:"includeDistortion"`
}

func (req *projectRequest) hasSky() bool   { return req.RA != nil || req.Dec != nil }
func (req *projectRequest) hasPupil() bool { return req.XPupil != nil || req.YPupil != nil }

// handleChip resolves chip names from either sky or pupil coordinates.
// Supplying both coordinate sets is a conflicting-arguments error.
func (s *Server) handleChip(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decode(w, r, &req) {
		return
	}

	var names []string
	var err error
	switch {
	case req.hasSky() && req.hasPupil():
		err = coordutil.Conflicting("chipName", "RA/Dec", "pupil coordinates")
	case req.hasPupil():
		names, err = projection.ChipNamesFromPupilCoords(req.XPupil, req.YPupil, s.cam)
	default:
		names, err = projection.ChipNamesFromRaDec(req.RA, req.Dec, req.Obs.context(s.site), epochOrNaN(req.Epoch), s.cam)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.ObservePoints("chip", len(names))
	off := 0
	for _, n := range names {
		if n == "" {
			off++
		}
	}
	metrics.ObserveOffChip(off)
	writeJSON(w, http.StatusOK, map[string]any{"chipNames": names})
}

// handlePixel computes pixel coordinates from either sky or pupil
// coordinates. Supplying both coordinate sets is a conflicting-arguments
// error.
func (s *Server) handlePixel(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decode(w, r, &req) {
		return
	}
	includeDistortion := req.IncludeDistortion == nil || *req.IncludeDistortion

	var xPix, yPix []float64
	var err error
	switch {
	case req.hasSky() && req.hasPupil():
		err = coordutil.Conflicting("pixelCoords", "RA/Dec", "pupil coordinates")
	case req.hasPupil():
		xPix, yPix, err = projection.PixelCoordsFromPupilCoords(req.XPupil, req.YPupil, req.ChipNames, s.cam, includeDistortion)
	default:
		xPix, yPix, err = projection.PixelCoordsFromRaDec(req.RA, req.Dec, req.Obs.context(s.site), epochOrNaN(req.Epoch), s.cam, req.ChipNames, includeDistortion)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.ObservePoints("pixel", len(xPix))
	writeJSON(w, http.StatusOK, map[string]any{
		"xPix": nullableFloats(xPix),
		"yPix": nullableFloats(yPix),
	})
}
