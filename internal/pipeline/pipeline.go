// Package pipeline runs the full catalog-to-pixel column computation for
// batches of stars, partitioned across a worker pool. Every stage is a pure
// function over its chunk, so workers need no coordination beyond the final
// gather.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
	"github.com/star/skypix/internal/metrics"
	"github.com/star/skypix/internal/projection"
)

// Star is one catalog source: ICRS position with its kinematic terms.
type Star struct {
	ID          int64
	RARad       float64
	DecRad      float64
	PMRARad     float64 // rad/yr, includes cos(dec)
	PMDecRad    float64 // rad/yr
	ParallaxRad float64
	VRadKmS     float64
}

// Columns is the full computed column set for one star. The zero pixel
// values for an off-camera star are NaN and ChipName is empty.
type Columns struct {
	ID        int64
	RAObsRad  float64
	DecObsRad float64
	XPupil    float64
	YPupil    float64
	XFocalMm  float64
	YFocalMm  float64
	ChipName  string
	XPix      float64
	YPix      float64
}

// ObservedSource is the capability of yielding observed sky coordinates.
type ObservedSource interface {
	ObservedRaDecRad() (ra, dec float64)
}

// PixelSource is the capability of yielding a chip name and detector pixel
// coordinates.
type PixelSource interface {
	PixelCoords() (chipName string, xPix, yPix float64)
}

// ObservedRaDecRad implements ObservedSource.
func (c Columns) ObservedRaDecRad() (float64, float64) { return c.RAObsRad, c.DecObsRad }

// PixelCoords implements PixelSource.
func (c Columns) PixelCoords() (string, float64, float64) { return c.ChipName, c.XPix, c.YPix }

// Runner computes star columns for one observation with a fixed worker
// count.
type Runner struct {
	workers           int
	logger            *slog.Logger
	obs               *astrometry.Context
	epoch             float64
	cam               *camera.Camera
	includeDistortion bool
}

// NewRunner builds a Runner. epoch is the catalog Julian epoch of the star
// positions.
func NewRunner(workers int, logger *slog.Logger, obs *astrometry.Context, epoch float64, cam *camera.Camera, includeDistortion bool) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		workers:           workers,
		logger:            logger,
		obs:               obs,
		epoch:             epoch,
		cam:               cam,
		includeDistortion: includeDistortion,
	}
}

type chunkJob struct {
	offset int
	stars  []Star
}

type chunkResult struct {
	offset  int
	columns []Columns
	err     error
}

// Run computes columns for all stars, preserving input order. Validation
// failures are whole-call errors; per-star NaN inputs come back as NaN
// columns without affecting their neighbors.
func (r *Runner) Run(ctx context.Context, stars []Star) ([]Columns, error) {
	if r.cam == nil {
		return nil, coordutil.NoCamera("pipeline")
	}
	if err := r.obs.Require("pipeline",
		astrometry.FieldPointing, astrometry.FieldMJD,
		astrometry.FieldRotSkyPos, astrometry.FieldSite); err != nil {
		return nil, err
	}
	if len(stars) == 0 {
		return nil, nil
	}
	start := time.Now()

	chunkSize := (len(stars) + r.workers - 1) / r.workers
	jobs := make(chan chunkJob, r.workers)
	results := make(chan chunkResult, r.workers)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				res := r.computeChunk(job)
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for off := 0; off < len(stars); off += chunkSize {
			end := off + chunkSize
			if end > len(stars) {
				end = len(stars)
			}
			select {
			case jobs <- chunkJob{offset: off, stars: stars[off:end]}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Columns, len(stars))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			if r.logger != nil {
				r.logger.Error("chunk failed", "offset", res.offset, "error", res.err)
			}
			continue
		}
		copy(out[res.offset:], res.columns)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	off := 0
	for i := range out {
		if out[i].ChipName == "" {
			off++
		}
	}
	metrics.ObservePoints("pipeline", len(out))
	metrics.ObserveOffChip(off)
	metrics.ObserveBatch(time.Since(start))
	return out, nil
}

// computeChunk runs the full column chain on one contiguous slice of stars.
func (r *Runner) computeChunk(job chunkJob) chunkResult {
	n := len(job.stars)
	ra := make([]float64, n)
	dec := make([]float64, n)
	pmRA := make([]float64, n)
	pmDec := make([]float64, n)
	parallax := make([]float64, n)
	vRad := make([]float64, n)
	for i, s := range job.stars {
		ra[i], dec[i] = s.RARad, s.DecRad
		pmRA[i], pmDec[i] = s.PMRARad, s.PMDecRad
		parallax[i], vRad[i] = s.ParallaxRad, s.VRadKmS
	}

	raObs, decObs, err := astrometry.ObservedFromICRSRad(
		ra, dec, pmRA, pmDec, parallax, vRad,
		r.obs, r.epoch, true, astrometry.DefaultWavelengthUm)
	if err != nil {
		return chunkResult{offset: job.offset, err: err}
	}

	xPup, yPup, err := projection.PupilCoordsFromRaDecRad(raObs, decObs, r.obs, r.epoch)
	if err != nil {
		return chunkResult{offset: job.offset, err: err}
	}
	xFocal, yFocal, err := projection.FocalPlaneCoordsFromPupilCoords(xPup, yPup, r.cam)
	if err != nil {
		return chunkResult{offset: job.offset, err: err}
	}
	chips, err := projection.ChipNamesFromPupilCoords(xPup, yPup, r.cam)
	if err != nil {
		return chunkResult{offset: job.offset, err: err}
	}
	xPix, yPix, err := projection.PixelCoordsFromPupilCoords(xPup, yPup, chips, r.cam, r.includeDistortion)
	if err != nil {
		return chunkResult{offset: job.offset, err: err}
	}

	columns := make([]Columns, n)
	for i, s := range job.stars {
		columns[i] = Columns{
			ID:        s.ID,
			RAObsRad:  raObs[i],
			DecObsRad: decObs[i],
			XPupil:    xPup[i],
			YPupil:    yPup[i],
			XFocalMm:  xFocal[i],
			YFocalMm:  yFocal[i],
			ChipName:  chips[i],
			XPix:      xPix[i],
			YPix:      yPix[i],
		}
	}
	return chunkResult{offset: job.offset, columns: columns}
}
