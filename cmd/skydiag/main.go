package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/fogleman/gg"

	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
	"github.com/star/skypix/internal/pipeline"
)

func main() {
	var (
		camPath = flag.String("camera", "", "camera description YAML (required)")
		raDeg   = flag.Float64("ra", 25.0, "pointing RA, degrees")
		decDeg  = flag.Float64("dec", -30.0, "pointing Dec, degrees")
		mjd     = flag.Float64("mjd", 60000.0, "observation MJD")
		rotDeg  = flag.Float64("rot", 0.0, "rotSkyPos, degrees")
		epoch   = flag.Float64("epoch", 2000.0, "catalog Julian epoch")
		grid    = flag.Int("grid", 9, "stars per side of the synthetic grid")
		spacing = flag.Float64("spacing", 60.0, "grid spacing, arcsec")
		pngPath = flag.String("png", "", "write a focal-plane layout image here")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if *camPath == "" {
		fmt.Fprintln(os.Stderr, "usage: skydiag -camera camera.yaml [flags]")
		os.Exit(2)
	}
	cam, err := camera.Load(*camPath)
	if err != nil {
		logger.Error("failed to load camera", "error", err)
		os.Exit(1)
	}

	obs := astrometry.NewContext(
		astrometry.WithPointingDeg(*raDeg, *decDeg),
		astrometry.WithMJD(*mjd),
		astrometry.WithRotSkyPosDeg(*rotDeg),
		astrometry.WithSite(astrometry.DefaultSite()),
	)

	// The pupil frame is centered on the observed boresite, so seed the
	// grid there rather than at the catalog pointing.
	raPtg, decPtg := obs.PointingRad()
	raObs, decObs, err := astrometry.ObservedFromICRSScalarRad(
		raPtg, decPtg, 0, 0, 0, 0, obs, *epoch, true, astrometry.DefaultWavelengthUm)
	if err != nil {
		logger.Error("boresite reduction failed", "error", err)
		os.Exit(1)
	}

	stars := makeGrid(raObs, decObs, *grid, coordutil.RadiansFromArcsec(*spacing))

	runner := pipeline.NewRunner(runtime.NumCPU(), logger, obs, *epoch, cam, true)
	columns, err := runner.Run(context.Background(), stars)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	onChip := 0
	for _, c := range columns {
		if c.ChipName == "" {
			fmt.Printf("star %3d  off camera\n", c.ID)
			continue
		}
		onChip++
		fmt.Printf("star %3d  %-8s xPix=%9.3f yPix=%9.3f  xFocal=%8.3f mm yFocal=%8.3f mm\n",
			c.ID, c.ChipName, c.XPix, c.YPix, c.XFocalMm, c.YFocalMm)
	}
	fmt.Printf("%d of %d stars landed on a detector\n", onChip, len(columns))

	if *pngPath != "" {
		if err := renderLayout(*pngPath, cam, columns); err != nil {
			logger.Error("failed to render layout", "error", err)
			os.Exit(1)
		}
		logger.Info("layout written", "path", *pngPath)
	}
}

// makeGrid builds an n-by-n grid of stars centered on the observed boresite.
func makeGrid(ra0, dec0 float64, n int, step float64) []pipeline.Star {
	if n < 1 {
		n = 1
	}
	stars := make([]pipeline.Star, 0, n*n)
	half := float64(n-1) / 2
	cosDec := math.Cos(dec0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			stars = append(stars, pipeline.Star{
				ID:     int64(i*n + j),
				RARad:  ra0 + (float64(j)-half)*step/cosDec,
				DecRad: dec0 + (float64(i)-half)*step,
			})
		}
	}
	return stars
}

// renderLayout draws the detector outlines and star landing positions in
// focal-plane millimeters.
func renderLayout(path string, cam *camera.Camera, columns []pipeline.Columns) error {
	const size = 900
	const margin = 60.0

	// Focal-plane extent across all detectors.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, d := range cam.Detectors() {
		hw := float64(d.XPixels) * d.PixelSizeMm / 2
		hh := float64(d.YPixels) * d.PixelSizeMm / 2
		minX = math.Min(minX, d.CenterXmm-hw)
		maxX = math.Max(maxX, d.CenterXmm+hw)
		minY = math.Min(minY, d.CenterYmm-hh)
		maxY = math.Max(maxY, d.CenterYmm+hh)
	}
	span := math.Max(maxX-minX, maxY-minY)
	scale := (size - 2*margin) / span

	// Image y grows downward; focal y grows upward.
	toPx := func(xmm, ymm float64) (float64, float64) {
		return margin + (xmm-minX)*scale, size - margin - (ymm-minY)*scale
	}

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, d := range cam.Detectors() {
		hw := float64(d.XPixels) * d.PixelSizeMm / 2
		hh := float64(d.YPixels) * d.PixelSizeMm / 2
		x0, y0 := toPx(d.CenterXmm-hw, d.CenterYmm+hh)
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.SetLineWidth(2)
		dc.DrawRectangle(x0, y0, 2*hw*scale, 2*hh*scale)
		dc.Stroke()

		cx, cy := toPx(d.CenterXmm, d.CenterYmm)
		dc.DrawStringAnchored(d.Name, cx, cy, 0.5, 0.5)
	}

	for _, c := range columns {
		if math.IsNaN(c.XFocalMm) || math.IsNaN(c.YFocalMm) {
			continue
		}
		x, y := toPx(c.XFocalMm, c.YFocalMm)
		if c.ChipName != "" {
			dc.SetRGB(0.1, 0.4, 0.9)
		} else {
			dc.SetRGB(0.8, 0.2, 0.2)
		}
		dc.DrawCircle(x, y, 3)
		dc.Fill()
	}

	return dc.SavePNG(path)
}
