package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/star/skypix/internal/api"
	"github.com/star/skypix/internal/astrometry"
	"github.com/star/skypix/internal/auth"
	"github.com/star/skypix/internal/camera"
	"github.com/star/skypix/internal/coordutil"
	"github.com/star/skypix/internal/health"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	addr := os.Getenv("SKYPIX_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	authCfg, err := loadAuthConfig(logger)
	if err != nil {
		logger.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	camPath := os.Getenv("SKYPIX_CAMERA_FILE")
	if camPath == "" {
		logger.Error("SKYPIX_CAMERA_FILE is required")
		os.Exit(1)
	}
	cam, err := camera.Load(camPath)
	if err != nil {
		logger.Error("failed to load camera description", "path", camPath, "error", err)
		os.Exit(1)
	}
	logger.Info("camera loaded",
		"name", cam.Name(),
		"detectors", len(cam.Detectors()),
		"plate_scale_arcsec_per_mm", cam.PlateScale(),
	)

	site := loadSiteConfig(logger)

	srv := api.NewServer(addr, logger, authCfg, cam, site)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", addr, "auth_enabled", authCfg.Enabled)
		health.SetReady(true)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")
	health.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func loadAuthConfig(logger *slog.Logger) (auth.Config, error) {
	cfg := auth.Config{}

	enabledStr := os.Getenv("SKYPIX_AUTH_ENABLED")
	if enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return cfg, errors.New("SKYPIX_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		cfg.Enabled = enabled
	}

	if cfg.Enabled {
		cfg.Token = os.Getenv("SKYPIX_AUTH_TOKEN")
		if cfg.Token == "" {
			return cfg, errors.New("SKYPIX_AUTH_TOKEN is required when auth is enabled")
		}
		logger.Info("auth enabled")
	}

	return cfg, nil
}

// loadSiteConfig reads the observing site from the environment, falling back
// to the default mountain site field by field.
func loadSiteConfig(logger *slog.Logger) *astrometry.Site {
	site := astrometry.DefaultSite()

	readFloat := func(key string, dst *float64) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logger.Warn("invalid site value, using default", "key", key, "value", v)
			return
		}
		*dst = f
	}

	var latDeg, lonDeg float64
	latDeg = coordutil.DegreesFromRadians(site.LatitudeRad)
	lonDeg = coordutil.DegreesFromRadians(site.LongitudeRad)
	readFloat("SKYPIX_SITE_LATITUDE_DEG", &latDeg)
	readFloat("SKYPIX_SITE_LONGITUDE_DEG", &lonDeg)
	site.LatitudeRad = coordutil.RadiansFromDegrees(latDeg)
	site.LongitudeRad = coordutil.RadiansFromDegrees(lonDeg)

	readFloat("SKYPIX_SITE_HEIGHT_M", &site.HeightM)
	readFloat("SKYPIX_SITE_TEMPERATURE_K", &site.TemperatureK)
	readFloat("SKYPIX_SITE_PRESSURE_MB", &site.PressureMb)
	readFloat("SKYPIX_SITE_LAPSE_RATE", &site.LapseRateKPerM)

	logger.Info("site config",
		"latitude_deg", latDeg,
		"longitude_deg", lonDeg,
		"height_m", site.HeightM,
		"temperature_k", site.TemperatureK,
		"pressure_mb", site.PressureMb,
	)

	return site
}
