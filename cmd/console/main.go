package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/httpapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/mapbox"
	"github.com/couchcryptid/coastal-hazard-console/internal/config"
	"github.com/couchcryptid/coastal-hazard-console/internal/console"
	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
	"github.com/couchcryptid/coastal-hazard-console/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	api := hazardapi.NewClient(cfg, logger, metrics)

	store := console.NewStore()
	refresher := console.NewRefresher(api, store, geocoder, logger, metrics, cfg.ActiveWindow, clock)
	dashboard := console.NewDashboard(api, logger, metrics, clock)
	scheduler := console.NewScheduler(refresher, dashboard, cfg.RefreshInterval, clock, logger)
	submitter := console.NewSubmitter(api, scheduler, cfg, logger, metrics)
	reviewer := console.NewReviewer(api, scheduler, dashboard, cfg.VerifierID, logger, metrics)

	hub := ws.NewHub(logger, metrics)
	refresher.Subscribe(hub)

	maxUpload := cfg.MaxMediaBytes*int64(cfg.MaxMediaFiles) + 1<<20
	srv := httpapi.NewServer(cfg.HTTPAddr, store, scheduler, submitter, reviewer, dashboard, hub, maxUpload, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	scheduler.Start(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
