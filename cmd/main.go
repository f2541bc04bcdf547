package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/beacon/internal/api"
	"github.com/UnknownOlympus/beacon/internal/config"
	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/UnknownOlympus/beacon/internal/geolocation"
	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/repository"
	"github.com/UnknownOlympus/beacon/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)
	if err = repo.Migrate(ctx); err != nil {
		log.Fatalf("Failed to prepare DB schema: %v", err)
	}

	capability, err := geolocation.NewCapability(capabilityConfig(cfg, logger))
	if err != nil {
		log.Fatalf("Failed to create geolocation capability: %v", err)
	}
	if closer, ok := capability.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	logger.InfoContext(ctx, "Geolocation capability initialized", "type", cfg.Capability.Type)

	geocoder, err := geocoding.NewGeocoder(geocoding.GeocoderConfig{
		Type:         geocoding.GeocoderType(cfg.Geocoder.Type),
		APIKey:       cfg.Geocoder.APIKey,
		RegionSuffix: cfg.Geocoder.RegionSuffix,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoder: %v", err)
	}

	requester := geolocation.NewRequester(capability, logger, appMetrics, cfg.Capability.Type)
	reminders := service.NewReminderService(logger, requester, geocoder, repo, appMetrics, cfg.AlertRadiusKm)
	handler := api.NewHandler(logger, requester, reminders, dtb)

	readTimeout := 5
	// Lookups may wait for the capability timeout.
	writeTimeout := cfg.Capability.Timeout + 10*time.Second
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler, reg),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", errServe)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	const shutdownTimeout = 10 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// capabilityConfig translates the loaded configuration into a capability configuration.
func capabilityConfig(cfg *config.Config, logger *slog.Logger) geolocation.CapabilityConfig {
	capCfg := geolocation.CapabilityConfig{
		Type:         geolocation.CapabilityType(cfg.Capability.Type),
		APIKey:       cfg.Capability.APIKey,
		RateLimit:    cfg.Capability.RateLimit,
		Timeout:      cfg.Capability.Timeout,
		DatabasePath: cfg.Capability.DatabasePath,
		PublicIP:     cfg.Capability.PublicIP,
		Logger:       logger,
	}
	if cfg.Capability.Latitude != nil && cfg.Capability.Longitude != nil {
		capCfg.Static = &models.Coordinates{
			Latitude:  *cfg.Capability.Latitude,
			Longitude: *cfg.Capability.Longitude,
		}
	}

	return capCfg
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
