// Package main is the entry point for the asphalt calculator HTTP API.
// A single service exposes the material and cost estimators, saved
// calculations and reference data.
//
// 12-Factor App compliance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes, state kept in SQLite
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run ./cmd/asphalt-api
//
// Environment Variables:
//
//	ASPHALT_APP_ENVIRONMENT - Deployment environment (development, staging, production)
//	ASPHALT_SERVER_PORT     - HTTP server port (default: 8080)
//	ASPHALT_DATABASE_PATH   - SQLite file for saved calculations
//	ASPHALT_PRICING_APPLY_FORM_DEFAULTS - Fill omitted cost fields with form defaults
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/application/service"
	"github.com/hapkiduki/asphalt-go/internal/infrastructure/config"
	"github.com/hapkiduki/asphalt-go/internal/infrastructure/persistance/sqlite"
	"github.com/hapkiduki/asphalt-go/internal/interfaces/http/handler"
	"github.com/hapkiduki/asphalt-go/internal/interfaces/http/middleware"
	"github.com/hapkiduki/asphalt-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("Starting asphalt calculator API",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Create context that listens for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create a logger adapter that implements port.Logger
	logAdapter := &loggerAdapter{log}

	// ============================================================================
	// Application wiring
	// ============================================================================

	opts := []service.Option{}
	if cfg.Database.Enabled {
		db, err := sqlite.Open(sqlite.Config{
			Path:         cfg.Database.Path,
			MaxOpenConns: cfg.Database.MaxOpenConns,
		})
		if err != nil {
			log.Fatal("Failed to open database", "path", cfg.Database.Path, "error", err)
		}
		defer db.Close()

		opts = append(opts, service.WithRepository(sqlite.NewCalculationRepository(db)))
		log.Info("Saved calculations enabled", "path", cfg.Database.Path)
	} else {
		log.Warn("Saved calculations disabled")
	}

	estimator := service.NewEstimatorService(
		service.NewSanitizer(cfg.Pricing.Defaults()),
		logAdapter.With("component", "estimator"),
		opts...,
	)

	router := handler.NewRouter(handler.RouterConfig{
		Estimator:          estimator,
		Logger:             logAdapter.With("component", "http"),
		Version:            version,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxBodySize:        cfg.Server.MaxRequestSize,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimit: middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			KeyFunc:           middleware.ClientIP,
		},
	})

	// ============================================================================
	// HTTP server
	// ============================================================================

	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-serverErr:
		log.Error("HTTP server failed", "error", err)
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}

// ============================================================================
// Adapters to implement port interfaces
// ============================================================================

// loggerAdapter adapts the logger.Logger to the port.Logger interface.
type loggerAdapter struct {
	*logger.Logger
}

// With implements port.Logger.
func (l *loggerAdapter) With(keysAndValues ...any) port.Logger {
	return &loggerAdapter{l.Logger.With(keysAndValues...)}
}

// WithContext implements port.Logger.
func (l *loggerAdapter) WithContext(ctx context.Context) port.Logger {
	return &loggerAdapter{l.Logger.WithContext(ctx)}
}

var _ port.Logger = (*loggerAdapter)(nil)
