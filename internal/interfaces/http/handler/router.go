package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/interfaces/http/middleware"
)

// RouterConfig contains everything NewRouter wires together.
type RouterConfig struct {
	// Estimator serves the calculator endpoints and the readiness check
	Estimator Estimator

	// Logger receives request and error logs
	Logger port.Logger

	// Version is reported in X-API-Version and /health
	Version string

	// RequestTimeout bounds handler execution
	RequestTimeout time.Duration

	// MaxBodySize is the maximum request body in bytes
	MaxBodySize int64

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string

	// RateLimit configures the per-client limiter; a zero rate or burst
	// selects middleware.DefaultRateLimiterConfig
	RateLimit middleware.RateLimiterConfig
}

// NewRouter builds the chi router with the full middleware stack.
//
// Parameters:
//   - cfg: router dependencies and limits
//
// Returns:
//   - http.Handler: the root handler
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Order matters! Middleware is executed in the order added.

	// 1. Real IP extraction (for rate limiting and logging)
	r.Use(middleware.RealIP)

	// 2. Request ID generation/propagation
	r.Use(middleware.RequestID)

	// 3. Logging (after Request ID so it's included in logs)
	r.Use(middleware.Logger(cfg.Logger))

	// 4. Panic recovery
	r.Use(middleware.Recoverer(cfg.Logger))

	// 5. Request timeout
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// 6. CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-API-Version"},
		MaxAge:         300,
	}))

	// 7. Rate limiting
	limits := cfg.RateLimit
	if limits.RequestsPerSecond <= 0 || limits.Burst <= 0 {
		limits = middleware.DefaultRateLimiterConfig()
	}
	r.Use(middleware.RateLimiter(limits))

	// 8. Security headers
	r.Use(middleware.SecureHeaders)

	// 9. API version header
	r.Use(middleware.APIVersion(cfg.Version))

	health := NewHealthHandler(cfg.Estimator, cfg.Version)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	calculators := NewCalculatorHandler(cfg.Estimator, cfg.Logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		if cfg.MaxBodySize > 0 {
			r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
		}
		calculators.Routes(r)
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
