package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
)

// Pinger checks a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db        Pinger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler.
//
// Parameters:
//   - db: the calculation store to check
//   - version: application version reported by /health
//
// Returns:
//   - *HealthHandler: the handler
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, startTime: time.Now()}
}

// Health reports version, uptime and the database check. It always answers 200
// so that a storage outage does not restart the process.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	check := h.check(r.Context())

	status := "healthy"
	if check.Status != "up" {
		status = "degraded"
	}

	render.JSON(w, r, dto.HealthResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Checks:  map[string]dto.HealthCheckResult{"database": check},
	})
}

// Ready answers 503 until the calculation store responds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	check := h.check(r.Context())
	if check.Status != "up" {
		respondError(w, r, http.StatusServiceUnavailable, dto.CodeUnavailable, check.Message)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) check(ctx context.Context) dto.HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	result := dto.HealthCheckResult{
		Status:       "up",
		ResponseTime: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Status = "down"
		result.Message = err.Error()
	}
	return result
}
