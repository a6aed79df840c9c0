package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/application/service"
)

// Estimator is the application service the calculator handlers call.
type Estimator interface {
	EstimateMaterial(ctx context.Context, req dto.MaterialRequest) (*dto.MaterialResult, error)
	EstimateCost(ctx context.Context, req dto.CostRequest) (*dto.CostResult, error)
	GetCalculation(ctx context.Context, id string) (*dto.CalculationResponse, error)
	ListCalculations(ctx context.Context, kind string, limit, offset int) (dto.PaginateResponse[dto.CalculationResponse], error)
	DeleteCalculation(ctx context.Context, id string) error
	Reference() dto.ReferenceResponse
	Ping(ctx context.Context) error
}

var _ Estimator = (*service.EstimatorService)(nil)

// CalculatorHandler serves the estimate and saved-calculation endpoints.
type CalculatorHandler struct {
	estimator Estimator
	logger    port.Logger
}

// NewCalculatorHandler creates a CalculatorHandler.
//
// Parameters:
//   - estimator: the estimator service
//   - logger: structured logger
//
// Returns:
//   - *CalculatorHandler: the handler
func NewCalculatorHandler(estimator Estimator, logger port.Logger) *CalculatorHandler {
	return &CalculatorHandler{estimator: estimator, logger: logger}
}

// Routes mounts the handler's endpoints on r.
func (h *CalculatorHandler) Routes(r chi.Router) {
	r.Post("/estimates/material", h.EstimateMaterial)
	r.Post("/estimates/cost", h.EstimateCost)
	r.Get("/reference", h.Reference)

	r.Route("/calculations", func(r chi.Router) {
		r.Get("/", h.ListCalculations)
		r.Get("/{id}", h.GetCalculation)
		r.Delete("/{id}", h.DeleteCalculation)
	})
}

// EstimateMaterial handles POST /estimates/material.
func (h *CalculatorHandler) EstimateMaterial(w http.ResponseWriter, r *http.Request) {
	var req dto.MaterialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.estimator.EstimateMaterial(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respond(w, r, statusFor(result.CalculationID), result)
}

// EstimateCost handles POST /estimates/cost.
func (h *CalculatorHandler) EstimateCost(w http.ResponseWriter, r *http.Request) {
	var req dto.CostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.estimator.EstimateCost(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respond(w, r, statusFor(result.CalculationID), result)
}

// ListCalculations handles GET /calculations?kind=&limit=&offset=.
func (h *CalculatorHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var errs []dto.ValidationError
	limit := queryInt(q.Get("limit"), "limit", &errs)
	offset := queryInt(q.Get("offset"), "offset", &errs)
	if len(errs) > 0 {
		respondServiceError(w, r, h.logger, &service.ValidationFailure{Errors: errs})
		return
	}

	page, err := h.estimator.ListCalculations(r.Context(), q.Get("kind"), limit, offset)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

// GetCalculation handles GET /calculations/{id}.
func (h *CalculatorHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	calc, err := h.estimator.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respond(w, r, http.StatusOK, calc)
}

// DeleteCalculation handles DELETE /calculations/{id}.
func (h *CalculatorHandler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	if err := h.estimator.DeleteCalculation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	render.NoContent(w, r)
}

// Reference handles GET /reference.
func (h *CalculatorHandler) Reference(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.estimator.Reference())
}

// statusFor returns 201 when the estimate was saved.
func statusFor(calculationID string) int {
	if calculationID != "" {
		return http.StatusCreated
	}
	return http.StatusOK
}

func queryInt(raw, field string, errs *[]dto.ValidationError) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, dto.ValidationError{Field: field, Message: "must be an integer", Value: raw})
		return 0
	}
	return n
}
