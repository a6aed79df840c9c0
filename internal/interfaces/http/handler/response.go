// Package handler contains the HTTP handlers and router for the calculator API.
// Handlers decode requests, call the estimator service, and map results and
// errors onto the dto.APIResponse envelope.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/application/service"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
	"github.com/hapkiduki/asphalt-go/pkg/logger"
)

// respond writes data wrapped in a success envelope.
func respond[T any](w http.ResponseWriter, r *http.Request, status int, data T) {
	resp := dto.NewSuccessResponse(data)
	resp.Meta = meta(r)
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := dto.NewErrorResponse[any](code, message)
	resp.Meta = meta(r)
	render.Status(r, status)
	render.JSON(w, r, resp)
}

func meta(r *http.Request) *dto.ResponseMeta {
	return &dto.ResponseMeta{
		RequestID: logger.RequestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// decodeJSON reads the request body into v, writing the error response itself
// when the body is unusable.
//
// Returns:
//   - bool: true if v was decoded
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := render.DecodeJSON(r.Body, v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, r, http.StatusRequestEntityTooLarge, dto.CodePayloadTooLarge, "Request body too large")
		return false
	}
	respondError(w, r, http.StatusBadRequest, dto.CodeInvalidJSON, "Request body must be a valid JSON object")
	return false
}

// respondServiceError maps a service error onto a status code.
func respondServiceError(w http.ResponseWriter, r *http.Request, log port.Logger, err error) {
	if vf, ok := service.AsValidationFailure(err); ok {
		resp := dto.NewValidationErrorResponse[any](vf.Errors)
		resp.Meta = meta(r)
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, resp)
		return
	}

	switch {
	case errors.Is(err, valueobject.ErrUnknownUnit):
		respondError(w, r, http.StatusUnprocessableEntity, dto.CodeValidation, err.Error())
	case service.IsNotFound(err):
		respondError(w, r, http.StatusNotFound, dto.CodeNotFound, "Calculation not found")
	case service.IsStorageDisabled(err):
		respondError(w, r, http.StatusServiceUnavailable, dto.CodeUnavailable, "Saved calculations are not enabled")
	default:
		log.WithContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		respondError(w, r, http.StatusInternalServerError, dto.CodeInternal, "An unexpected error occurred")
	}
}

// NotFound handles unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, dto.CodeNotFound, "The requested resource was not found")
}

// MethodNotAllowed handles known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, dto.CodeMethodNotAllowed, "The requested method is not allowed for this resource")
}
