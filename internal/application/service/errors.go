// Package service contains the application use cases: input sanitizing,
// running the calculators, and managing saved calculations.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
)

// Service errors.
var (
	// ErrStorageDisabled is returned when saved calculations are requested but no repository is configured.
	ErrStorageDisabled = errors.New("calculation storage is not configured")
)

// ValidationFailure reports every field that failed sanitizing.
type ValidationFailure struct {
	Errors []dto.ValidationError
}

// Error implements error.
func (v *ValidationFailure) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, fmt.Sprintf("%s %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationFailure extracts a ValidationFailure from err's chain.
//
// Parameters:
//   - err: error to inspect
//
// Returns:
//   - *ValidationFailure: the failure, or nil
//   - bool: true if err carries a ValidationFailure
func AsValidationFailure(err error) (*ValidationFailure, bool) {
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf, true
	}
	return nil, false
}
