// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrCalculationNotFound is returned when a saved calculation cannot be found by ID.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrDuplicateCalculation is returned when saving a calculation whose ID already exists.
	ErrDuplicateCalculation = errors.New("calculation already exists")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrCorruptRecord is returned when a stored payload cannot be decoded.
	ErrCorruptRecord = errors.New("stored record could not be decoded")

	// ErrInvalidInput is returned when repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsNotFoundError checks if the error is a not found error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a resource was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCalculationNotFound)
}
