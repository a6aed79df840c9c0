// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hapkiduki/asphalt-go/internal/domain/entity"
)

// CalculationFilter contains criteria for listing saved calculations.
type CalculationFilter struct {
	// Kind filters snapshots by calculator.
	Kind *entity.CalculationKind

	// Limit specifies the maximum number of results (0 means no limit)
	Limit int

	// Offset specifies the starting position for pagination
	Offset int
}

// CalculationRepository defines the interface for saved calculation persistence.
// Snapshots are append-only: there is no Update.
//
// Example usage:
//
//	repo, err := sqlite.NewCalculationRepository(cfg.Database)
//	calc, err := repo.GetByID(ctx, id)
type CalculationRepository interface {
	// Create persists a new snapshot.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - calc: the snapshot to store
	//
	// Returns:
	//   - error: ErrDuplicateCalculation if the ID already exists
	Create(ctx context.Context, calc *entity.Calculation) error

	// GetByID retrieves a snapshot by its unique identifier.
	//
	// Returns:
	//   - *entity.Calculation: the stored snapshot
	//   - error: ErrCalculationNotFound if it doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error)

	// Delete removes a snapshot.
	//
	// Returns:
	//   - error: ErrCalculationNotFound if it doesn't exist
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAll retrieves snapshots matching the filter, newest first.
	FindAll(ctx context.Context, filter CalculationFilter) ([]*entity.Calculation, error)

	// Count returns the number of snapshots matching the filter, ignoring Limit and Offset.
	Count(ctx context.Context, filter CalculationFilter) (int64, error)

	// Ping checks that the underlying store is reachable.
	Ping(ctx context.Context) error
}
