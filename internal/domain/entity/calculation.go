// Package entity contains the core business entities of the domain layer.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hapkiduki/asphalt-go/internal/domain/calculator"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

// Calculation errors define domain-specific error conditions for saved calculations.
var (
	ErrInvalidCalculationKind = errors.New("calculation kind must be material or cost")
	ErrMissingCostBreakdown   = errors.New("cost calculation requires a cost breakdown")
)

// CalculationKind identifies which calculator produced a snapshot.
type CalculationKind string

const (
	CalculationKindMaterial CalculationKind = "material" // Volume, area and tonnage
	CalculationKindCost     CalculationKind = "cost"     // Material, labor and base prep costs
)

// IsValid reports whether k is a known calculation kind.
func (k CalculationKind) IsValid() bool {
	return k == CalculationKindMaterial || k == CalculationKindCost
}

// CalculationInputs are the form values a calculation was run with.
type CalculationInputs struct {
	// Dimensions of the paved area.
	Dimensions valueobject.Dimensions `json:"dimensions" msgpack:"dimensions"`

	// Density in kg/m³.
	Density float64 `json:"density" msgpack:"density"`

	// PricePerTon is the asphalt price (cost calculations only).
	PricePerTon float64 `json:"price_per_ton,omitempty" msgpack:"price_per_ton,omitempty"`

	// LaborCostPerSqFt is the labor rate (cost calculations only).
	LaborCostPerSqFt float64 `json:"labor_cost_per_sq_ft,omitempty" msgpack:"labor_cost_per_sq_ft,omitempty"`

	// BaseCostPerSqFt is the base preparation rate (cost calculations only).
	BaseCostPerSqFt float64 `json:"base_cost_per_sq_ft,omitempty" msgpack:"base_cost_per_sq_ft,omitempty"`
}

// CalculationResults are the derived quantities of a calculation.
type CalculationResults struct {
	VolumeM3  float64 `json:"volume_m3" msgpack:"volume_m3"`
	VolumeYd3 float64 `json:"volume_yd3" msgpack:"volume_yd3"`
	AreaM2    float64 `json:"area_m2" msgpack:"area_m2"`
	AreaSqFt  float64 `json:"area_sq_ft" msgpack:"area_sq_ft"`
	Tonnage   float64 `json:"tonnage" msgpack:"tonnage"`
	Pounds    float64 `json:"pounds" msgpack:"pounds"`

	// Cost is set for cost calculations only.
	Cost *calculator.CostBreakdown `json:"cost,omitempty" msgpack:"cost,omitempty"`
}

// Calculation is a saved snapshot of one calculator run.
// Snapshots are written once and never updated.
type Calculation struct {
	// ID is the unique identifier for the snapshot
	ID uuid.UUID `json:"id"`

	// Kind is the calculator that produced it
	Kind CalculationKind `json:"kind"`

	// Inputs holds the submitted values
	Inputs CalculationInputs `json:"inputs"`

	// Results holds the computed values
	Results CalculationResults `json:"results"`

	// CreatedAt is the timestamp when the snapshot was taken
	CreatedAt time.Time `json:"created_at"`
}

// NewCalculation creates a new Calculation snapshot.
//
// Parameters:
//   - kind: calculator that produced the results
//   - inputs: submitted form values
//   - results: computed values (must include Cost for cost calculations)
//
// Returns:
//   - *Calculation: newly created snapshot
//   - error: validation error if kind or results are inconsistent
func NewCalculation(kind CalculationKind, inputs CalculationInputs, results CalculationResults) (*Calculation, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidCalculationKind
	}
	if kind == CalculationKindCost && results.Cost == nil {
		return nil, ErrMissingCostBreakdown
	}

	return &Calculation{
		ID:        uuid.New(),
		Kind:      kind,
		Inputs:    inputs,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}, nil
}
