package dto

import (
	"time"

	"github.com/hapkiduki/asphalt-go/internal/domain/entity"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

// MaterialRequest holds the asphalt calculator form values.
// Required numbers are pointers so a missing field can be told apart from zero.
type MaterialRequest struct {
	Length    *float64 `json:"length"`
	Width     *float64 `json:"width"`
	Thickness *float64 `json:"thickness"`
	Unit      string   `json:"unit"`

	// Density in kg/m³. Takes precedence over DensityPreset.
	Density *float64 `json:"density,omitempty"`

	// DensityPreset is one of light, standard or heavy.
	DensityPreset string `json:"density_preset,omitempty"`

	// Save stores a snapshot of the calculation when true.
	Save bool `json:"save,omitempty"`
}

// CostRequest holds the cost estimator form values.
type CostRequest struct {
	MaterialRequest

	// PricePerTon is the asphalt price in dollars per ton.
	PricePerTon *float64 `json:"price_per_ton"`

	// LaborCostPerSqFt is the labor rate in dollars per square foot.
	LaborCostPerSqFt *float64 `json:"labor_cost_per_sq_ft,omitempty"`

	// BaseCostPerSqFt is the base preparation rate in dollars per square foot.
	BaseCostPerSqFt *float64 `json:"base_cost_per_sq_ft,omitempty"`
}

// MaterialResult is the asphalt calculator output.
type MaterialResult struct {
	VolumeM3  float64 `json:"volume_m3" yaml:"volume_m3"`
	VolumeYd3 float64 `json:"volume_yd3" yaml:"volume_yd3"`
	AreaM2    float64 `json:"area_m2" yaml:"area_m2"`
	AreaSqFt  float64 `json:"area_sq_ft" yaml:"area_sq_ft"`
	Tonnage   float64 `json:"tonnage" yaml:"tonnage"`
	Pounds    float64 `json:"pounds" yaml:"pounds"`

	// Display holds the values formatted for presentation.
	Display MaterialDisplay `json:"display" yaml:"display"`

	// CalculationID is set when the calculation was saved.
	CalculationID string `json:"calculation_id,omitempty" yaml:"calculation_id,omitempty"`
}

// MaterialDisplay is MaterialResult formatted the way the calculator shows it.
type MaterialDisplay struct {
	Volume   string `json:"volume" yaml:"volume"`
	VolumeM3 string `json:"volume_m3" yaml:"volume_m3"`
	Weight   string `json:"weight" yaml:"weight"`
	Pounds   string `json:"pounds" yaml:"pounds"`
	Area     string `json:"area" yaml:"area"`
	AreaM2   string `json:"area_m2" yaml:"area_m2"`
}

// CostResult is the cost estimator output.
type CostResult struct {
	MaterialCost float64 `json:"material_cost" yaml:"material_cost"`
	LaborCost    float64 `json:"labor_cost" yaml:"labor_cost"`
	BaseCost     float64 `json:"base_cost" yaml:"base_cost"`
	TotalCost    float64 `json:"total_cost" yaml:"total_cost"`
	Tonnage      float64 `json:"tonnage" yaml:"tonnage"`
	AreaM2       float64 `json:"area_m2" yaml:"area_m2"`

	// CostPerTon is the installed cost per ton; nil when tonnage is zero.
	CostPerTon *float64 `json:"cost_per_ton,omitempty" yaml:"cost_per_ton,omitempty"`

	Display CostDisplay `json:"display" yaml:"display"`

	CalculationID string `json:"calculation_id,omitempty" yaml:"calculation_id,omitempty"`
}

// CostDisplay is CostResult formatted as currency.
type CostDisplay struct {
	Total      string `json:"total" yaml:"total"`
	Material   string `json:"material" yaml:"material"`
	Labor      string `json:"labor" yaml:"labor"`
	Base       string `json:"base" yaml:"base"`
	PerTon     string `json:"per_ton,omitempty" yaml:"per_ton,omitempty"`
	Tonnage    string `json:"tonnage" yaml:"tonnage"`
	Disclaimer string `json:"disclaimer" yaml:"disclaimer"`
}

// CalculationResponse is a saved calculation as returned by the API.
type CalculationResponse struct {
	ID        string                    `json:"id"`
	Kind      string                    `json:"kind"`
	Inputs    entity.CalculationInputs  `json:"inputs"`
	Results   entity.CalculationResults `json:"results"`
	Timestamp string                    `json:"timestamp"`
}

// NewCalculationResponse converts a saved calculation entity.
func NewCalculationResponse(c *entity.Calculation) CalculationResponse {
	return CalculationResponse{
		ID:        c.ID.String(),
		Kind:      string(c.Kind),
		Inputs:    c.Inputs,
		Results:   c.Results,
		Timestamp: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// UnitInfo describes one supported length unit.
type UnitInfo struct {
	Symbol   string  `json:"symbol" yaml:"symbol"`
	Name     string  `json:"name" yaml:"name"`
	ToMeters float64 `json:"to_meters" yaml:"to_meters"`
}

// DensityInfo describes one density preset.
type DensityInfo struct {
	Preset          string  `json:"preset" yaml:"preset"`
	Label           string  `json:"label" yaml:"label"`
	KgPerCubicMeter float64 `json:"kg_per_m3" yaml:"kg_per_m3"`
}

// ReferenceResponse holds the static data the calculator forms are built from.
type ReferenceResponse struct {
	Units     []UnitInfo                            `json:"units" yaml:"units"`
	Densities []DensityInfo                         `json:"densities" yaml:"densities"`
	Thickness []valueobject.ThicknessRecommendation `json:"thickness_recommendations" yaml:"thickness_recommendations"`
}
