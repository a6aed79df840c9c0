package service

import (
	"math"
	"strings"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

// Defaults are the values used for optional fields a request leaves out.
type Defaults struct {
	// ApplyFormDefaults substitutes the calculator form defaults below for
	// missing fields. When false, only the engine defaults apply
	// (standard density, zero rates) and price_per_ton is required.
	ApplyFormDefaults bool

	Density          float64
	PricePerTon      float64
	LaborCostPerSqFt float64
	BaseCostPerSqFt  float64
}

// FormDefaults returns the values the calculator forms pre-fill.
func FormDefaults() Defaults {
	return Defaults{
		ApplyFormDefaults: true,
		Density:           valueobject.StandardDensity,
		PricePerTon:       85,
		LaborCostPerSqFt:  2.5,
		BaseCostPerSqFt:   1.5,
	}
}

// MaterialInput is a sanitized asphalt calculator request.
type MaterialInput struct {
	Dimensions valueobject.Dimensions
	Density    float64
}

// CostInput is a sanitized cost estimator request.
type CostInput struct {
	MaterialInput
	PricePerTon      float64
	LaborCostPerSqFt float64
	BaseCostPerSqFt  float64
}

// Sanitizer validates calculator requests before they reach the engine.
// It rejects missing, non-finite and out-of-range values and never clamps.
type Sanitizer struct {
	defaults Defaults
}

// NewSanitizer creates a Sanitizer.
func NewSanitizer(defaults Defaults) *Sanitizer {
	return &Sanitizer{defaults: defaults}
}

// Material validates an asphalt calculator request.
//
// Parameters:
//   - req: the raw request
//
// Returns:
//   - MaterialInput: resolved inputs
//   - error: *ValidationFailure listing every invalid field
func (s *Sanitizer) Material(req dto.MaterialRequest) (MaterialInput, error) {
	var errs []dto.ValidationError
	in := s.material(req, &errs)
	if len(errs) > 0 {
		return MaterialInput{}, &ValidationFailure{Errors: errs}
	}
	return in, nil
}

// Cost validates a cost estimator request.
//
// Parameters:
//   - req: the raw request
//
// Returns:
//   - CostInput: resolved inputs
//   - error: *ValidationFailure listing every invalid field
func (s *Sanitizer) Cost(req dto.CostRequest) (CostInput, error) {
	var errs []dto.ValidationError
	in := CostInput{MaterialInput: s.material(req.MaterialRequest, &errs)}

	switch {
	case req.PricePerTon != nil:
		in.PricePerTon = nonNegative("price_per_ton", *req.PricePerTon, &errs)
	case s.defaults.ApplyFormDefaults:
		in.PricePerTon = s.defaults.PricePerTon
	default:
		errs = append(errs, dto.ValidationError{Field: "price_per_ton", Message: "is required"})
	}

	in.LaborCostPerSqFt = s.optionalRate("labor_cost_per_sq_ft", req.LaborCostPerSqFt, s.defaults.LaborCostPerSqFt, &errs)
	in.BaseCostPerSqFt = s.optionalRate("base_cost_per_sq_ft", req.BaseCostPerSqFt, s.defaults.BaseCostPerSqFt, &errs)

	if len(errs) > 0 {
		return CostInput{}, &ValidationFailure{Errors: errs}
	}
	return in, nil
}

func (s *Sanitizer) material(req dto.MaterialRequest, errs *[]dto.ValidationError) MaterialInput {
	length := dimension("length", req.Length, errs)
	width := dimension("width", req.Width, errs)
	thickness := dimension("thickness", req.Thickness, errs)

	unit, err := valueobject.ParseLengthUnit(req.Unit)
	if err != nil {
		msg := "must be one of " + joinUnits()
		if req.Unit == "" {
			msg = "is required"
		}
		*errs = append(*errs, dto.ValidationError{Field: "unit", Message: msg, Value: nonEmpty(req.Unit)})
	}

	return MaterialInput{
		Dimensions: valueobject.NewDimensions(length, width, thickness, unit),
		Density:    s.density(req, errs),
	}
}

func (s *Sanitizer) density(req dto.MaterialRequest, errs *[]dto.ValidationError) float64 {
	if req.Density != nil {
		d := *req.Density
		if !isFinite(d) {
			*errs = append(*errs, dto.ValidationError{Field: "density", Message: "must be a finite number"})
			return 0
		}
		if d <= 0 {
			*errs = append(*errs, dto.ValidationError{Field: "density", Message: "must be greater than zero", Value: d})
			return 0
		}
		return d
	}

	if req.DensityPreset != "" {
		preset, err := valueobject.ParseDensityPreset(req.DensityPreset)
		if err != nil {
			*errs = append(*errs, dto.ValidationError{
				Field:   "density_preset",
				Message: "must be one of light, standard, heavy",
				Value:   req.DensityPreset,
			})
			return 0
		}
		d, _ := preset.KgPerCubicMeter()
		return d
	}

	if s.defaults.ApplyFormDefaults && s.defaults.Density > 0 {
		return s.defaults.Density
	}
	return valueobject.StandardDensity
}

func (s *Sanitizer) optionalRate(field string, v *float64, def float64, errs *[]dto.ValidationError) float64 {
	if v != nil {
		return nonNegative(field, *v, errs)
	}
	if s.defaults.ApplyFormDefaults {
		return def
	}
	return 0
}

func dimension(field string, v *float64, errs *[]dto.ValidationError) float64 {
	switch {
	case v == nil:
		*errs = append(*errs, dto.ValidationError{Field: field, Message: "is required"})
		return 0
	case !isFinite(*v):
		*errs = append(*errs, dto.ValidationError{Field: field, Message: "must be a finite number"})
		return 0
	case *v <= 0:
		*errs = append(*errs, dto.ValidationError{Field: field, Message: "must be greater than zero", Value: *v})
		return 0
	}
	return *v
}

func nonNegative(field string, v float64, errs *[]dto.ValidationError) float64 {
	if !isFinite(v) {
		*errs = append(*errs, dto.ValidationError{Field: field, Message: "must be a finite number"})
		return 0
	}
	if v < 0 {
		*errs = append(*errs, dto.ValidationError{Field: field, Message: "must not be negative", Value: v})
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func joinUnits() string {
	units := valueobject.LengthUnits()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}
