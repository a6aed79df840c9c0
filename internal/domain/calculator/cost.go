package calculator

// CostBreakdown is the itemised cost of a paving job.
// TotalCost is always the unrounded sum of the other three fields.
type CostBreakdown struct {
	MaterialCost float64 `json:"material_cost" msgpack:"material_cost"`
	LaborCost    float64 `json:"labor_cost" msgpack:"labor_cost"`
	BaseCost     float64 `json:"base_cost" msgpack:"base_cost"`
	TotalCost    float64 `json:"total_cost" msgpack:"total_cost"`
}

type costParams struct {
	laborPerSqFt float64
	basePerSqFt  float64
	areaM2       float64
}

// CostOption sets one of the optional CalculateCost inputs. Unset options are zero.
type CostOption func(*costParams)

// WithLaborRate sets the labor rate in dollars per square foot.
func WithLaborRate(perSqFt float64) CostOption {
	return func(p *costParams) { p.laborPerSqFt = perSqFt }
}

// WithBaseRate sets the base preparation rate in dollars per square foot.
func WithBaseRate(perSqFt float64) CostOption {
	return func(p *costParams) { p.basePerSqFt = perSqFt }
}

// WithArea sets the paved area in square meters.
func WithArea(areaM2 float64) CostOption {
	return func(p *costParams) { p.areaM2 = areaM2 }
}

// CalculateCost prices a job from its tonnage and area.
// Labor and base rates are always per square foot, whatever unit the
// dimensions were entered in, so the area is converted to ft² first.
//
// Parameters:
//   - tonnage: asphalt weight in metric tons
//   - pricePerTon: material price per ton
//   - opts: optional labor rate, base rate and area
//
// Returns:
//   - CostBreakdown: material, labor, base and total cost
func CalculateCost(tonnage, pricePerTon float64, opts ...CostOption) CostBreakdown {
	var p costParams
	for _, opt := range opts {
		opt(&p)
	}

	areaSqFt := SquareMetersToFeet(p.areaM2)
	material := tonnage * pricePerTon
	labor := p.laborPerSqFt * areaSqFt
	base := p.basePerSqFt * areaSqFt

	return CostBreakdown{
		MaterialCost: material,
		LaborCost:    labor,
		BaseCost:     base,
		TotalCost:    material + labor + base,
	}
}
