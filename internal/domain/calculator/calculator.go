// Package calculator converts paving dimensions into volume, area, tonnage and cost.
//
// Every function is pure: results depend only on the arguments, there is no
// package-level mutable state, and all functions are safe for concurrent use.
// Inputs are not range-checked here; negative or zero values flow through the
// arithmetic unchanged. Validation belongs to the caller (see service.Sanitizer).
package calculator

import (
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

// Fixed conversion literals, published values rather than ones derived from
// the unit table. Results shown to users depend on these exact digits.
const (
	CubicYardsPerCubicMeter  = 1.30795
	SquareFeetPerSquareMeter = 10.7639
	PoundsPerMetricTon       = 2204.62
)

// ConvertToMeters converts a length to meters.
//
// Parameters:
//   - value: the length in unit
//   - unit: unit of value
//
// Returns:
//   - float64: the length in meters
//   - error: valueobject.ErrUnknownUnit if unit is not supported
func ConvertToMeters(value float64, unit valueobject.LengthUnit) (float64, error) {
	factor, err := unit.ToMeters()
	if err != nil {
		return 0, err
	}
	return value * factor, nil
}

// ConvertFromMeters converts a length in meters to unit.
//
// Parameters:
//   - meters: the length in meters
//   - unit: target unit
//
// Returns:
//   - float64: the length in unit
//   - error: valueobject.ErrUnknownUnit if unit is not supported
func ConvertFromMeters(meters float64, unit valueobject.LengthUnit) (float64, error) {
	factor, err := unit.ToMeters()
	if err != nil {
		return 0, err
	}
	return meters / factor, nil
}

// CalculateVolume returns the slab volume in cubic meters.
// Each dimension is converted to meters independently before multiplying.
//
// Parameters:
//   - length, width, thickness: slab measurements in unit
//   - unit: unit shared by all three measurements
//
// Returns:
//   - float64: volume in m³
//   - error: valueobject.ErrUnknownUnit if unit is not supported
func CalculateVolume(length, width, thickness float64, unit valueobject.LengthUnit) (float64, error) {
	factor, err := unit.ToMeters()
	if err != nil {
		return 0, err
	}
	return (length * factor) * (width * factor) * (thickness * factor), nil
}

// CalculateArea returns the slab surface area in square meters.
//
// Parameters:
//   - length, width: slab measurements in unit
//   - unit: unit shared by both measurements
//
// Returns:
//   - float64: area in m²
//   - error: valueobject.ErrUnknownUnit if unit is not supported
func CalculateArea(length, width float64, unit valueobject.LengthUnit) (float64, error) {
	factor, err := unit.ToMeters()
	if err != nil {
		return 0, err
	}
	return (length * factor) * (width * factor), nil
}

// CalculateTonnage returns the metric tons of asphalt for a volume.
// Only the first density is used; with none, the standard 2400 kg/m³ applies.
//
// Parameters:
//   - volumeM3: volume in m³
//   - density: optional density in kg/m³
//
// Returns:
//   - float64: weight in metric tons
func CalculateTonnage(volumeM3 float64, density ...float64) float64 {
	d := valueobject.StandardDensity
	if len(density) > 0 {
		d = density[0]
	}
	return (volumeM3 * d) / 1000
}

// CubicMetersToYards converts m³ to yd³.
func CubicMetersToYards(m3 float64) float64 {
	return m3 * CubicYardsPerCubicMeter
}

// SquareMetersToFeet converts m² to ft².
func SquareMetersToFeet(m2 float64) float64 {
	return m2 * SquareFeetPerSquareMeter
}

// TonsToPounds converts metric tons to pounds.
func TonsToPounds(tons float64) float64 {
	return tons * PoundsPerMetricTon
}
