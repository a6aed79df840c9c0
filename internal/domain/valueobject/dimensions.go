package valueobject

import "fmt"

// Dimensions represents a paved slab measured in a single length unit.
// Length, width and thickness always share Unit; mixing units per field is not supported.
type Dimensions struct {
	// Length of the slab.
	Length float64 `json:"length" msgpack:"length"`

	// Width of the slab.
	Width float64 `json:"width" msgpack:"width"`

	// Thickness of the asphalt layer.
	Thickness float64 `json:"thickness" msgpack:"thickness"`

	// Unit applies to all three measurements.
	Unit LengthUnit `json:"unit" msgpack:"unit"`
}

// NewDimensions creates a new Dimensions value object.
//
// Parameters:
//   - length: slab length
//   - width: slab width
//   - thickness: asphalt layer thickness
//   - unit: unit shared by all three values
//
// Returns:
//   - Dimensions: new Dimensions value object
func NewDimensions(length, width, thickness float64, unit LengthUnit) Dimensions {
	return Dimensions{
		Length:    length,
		Width:     width,
		Thickness: thickness,
		Unit:      unit,
	}
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted dimensions (e.g., "20x10x0.25 ft")
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g %s", d.Length, d.Width, d.Thickness, d.Unit)
}
