package valueobject

import (
	"errors"
	"fmt"
)

// DensityPreset names one of the standard asphalt mix densities.
type DensityPreset string

// Density presets offered by the calculators.
const (
	DensityLight    DensityPreset = "light"    // Lighter mixes
	DensityStandard DensityPreset = "standard" // Standard hot mix asphalt
	DensityHeavy    DensityPreset = "heavy"    // Dense graded mixes
)

// StandardDensity is the density (kg/m³) used when a caller supplies none.
const StandardDensity = 2400.0

// ErrUnknownDensityPreset is returned for preset names outside light, standard and heavy.
var ErrUnknownDensityPreset = errors.New("unknown density preset")

// DensityPresets lists the presets from lightest to heaviest.
func DensityPresets() []DensityPreset {
	return []DensityPreset{DensityLight, DensityStandard, DensityHeavy}
}

// ParseDensityPreset converts a raw preset name into a DensityPreset.
//
// Parameters:
//   - s: preset name (e.g., "heavy")
//
// Returns:
//   - DensityPreset: the parsed preset
//   - error: ErrUnknownDensityPreset if s is not a known preset
func ParseDensityPreset(s string) (DensityPreset, error) {
	p := DensityPreset(s)
	if _, err := p.KgPerCubicMeter(); err != nil {
		return "", err
	}
	return p, nil
}

// KgPerCubicMeter returns the preset density in kilograms per cubic meter.
//
// Returns:
//   - float64: density in kg/m³
//   - error: ErrUnknownDensityPreset if the preset is not known
func (p DensityPreset) KgPerCubicMeter() (float64, error) {
	switch p {
	case DensityLight:
		return 2200, nil
	case DensityStandard:
		return StandardDensity, nil
	case DensityHeavy:
		return 2500, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDensityPreset, string(p))
}

// Label returns the display label used by the calculator forms.
func (p DensityPreset) Label() string {
	switch p {
	case DensityLight:
		return "Light Mix"
	case DensityStandard:
		return "Standard Mix"
	case DensityHeavy:
		return "Dense Mix"
	}
	return ""
}
