package valueobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLengthUnit(t *testing.T) {
	for _, u := range LengthUnits() {
		got, err := ParseLengthUnit(string(u))
		require.NoError(t, err)
		assert.Equal(t, u, got)
		assert.NotEmpty(t, got.Name())
	}

	_, err := ParseLengthUnit("furlong")
	assert.ErrorIs(t, err, ErrUnknownUnit)
	assert.Contains(t, err.Error(), `"furlong"`)
}

func TestLengthUnitsReturnsCopy(t *testing.T) {
	units := LengthUnits()
	units[0] = "mi"
	assert.Equal(t, UnitInches, LengthUnits()[0])
}

func TestDensityPresets(t *testing.T) {
	want := map[DensityPreset]float64{
		DensityLight:    2200,
		DensityStandard: 2400,
		DensityHeavy:    2500,
	}
	for _, p := range DensityPresets() {
		got, err := p.KgPerCubicMeter()
		require.NoError(t, err)
		assert.Equal(t, want[p], got)
		assert.NotEmpty(t, p.Label())
	}

	_, err := ParseDensityPreset("medium")
	assert.ErrorIs(t, err, ErrUnknownDensityPreset)
}

func TestDimensionsString(t *testing.T) {
	d := NewDimensions(20, 10, 0.25, UnitFeet)
	assert.Equal(t, "20x10x0.25 ft", d.String())
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{850, "$850.00"},
		{0, "$0.00"},
		{1234567.891, "$1,234,567.89"},
		{999.995, "$1,000.00"},
		{-850, "-$850.00"},
		{-1234.5, "-$1,234.50"},
		{math.Inf(1), "$∞"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "input %v", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     string
	}{
		{16.990107955200002, 2, "16.99"},
		{2.675, 2, "2.68"},
		{7490.9, 0, "7,491"},
		{1234567, 2, "1,234,567.00"},
		{123456, 1, "123,456.0"},
		{-98765.4321, 3, "-98,765.432"},
		{3.14159, -1, "3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in, tt.decimals), "input %v", tt.in)
	}
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "$0.30", NewMoneyFromFloat(0.3, CurrencyUSD).Format())
	assert.Equal(t, "$0.00", NewMoneyFromFloat(math.NaN(), CurrencyUSD).Format())
	assert.Equal(t, "-$1,250.50", NewMoneyFromFloat(-1250.5, CurrencyUSD).Format())
	assert.Equal(t, "CAD 12.00", NewMoneyFromFloat(12, Currency("CAD")).Format())
}

func TestThicknessRecommendations(t *testing.T) {
	recs := ThicknessRecommendations()
	require.Len(t, recs, 4)
	for _, r := range recs {
		assert.LessOrEqual(t, r.Inches.Min, r.Inches.Recommended)
		assert.LessOrEqual(t, r.Inches.Recommended, r.Inches.Max)
	}
	assert.Equal(t, ThicknessRange{Min: 2, Recommended: 3, Max: 4}, recs[0].Inches)
}
