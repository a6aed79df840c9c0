package calculator

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

func TestConvertToMeters_Factors(t *testing.T) {
	tests := []struct {
		unit valueobject.LengthUnit
		want float64
	}{
		{valueobject.UnitInches, 0.0254},
		{valueobject.UnitFeet, 0.3048},
		{valueobject.UnitYards, 0.9144},
		{valueobject.UnitCentimeters, 0.01},
		{valueobject.UnitMeters, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			got, err := ConvertToMeters(1, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	values := []float64{0.01, 1, 2.5, 3, 20, 123.456, 98765.4321}
	for _, u := range valueobject.LengthUnits() {
		for _, v := range values {
			m, err := ConvertToMeters(v, u)
			require.NoError(t, err)
			back, err := ConvertFromMeters(m, u)
			require.NoError(t, err)
			assert.InEpsilon(t, v, back, 1e-9, "unit %s value %v", u, v)
		}
	}
}

func TestUnknownUnit(t *testing.T) {
	bogus := valueobject.LengthUnit("mi")

	m, err := ConvertToMeters(5, bogus)
	assert.ErrorIs(t, err, valueobject.ErrUnknownUnit)
	assert.Zero(t, m)

	m, err = ConvertFromMeters(5, bogus)
	assert.ErrorIs(t, err, valueobject.ErrUnknownUnit)
	assert.Zero(t, m)

	v, err := CalculateVolume(1, 1, 1, bogus)
	assert.ErrorIs(t, err, valueobject.ErrUnknownUnit)
	assert.Zero(t, v)

	a, err := CalculateArea(1, 1, "")
	assert.ErrorIs(t, err, valueobject.ErrUnknownUnit)
	assert.Zero(t, a)
}

func TestCalculateVolume_Feet(t *testing.T) {
	got, err := CalculateVolume(20, 10, 3, valueobject.UnitFeet)
	require.NoError(t, err)
	assert.InEpsilon(t, 6.096*3.048*0.9144, got, 1e-12)
}

func TestCalculateVolume_SignsAndZero(t *testing.T) {
	zero, err := CalculateVolume(20, 0, 3, valueobject.UnitMeters)
	require.NoError(t, err)
	assert.Zero(t, zero)

	neg, err := CalculateVolume(-2, 3, 4, valueobject.UnitMeters)
	require.NoError(t, err)
	assert.Equal(t, -24.0, neg)

	pos, err := CalculateVolume(-2, -3, 4, valueobject.UnitMeters)
	require.NoError(t, err)
	assert.Equal(t, 24.0, pos)
}

func TestCalculateArea_IgnoresThickness(t *testing.T) {
	got, err := CalculateArea(100, 50, valueobject.UnitCentimeters)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestDrivewayScenario(t *testing.T) {
	// 20 ft x 10 ft x 3 in, with thickness expressed as 0.25 ft.
	volume, err := CalculateVolume(20, 10, 0.25, valueobject.UnitFeet)
	require.NoError(t, err)

	assert.InDelta(t, 1.85, CubicMetersToYards(volume), 0.01)
	// The formula gives 3.398 t here, not the 4.5 t quoted in the published FAQ.
	assert.InDelta(t, 3.398, CalculateTonnage(volume, 2400), 0.001)
}

func TestCalculateTonnage(t *testing.T) {
	assert.Equal(t, 12.0, CalculateTonnage(5, 2400))
	assert.Equal(t, 12.0, CalculateTonnage(5), "defaults to standard density")
	assert.Equal(t, 11.0, CalculateTonnage(5, 2200))
	assert.Zero(t, CalculateTonnage(5, 0))
	assert.Negative(t, CalculateTonnage(5, -2400))
}

func TestFixedLiterals(t *testing.T) {
	assert.Equal(t, 1.30795, CubicMetersToYards(1))
	assert.Equal(t, 10.7639, SquareMetersToFeet(1))
	assert.Equal(t, 2204.62, TonsToPounds(1))
}

func TestCalculateCost_ZeroArea(t *testing.T) {
	got := CalculateCost(10, 85, WithLaborRate(2.5), WithBaseRate(1.5), WithArea(0))
	assert.Equal(t, CostBreakdown{MaterialCost: 850, LaborCost: 0, BaseCost: 0, TotalCost: 850}, got)
}

func TestCalculateCost_Defaults(t *testing.T) {
	got := CalculateCost(4, 100)
	assert.Equal(t, 400.0, got.MaterialCost)
	assert.Zero(t, got.LaborCost)
	assert.Zero(t, got.BaseCost)
	assert.Equal(t, 400.0, got.TotalCost)
}

func TestCalculateCost_RatesArePerSquareFoot(t *testing.T) {
	// 1 m² is priced as 10.7639 ft² even though the job was measured in meters.
	got := CalculateCost(0, 0, WithLaborRate(2), WithBaseRate(1), WithArea(1))
	assert.Equal(t, 2*10.7639, got.LaborCost)
	assert.Equal(t, 10.7639, got.BaseCost)
}

func TestCalculateCost_Additivity(t *testing.T) {
	inputs := []struct{ tons, price, labor, base, area float64 }{
		{3.398, 85, 2.5, 1.5, 18.58},
		{0.1, 0.3, 0.7, 0.11, 1e-3},
		{1234.5678, 91.17, 3.33, 1.01, 987.65},
		{-1, 85, 2.5, -1.5, 3},
	}
	for _, in := range inputs {
		c := CalculateCost(in.tons, in.price, WithLaborRate(in.labor), WithBaseRate(in.base), WithArea(in.area))
		assert.Equal(t, c.MaterialCost+c.LaborCost+c.BaseCost, c.TotalCost)
	}
}

func TestIdempotent(t *testing.T) {
	run := func() (float64, float64, CostBreakdown) {
		v, _ := CalculateVolume(17.3, 9.1, 2.75, valueobject.UnitInches)
		a, _ := CalculateArea(17.3, 9.1, valueobject.UnitInches)
		return v, a, CalculateCost(CalculateTonnage(v, 2500), 91.5, WithLaborRate(2.5), WithBaseRate(1.5), WithArea(a))
	}
	v1, a1, c1 := run()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v2, a2, c2 := run()
			assert.Equal(t, math.Float64bits(v1), math.Float64bits(v2))
			assert.Equal(t, math.Float64bits(a1), math.Float64bits(a2))
			assert.Equal(t, c1, c2)
		}()
	}
	wg.Wait()
}
