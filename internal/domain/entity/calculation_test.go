package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/asphalt-go/internal/domain/calculator"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

func TestNewCalculation(t *testing.T) {
	inputs := CalculationInputs{
		Dimensions: valueobject.NewDimensions(20, 10, 0.25, valueobject.UnitFeet),
		Density:    valueobject.StandardDensity,
	}

	calc, err := NewCalculation(CalculationKindMaterial, inputs, CalculationResults{Tonnage: 3.4})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, calc.ID)
	assert.Equal(t, CalculationKindMaterial, calc.Kind)
	assert.Equal(t, time.UTC, calc.CreatedAt.Location())
	assert.Nil(t, calc.Results.Cost)
}

func TestNewCalculation_Invalid(t *testing.T) {
	_, err := NewCalculation("tonnage", CalculationInputs{}, CalculationResults{})
	assert.ErrorIs(t, err, ErrInvalidCalculationKind)

	_, err = NewCalculation(CalculationKindCost, CalculationInputs{}, CalculationResults{})
	assert.ErrorIs(t, err, ErrMissingCostBreakdown)

	cost := calculator.CalculateCost(10, 85)
	calc, err := NewCalculation(CalculationKindCost, CalculationInputs{PricePerTon: 85}, CalculationResults{Cost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 850.0, calc.Results.Cost.TotalCost)
}

func TestCalculationKind_IsValid(t *testing.T) {
	assert.True(t, CalculationKindMaterial.IsValid())
	assert.True(t, CalculationKindCost.IsValid())
	assert.False(t, CalculationKind("").IsValid())
}
