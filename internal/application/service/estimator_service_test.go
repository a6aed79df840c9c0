package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/domain/calculator"
	"github.com/hapkiduki/asphalt-go/internal/domain/entity"
	"github.com/hapkiduki/asphalt-go/internal/domain/repository"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type memoryRepo struct {
	mu        sync.Mutex
	calcs     map[uuid.UUID]*entity.Calculation
	createErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{calcs: make(map[uuid.UUID]*entity.Calculation)}
}

func (r *memoryRepo) Create(_ context.Context, c *entity.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.calcs[c.ID] = c
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Calculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.calcs[id]
	if !ok {
		return nil, repository.ErrCalculationNotFound
	}
	return c, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.calcs[id]; !ok {
		return repository.ErrCalculationNotFound
	}
	delete(r.calcs, id)
	return nil
}

func (r *memoryRepo) matching(f repository.CalculationFilter) []*entity.Calculation {
	var out []*entity.Calculation
	for _, c := range r.calcs {
		if f.Kind == nil || c.Kind == *f.Kind {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryRepo) FindAll(_ context.Context, f repository.CalculationFilter) ([]*entity.Calculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(f)
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memoryRepo) Count(_ context.Context, f repository.CalculationFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

func (r *memoryRepo) Ping(context.Context) error { return nil }

func f64(v float64) *float64 { return &v }

func drivewayRequest() dto.MaterialRequest {
	return dto.MaterialRequest{Length: f64(20), Width: f64(10), Thickness: f64(0.25), Unit: "ft"}
}

func newService(repo repository.CalculationRepository, defaults Defaults) *EstimatorService {
	opts := []Option{WithClock(fixedClock{time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)})}
	if repo != nil {
		opts = append(opts, WithRepository(repo))
	}
	return NewEstimatorService(NewSanitizer(defaults), port.NopLogger{}, opts...)
}

func TestEstimateMaterial_Driveway(t *testing.T) {
	svc := newService(nil, Defaults{})

	res, err := svc.EstimateMaterial(context.Background(), drivewayRequest())
	require.NoError(t, err)

	volume, _ := calculator.CalculateVolume(20, 10, 0.25, valueobject.UnitFeet)
	assert.Equal(t, volume, res.VolumeM3)
	assert.Equal(t, calculator.CubicMetersToYards(volume), res.VolumeYd3)
	assert.Equal(t, calculator.CalculateTonnage(volume), res.Tonnage)

	assert.Equal(t, "1.85 yd³", res.Display.Volume)
	assert.Equal(t, "3.40 tons", res.Display.Weight)
	assert.Equal(t, "7,491 lbs", res.Display.Pounds)
	assert.Equal(t, "200.00 ft²", res.Display.Area)
	assert.Empty(t, res.CalculationID)
}

func TestEstimateMaterial_DensitySelection(t *testing.T) {
	svc := newService(nil, Defaults{})
	ctx := context.Background()

	req := drivewayRequest()
	req.DensityPreset = "heavy"
	heavy, err := svc.EstimateMaterial(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, calculator.CalculateTonnage(heavy.VolumeM3, 2500), heavy.Tonnage)

	// An explicit density wins over the preset.
	req.Density = f64(2300)
	custom, err := svc.EstimateMaterial(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, calculator.CalculateTonnage(custom.VolumeM3, 2300), custom.Tonnage)
}

func TestEstimateMaterial_ValidationCollectsAllFields(t *testing.T) {
	svc := newService(nil, Defaults{})

	_, err := svc.EstimateMaterial(context.Background(), dto.MaterialRequest{
		Length:        f64(-1),
		Width:         f64(math.Inf(1)),
		Unit:          "mi",
		DensityPreset: "medium",
	})
	vf, ok := AsValidationFailure(err)
	require.True(t, ok)

	fields := make([]string, 0, len(vf.Errors))
	for _, e := range vf.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"length", "width", "thickness", "unit", "density_preset"}, fields)
	assert.Contains(t, err.Error(), "length must be greater than zero")
}

func TestEstimateMaterial_RejectsZeroAndNaN(t *testing.T) {
	svc := newService(nil, Defaults{})

	req := drivewayRequest()
	req.Thickness = f64(0)
	req.Density = f64(math.NaN())
	_, err := svc.EstimateMaterial(context.Background(), req)
	vf, ok := AsValidationFailure(err)
	require.True(t, ok)
	require.Len(t, vf.Errors, 2)
	assert.Equal(t, "thickness", vf.Errors[0].Field)
	assert.Equal(t, "density", vf.Errors[1].Field)
	assert.Nil(t, vf.Errors[1].Value)
}

func TestEstimate_RejectsOverflowingResults(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, FormDefaults())
	ctx := context.Background()

	huge := dto.MaterialRequest{Length: f64(1e200), Width: f64(1e200), Thickness: f64(1), Unit: "m", Save: true}
	_, err := svc.EstimateMaterial(ctx, huge)
	vf, ok := AsValidationFailure(err)
	require.True(t, ok)
	require.Len(t, vf.Errors, 3)
	assert.Equal(t, "length", vf.Errors[0].Field)
	assert.Equal(t, "result is too large", vf.Errors[0].Message)

	price := dto.CostRequest{
		MaterialRequest: dto.MaterialRequest{Length: f64(10), Width: f64(10), Thickness: f64(1), Unit: "m", Save: true},
		PricePerTon:     f64(1e307),
	}
	_, err = svc.EstimateCost(ctx, price)
	vf, ok = AsValidationFailure(err)
	require.True(t, ok)
	assert.Equal(t, "price_per_ton", vf.Errors[0].Field)

	// Subnormal tonnage makes the per-ton figure overflow
	thin := dto.CostRequest{MaterialRequest: dto.MaterialRequest{Length: f64(1), Width: f64(1), Thickness: f64(1e-310), Unit: "m", Save: true}}
	_, err = svc.EstimateCost(ctx, thin)
	vf, ok = AsValidationFailure(err)
	require.True(t, ok)
	assert.Equal(t, "thickness", vf.Errors[0].Field)

	assert.Empty(t, repo.calcs, "nothing is saved")
}

func TestEstimateCost_FormDefaults(t *testing.T) {
	svc := newService(nil, FormDefaults())

	req := dto.CostRequest{MaterialRequest: dto.MaterialRequest{Length: f64(20), Width: f64(10), Thickness: f64(3), Unit: "ft"}}
	res, err := svc.EstimateCost(context.Background(), req)
	require.NoError(t, err)

	volume, _ := calculator.CalculateVolume(20, 10, 3, valueobject.UnitFeet)
	area, _ := calculator.CalculateArea(20, 10, valueobject.UnitFeet)
	want := calculator.CalculateCost(calculator.CalculateTonnage(volume, 2400), 85,
		calculator.WithLaborRate(2.5), calculator.WithBaseRate(1.5), calculator.WithArea(area))

	assert.Equal(t, want.MaterialCost, res.MaterialCost)
	assert.Equal(t, want.LaborCost, res.LaborCost)
	assert.Equal(t, want.BaseCost, res.BaseCost)
	assert.Equal(t, want.TotalCost, res.TotalCost)
	assert.Equal(t, res.MaterialCost+res.LaborCost+res.BaseCost, res.TotalCost)

	require.NotNil(t, res.CostPerTon)
	assert.Equal(t, res.TotalCost/res.Tonnage, *res.CostPerTon)
	assert.Equal(t, valueobject.FormatCurrency(res.TotalCost), res.Display.Total)
	assert.Equal(t, "40.78 tons", res.Display.Tonnage)
	assert.Equal(t, CostDisclaimer, res.Display.Disclaimer)
}

func TestEstimateCost_EngineDefaults(t *testing.T) {
	svc := newService(nil, Defaults{})
	ctx := context.Background()

	req := dto.CostRequest{MaterialRequest: drivewayRequest()}
	_, err := svc.EstimateCost(ctx, req)
	vf, ok := AsValidationFailure(err)
	require.True(t, ok)
	assert.Equal(t, "price_per_ton", vf.Errors[0].Field)

	req.PricePerTon = f64(85)
	res, err := svc.EstimateCost(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, res.LaborCost)
	assert.Zero(t, res.BaseCost)
	assert.Equal(t, res.MaterialCost, res.TotalCost)
}

func TestEstimateCost_NegativeRatesRejected(t *testing.T) {
	svc := newService(nil, Defaults{})

	req := dto.CostRequest{
		MaterialRequest:  drivewayRequest(),
		PricePerTon:      f64(-5),
		LaborCostPerSqFt: f64(-1),
		BaseCostPerSqFt:  f64(math.NaN()),
	}
	_, err := svc.EstimateCost(context.Background(), req)
	vf, ok := AsValidationFailure(err)
	require.True(t, ok)
	assert.Len(t, vf.Errors, 3)
}

func TestSaveAndRetrieve(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, FormDefaults())
	ctx := context.Background()

	req := drivewayRequest()
	req.Save = true
	mat, err := svc.EstimateMaterial(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, mat.CalculationID)

	costReq := dto.CostRequest{MaterialRequest: req}
	cost, err := svc.EstimateCost(ctx, costReq)
	require.NoError(t, err)
	require.NotEmpty(t, cost.CalculationID)

	got, err := svc.GetCalculation(ctx, cost.CalculationID)
	require.NoError(t, err)
	assert.Equal(t, "cost", got.Kind)
	assert.Equal(t, "2026-05-01T09:30:00Z", got.Timestamp)
	require.NotNil(t, got.Results.Cost)
	assert.Equal(t, cost.TotalCost, got.Results.Cost.TotalCost)
	assert.Equal(t, 85.0, got.Inputs.PricePerTon)

	page, err := svc.ListCalculations(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, DefaultPageSize, page.Limit)
	assert.False(t, page.HasMore)

	page, err = svc.ListCalculations(ctx, "material", 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, mat.CalculationID, page.Items[0].ID)

	require.NoError(t, svc.DeleteCalculation(ctx, mat.CalculationID))
	_, err = svc.GetCalculation(ctx, mat.CalculationID)
	assert.True(t, IsNotFound(err))
}

func TestListCalculations_Validation(t *testing.T) {
	svc := newService(newMemoryRepo(), Defaults{})

	_, err := svc.ListCalculations(context.Background(), "tonnage", -1, -2)
	vf, ok := AsValidationFailure(err)
	require.True(t, ok)
	assert.Len(t, vf.Errors, 3)

	page, err := svc.ListCalculations(context.Background(), "", 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.Limit)
	assert.NotNil(t, page.Items)
}

func TestStorageDisabled(t *testing.T) {
	svc := newService(nil, Defaults{})
	ctx := context.Background()

	req := drivewayRequest()
	req.Save = true
	_, err := svc.EstimateMaterial(ctx, req)
	assert.True(t, IsStorageDisabled(err))

	_, err = svc.GetCalculation(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.DeleteCalculation(ctx, uuid.NewString()), ErrStorageDisabled)
	assert.NoError(t, svc.Ping(ctx))
}

func TestSaveFailurePropagates(t *testing.T) {
	repo := newMemoryRepo()
	repo.createErr = errors.New("disk full")
	svc := newService(repo, Defaults{})

	req := drivewayRequest()
	req.Save = true
	_, err := svc.EstimateMaterial(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMalformedID(t *testing.T) {
	svc := newService(newMemoryRepo(), Defaults{})
	_, err := svc.GetCalculation(context.Background(), "not-a-uuid")
	_, ok := AsValidationFailure(err)
	assert.True(t, ok)
}

func TestReference(t *testing.T) {
	ref := newService(nil, Defaults{}).Reference()
	require.Len(t, ref.Units, 5)
	assert.Equal(t, dto.UnitInfo{Symbol: "ft", Name: "Feet", ToMeters: 0.3048}, ref.Units[1])
	require.Len(t, ref.Densities, 3)
	assert.Equal(t, 2400.0, ref.Densities[1].KgPerCubicMeter)
	assert.Len(t, ref.Thickness, 4)
}
