package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/domain/calculator"
	"github.com/hapkiduki/asphalt-go/internal/domain/entity"
	"github.com/hapkiduki/asphalt-go/internal/domain/repository"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

// CostDisclaimer accompanies every cost estimate.
const CostDisclaimer = "This is a rough estimate. Actual costs vary by region, contractor availability, " +
	"site conditions, and material price fluctuations. Always get quotes from local licensed contractors."

// Paging limits for ListCalculations.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// EstimatorService runs the calculators and manages saved calculations.
type EstimatorService struct {
	repo      repository.CalculationRepository
	sanitizer *Sanitizer
	logger    port.Logger
	clock     port.Clock
}

// Option configures an EstimatorService.
type Option func(*EstimatorService)

// WithRepository enables saving calculations.
func WithRepository(repo repository.CalculationRepository) Option {
	return func(s *EstimatorService) { s.repo = repo }
}

// WithClock overrides the clock used to timestamp saved calculations.
func WithClock(clock port.Clock) Option {
	return func(s *EstimatorService) { s.clock = clock }
}

// NewEstimatorService creates an EstimatorService.
//
// Parameters:
//   - sanitizer: validates requests before calculation
//   - logger: structured logger
//   - opts: optional repository and clock
//
// Returns:
//   - *EstimatorService: the service
func NewEstimatorService(sanitizer *Sanitizer, logger port.Logger, opts ...Option) *EstimatorService {
	s := &EstimatorService{
		sanitizer: sanitizer,
		logger:    logger,
		clock:     port.SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EstimateMaterial computes volume, area and tonnage for a paving job.
//
// Parameters:
//   - ctx: request context
//   - req: asphalt calculator form values
//
// Returns:
//   - *dto.MaterialResult: computed and formatted quantities
//   - error: *ValidationFailure for bad input, or a storage error when saving fails
func (s *EstimatorService) EstimateMaterial(ctx context.Context, req dto.MaterialRequest) (*dto.MaterialResult, error) {
	in, err := s.sanitizer.Material(req)
	if err != nil {
		return nil, err
	}

	q, err := quantities(in)
	if err != nil {
		return nil, err
	}

	result := &dto.MaterialResult{
		VolumeM3:  q.VolumeM3,
		VolumeYd3: q.VolumeYd3,
		AreaM2:    q.AreaM2,
		AreaSqFt:  q.AreaSqFt,
		Tonnage:   q.Tonnage,
		Pounds:    q.Pounds,
		Display: dto.MaterialDisplay{
			Volume:   valueobject.FormatNumber(q.VolumeYd3, 2) + " yd³",
			VolumeM3: valueobject.FormatNumber(q.VolumeM3, 2) + " m³",
			Weight:   valueobject.FormatNumber(q.Tonnage, 2) + " tons",
			Pounds:   valueobject.FormatNumber(q.Pounds, 0) + " lbs",
			Area:     valueobject.FormatNumber(q.AreaSqFt, 2) + " ft²",
			AreaM2:   valueobject.FormatNumber(q.AreaM2, 2) + " m²",
		},
	}

	s.logger.WithContext(ctx).Debug("Material estimate computed",
		"dimensions", in.Dimensions.String(),
		"density", in.Density,
		"tonnage", q.Tonnage,
	)

	if req.Save {
		id, err := s.save(ctx, entity.CalculationKindMaterial,
			entity.CalculationInputs{Dimensions: in.Dimensions, Density: in.Density}, q)
		if err != nil {
			return nil, err
		}
		result.CalculationID = id
	}
	return result, nil
}

// EstimateCost prices a paving job.
//
// Parameters:
//   - ctx: request context
//   - req: cost estimator form values
//
// Returns:
//   - *dto.CostResult: cost breakdown and formatted amounts
//   - error: *ValidationFailure for bad input, or a storage error when saving fails
func (s *EstimatorService) EstimateCost(ctx context.Context, req dto.CostRequest) (*dto.CostResult, error) {
	in, err := s.sanitizer.Cost(req)
	if err != nil {
		return nil, err
	}

	q, err := quantities(in.MaterialInput)
	if err != nil {
		return nil, err
	}

	costs := calculator.CalculateCost(q.Tonnage, in.PricePerTon,
		calculator.WithLaborRate(in.LaborCostPerSqFt),
		calculator.WithBaseRate(in.BaseCostPerSqFt),
		calculator.WithArea(q.AreaM2),
	)
	if !finite(costs.MaterialCost, costs.LaborCost, costs.BaseCost, costs.TotalCost) {
		return nil, overflow("price_per_ton", "labor_cost_per_sq_ft", "base_cost_per_sq_ft")
	}

	result := &dto.CostResult{
		MaterialCost: costs.MaterialCost,
		LaborCost:    costs.LaborCost,
		BaseCost:     costs.BaseCost,
		TotalCost:    costs.TotalCost,
		Tonnage:      q.Tonnage,
		AreaM2:       q.AreaM2,
		Display: dto.CostDisplay{
			Total:      valueobject.FormatCurrency(costs.TotalCost),
			Material:   valueobject.FormatCurrency(costs.MaterialCost),
			Labor:      valueobject.FormatCurrency(costs.LaborCost),
			Base:       valueobject.FormatCurrency(costs.BaseCost),
			Tonnage:    valueobject.FormatNumber(q.Tonnage, 2) + " tons",
			Disclaimer: CostDisclaimer,
		},
	}
	if q.Tonnage != 0 {
		perTon := costs.TotalCost / q.Tonnage
		if !finite(perTon) {
			return nil, overflow("thickness")
		}
		result.CostPerTon = &perTon
		result.Display.PerTon = valueobject.FormatCurrency(perTon)
	}

	s.logger.WithContext(ctx).Debug("Cost estimate computed",
		"dimensions", in.Dimensions.String(),
		"price_per_ton", in.PricePerTon,
		"total_cost", costs.TotalCost,
	)

	if req.Save {
		q.Cost = &costs
		id, err := s.save(ctx, entity.CalculationKindCost, entity.CalculationInputs{
			Dimensions:       in.Dimensions,
			Density:          in.Density,
			PricePerTon:      in.PricePerTon,
			LaborCostPerSqFt: in.LaborCostPerSqFt,
			BaseCostPerSqFt:  in.BaseCostPerSqFt,
		}, q)
		if err != nil {
			return nil, err
		}
		result.CalculationID = id
	}
	return result, nil
}

// GetCalculation returns a saved calculation.
//
// Parameters:
//   - ctx: request context
//   - id: calculation UUID
//
// Returns:
//   - *dto.CalculationResponse: the saved calculation
//   - error: *ValidationFailure for a malformed id, repository.ErrCalculationNotFound, or ErrStorageDisabled
func (s *EstimatorService) GetCalculation(ctx context.Context, id string) (*dto.CalculationResponse, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	calc, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("getting calculation %s: %w", uid, err)
	}
	resp := dto.NewCalculationResponse(calc)
	return &resp, nil
}

// ListCalculations pages through saved calculations, newest first.
//
// Parameters:
//   - ctx: request context
//   - kind: "material", "cost", or empty for both
//   - limit: page size (0 selects DefaultPageSize, capped at MaxPageSize)
//   - offset: starting position
//
// Returns:
//   - dto.PaginateResponse[dto.CalculationResponse]: the page
//   - error: *ValidationFailure for bad paging or kind, or a storage error
func (s *EstimatorService) ListCalculations(ctx context.Context, kind string, limit, offset int) (dto.PaginateResponse[dto.CalculationResponse], error) {
	var empty dto.PaginateResponse[dto.CalculationResponse]
	if s.repo == nil {
		return empty, ErrStorageDisabled
	}

	var errs []dto.ValidationError
	filter := repository.CalculationFilter{Offset: offset}
	if kind != "" {
		k := entity.CalculationKind(kind)
		if !k.IsValid() {
			errs = append(errs, dto.ValidationError{Field: "kind", Message: "must be material or cost", Value: kind})
		}
		filter.Kind = &k
	}
	switch {
	case limit < 0:
		errs = append(errs, dto.ValidationError{Field: "limit", Message: "must not be negative", Value: limit})
	case limit == 0:
		filter.Limit = DefaultPageSize
	case limit > MaxPageSize:
		filter.Limit = MaxPageSize
	default:
		filter.Limit = limit
	}
	if offset < 0 {
		errs = append(errs, dto.ValidationError{Field: "offset", Message: "must not be negative", Value: offset})
	}
	if len(errs) > 0 {
		return empty, &ValidationFailure{Errors: errs}
	}

	calcs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return empty, fmt.Errorf("listing calculations: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return empty, fmt.Errorf("counting calculations: %w", err)
	}

	items := make([]dto.CalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		items = append(items, dto.NewCalculationResponse(c))
	}
	return dto.NewPaginateResponse(items, total, filter.Limit, offset), nil
}

// DeleteCalculation removes a saved calculation.
//
// Parameters:
//   - ctx: request context
//   - id: calculation UUID
//
// Returns:
//   - error: *ValidationFailure for a malformed id, repository.ErrCalculationNotFound, or ErrStorageDisabled
func (s *EstimatorService) DeleteCalculation(ctx context.Context, id string) error {
	if s.repo == nil {
		return ErrStorageDisabled
	}
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return fmt.Errorf("deleting calculation %s: %w", uid, err)
	}
	s.logger.WithContext(ctx).Info("Calculation deleted", "calculation_id", uid.String())
	return nil
}

// Reference returns the units, density presets and thickness guidance the forms offer.
func (s *EstimatorService) Reference() dto.ReferenceResponse {
	units := valueobject.LengthUnits()
	resp := dto.ReferenceResponse{
		Units:     make([]dto.UnitInfo, 0, len(units)),
		Densities: make([]dto.DensityInfo, 0, 3),
		Thickness: valueobject.ThicknessRecommendations(),
	}
	for _, u := range units {
		factor, _ := u.ToMeters()
		resp.Units = append(resp.Units, dto.UnitInfo{Symbol: string(u), Name: u.Name(), ToMeters: factor})
	}
	for _, p := range valueobject.DensityPresets() {
		d, _ := p.KgPerCubicMeter()
		resp.Densities = append(resp.Densities, dto.DensityInfo{Preset: string(p), Label: p.Label(), KgPerCubicMeter: d})
	}
	return resp
}

// Ping checks the calculation store. It succeeds when storage is disabled.
func (s *EstimatorService) Ping(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}

func (s *EstimatorService) save(ctx context.Context, kind entity.CalculationKind, inputs entity.CalculationInputs, results entity.CalculationResults) (string, error) {
	if s.repo == nil {
		return "", ErrStorageDisabled
	}

	calc, err := entity.NewCalculation(kind, inputs, results)
	if err != nil {
		return "", err
	}
	calc.CreatedAt = s.clock.Now()

	if err := s.repo.Create(ctx, calc); err != nil {
		s.logger.WithContext(ctx).Error("Failed to save calculation", "kind", string(kind), "error", err)
		return "", fmt.Errorf("saving calculation: %w", err)
	}

	s.logger.WithContext(ctx).Info("Calculation saved", "calculation_id", calc.ID.String(), "kind", string(kind))
	return calc.ID.String(), nil
}

// quantities runs the engine for sanitized inputs.
func quantities(in MaterialInput) (entity.CalculationResults, error) {
	d := in.Dimensions
	volume, err := calculator.CalculateVolume(d.Length, d.Width, d.Thickness, d.Unit)
	if err != nil {
		return entity.CalculationResults{}, err
	}
	area, err := calculator.CalculateArea(d.Length, d.Width, d.Unit)
	if err != nil {
		return entity.CalculationResults{}, err
	}
	tonnage := calculator.CalculateTonnage(volume, in.Density)

	results := entity.CalculationResults{
		VolumeM3:  volume,
		VolumeYd3: calculator.CubicMetersToYards(volume),
		AreaM2:    area,
		AreaSqFt:  calculator.SquareMetersToFeet(area),
		Tonnage:   tonnage,
		Pounds:    calculator.TonsToPounds(tonnage),
	}
	if !finite(results.VolumeM3, results.VolumeYd3, results.AreaM2, results.AreaSqFt, results.Tonnage, results.Pounds) {
		return entity.CalculationResults{}, overflow("length", "width", "thickness")
	}
	return results, nil
}

// finite reports whether none of the values overflowed float64.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func overflow(fields ...string) *ValidationFailure {
	errs := make([]dto.ValidationError, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, dto.ValidationError{Field: f, Message: "result is too large"})
	}
	return &ValidationFailure{Errors: errs}
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, &ValidationFailure{Errors: []dto.ValidationError{
			{Field: "id", Message: "must be a valid UUID", Value: id},
		}}
	}
	return uid, nil
}

// IsNotFound reports whether err means a saved calculation does not exist.
func IsNotFound(err error) bool {
	return repository.IsNotFoundError(err)
}

// IsStorageDisabled reports whether err means storage is not configured.
func IsStorageDisabled(err error) bool {
	return errors.Is(err, ErrStorageDisabled)
}
