package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
)

// addMaterialFlags registers the dimension and density flags shared by material and cost.
func addMaterialFlags(fs *pflag.FlagSet) {
	fs.Float64("length", 0, "length of the paved area")
	fs.Float64("width", 0, "width of the paved area")
	fs.Float64("thickness", 0, "asphalt layer thickness")
	fs.String("unit", "ft", "unit for all three dimensions: in, ft, yd, cm, m")
	fs.Float64("density", 0, "asphalt density in kg/m³ (overrides --preset)")
	fs.String("preset", "", "density preset: light, standard, heavy")
}

// floatFlag returns nil when the flag was not given, so the sanitizer can
// report it as missing rather than zero.
func floatFlag(fs *pflag.FlagSet, name string) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetFloat64(name)
	if err != nil {
		return nil
	}
	return &v
}

func materialRequest(fs *pflag.FlagSet) dto.MaterialRequest {
	unit, _ := fs.GetString("unit")
	preset, _ := fs.GetString("preset")
	return dto.MaterialRequest{
		Length:        floatFlag(fs, "length"),
		Width:         floatFlag(fs, "width"),
		Thickness:     floatFlag(fs, "thickness"),
		Unit:          unit,
		Density:       floatFlag(fs, "density"),
		DensityPreset: preset,
	}
}

func newMaterialCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Calculate asphalt volume, area and tonnage",
		Example: `  asphaltcalc material --length 20 --width 10 --thickness 0.25 --unit ft
  asphaltcalc material --length 6 --width 3 --thickness 8 --unit cm --preset heavy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.estimator.EstimateMaterial(cmd.Context(), materialRequest(cmd.Flags()))
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, result, materialRows(result))
		},
	}
	addMaterialFlags(cmd.Flags())
	return cmd
}

func newCostCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate material, labor and base preparation cost",
		Example: `  asphaltcalc cost --length 20 --width 10 --thickness 0.25 --unit ft --price-per-ton 85
  asphaltcalc cost --length 20 --width 10 --thickness 0.25 --form-defaults -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			req := dto.CostRequest{
				MaterialRequest:  materialRequest(fs),
				PricePerTon:      floatFlag(fs, "price-per-ton"),
				LaborCostPerSqFt: floatFlag(fs, "labor"),
				BaseCostPerSqFt:  floatFlag(fs, "base"),
			}
			result, err := a.estimator.EstimateCost(cmd.Context(), req)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, result, costRows(result))
		},
	}
	addMaterialFlags(cmd.Flags())
	cmd.Flags().Float64("price-per-ton", 0, "asphalt price in dollars per ton")
	cmd.Flags().Float64("labor", 0, "labor cost in dollars per ft²")
	cmd.Flags().Float64("base", 0, "base preparation cost in dollars per ft²")
	return cmd
}

func newReferenceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "List units, density presets and recommended thicknesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := a.estimator.Reference()
			return write(cmd.OutOrStdout(), a.output, ref, referenceRows(ref))
		},
	}
}
