// Package main is the entry point for the asphaltcalc CLI.
// It runs the same sanitizer and calculators as the HTTP API, without storage.
//
// Usage:
//
//	asphaltcalc material --length 20 --width 10 --thickness 0.25 --unit ft
//	asphaltcalc cost --length 20 --width 10 --thickness 0.25 --unit ft --price-per-ton 85 -o json
//	asphaltcalc reference -o yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hapkiduki/asphalt-go/internal/application/port"
	"github.com/hapkiduki/asphalt-go/internal/application/service"
	"github.com/hapkiduki/asphalt-go/internal/infrastructure/config"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds what subcommands share once flags are parsed.
type app struct {
	configFile   string
	output       string
	formDefaults bool

	estimator *service.EstimatorService
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "asphaltcalc",
		Short: "Asphalt volume, tonnage and cost calculator",
		Long: `asphaltcalc converts paving dimensions into volume, area and asphalt tonnage,
and estimates material, labor and base preparation costs.

Dimensions may be given in in, ft, yd, cm or m. Density defaults to 2400 kg/m³.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseOutput(a.output); err != nil {
				return err
			}
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./config.yaml, ./configs/config.yaml or /etc/asphalt-go/config.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", string(outputTable), "output format: table, json, yaml")
	root.PersistentFlags().BoolVar(&a.formDefaults, "form-defaults", false, "fill omitted price, rates and density with the calculator form defaults")

	root.AddCommand(
		newMaterialCmd(a),
		newCostCmd(a),
		newReferenceCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads pricing defaults and builds the estimator.
func (a *app) init() error {
	cfg, err := config.LoadFile(a.configFile)
	if err != nil {
		return err
	}

	defaults := cfg.Pricing.Defaults()
	if a.formDefaults {
		defaults.ApplyFormDefaults = true
	}
	a.estimator = service.NewEstimatorService(service.NewSanitizer(defaults), port.NopLogger{})
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of asphaltcalc",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "asphaltcalc %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
