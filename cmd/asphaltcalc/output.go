package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"

	"github.com/hapkiduki/asphalt-go/internal/application/dto"
	"github.com/hapkiduki/asphalt-go/internal/domain/valueobject"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutput(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q: want table, json or yaml", s)
}

// write renders v as JSON or YAML, or rows as an aligned two-column table.
func write(w io.Writer, format string, v any, rows [][2]string) error {
	f, err := parseOutput(format)
	if err != nil {
		return err
	}

	switch f {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func materialRows(r *dto.MaterialResult) [][2]string {
	return [][2]string{
		{"Volume", r.Display.Volume + " (" + r.Display.VolumeM3 + ")"},
		{"Area", r.Display.Area + " (" + r.Display.AreaM2 + ")"},
		{"Weight", r.Display.Weight + " (" + r.Display.Pounds + ")"},
	}
}

func costRows(r *dto.CostResult) [][2]string {
	rows := [][2]string{
		{"Asphalt", r.Display.Tonnage},
		{"Material", r.Display.Material},
		{"Labor", r.Display.Labor},
		{"Base preparation", r.Display.Base},
		{"Total", r.Display.Total},
	}
	if r.Display.PerTon != "" {
		rows = append(rows, [2]string{"Per ton installed", r.Display.PerTon})
	}
	return append(rows, [2]string{"", r.Display.Disclaimer})
}

func referenceRows(ref dto.ReferenceResponse) [][2]string {
	var rows [][2]string
	for _, u := range ref.Units {
		rows = append(rows, [2]string{"unit " + u.Symbol, fmt.Sprintf("%s, %s m", u.Name, valueobject.FormatNumber(u.ToMeters, 4))})
	}
	for _, d := range ref.Densities {
		rows = append(rows, [2]string{"density " + d.Preset, fmt.Sprintf("%s, %s kg/m³", d.Label, valueobject.FormatNumber(d.KgPerCubicMeter, 0))})
	}
	for _, t := range ref.Thickness {
		rows = append(rows, [2]string{
			"thickness " + t.Category + "/" + t.Application,
			fmt.Sprintf("%g-%g in, %g in recommended", t.Inches.Min, t.Inches.Max, t.Inches.Recommended),
		})
	}
	return rows
}
