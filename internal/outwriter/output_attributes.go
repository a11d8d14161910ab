package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteAttributes prints the active attribute set using the configured output format.
func WriteAttributes(model *schema.AttributesRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVAttributes(w, model)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for attributes")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAttributesText(w, model, cfg)
		}, "Wrote text")
	}
}

func writeCSVAttributes(w io.Writer, model *schema.AttributesRenderModel) error {
	return writeCSVWithHeader(w, []string{"name", "kind", "domain", "weight"}, func(cw *csv.Writer) error {
		for _, a := range model.Attributes {
			rec := []string{a.Name, string(a.Kind), a.Domain, fmt.Sprintf("%g", a.Weight)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeAttributesText(w io.Writer, model *schema.AttributesRenderModel, cfg *contract.Config) error {
	title := model.Title
	if cfg.UseEmojis {
		title = "🎮 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, model.Description); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Attribute", "Kind", "Domain", "Weight"})
	data := make([][]string, len(model.Attributes))
	for i, a := range model.Attributes {
		data[i] = []string{a.Name, string(a.Kind), a.Domain, fmt.Sprintf("%.2f", a.Weight)}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	grades := make([]string, len(model.Grades))
	for i, g := range model.Grades {
		grades[i] = fmt.Sprintf("%s >= %g", gradeLabel(g.Grade, cfg), g.MinScore)
	}
	grades = append(grades, gradeLabel(schema.GradeF, cfg)+" otherwise")

	lines := []string{
		"Score:         " + model.Formula,
		"Range:         " + formatRange(model.ScoreMin, model.ScoreMax),
		"Normalization: " + string(model.Mode),
		"Bounds:        " + string(model.BoundsPolicy),
		"Grades:        " + strings.Join(grades, ", "),
	}
	_, err := fmt.Fprintf(w, "\n%s\n", strings.Join(lines, "\n"))
	return err
}

func formatRange(lo, hi float64) string {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return "unbounded (extrapolate)"
	}
	return fmt.Sprintf("[%g, %g]", lo, hi)
}
