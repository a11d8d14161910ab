package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/internal/parquet"
	"github.com/huangsam/gpugrade/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs a scoring run, dispatching based on the output format configured.
func WriteScoreResults(result schema.RunResult, cfg *contract.Config, duration time.Duration) error {
	ranked := schema.RankScoredRows(result.Scored, cfg.ResultLimit)
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONScores(w, result, ranked)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVScores(w, ranked, cfg, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows, err := parquet.ConvertRankedRows(ranked, result.Mode)
		if err != nil {
			return err
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRankedRows(w, rows)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(w, result, ranked, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeScoreTable generates and writes the human-readable table followed by any skipped rows.
func writeScoreTable(w io.Writer, result schema.RunResult, ranked []schema.EnrichedScoredRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	names := attributeNames(cfg)

	headers := []string{"Rank", "ID", "Score", "Grade"}
	if cfg.Detail {
		headers = append(headers, names...)
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	data := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.ID, idWidth),
			fmtFloat(r.Score),
			gradeLabel(r.Grade, cfg),
		}
		if cfg.Detail {
			for _, name := range names {
				row = append(row, fmtFloat(r.Normalized[name])) // normalized, not weighted
			}
		}
		if cfg.Explain {
			row = append(row, formatTopContributors(r.Breakdown))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.Failures) > 0 {
		if err := writeFailureTable(w, result.Failures); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d scored rows (%d skipped). Grades: %s\n",
		len(ranked), len(result.Scored), len(result.Failures), formatGradeCounts(result.GradeCounts())); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Scored in %v with %d workers. Normalization: %s, bounds: %s\n",
		duration, cfg.Workers, result.Mode, cfg.BoundsPolicy)
	return err
}

// writeFailureTable lists rows that were skipped because they failed validation.
func writeFailureTable(w io.Writer, failures []schema.RowFailure) error {
	if _, err := fmt.Fprintln(w, "Skipped rows:"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Index", "ID", "Reason"})
	data := make([][]string, len(failures))
	for i, f := range failures {
		data[i] = []string{strconv.Itoa(f.Index), f.RowID, f.Message()}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVScores writes ranked rows with one normalized column per attribute.
func writeCSVScores(w io.Writer, ranked []schema.EnrichedScoredRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	names := attributeNames(cfg)
	header := []string{"rank", "id", "score", "grade"}
	for _, name := range names {
		header = append(header, "norm_"+name)
	}
	header = append(header, "top_contributors")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range ranked {
			rec := []string{strconv.Itoa(r.Rank), r.ID, fmtFloat(r.Score), string(r.Grade)}
			for _, name := range names {
				rec = append(rec, fmtFloat(r.Normalized[name]))
			}
			rec = append(rec, formatTopContributors(r.Breakdown))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// jsonFailure is a RowFailure with its error rendered.
type jsonFailure struct {
	schema.RowFailure
	Error string `json:"error"`
}

// writeJSONScores writes the ranked rows, failures and grade counts as one document.
func writeJSONScores(w io.Writer, result schema.RunResult, ranked []schema.EnrichedScoredRow) error {
	failures := make([]jsonFailure, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = jsonFailure{RowFailure: f, Error: f.Message()}
	}
	return writeJSON(w, struct {
		Mode        schema.NormalizationMode   `json:"mode"`
		Rows        []schema.EnrichedScoredRow `json:"rows"`
		Failures    []jsonFailure              `json:"failures"`
		GradeCounts map[schema.Grade]int       `json:"grade_counts"`
	}{
		Mode:        result.Mode,
		Rows:        ranked,
		Failures:    failures,
		GradeCounts: result.GradeCounts(),
	})
}
