package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
)

// WriteCheckResult prints a grade gate result. JSON output is machine readable;
// every other mode prints a concise summary suitable for CI logs.
func WriteCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCheckText(w, result, cfg, duration)
	}, "Wrote check result")
}

func writeCheckText(w io.Writer, result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	if _, err := fmt.Fprintf(w, "Grade Check Results:\n  Minimum grade: %s\n  Grades:        %s\n\nChecked %d rows in %v\n\n",
		result.MinGrade, formatGradeCounts(result.Counts), result.TotalRows, duration); err != nil {
		return err
	}

	if result.Passed {
		icon := ""
		if cfg.UseEmojis {
			icon = "✅ "
		}
		_, err := fmt.Fprintf(w, "%sAll rows grade %s or better\n", icon, result.MinGrade)
		return err
	}

	icon := ""
	if cfg.UseEmojis {
		icon = "❌ "
	}
	if len(result.Violations) > 0 {
		if _, err := fmt.Fprintf(w, "%sRows below grade %s:\n", icon, result.MinGrade); err != nil {
			return err
		}
		for _, v := range result.Violations {
			if _, err := fmt.Fprintf(w, "  - %s: %s (%s)\n", v.RowID, gradeLabel(v.Grade, cfg), fmtFloat(v.Score)); err != nil {
				return err
			}
		}
	}
	if len(result.Failures) > 0 {
		if _, err := fmt.Fprintf(w, "%sRows failing validation:\n", icon); err != nil {
			return err
		}
		for _, f := range result.Failures {
			if _, err := fmt.Fprintf(w, "  - %s\n", f.Message()); err != nil {
				return err
			}
		}
	}
	return nil
}
