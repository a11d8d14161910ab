package core

import (
	"github.com/huangsam/gpugrade/schema"
)

// Score computes the composite score of a normalized row: the configured scale times
// the weighted sum of normalized values, iterated in configuration order. The
// per-attribute weighted terms are kept unscaled in the Breakdown.
// An attribute missing from nrow.Normalized contributes nothing.
// Build the Configuration with WithScale(1) to get the plain weighted sum.
func Score(cfg *Configuration, nrow schema.NormalizedRow) schema.ScoredRow {
	breakdown := make(map[string]float64, len(cfg.attributes))
	var raw float64
	for _, a := range cfg.attributes {
		term := nrow.Normalized[a.spec.Name] * a.weight
		breakdown[a.spec.Name] = term
		raw += term
	}
	score := raw * cfg.scale
	return schema.ScoredRow{
		NormalizedRow: nrow,
		Breakdown:     breakdown,
		Score:         score,
		Grade:         ScoreToGrade(score),
	}
}

// ScoreToGrade maps a composite score to a letter grade. Thresholds are inclusive
// lower bounds checked from A downwards; anything below D, including NaN, is F.
func ScoreToGrade(score float64) schema.Grade {
	for _, t := range schema.GradeThresholds {
		if score >= t.MinScore {
			return t.Grade
		}
	}
	return schema.GradeF
}

// ScoreRow normalizes and scores a single row.
func ScoreRow(cfg *Configuration, row schema.Row) (schema.ScoredRow, error) {
	nrow, err := Normalize(cfg, row)
	if err != nil {
		return schema.ScoredRow{}, err
	}
	return Score(cfg, nrow), nil
}
