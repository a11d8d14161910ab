package schema

import "sort"

// GradeThreshold is the inclusive lower bound of a grade.
type GradeThreshold struct {
	Grade    Grade   `json:"grade"`
	MinScore float64 `json:"min_score"`
}

// GradeThresholds lists the grade table evaluated top-down; F is the fallback.
var GradeThresholds = []GradeThreshold{
	{Grade: GradeA, MinScore: 90},
	{Grade: GradeB, MinScore: 80},
	{Grade: GradeC, MinScore: 70},
	{Grade: GradeD, MinScore: 60},
}

// EnrichedScoredRow adds presentation data to a ScoredRow.
type EnrichedScoredRow struct {
	Rank int `json:"rank"`
	ScoredRow
}

// RankScoredRows orders rows by descending score, keeping input order for ties,
// and returns at most limit entries. A limit <= 0 keeps every row.
func RankScoredRows(rows []ScoredRow, limit int) []EnrichedScoredRow {
	sorted := make([]ScoredRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	output := make([]EnrichedScoredRow, len(sorted))
	for i, r := range sorted {
		output[i] = EnrichedScoredRow{Rank: i + 1, ScoredRow: r}
	}
	return output
}
