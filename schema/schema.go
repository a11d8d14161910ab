// Package schema has the models and constants shared by every part of gpugrade.
package schema

// AttributeSpec describes one hardware attribute and how it is normalized.
// Min and Max apply to numeric kinds; Categories applies to the categorical kind
// and lists category values from worst to best.
type AttributeSpec struct {
	Name       string        `json:"name" yaml:"name"`
	Kind       AttributeKind `json:"kind" yaml:"kind"`
	Min        float64       `json:"min,omitempty" yaml:"min,omitempty"`
	Max        float64       `json:"max,omitempty" yaml:"max,omitempty"`
	Categories []string      `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Row is one hardware configuration as supplied by a loader.
// Values maps attribute names to raw values (string, int or float).
type Row struct {
	ID     string         `json:"id"`
	Values map[string]any `json:"values"`
}

// NormalizedRow is a Row plus one normalized value per configured attribute.
type NormalizedRow struct {
	Row
	Normalized map[string]float64 `json:"normalized"`
}

// ScoredRow is a NormalizedRow plus its weighted breakdown, composite score and grade.
type ScoredRow struct {
	NormalizedRow
	Breakdown map[string]float64 `json:"breakdown"` // weight * normalized, per attribute
	Score     float64            `json:"score"`
	Grade     Grade              `json:"grade"`
}

// RowFailure reports a row that could not be scored.
type RowFailure struct {
	Index int    `json:"index"` // zero-based position in the input batch
	RowID string `json:"row_id"`
	Err   error  `json:"-"`
}

// Message returns the failure text, or an empty string when there is no error.
func (f RowFailure) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// RunResult is the outcome of one scoring pass.
// Scored preserves input order; every input row is either in Scored or Failures.
type RunResult struct {
	Mode     NormalizationMode `json:"mode"`
	Scored   []ScoredRow       `json:"scored"`
	Failures []RowFailure      `json:"failures"`
}

// Total returns the number of input rows covered by the result.
func (r RunResult) Total() int {
	return len(r.Scored) + len(r.Failures)
}

// GradeCounts returns the number of scored rows per grade.
func (r RunResult) GradeCounts() map[Grade]int {
	counts := make(map[Grade]int, len(AllGrades))
	for _, g := range AllGrades {
		counts[g] = 0
	}
	for _, s := range r.Scored {
		counts[s.Grade]++
	}
	return counts
}
