package schema

// CheckResult holds the results of a grade gate over one dataset.
type CheckResult struct {
	Passed     bool             `json:"passed"`
	MinGrade   Grade            `json:"min_grade"`
	TotalRows  int              `json:"total_rows"`
	Violations []CheckViolation `json:"violations"`
	Failures   []RowFailure     `json:"failures"`
	Counts     map[Grade]int    `json:"counts"`
}

// CheckViolation represents a scored row whose grade is below the gate.
type CheckViolation struct {
	RowID string  `json:"row_id"`
	Score float64 `json:"score"`
	Grade Grade   `json:"grade"`
}
