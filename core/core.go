// Package core normalizes hardware configurations and scores them into letter grades.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/internal/loader"
	"github.com/huangsam/gpugrade/internal/metrics"
	"github.com/huangsam/gpugrade/internal/outwriter"
	"github.com/huangsam/gpugrade/schema"
	"go.uber.org/zap"
)

// ErrCheckFailed is returned by ExecuteCheck when the grade gate does not pass.
var ErrCheckFailed = errors.New("grade check failed")

// Executor holds the collaborators a command needs. Any of them can be swapped in tests.
type Executor struct {
	Loader  contract.RowLoader
	Writer  contract.ResultWriter
	History contract.HistoryStore // nil disables run tracking
}

// NewExecutor wires the file loader and the standard output writer for cfg.
func NewExecutor(cfg *contract.Config, history contract.HistoryStore) *Executor {
	required := make([]string, len(cfg.Attributes))
	for i, spec := range cfg.Attributes {
		required[i] = spec.Name
	}
	return &Executor{
		Loader: loader.New(loader.Options{
			Format:   cfg.Format,
			IDColumn: cfg.IDColumn,
			Sheet:    cfg.Sheet,
			Required: required,
		}),
		Writer:  outwriter.NewOutWriter(),
		History: history,
	}
}

// ConfigurationFrom builds the scoring Configuration described by a validated Config.
func ConfigurationFrom(cfg *contract.Config) (*Configuration, error) {
	return NewConfiguration(cfg.Attributes, cfg.Weights,
		WithBoundsPolicy(cfg.BoundsPolicy),
		WithScale(cfg.Scale),
	)
}

// Run loads the dataset and scores every row. In batch mode the numeric bounds
// are derived from the loaded rows before scoring.
func (e *Executor) Run(ctx context.Context, cfg *contract.Config) (schema.RunResult, error) {
	start := time.Now()
	log := contract.Logger()

	conf, err := ConfigurationFrom(cfg)
	if err != nil {
		return schema.RunResult{}, err
	}

	rows, err := e.Loader.Load(ctx, cfg.DatasetPath)
	if err != nil {
		return schema.RunResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.RunResult{}, err
	}

	if cfg.Normalization == schema.BatchNormalization {
		if conf, err = WithBatchBounds(conf, rows); err != nil {
			return schema.RunResult{}, fmt.Errorf("deriving batch bounds: %w", err)
		}
		log.Debug("batch bounds derived", zap.Int("rows", len(rows)))
	}

	runID := e.beginRun(start, cfg)
	result, err := ScoreRows(conf, rows, RunOptions{Policy: cfg.FailurePolicy, Workers: cfg.Workers})
	if err != nil {
		return schema.RunResult{}, err
	}
	duration := time.Since(start)
	e.endRun(runID, result)

	log.Info("scoring run finished",
		zap.String("dataset", cfg.DatasetPath),
		zap.String("mode", string(result.Mode)),
		zap.Int("scored", len(result.Scored)),
		zap.Int("failed", len(result.Failures)),
		zap.Duration("duration", duration))
	for _, f := range result.Failures {
		log.Debug("row skipped", zap.Int("index", f.Index), zap.String("row", f.RowID), zap.Error(f.Err))
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteRunTextfile(cfg.MetricsFile, result, duration); err != nil {
			return result, err
		}
	}
	return result, nil
}

// beginRun records the start of a run. History failures never fail scoring.
func (e *Executor) beginRun(start time.Time, cfg *contract.Config) int64 {
	if e.History == nil {
		return 0
	}
	runID, err := e.History.BeginRun(start, map[string]any{
		"dataset":       cfg.DatasetPath,
		"bounds":        cfg.BoundsPolicy,
		"on_error":      cfg.FailurePolicy,
		"normalization": cfg.Normalization,
		"scale":         cfg.Scale,
		"weights":       cfg.Weights,
	})
	if err != nil {
		contract.LogWarn("Failed to record run start", err)
		return 0
	}
	return runID
}

func (e *Executor) endRun(runID int64, result schema.RunResult) {
	if e.History == nil || runID == 0 {
		return
	}
	if err := e.History.RecordScoredRows(runID, result.Mode, result.Scored); err != nil {
		contract.LogWarn("Failed to record scored rows", err)
	}
	if err := e.History.EndRun(runID, time.Now(), len(result.Scored), len(result.Failures)); err != nil {
		contract.LogWarn("Failed to record run end", err)
	}
}

// ExecuteScore scores the dataset and writes the ranked results.
func ExecuteScore(ctx context.Context, cfg *contract.Config, e *Executor) error {
	start := time.Now()
	result, err := e.Run(ctx, cfg)
	if err != nil {
		return err
	}
	return e.Writer.WriteScores(result, cfg, time.Since(start))
}

// BuildCheckResult applies the minimum grade gate to a run result.
// Rows that failed validation also fail the gate.
func BuildCheckResult(result schema.RunResult, minGrade schema.Grade) *schema.CheckResult {
	check := &schema.CheckResult{
		MinGrade:  minGrade,
		TotalRows: result.Total(),
		Failures:  result.Failures,
		Counts:    result.GradeCounts(),
	}
	for _, s := range result.Scored {
		if !s.Grade.AtLeast(minGrade) {
			check.Violations = append(check.Violations, schema.CheckViolation{RowID: s.Row.ID, Score: s.Score, Grade: s.Grade})
		}
	}
	check.Passed = len(check.Violations) == 0 && len(check.Failures) == 0
	return check
}

// ExecuteCheck scores the dataset and fails with ErrCheckFailed when any row
// grades below cfg.MinGrade or cannot be scored.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, e *Executor) error {
	start := time.Now()
	result, err := e.Run(ctx, cfg)
	if err != nil {
		return err
	}
	check := BuildCheckResult(result, cfg.MinGrade)
	if err := e.Writer.WriteCheck(check, cfg, time.Since(start)); err != nil {
		return err
	}
	if !check.Passed {
		return fmt.Errorf("%w: %d row(s) below grade %s, %d row(s) invalid",
			ErrCheckFailed, len(check.Violations), cfg.MinGrade, len(check.Failures))
	}
	return nil
}

// BuildAttributesRenderModel describes the active configuration for display.
func BuildAttributesRenderModel(conf *Configuration) *schema.AttributesRenderModel {
	lo, hi := conf.ScoreRange()
	model := &schema.AttributesRenderModel{
		Title:        "Active scoring configuration",
		Description:  "Each attribute is normalized to [0,1] where higher is better, weighted and summed.",
		Mode:         conf.Mode(),
		BoundsPolicy: conf.BoundsPolicy(),
		Scale:        conf.Scale(),
		Formula:      conf.Formula(),
		ScoreMin:     lo,
		ScoreMax:     hi,
		Grades:       schema.GradeThresholds,
	}
	weights := conf.Weights()
	for _, spec := range conf.Attributes() {
		model.Attributes = append(model.Attributes, schema.AttributeDescription{
			AttributeSpec: spec,
			Weight:        weights[spec.Name],
			Domain:        describeDomain(spec),
		})
	}
	return model
}

func describeDomain(spec schema.AttributeSpec) string {
	switch spec.Kind {
	case schema.CategoricalKind:
		return strings.Join(spec.Categories, " < ")
	case schema.InvertedNumericKind:
		return fmt.Sprintf("[%g, %g] lower is better", spec.Min, spec.Max)
	default:
		return fmt.Sprintf("[%g, %g]", spec.Min, spec.Max)
	}
}

// ExecuteAttributes writes the active configuration.
func ExecuteAttributes(cfg *contract.Config, e *Executor) error {
	conf, err := ConfigurationFrom(cfg)
	if err != nil {
		return err
	}
	return e.Writer.WriteAttributes(BuildAttributesRenderModel(conf), cfg)
}
