package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/internal/history"
	"github.com/huangsam/gpugrade/internal/loader"
	"github.com/huangsam/gpugrade/internal/outwriter"
	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		DatasetPath:   "offers.csv",
		Workers:       2,
		BoundsPolicy:  schema.StrictBounds,
		FailurePolicy: schema.SkipFailures,
		Normalization: schema.StaticNormalization,
		Scale:         DefaultScale,
		MinGrade:      schema.GradeC,
		Attributes:    schema.DefaultAttributes(),
		Weights:       schema.DefaultWeights(),
	}
}

func cheapRow(id string) schema.Row {
	row := sampleRow(id)
	row.Values[schema.AttrVRAM] = 40
	row.Values[schema.AttrRAM] = 90
	row.Values[schema.AttrVCPUs] = 8
	row.Values[schema.AttrInternalStorage] = 0
	row.Values[schema.AttrPriceOnDemand] = 3.36
	return row
}

func nvlinkRow(id string) schema.Row {
	row := sampleRow(id)
	row.Values[schema.AttrFormFactor] = "NVLink"
	return row
}

func newMockExecutor(rows []schema.Row, loadErr error) (*Executor, *loader.MockRowLoader, *outwriter.MockResultWriter) {
	l := &loader.MockRowLoader{}
	l.On("Load", mock.Anything, "offers.csv").Return(rows, loadErr)
	w := &outwriter.MockResultWriter{}
	return &Executor{Loader: l, Writer: w}, l, w
}

func TestExecuteScore(t *testing.T) {
	cfg := testConfig()
	e, l, w := newMockExecutor([]schema.Row{sampleRow("a"), nvlinkRow("b")}, nil)
	w.On("WriteScores", mock.MatchedBy(func(r schema.RunResult) bool {
		return len(r.Scored) == 1 && len(r.Failures) == 1 && r.Scored[0].Grade == schema.GradeC
	}), cfg, mock.Anything).Return(nil)

	require.NoError(t, ExecuteScore(context.Background(), cfg, e))
	l.AssertExpectations(t)
	w.AssertExpectations(t)
}

func TestExecuteScoreRecordsHistory(t *testing.T) {
	cfg := testConfig()
	e, _, w := newMockExecutor([]schema.Row{sampleRow("a"), nvlinkRow("b")}, nil)
	w.On("WriteScores", mock.Anything, cfg, mock.Anything).Return(nil)

	h := &history.MockHistoryStore{}
	h.On("BeginRun", mock.Anything, mock.MatchedBy(func(p map[string]any) bool {
		return p["dataset"] == "offers.csv" && p["bounds"] == schema.StrictBounds
	})).Return(int64(7), nil)
	h.On("RecordScoredRows", int64(7), schema.StaticNormalization, mock.MatchedBy(func(rows []schema.ScoredRow) bool {
		return len(rows) == 1 && rows[0].Row.ID == "a"
	})).Return(nil)
	h.On("EndRun", int64(7), mock.Anything, 1, 1).Return(nil)
	e.History = h

	require.NoError(t, ExecuteScore(context.Background(), cfg, e))
	h.AssertExpectations(t)
}

func TestExecuteScoreHistoryFailureIsNotFatal(t *testing.T) {
	cfg := testConfig()
	e, _, w := newMockExecutor([]schema.Row{sampleRow("a")}, nil)
	w.On("WriteScores", mock.Anything, cfg, mock.Anything).Return(nil)

	h := &history.MockHistoryStore{}
	h.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full"))
	e.History = h

	require.NoError(t, ExecuteScore(context.Background(), cfg, e))
	h.AssertNotCalled(t, "RecordScoredRows", mock.Anything, mock.Anything, mock.Anything)
	h.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteScoreLoaderError(t *testing.T) {
	cfg := testConfig()
	loadErr := &loader.Error{Source: "offers.csv", Err: loader.ErrMissingColumn}
	e, _, w := newMockExecutor(nil, loadErr)

	err := ExecuteScore(context.Background(), cfg, e)
	require.Error(t, err)
	var le *loader.Error
	assert.True(t, errors.As(err, &le))
	w.AssertNotCalled(t, "WriteScores", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteScoreInvalidConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Weights[schema.AttrVRAM+"_typo"] = 0.1
	e, l, _ := newMockExecutor(nil, nil)

	err := ExecuteScore(context.Background(), cfg, e)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, ErrUnknownWeight)
	l.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestExecuteScoreAbort(t *testing.T) {
	cfg := testConfig()
	cfg.FailurePolicy = schema.AbortFailures
	e, _, w := newMockExecutor([]schema.Row{sampleRow("a"), nvlinkRow("b")}, nil)

	err := ExecuteScore(context.Background(), cfg, e)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	w.AssertNotCalled(t, "WriteScores", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteScoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, _, _ := newMockExecutor([]schema.Row{sampleRow("a")}, nil)

	err := ExecuteScore(ctx, testConfig(), e)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBatchNormalization(t *testing.T) {
	cfg := testConfig()
	cfg.Normalization = schema.BatchNormalization
	e, _, _ := newMockExecutor([]schema.Row{sampleRow("a"), cheapRow("b")}, nil)

	result, err := e.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, schema.BatchNormalization, result.Mode)
	require.Len(t, result.Scored, 2)
	assert.InDelta(t, 100.0, result.Scored[0].Score, 1e-9)
	assert.Equal(t, schema.GradeA, result.Scored[0].Grade)
	assert.InDelta(t, 10.0, result.Scored[1].Score, 1e-9)
	assert.Equal(t, schema.GradeF, result.Scored[1].Grade)
}

func TestRunWritesMetricsFile(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "gpugrade.prom")
	e, _, _ := newMockExecutor([]schema.Row{sampleRow("a")}, nil)

	_, err := e.Run(context.Background(), cfg)
	require.NoError(t, err)
	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gpugrade_rows_scored_total 1")
}

func TestBuildCheckResult(t *testing.T) {
	scored := func(id string, score float64) schema.ScoredRow {
		return schema.ScoredRow{NormalizedRow: schema.NormalizedRow{Row: schema.Row{ID: id}}, Score: score, Grade: ScoreToGrade(score)}
	}
	tests := []struct {
		name       string
		result     schema.RunResult
		minGrade   schema.Grade
		passed     bool
		violations int
	}{
		{"all pass", schema.RunResult{Scored: []schema.ScoredRow{scored("a", 95), scored("b", 70)}}, schema.GradeC, true, 0},
		{"boundary grade passes", schema.RunResult{Scored: []schema.ScoredRow{scored("a", 80)}}, schema.GradeB, true, 0},
		{"below gate", schema.RunResult{Scored: []schema.ScoredRow{scored("a", 95), scored("b", 69.9)}}, schema.GradeC, false, 1},
		{"min F never violates", schema.RunResult{Scored: []schema.ScoredRow{scored("a", 0)}}, schema.GradeF, true, 0},
		{"invalid rows fail", schema.RunResult{
			Scored:   []schema.ScoredRow{scored("a", 95)},
			Failures: []schema.RowFailure{{Index: 1, RowID: "b", Err: errors.New("bad")}},
		}, schema.GradeC, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := BuildCheckResult(tt.result, tt.minGrade)
			assert.Equal(t, tt.passed, check.Passed)
			assert.Len(t, check.Violations, tt.violations)
			assert.Equal(t, tt.result.Total(), check.TotalRows)
			assert.Equal(t, tt.minGrade, check.MinGrade)
		})
	}
}

func TestExecuteCheck(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		cfg := testConfig()
		e, _, w := newMockExecutor([]schema.Row{sampleRow("a")}, nil)
		w.On("WriteCheck", mock.MatchedBy(func(c *schema.CheckResult) bool { return c.Passed }), cfg, mock.Anything).Return(nil)
		require.NoError(t, ExecuteCheck(context.Background(), cfg, e))
		w.AssertExpectations(t)
	})

	t.Run("fails", func(t *testing.T) {
		cfg := testConfig()
		cfg.MinGrade = schema.GradeB
		e, _, w := newMockExecutor([]schema.Row{sampleRow("a"), nvlinkRow("b")}, nil)
		w.On("WriteCheck", mock.MatchedBy(func(c *schema.CheckResult) bool {
			return !c.Passed && len(c.Violations) == 1 && len(c.Failures) == 1
		}), cfg, mock.Anything).Return(nil)

		err := ExecuteCheck(context.Background(), cfg, e)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Contains(t, err.Error(), "1 row(s) below grade B")
	})
}

func TestBuildAttributesRenderModel(t *testing.T) {
	model := BuildAttributesRenderModel(mustDefault(t))

	require.Len(t, model.Attributes, 6)
	assert.Equal(t, schema.StaticNormalization, model.Mode)
	assert.Equal(t, schema.StrictBounds, model.BoundsPolicy)
	assert.InDelta(t, 0, model.ScoreMin, 1e-9)
	assert.InDelta(t, 100, model.ScoreMax, 1e-9)
	assert.Len(t, model.Grades, 4)

	domains := make(map[string]string)
	for _, a := range model.Attributes {
		domains[a.Name] = a.Domain
	}
	assert.Equal(t, "PCIe < SXM", domains[schema.AttrFormFactor])
	assert.Equal(t, "[40, 80]", domains[schema.AttrVRAM])
	assert.Equal(t, "[1.1, 3.36] lower is better", domains[schema.AttrPriceOnDemand])
	assert.Equal(t, 0.25, model.Attributes[5].Weight)
}

func TestExecuteAttributes(t *testing.T) {
	cfg := testConfig()
	e, _, w := newMockExecutor(nil, nil)
	w.On("WriteAttributes", mock.MatchedBy(func(m *schema.AttributesRenderModel) bool {
		return len(m.Attributes) == 6
	}), cfg).Return(nil)

	require.NoError(t, ExecuteAttributes(cfg, e))
	w.AssertExpectations(t)
}

func TestNewExecutor(t *testing.T) {
	e := NewExecutor(testConfig(), nil)
	assert.IsType(t, &loader.Loader{}, e.Loader)
	assert.IsType(t, &outwriter.OutWriter{}, e.Writer)
	assert.Nil(t, e.History)
}
