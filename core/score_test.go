package core

import (
	"math"
	"testing"

	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScoreToGrade covers the boundaries of the grade table.
func TestScoreToGrade(t *testing.T) {
	tests := []struct {
		score    float64
		expected schema.Grade
	}{
		{100, schema.GradeA},
		{150, schema.GradeA},
		{90, schema.GradeA},
		{89.999, schema.GradeB},
		{80, schema.GradeB},
		{79.99, schema.GradeC},
		{70, schema.GradeC},
		{69.5, schema.GradeD},
		{60, schema.GradeD},
		{59.999, schema.GradeF},
		{0, schema.GradeF},
		{-5, schema.GradeF},
		{math.Inf(-1), schema.GradeF},
		{math.Inf(1), schema.GradeA},
		{math.NaN(), schema.GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreToGrade(tt.score), "score %v", tt.score)
	}
}

func TestScoreToGradeMonotonic(t *testing.T) {
	prev := ScoreToGrade(-10)
	for s := -10.0; s <= 110; s += 0.25 {
		g := ScoreToGrade(s)
		assert.LessOrEqual(t, g.Rank(), prev.Rank(), "grade regressed at %v", s)
		prev = g
	}
}

func TestScore(t *testing.T) {
	cfg := mustDefault(t)
	scored, err := ScoreRow(cfg, sampleRow("lambda-a100"))
	require.NoError(t, err)

	// 0.10 + 0.20 + 0.18/2 + 0.16/2 + 0.11/2 + 0.25
	assert.InDelta(t, 77.5, scored.Score, 1e-9)
	assert.Equal(t, schema.GradeC, scored.Grade)
	assert.InDelta(t, 0.055, scored.Breakdown[schema.AttrInternalStorage], 1e-9)

	var sum float64
	for _, term := range scored.Breakdown {
		sum += term
	}
	assert.InDelta(t, scored.Score, sum*cfg.Scale(), 1e-9)
}

func TestScoreVRAMContribution(t *testing.T) {
	cfg := mustDefault(t, WithScale(1))

	low := sampleRow("low")
	low.Values[schema.AttrVRAM] = 40
	high := sampleRow("high")
	high.Values[schema.AttrVRAM] = 80

	lo, err := ScoreRow(cfg, low)
	require.NoError(t, err)
	hi, err := ScoreRow(cfg, high)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, lo.Breakdown[schema.AttrVRAM], 1e-12)
	assert.InDelta(t, 0.20, hi.Breakdown[schema.AttrVRAM], 1e-12)
	assert.InDelta(t, 0.20, hi.Score-lo.Score, 1e-12)
}

func TestScoreWithinRange(t *testing.T) {
	cfg := mustDefault(t)
	lo, hi := cfg.ScoreRange()

	best := sampleRow("best")
	best.Values[schema.AttrRAM] = 251
	best.Values[schema.AttrVCPUs] = 30
	best.Values[schema.AttrInternalStorage] = 4000
	worst := schema.Row{ID: "worst", Values: map[string]any{
		schema.AttrFormFactor:      "PCIe",
		schema.AttrVRAM:            40,
		schema.AttrRAM:             90,
		schema.AttrVCPUs:           8,
		schema.AttrInternalStorage: 0,
		schema.AttrPriceOnDemand:   3.36,
	}}

	b, err := ScoreRow(cfg, best)
	require.NoError(t, err)
	w, err := ScoreRow(cfg, worst)
	require.NoError(t, err)

	assert.InDelta(t, hi, b.Score, 1e-9)
	assert.Equal(t, schema.GradeA, b.Grade)
	assert.InDelta(t, lo, w.Score, 1e-9)
	assert.Equal(t, schema.GradeF, w.Grade)
}

// TestInvertedVersusNegativePrice compares the two price conventions: an inverted
// attribute with a positive weight and a plain attribute with a negative weight.
// They rank rows identically but produce different scores.
func TestInvertedVersusNegativePrice(t *testing.T) {
	specs := []schema.AttributeSpec{
		{Name: schema.AttrVRAM, Kind: schema.NumericKind, Min: 40, Max: 80},
		{Name: schema.AttrPriceOnDemand, Kind: schema.InvertedNumericKind, Min: 1.10, Max: 3.36},
	}
	inverted, err := NewConfiguration(specs, map[string]float64{schema.AttrVRAM: 0.75, schema.AttrPriceOnDemand: 0.25})
	require.NoError(t, err)

	specs[1].Kind = schema.NumericKind
	negative, err := NewConfiguration(specs, map[string]float64{schema.AttrVRAM: 0.75, schema.AttrPriceOnDemand: -0.25})
	require.NoError(t, err)

	cheap := schema.Row{ID: "cheap", Values: map[string]any{schema.AttrVRAM: 80, schema.AttrPriceOnDemand: 1.10}}
	pricey := schema.Row{ID: "pricey", Values: map[string]any{schema.AttrVRAM: 80, schema.AttrPriceOnDemand: 3.36}}

	invCheap, err := ScoreRow(inverted, cheap)
	require.NoError(t, err)
	invPricey, err := ScoreRow(inverted, pricey)
	require.NoError(t, err)
	negCheap, err := ScoreRow(negative, cheap)
	require.NoError(t, err)
	negPricey, err := ScoreRow(negative, pricey)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, invCheap.Score, 1e-9)
	assert.InDelta(t, 75.0, invPricey.Score, 1e-9)
	assert.InDelta(t, 75.0, negCheap.Score, 1e-9)
	assert.InDelta(t, 50.0, negPricey.Score, 1e-9)

	assert.Greater(t, invCheap.Score, invPricey.Score)
	assert.Greater(t, negCheap.Score, negPricey.Score)
	assert.NotEqual(t, invCheap.Grade, negCheap.Grade)
}

func TestScoreIgnoresMissingNormalizedValues(t *testing.T) {
	cfg := mustDefault(t)
	scored := Score(cfg, schema.NormalizedRow{
		Row:        schema.Row{ID: "partial"},
		Normalized: map[string]float64{schema.AttrVRAM: 1},
	})
	assert.InDelta(t, 20.0, scored.Score, 1e-9)
	assert.Equal(t, schema.GradeF, scored.Grade)
	assert.Len(t, scored.Breakdown, len(cfg.Names()))
}

func BenchmarkScoreRow(b *testing.B) {
	cfg := mustDefault(b)
	row := sampleRow("bench")

	for b.Loop() {
		_, _ = ScoreRow(cfg, row)
	}
}
