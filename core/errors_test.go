package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigErrorMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		kind     error
		expected string
	}{
		{
			name:     "attribute and detail",
			err:      configErr("vram", ErrDegenerateNumericDomain, "max (%v) must be greater than min (%v)", 40.0, 80.0),
			kind:     ErrDegenerateNumericDomain,
			expected: `attribute "vram": degenerate numeric domain: max (40) must be greater than min (80)`,
		},
		{
			name:     "attribute only",
			err:      configErr("price", ErrMissingWeight, ""),
			kind:     ErrMissingWeight,
			expected: `attribute "price": missing weight`,
		},
		{
			name:     "no attribute",
			err:      configErr("", ErrEmptyConfiguration, "at least one attribute is required"),
			kind:     ErrEmptyConfiguration,
			expected: "empty configuration: at least one attribute is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("building configuration: %w", tt.err)
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, wrapped, ErrConfiguration)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.NotErrorIs(t, wrapped, ErrRowValidation)

			var cerr *ConfigError
			require.ErrorAs(t, wrapped, &cerr)
			assert.Same(t, tt.err, cerr)
		})
	}
}

func TestRowErrorMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      *RowError
		kind     error
		expected string
	}{
		{
			name:     "with value",
			err:      &RowError{RowID: "odd-one", Attribute: "form_factor", Kind: ErrUnknownCategory, Value: "NVLink"},
			kind:     ErrUnknownCategory,
			expected: `row "odd-one": attribute "form_factor": unknown category (NVLink)`,
		},
		{
			name:     "without value",
			err:      &RowError{RowID: "r1", Attribute: "vram", Kind: ErrMissingAttribute},
			kind:     ErrMissingAttribute,
			expected: `row "r1": attribute "vram": missing attribute`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("scoring: %w", tt.err)
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, wrapped, ErrRowValidation)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.NotErrorIs(t, wrapped, ErrConfiguration)

			var rerr *RowError
			require.ErrorAs(t, wrapped, &rerr)
			assert.Equal(t, tt.err.RowID, rerr.RowID)
		})
	}
}

func TestErrorsFromConstructionAndNormalization(t *testing.T) {
	_, err := NewConfiguration(
		[]schema.AttributeSpec{{Name: "vram", Kind: schema.NumericKind, Min: 80, Max: 80}},
		map[string]float64{"vram": 1},
	)
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "vram", cerr.Attribute)
	assert.ErrorIs(t, err, ErrDegenerateNumericDomain)

	cfg := mustDefault(t)
	row := sampleRow("r1")
	row.Values[schema.AttrVRAM] = 120
	_, err = Normalize(cfg, row)
	var rerr *RowError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, schema.AttrVRAM, rerr.Attribute)
	assert.Equal(t, 120, rerr.Value)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}
