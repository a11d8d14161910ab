package core

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/huangsam/gpugrade/schema"
)

// Normalize maps every configured attribute of row onto [0,1] where higher is better.
// Categorical values become ordinal/(k-1); numeric values become (raw-min)/(max-min);
// inverted-numeric values become 1 minus that. Values outside the numeric bounds are
// handled according to the configuration's bounds policy.
//
// The input row is never mutated; the returned row holds its own copy of the values.
// All returned errors are *RowError.
func Normalize(cfg *Configuration, row schema.Row) (schema.NormalizedRow, error) {
	normalized := make(map[string]float64, len(cfg.attributes))
	for _, a := range cfg.attributes {
		name := a.spec.Name
		raw, ok := row.Values[name]
		if !ok || isBlank(raw) {
			return schema.NormalizedRow{}, &RowError{RowID: row.ID, Attribute: name, Kind: ErrMissingAttribute}
		}
		v, kind := a.normalize(raw, cfg.policy)
		if kind != nil {
			return schema.NormalizedRow{}, &RowError{RowID: row.ID, Attribute: name, Kind: kind, Value: raw}
		}
		normalized[name] = v
	}
	return schema.NormalizedRow{
		Row:        schema.Row{ID: row.ID, Values: maps.Clone(row.Values)},
		Normalized: normalized,
	}, nil
}

// normalize returns the normalized value or the row error kind explaining the failure.
func (a attribute) normalize(raw any, policy schema.BoundsPolicy) (float64, error) {
	if a.spec.Kind == schema.CategoricalKind {
		ordinal, ok := a.ordinals[categoryKey(raw)]
		if !ok {
			return 0, ErrUnknownCategory
		}
		return float64(ordinal) / float64(len(a.ordinals)-1), nil
	}

	v, ok := toFloat(raw)
	if !ok {
		return 0, ErrInvalidValue
	}
	ratio := (v - a.spec.Min) / (a.spec.Max - a.spec.Min)
	if ratio < 0 || ratio > 1 {
		switch policy {
		case schema.ClampBounds:
			ratio = clamp01(ratio)
		case schema.ExtrapolateBounds:
			// leave ratio outside [0,1]
		default:
			return 0, ErrOutOfDomain
		}
	}
	if a.spec.Kind == schema.InvertedNumericKind {
		return 1 - ratio, nil
	}
	return ratio, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func categoryKey(raw any) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(raw)
}

// toFloat converts a raw cell to a finite float64.
func toFloat(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	return v, isFinite(v)
}
