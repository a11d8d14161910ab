package core

import (
	"math"
	"slices"

	"github.com/huangsam/gpugrade/schema"
)

// WithBatchBounds returns a new Configuration whose numeric bounds are derived from
// the rows themselves, tagged with the batch normalization mode. Scores produced
// this way are relative to the batch and are not comparable across datasets.
//
// Only the named attributes are rederived; with no names every numeric attribute is.
// Missing or unparseable values are ignored here and surface as row errors later.
func WithBatchBounds(cfg *Configuration, rows []schema.Row, names ...string) (*Configuration, error) {
	for _, name := range names {
		if _, ok := cfg.Weight(name); !ok {
			return nil, configErr(name, ErrUnknownWeight, "not a configured attribute")
		}
	}
	specs := cfg.Attributes()
	for i, spec := range specs {
		if !spec.Kind.IsNumeric() {
			continue
		}
		if len(names) > 0 && !slices.Contains(names, spec.Name) {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, row := range rows {
			raw, ok := row.Values[spec.Name]
			if !ok || isBlank(raw) {
				continue
			}
			if v, ok := toFloat(raw); ok {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
		if math.IsInf(lo, 1) {
			return nil, configErr(spec.Name, ErrDegenerateNumericDomain, "no numeric values in batch")
		}
		specs[i].Min, specs[i].Max = lo, hi
	}
	return NewConfiguration(specs, cfg.Weights(),
		WithBoundsPolicy(cfg.policy),
		WithScale(cfg.scale),
		withMode(schema.BatchNormalization),
	)
}
