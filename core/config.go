package core

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/gpugrade/schema"
)

// DefaultScale maps a weighted sum in [0,1] onto the 0-100 range the grade table expects.
const DefaultScale = 100.0

// attribute is a validated AttributeSpec plus its weight and category ordinals.
type attribute struct {
	spec     schema.AttributeSpec
	weight   float64
	ordinals map[string]int // categorical only
}

// Configuration is an immutable, validated set of attributes and weights.
// Construct it with NewConfiguration; the zero value is not usable.
type Configuration struct {
	attributes []attribute
	policy     schema.BoundsPolicy
	mode       schema.NormalizationMode
	scale      float64
}

// Option customizes a Configuration at construction time.
type Option func(*Configuration)

// WithBoundsPolicy selects how numeric values outside [min, max] are handled.
func WithBoundsPolicy(policy schema.BoundsPolicy) Option {
	return func(c *Configuration) { c.policy = policy }
}

// WithScale sets the multiplier applied to the weighted sum.
func WithScale(scale float64) Option {
	return func(c *Configuration) { c.scale = scale }
}

func withMode(mode schema.NormalizationMode) Option {
	return func(c *Configuration) { c.mode = mode }
}

// NewConfiguration validates specs and weights eagerly and returns an immutable Configuration.
// Every spec needs exactly one weight; weights keyed to unknown attributes are rejected.
// All returned errors are *ConfigError.
func NewConfiguration(specs []schema.AttributeSpec, weights map[string]float64, opts ...Option) (*Configuration, error) {
	cfg := &Configuration{
		policy: schema.StrictBounds,
		mode:   schema.StaticNormalization,
		scale:  DefaultScale,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if _, ok := schema.ValidBoundsPolicies[cfg.policy]; !ok {
		return nil, configErr("", ErrInvalidOption, "bounds policy %q", cfg.policy)
	}
	if _, ok := schema.ValidNormalizationModes[cfg.mode]; !ok {
		return nil, configErr("", ErrInvalidOption, "normalization mode %q", cfg.mode)
	}
	if math.IsNaN(cfg.scale) || math.IsInf(cfg.scale, 0) || cfg.scale <= 0 {
		return nil, configErr("", ErrInvalidOption, "scale must be a positive finite number, got %v", cfg.scale)
	}
	if len(specs) == 0 {
		return nil, configErr("", ErrEmptyConfiguration, "at least one attribute is required")
	}

	seen := make(map[string]struct{}, len(specs))
	cfg.attributes = make([]attribute, 0, len(specs))
	for _, spec := range specs {
		attr, err := newAttribute(spec)
		if err != nil {
			return nil, err
		}
		name := attr.spec.Name
		if _, dup := seen[name]; dup {
			return nil, configErr(name, ErrDuplicateAttribute, "")
		}
		seen[name] = struct{}{}

		w, ok := weights[name]
		if !ok {
			return nil, configErr(name, ErrMissingWeight, "")
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, configErr(name, ErrInvalidWeight, "%v", w)
		}
		attr.weight = w
		cfg.attributes = append(cfg.attributes, attr)
	}

	for _, name := range slices.Sorted(maps.Keys(weights)) {
		if _, ok := seen[name]; !ok {
			return nil, configErr(name, ErrUnknownWeight, "")
		}
	}

	return cfg, nil
}

// newAttribute validates a single spec.
func newAttribute(spec schema.AttributeSpec) (attribute, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" {
		return attribute{}, configErr("", ErrEmptyName, "")
	}

	switch spec.Kind {
	case schema.CategoricalKind:
		if len(spec.Categories) < 2 {
			return attribute{}, configErr(spec.Name, ErrDegenerateCategoryDomain, "need at least 2 categories, got %d", len(spec.Categories))
		}
		ordinals := make(map[string]int, len(spec.Categories))
		categories := make([]string, len(spec.Categories))
		for i, c := range spec.Categories {
			c = strings.TrimSpace(c)
			if c == "" {
				return attribute{}, configErr(spec.Name, ErrDegenerateCategoryDomain, "category %d is empty", i)
			}
			if _, dup := ordinals[c]; dup {
				return attribute{}, configErr(spec.Name, ErrDuplicateCategory, "%q", c)
			}
			ordinals[c] = i
			categories[i] = c
		}
		spec.Categories = categories
		spec.Min, spec.Max = 0, 0
		return attribute{spec: spec, ordinals: ordinals}, nil

	case schema.NumericKind, schema.InvertedNumericKind:
		if !isFinite(spec.Min) || !isFinite(spec.Max) {
			return attribute{}, configErr(spec.Name, ErrInvalidBound, "min=%v max=%v", spec.Min, spec.Max)
		}
		if spec.Max <= spec.Min {
			return attribute{}, configErr(spec.Name, ErrDegenerateNumericDomain, "max (%v) must be greater than min (%v)", spec.Max, spec.Min)
		}
		spec.Categories = nil
		return attribute{spec: spec}, nil

	default:
		return attribute{}, configErr(spec.Name, ErrUnknownKind, "%q", spec.Kind)
	}
}

// Attributes returns a copy of the configured attribute specs in order.
func (c *Configuration) Attributes() []schema.AttributeSpec {
	out := make([]schema.AttributeSpec, len(c.attributes))
	for i, a := range c.attributes {
		out[i] = a.spec
		out[i].Categories = slices.Clone(a.spec.Categories)
	}
	return out
}

// Names returns the attribute names in configuration order.
func (c *Configuration) Names() []string {
	names := make([]string, len(c.attributes))
	for i, a := range c.attributes {
		names[i] = a.spec.Name
	}
	return names
}

// Weights returns a copy of the attribute weights.
func (c *Configuration) Weights() map[string]float64 {
	out := make(map[string]float64, len(c.attributes))
	for _, a := range c.attributes {
		out[a.spec.Name] = a.weight
	}
	return out
}

// Weight returns the weight of one attribute.
func (c *Configuration) Weight(name string) (float64, bool) {
	for _, a := range c.attributes {
		if a.spec.Name == name {
			return a.weight, true
		}
	}
	return 0, false
}

// BoundsPolicy returns the active out-of-bounds policy.
func (c *Configuration) BoundsPolicy() schema.BoundsPolicy { return c.policy }

// Mode returns whether bounds are static or derived from a batch.
func (c *Configuration) Mode() schema.NormalizationMode { return c.mode }

// Scale returns the multiplier applied to the weighted sum.
func (c *Configuration) Scale() float64 { return c.scale }

// ScoreRange returns the lowest and highest composite score the configuration can produce.
// Under the extrapolate policy any numeric attribute with a non-zero weight makes
// the range unbounded in both directions.
func (c *Configuration) ScoreRange() (lo, hi float64) {
	for _, a := range c.attributes {
		if a.weight == 0 {
			continue
		}
		if c.policy == schema.ExtrapolateBounds && a.spec.Kind.IsNumeric() {
			return math.Inf(-1), math.Inf(1)
		}
		lo += math.Min(0, a.weight)
		hi += math.Max(0, a.weight)
	}
	return lo * c.scale, hi * c.scale
}

// Formula renders the scoring formula, e.g. "100 * (0.20*vram + 0.25*price)".
func (c *Configuration) Formula() string {
	parts := make([]string, 0, len(c.attributes))
	for _, a := range c.attributes {
		parts = append(parts, fmt.Sprintf("%.2f*%s", a.weight, a.spec.Name))
	}
	return fmt.Sprintf("%g * (%s)", c.scale, strings.Join(parts, " + "))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
