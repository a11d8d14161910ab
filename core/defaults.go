package core

import "github.com/huangsam/gpugrade/schema"

// DefaultConfiguration builds a Configuration from the built-in attributes and weights.
func DefaultConfiguration(opts ...Option) (*Configuration, error) {
	return NewConfiguration(schema.DefaultAttributes(), schema.DefaultWeights(), opts...)
}
