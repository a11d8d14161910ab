package contract

import (
	"fmt"
	"io"

	"github.com/huangsam/gpugrade/schema"
	"gopkg.in/yaml.v3"
)

// FileConfig is the layout of the YAML config file. Keys match the CLI flags.
type FileConfig struct {
	Output         string         `yaml:"output"`
	Precision      int            `yaml:"precision"`
	IDColumn       string         `yaml:"id-column"`
	Bounds         string         `yaml:"bounds"`
	OnError        string         `yaml:"on-error"`
	Normalization  string         `yaml:"normalization"`
	Scale          float64        `yaml:"scale"`
	MinGrade       string         `yaml:"min-grade"`
	HistoryBackend string         `yaml:"history-backend"`
	Attributes     []AttributeRaw `yaml:"attributes"`
}

// DefaultFileConfig returns the built-in configuration in file form.
func DefaultFileConfig() FileConfig {
	weights := schema.DefaultWeights()
	specs := schema.DefaultAttributes()
	attrs := make([]AttributeRaw, len(specs))
	for i, spec := range specs {
		w := weights[spec.Name]
		attrs[i] = AttributeRaw{
			Name:       spec.Name,
			Kind:       string(spec.Kind),
			Categories: spec.Categories,
			Weight:     &w,
		}
		if spec.Kind.IsNumeric() {
			lo, hi := spec.Min, spec.Max
			attrs[i].Min, attrs[i].Max = &lo, &hi
		}
	}
	return FileConfig{
		Output:         string(schema.TextOut),
		Precision:      DefaultPrecision,
		IDColumn:       DefaultIDColumn,
		Bounds:         string(schema.StrictBounds),
		OnError:        string(schema.SkipFailures),
		Normalization:  string(schema.StaticNormalization),
		Scale:          DefaultScale,
		MinGrade:       string(schema.GradeC),
		HistoryBackend: string(schema.NoneBackend),
		Attributes:     attrs,
	}
}

// WriteFileConfig encodes fc as YAML.
func WriteFileConfig(w io.Writer, fc FileConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
