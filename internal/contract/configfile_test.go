package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gpugrade/schema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteFileConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFileConfig(&buf, DefaultFileConfig()))

	text := buf.String()
	assert.Contains(t, text, "bounds: strict")
	assert.Contains(t, text, "name: price_on_demand")
	assert.Contains(t, text, "kind: inverted-numeric")

	var decoded FileConfig
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, DefaultFileConfig(), decoded)
}

// The generated file must reproduce the built-in configuration when read back
// the way the CLI reads it.
func TestDefaultFileConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gpugrade.yaml")
	var buf bytes.Buffer
	require.NoError(t, WriteFileConfig(&buf, DefaultFileConfig()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	input := &ConfigRawInput{}
	require.NoError(t, v.Unmarshal(input))
	input.Workers = 1
	input.Emoji = "no"
	input.Color = "no"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.DefaultAttributes(), cfg.Attributes)
	assert.Equal(t, schema.DefaultWeights(), cfg.Weights)
	assert.Equal(t, schema.StrictBounds, cfg.BoundsPolicy)
	assert.Equal(t, schema.GradeC, cfg.MinGrade)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
}
