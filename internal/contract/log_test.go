package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"":      zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, expected := range tests {
		lvl, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, lvl)
	}
	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	defer SetLogger(zap.NewNop())

	require.Error(t, InitLogger("loud"))
	require.NoError(t, InitLogger("info"))
	assert.True(t, Logger().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger().Core().Enabled(zapcore.DebugLevel))
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(zap.NewNop())

	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	Logger().Info("dataset loaded", zap.Int("rows", 3))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "dataset loaded", entry.Message)
	assert.Equal(t, int64(3), entry.ContextMap()["rows"])
}
