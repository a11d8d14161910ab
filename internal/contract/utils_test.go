package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	for _, g := range schema.AllGrades {
		label := GetColorLabel(g)
		assert.Contains(t, label, string(g))
		assert.Contains(t, label, "\x1b[", "grade %s should be colored", g)
	}
}

func TestParseGrade(t *testing.T) {
	for _, s := range []string{"a", "B", " c ", "d", "F"} {
		g, err := ParseGrade(s)
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(strings.TrimSpace(s)), string(g))
	}
	for _, s := range []string{"", "E", "A+", "AB"} {
		_, err := ParseGrade(s)
		assert.Error(t, err, s)
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "scores.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	assert.Equal(t, ".gpugrade_history.db", filepath.Base(GetHistoryDBFilePath()))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected string
	}{
		{"lambda-a100", 20, "lambda-a100"},
		{"lambda-a100-sxm4-80gb", 10, "lambda-..."},
		{"abcdef", 3, "abcdef"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}
