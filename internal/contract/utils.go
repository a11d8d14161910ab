package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gpugrade/schema"
)

// Color variables for console output, one per grade.
var (
	GradeAColor = color.New(color.FgGreen, color.Bold) // GradeAColor represents a top offer.
	GradeBColor = color.New(color.FgGreen)             // GradeBColor represents a solid offer.
	GradeCColor = color.New(color.FgYellow)            // GradeCColor represents an average offer.
	GradeDColor = color.New(color.FgMagenta)           // GradeDColor represents a weak offer.
	GradeFColor = color.New(color.FgRed, color.Bold)   // GradeFColor represents a failing offer.
)

// GetColorLabel returns a colored grade label for console output (table).
func GetColorLabel(grade schema.Grade) string {
	text := string(grade)

	switch grade {
	case schema.GradeA:
		return GradeAColor.Sprint(text)
	case schema.GradeB:
		return GradeBColor.Sprint(text)
	case schema.GradeC:
		return GradeCColor.Sprint(text)
	case schema.GradeD:
		return GradeDColor.Sprint(text)
	default:
		return GradeFColor.Sprint(text)
	}
}

// ParseGrade parses a letter grade, case-insensitively.
func ParseGrade(s string) (schema.Grade, error) {
	g := schema.Grade(strings.ToUpper(strings.TrimSpace(s)))
	for _, candidate := range schema.AllGrades {
		if g == candidate {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid grade %q (expected A, B, C, D or F)", s)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gpugrade_history.db"
	}
	return filepath.Join(homeDir, ".gpugrade_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
