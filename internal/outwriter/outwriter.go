// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints a scoring run using the configured output format.
func (ow *OutWriter) WriteScores(result schema.RunResult, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(result, cfg, duration)
}

// WriteCheck prints a grade gate result.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResult(result, cfg, duration)
}

// WriteAttributes prints the active attribute set.
func (ow *OutWriter) WriteAttributes(model *schema.AttributesRenderModel, cfg *contract.Config) error {
	return WriteAttributes(model, cfg)
}
