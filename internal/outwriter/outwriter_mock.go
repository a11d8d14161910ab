package outwriter

import (
	"time"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of ResultWriter for testing.
type MockResultWriter struct {
	mock.Mock
}

var _ contract.ResultWriter = &MockResultWriter{} // Compile-time check

// WriteScores implements the ResultWriter interface.
func (m *MockResultWriter) WriteScores(result schema.RunResult, cfg *contract.Config, duration time.Duration) error {
	return m.Called(result, cfg, duration).Error(0)
}

// WriteCheck implements the ResultWriter interface.
func (m *MockResultWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return m.Called(result, cfg, duration).Error(0)
}

// WriteAttributes implements the ResultWriter interface.
func (m *MockResultWriter) WriteAttributes(model *schema.AttributesRenderModel, cfg *contract.Config) error {
	return m.Called(model, cfg).Error(0)
}
