package loader

import (
	"context"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/mock"
)

// MockRowLoader is a mock implementation of RowLoader for testing.
type MockRowLoader struct {
	mock.Mock
}

var _ contract.RowLoader = &MockRowLoader{} // Compile-time check

// Load implements the RowLoader interface.
func (m *MockRowLoader) Load(ctx context.Context, source string) ([]schema.Row, error) {
	args := m.Called(ctx, source)
	rows, _ := args.Get(0).([]schema.Row)
	return rows, args.Error(1)
}
