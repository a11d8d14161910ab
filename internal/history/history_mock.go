package history

import (
	"time"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordScoredRows implements the HistoryStore interface.
func (m *MockHistoryStore) RecordScoredRows(runID int64, mode schema.NormalizationMode, rows []schema.ScoredRow) error {
	args := m.Called(runID, mode, rows)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, rowsScored, rowsFailed int) error {
	args := m.Called(runID, endTime, rowsScored, rowsFailed)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllScoredRows implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScoredRows() ([]schema.ScoredRowRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.ScoredRowRecord)
	return rows, args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	return m.Called().Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}
