// Package mocks provides testify mocks for the repository interfaces
// used by service-level tests.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vitalink/telemonitor/models"
)

// MockAccessLogRepository mocks repositories.AccessLogRepository
type MockAccessLogRepository struct {
	mock.Mock
}

// NewMockAccessLogRepository creates a mock that verifies expectations on cleanup
func NewMockAccessLogRepository(t *testing.T) *MockAccessLogRepository {
	m := &MockAccessLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccessLogRepository) Create(ctx context.Context, entry *models.AccessLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccessLogRepository) List(ctx context.Context, filter models.AccessLogFilter) ([]models.AccessLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AccessLogEntry), args.Error(1)
}

func (m *MockAccessLogRepository) Count(ctx context.Context, filter models.AccessLogFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// MockDashboardRepository mocks repositories.DashboardRepository
type MockDashboardRepository struct {
	mock.Mock
}

// NewMockDashboardRepository creates a mock that verifies expectations on cleanup
func NewMockDashboardRepository(t *testing.T) *MockDashboardRepository {
	m := &MockDashboardRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDashboardRepository) CountActivePatients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountActiveDevices(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountReadingsSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountAlertReadingsSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}
