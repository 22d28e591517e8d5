package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vitalink/telemonitor/repositories/mocks"
)

// DashboardServiceTestSuite is a test suite for the dashboard service
type DashboardServiceTestSuite struct {
	suite.Suite
	service  DashboardService
	mockRepo *mocks.MockDashboardRepository
}

// SetupTest sets up the test suite before each test
func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockRepo = mocks.NewMockDashboardRepository(suite.T())
	suite.service = NewDashboardService(suite.mockRepo)
}

func (suite *DashboardServiceTestSuite) TestComputeSnapshot_Success() {
	suite.mockRepo.On("CountActivePatients", mock.Anything).Return(12, nil).Once()
	suite.mockRepo.On("CountActiveDevices", mock.Anything).Return(7, nil).Once()
	suite.mockRepo.On("CountReadingsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(34, nil).Once()
	suite.mockRepo.On("CountAlertReadingsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	snapshot, err := suite.service.ComputeSnapshot(context.Background())

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), snapshot)
	assert.Equal(suite.T(), 12, snapshot.PatientsTotal)
	assert.Equal(suite.T(), 7, snapshot.DevicesActive)
	assert.Equal(suite.T(), 34, snapshot.ReadingsToday)
	assert.Equal(suite.T(), 3, snapshot.AlertsActive)
}

func (suite *DashboardServiceTestSuite) TestComputeSnapshot_PatientQueryFailure() {
	expectedErr := errors.New("database connection failed")
	suite.mockRepo.On("CountActivePatients", mock.Anything).Return(0, expectedErr).Once()

	snapshot, err := suite.service.ComputeSnapshot(context.Background())

	// A failing counter aborts the whole snapshot; no partial result
	assert.Nil(suite.T(), snapshot)
	assert.ErrorIs(suite.T(), err, expectedErr)
}

func (suite *DashboardServiceTestSuite) TestComputeSnapshot_AlertQueryFailure() {
	expectedErr := errors.New("disk I/O error")
	suite.mockRepo.On("CountActivePatients", mock.Anything).Return(12, nil).Once()
	suite.mockRepo.On("CountActiveDevices", mock.Anything).Return(7, nil).Once()
	suite.mockRepo.On("CountReadingsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(34, nil).Once()
	suite.mockRepo.On("CountAlertReadingsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(0, expectedErr).Once()

	snapshot, err := suite.service.ComputeSnapshot(context.Background())

	assert.Nil(suite.T(), snapshot)
	assert.ErrorIs(suite.T(), err, expectedErr)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
