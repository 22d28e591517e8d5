package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories/mocks"
)

// AccessLogServiceTestSuite is a test suite for the access log service
type AccessLogServiceTestSuite struct {
	suite.Suite
	service  AccessLogService
	mockRepo *mocks.MockAccessLogRepository
}

// SetupTest sets up the test suite before each test
func (suite *AccessLogServiceTestSuite) SetupTest() {
	suite.mockRepo = mocks.NewMockAccessLogRepository(suite.T())
	suite.service = NewAccessLogService(suite.mockRepo)
}

func (suite *AccessLogServiceTestSuite) TestRecord_Success_AllActionTypes() {
	for _, action := range models.ValidActionTypes {
		suite.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AccessLogEntry")).
			Return(nil).Once()

		entry, err := suite.service.Record(context.Background(), &models.AccessLogForm{
			UserID:   5,
			Username: "mrossi",
			Action:   action,
		})

		assert.NoError(suite.T(), err)
		assert.NotNil(suite.T(), entry)
		assert.Equal(suite.T(), action, entry.Action)
		assert.Equal(suite.T(), 5, entry.UserID)
	}
}

func (suite *AccessLogServiceTestSuite) TestRecord_MissingUserID() {
	_, err := suite.service.Record(context.Background(), &models.AccessLogForm{
		Username: "mrossi",
		Action:   models.ActionLogin,
	})

	var validationErr *models.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "user_id", validationErr.Field)
}

func (suite *AccessLogServiceTestSuite) TestRecord_MissingUsername() {
	_, err := suite.service.Record(context.Background(), &models.AccessLogForm{
		UserID: 5,
		Action: models.ActionLogin,
	})

	var validationErr *models.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "username", validationErr.Field)
}

func (suite *AccessLogServiceTestSuite) TestRecord_InvalidActionType() {
	_, err := suite.service.Record(context.Background(), &models.AccessLogForm{
		UserID:   5,
		Username: "mrossi",
		Action:   "delete",
	})

	var validationErr *models.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "action_type", validationErr.Field)
}

func (suite *AccessLogServiceTestSuite) TestRecord_PersistenceFailure() {
	expectedErr := errors.New("database is locked")
	suite.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AccessLogEntry")).
		Return(expectedErr).Once()

	_, err := suite.service.Record(context.Background(), &models.AccessLogForm{
		UserID:   5,
		Username: "mrossi",
		Action:   models.ActionPageVisit,
	})

	assert.ErrorIs(suite.T(), err, expectedErr)
}

func (suite *AccessLogServiceTestSuite) TestList_DefaultLimit() {
	expectedFilter := models.AccessLogFilter{Limit: models.DefaultAccessLogLimit}

	suite.mockRepo.On("List", mock.Anything, expectedFilter).
		Return([]models.AccessLogEntry{}, nil).Once()
	suite.mockRepo.On("Count", mock.Anything, expectedFilter).
		Return(0, nil).Once()

	_, pagination, err := suite.service.List(context.Background(), models.AccessLogFilter{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DefaultAccessLogLimit, pagination.Limit)
	assert.False(suite.T(), pagination.HasMore)
}

func (suite *AccessLogServiceTestSuite) TestList_HasMore() {
	filter := models.AccessLogFilter{Limit: 2, Offset: 0}
	entries := []models.AccessLogEntry{
		{ID: 2, UserID: 5, Username: "mrossi", Action: models.ActionPageVisit},
		{ID: 1, UserID: 5, Username: "mrossi", Action: models.ActionPageVisit},
	}

	suite.mockRepo.On("List", mock.Anything, filter).Return(entries, nil).Once()
	suite.mockRepo.On("Count", mock.Anything, filter).Return(5, nil).Once()

	result, pagination, err := suite.service.List(context.Background(), filter)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), 5, pagination.Total)
	assert.True(suite.T(), pagination.HasMore)
}

func (suite *AccessLogServiceTestSuite) TestList_LastPage() {
	filter := models.AccessLogFilter{Limit: 10, Offset: 3}
	entries := []models.AccessLogEntry{
		{ID: 2, UserID: 5, Username: "mrossi", Action: models.ActionLogin},
		{ID: 1, UserID: 5, Username: "mrossi", Action: models.ActionLogin},
	}

	suite.mockRepo.On("List", mock.Anything, filter).Return(entries, nil).Once()
	suite.mockRepo.On("Count", mock.Anything, filter).Return(5, nil).Once()

	_, pagination, err := suite.service.List(context.Background(), filter)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), pagination.HasMore)
}

func (suite *AccessLogServiceTestSuite) TestList_CountFailure() {
	filter := models.AccessLogFilter{Limit: 10}
	expectedErr := errors.New("disk I/O error")

	suite.mockRepo.On("List", mock.Anything, filter).
		Return([]models.AccessLogEntry{}, nil).Once()
	suite.mockRepo.On("Count", mock.Anything, filter).
		Return(0, expectedErr).Once()

	_, _, err := suite.service.List(context.Background(), filter)

	assert.ErrorIs(suite.T(), err, expectedErr)
}

func TestAccessLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessLogServiceTestSuite))
}
