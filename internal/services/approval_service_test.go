package services

import (
	"context"
	"testing"

	"medstock/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockStockRequestRepository
	mockStockRepo   *MockLocationStockRepository
	mockItemRepo    *MockItemRepository
	service         ApprovalService

	itemID     uuid.UUID
	locationID uuid.UUID
	requestID  uuid.UUID
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = &MockStockRequestRepository{}
	suite.mockStockRepo = &MockLocationStockRepository{}
	suite.mockItemRepo = &MockItemRepository{}
	suite.service = NewApprovalService(suite.mockRequestRepo, suite.mockStockRepo, suite.mockItemRepo)

	suite.itemID = uuid.New()
	suite.locationID = uuid.New()
	suite.requestID = uuid.New()

	suite.mockRequestRepo.Test(suite.T())
	suite.mockStockRepo.Test(suite.T())
	suite.mockItemRepo.Test(suite.T())
}

func (suite *ApprovalServiceTestSuite) TearDownTest() {
	suite.mockRequestRepo.AssertExpectations(suite.T())
	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockItemRepo.AssertExpectations(suite.T())
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}

func (suite *ApprovalServiceTestSuite) request(status string) *models.StockRequest {
	return &models.StockRequest{
		ID:          suite.requestID,
		ItemID:      suite.itemID,
		LocationID:  suite.locationID,
		Quantity:    15,
		RequestedBy: "ward-nurse",
		Status:      status,
	}
}

func (suite *ApprovalServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()

	suite.mockItemRepo.On("GetByID", ctx, suite.itemID).Return(&models.SupplyItem{ID: suite.itemID, Name: "Gauze"}, nil)
	suite.mockRequestRepo.On("Create", ctx, mock.AnythingOfType("*models.StockRequest")).Return(nil).Run(func(args mock.Arguments) {
		request := args.Get(1).(*models.StockRequest)
		assert.Equal(suite.T(), models.RequestStatusPending, request.Status)
		assert.NotEqual(suite.T(), uuid.Nil, request.ID)
	})

	request := &models.StockRequest{
		ItemID:      suite.itemID,
		LocationID:  suite.locationID,
		Quantity:    15,
		RequestedBy: "ward-nurse",
	}
	err := suite.service.Submit(context.Background(), request)
	assert.NoError(suite.T(), err)
}

func (suite *ApprovalServiceTestSuite) TestSubmit_RejectsNonPositiveQuantity() {
	request := &models.StockRequest{
		ItemID:      suite.itemID,
		LocationID:  suite.locationID,
		Quantity:    0,
		RequestedBy: "ward-nurse",
	}
	err := suite.service.Submit(context.Background(), request)
	assert.Error(suite.T(), err)
}

func (suite *ApprovalServiceTestSuite) TestSubmit_UnknownItem() {
	ctx := context.Background()
	suite.mockItemRepo.On("GetByID", ctx, suite.itemID).Return(nil, assert.AnError)

	err := suite.service.Submit(ctx, suite.request(""))
	assert.Error(suite.T(), err)
}

func (suite *ApprovalServiceTestSuite) TestApprove_PendingRequest() {
	ctx := context.Background()

	suite.mockRequestRepo.On("GetByID", ctx, suite.requestID).Return(suite.request(models.RequestStatusPending), nil)
	suite.mockRequestRepo.On("UpdateStatus", ctx, suite.requestID, models.RequestStatusApproved, "pharmacist", (*string)(nil)).Return(nil)

	err := suite.service.Approve(ctx, suite.requestID, "pharmacist", nil)
	assert.NoError(suite.T(), err)
}

func (suite *ApprovalServiceTestSuite) TestApprove_AlreadyReviewed() {
	ctx := context.Background()

	suite.mockRequestRepo.On("GetByID", ctx, suite.requestID).Return(suite.request(models.RequestStatusRejected), nil)

	err := suite.service.Approve(ctx, suite.requestID, "pharmacist", nil)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *ApprovalServiceTestSuite) TestReject_PendingRequest() {
	ctx := context.Background()
	note := "out of budget"

	suite.mockRequestRepo.On("GetByID", ctx, suite.requestID).Return(suite.request(models.RequestStatusPending), nil)
	suite.mockRequestRepo.On("UpdateStatus", ctx, suite.requestID, models.RequestStatusRejected, "pharmacist", &note).Return(nil)

	err := suite.service.Reject(ctx, suite.requestID, "pharmacist", &note)
	assert.NoError(suite.T(), err)
}

func (suite *ApprovalServiceTestSuite) TestFulfill_ApprovedRequest() {
	ctx := context.Background()

	suite.mockRequestRepo.On("GetByID", ctx, suite.requestID).Return(suite.request(models.RequestStatusApproved), nil)
	suite.mockStockRepo.On("AdjustQuantity", ctx, suite.itemID, suite.locationID, 15).Return(nil)
	suite.mockRequestRepo.On("UpdateStatus", ctx, suite.requestID, models.RequestStatusFulfilled, "storekeeper", (*string)(nil)).Return(nil)

	err := suite.service.Fulfill(ctx, suite.requestID, "storekeeper")
	assert.NoError(suite.T(), err)
}

func (suite *ApprovalServiceTestSuite) TestFulfill_PendingRequest() {
	ctx := context.Background()

	suite.mockRequestRepo.On("GetByID", ctx, suite.requestID).Return(suite.request(models.RequestStatusPending), nil)

	err := suite.service.Fulfill(ctx, suite.requestID, "storekeeper")
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestList_UnknownStatus() {
	requests, err := suite.service.List(context.Background(), "archived", 10, 0)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), requests)
}
