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

type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo    *MockLocationStockRepository
	mockLocationRepo *MockLocationRepository
	mockCache        *MockCacheService
	service          StockService

	itemID uuid.UUID
	fromID uuid.UUID
	toID   uuid.UUID
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockStockRepo = &MockLocationStockRepository{}
	suite.mockLocationRepo = &MockLocationRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewStockService(suite.mockStockRepo, suite.mockLocationRepo, suite.mockCache)

	suite.itemID = uuid.New()
	suite.fromID = uuid.New()
	suite.toID = uuid.New()

	suite.mockStockRepo.Test(suite.T())
	suite.mockLocationRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
}

func (suite *StockServiceTestSuite) TearDownTest() {
	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockLocationRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}

func (suite *StockServiceTestSuite) TestUpsert_AppliesDefaults() {
	ctx := context.Background()

	suite.mockLocationRepo.On("GetByID", ctx, suite.fromID).Return(&models.Location{ID: suite.fromID, Name: "Storeroom"}, nil)
	suite.mockStockRepo.On("Upsert", ctx, mock.AnythingOfType("*models.LocationStock")).Return(nil).Run(func(args mock.Arguments) {
		stock := args.Get(1).(*models.LocationStock)
		assert.Equal(suite.T(), models.DefaultMinimumThreshold, stock.MinimumThreshold)
		assert.Equal(suite.T(), models.DefaultMaximumCapacity, stock.MaximumCapacity)
		assert.NotEqual(suite.T(), uuid.Nil, stock.ID)
	})
	suite.mockCache.On("DeleteStockSnapshot", ctx, suite.itemID).Return(nil)

	stock := &models.LocationStock{
		ItemID:           suite.itemID,
		LocationID:       suite.fromID,
		Quantity:         10,
		MinimumThreshold: -1,
		MaximumCapacity:  0,
	}
	err := suite.service.Upsert(ctx, stock)
	assert.NoError(suite.T(), err)
}

func (suite *StockServiceTestSuite) TestUpsert_UnknownLocation() {
	ctx := context.Background()

	suite.mockLocationRepo.On("GetByID", ctx, suite.fromID).Return(nil, assert.AnError)

	stock := &models.LocationStock{ItemID: suite.itemID, LocationID: suite.fromID, Quantity: 5}
	err := suite.service.Upsert(ctx, stock)
	assert.Error(suite.T(), err)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestCachedSnapshot_Hit() {
	ctx := context.Background()
	snapshot := []*models.LocationStock{
		{ItemID: suite.itemID, LocationID: suite.fromID, LocationName: "ICU", Quantity: 8},
	}

	suite.mockCache.On("GetStockSnapshot", ctx, suite.itemID).Return(snapshot, nil)

	result, err := suite.service.CachedSnapshot(ctx, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), snapshot, result)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListByItem", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestCachedSnapshot_MissFallsThrough() {
	ctx := context.Background()
	snapshot := []*models.LocationStock{
		{ItemID: suite.itemID, LocationID: suite.fromID, LocationName: "ICU", Quantity: 8},
	}

	suite.mockCache.On("GetStockSnapshot", ctx, suite.itemID).Return(nil, nil)
	suite.mockStockRepo.On("ListByItem", ctx, suite.itemID).Return(snapshot, nil)
	suite.mockCache.On("SetStockSnapshot", ctx, suite.itemID, snapshot, snapshotCacheTTL).Return(nil)

	result, err := suite.service.CachedSnapshot(ctx, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), snapshot, result)
}

func (suite *StockServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()

	suite.mockStockRepo.On("GetByItemAndLocation", ctx, suite.itemID, suite.fromID).Return(&models.LocationStock{
		ItemID:     suite.itemID,
		LocationID: suite.fromID,
		Quantity:   30,
	}, nil)
	suite.mockStockRepo.On("ApplyDeltas", ctx, suite.itemID, []models.StockDelta{
		{LocationID: suite.fromID, Delta: -12},
		{LocationID: suite.toID, Delta: 12},
	}).Return(nil)
	suite.mockCache.On("DeleteStockSnapshot", ctx, suite.itemID).Return(nil)

	err := suite.service.Transfer(ctx, suite.itemID, suite.fromID, suite.toID, 12)
	assert.NoError(suite.T(), err)
}

func (suite *StockServiceTestSuite) TestTransfer_InsufficientStock() {
	ctx := context.Background()

	suite.mockStockRepo.On("GetByItemAndLocation", ctx, suite.itemID, suite.fromID).Return(&models.LocationStock{
		ItemID:     suite.itemID,
		LocationID: suite.fromID,
		Quantity:   5,
	}, nil)

	err := suite.service.Transfer(ctx, suite.itemID, suite.fromID, suite.toID, 12)
	assert.ErrorIs(suite.T(), err, ErrInsufficientStock)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ApplyDeltas", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestTransfer_SameLocation() {
	err := suite.service.Transfer(context.Background(), suite.itemID, suite.fromID, suite.fromID, 5)
	assert.Error(suite.T(), err)
}

func (suite *StockServiceTestSuite) TestUpdateBounds_RejectsCapacityBelowThreshold() {
	err := suite.service.UpdateBounds(context.Background(), suite.itemID, suite.fromID, 50, 20)
	assert.Error(suite.T(), err)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "UpdateBounds", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestAdjust_ZeroDelta() {
	err := suite.service.Adjust(context.Background(), suite.itemID, suite.fromID, 0)
	assert.Error(suite.T(), err)
}

func (suite *StockServiceTestSuite) TestLowStock_DefaultsLimit() {
	ctx := context.Background()
	suite.mockStockRepo.On("ListLowStock", ctx, 100).Return([]*models.LocationStock{}, nil)

	result, err := suite.service.LowStock(ctx, 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}
