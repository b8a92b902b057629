package services

import (
	"context"
	"time"

	"medstock/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.SupplyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SupplyItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplyItem), args.Error(1)
}

func (m *MockItemRepository) GetBySKU(ctx context.Context, sku string) (*models.SupplyItem, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplyItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.SupplyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, limit, offset int) ([]*models.SupplyItem, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SupplyItem), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.SupplyItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SupplyItem), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByName(ctx context.Context, name string) (*models.Location, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) List(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Location), args.Error(1)
}

func (m *MockLocationRepository) ListAll(ctx context.Context) ([]*models.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Location), args.Error(1)
}

type MockLocationStockRepository struct {
	mock.Mock
}

func (m *MockLocationStockRepository) Upsert(ctx context.Context, stock *models.LocationStock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockLocationStockRepository) GetByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*models.LocationStock, error) {
	args := m.Called(ctx, itemID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationStock), args.Error(1)
}

func (m *MockLocationStockRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LocationStock), args.Error(1)
}

func (m *MockLocationStockRepository) ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.LocationStock, error) {
	args := m.Called(ctx, locationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LocationStock), args.Error(1)
}

func (m *MockLocationStockRepository) ListLowStock(ctx context.Context, limit int) ([]*models.LocationStock, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LocationStock), args.Error(1)
}

func (m *MockLocationStockRepository) UpdateBounds(ctx context.Context, itemID, locationID uuid.UUID, minimumThreshold, maximumCapacity int) error {
	args := m.Called(ctx, itemID, locationID, minimumThreshold, maximumCapacity)
	return args.Error(0)
}

func (m *MockLocationStockRepository) AdjustQuantity(ctx context.Context, itemID, locationID uuid.UUID, delta int) error {
	args := m.Called(ctx, itemID, locationID, delta)
	return args.Error(0)
}

func (m *MockLocationStockRepository) ApplyDeltas(ctx context.Context, itemID uuid.UUID, deltas []models.StockDelta) error {
	args := m.Called(ctx, itemID, deltas)
	return args.Error(0)
}

func (m *MockLocationStockRepository) CountLowStock(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLocationStockRepository) ItemQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

type MockStockRequestRepository struct {
	mock.Mock
}

func (m *MockStockRequestRepository) Create(ctx context.Context, request *models.StockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockStockRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StockRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.StockRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, reviewedBy string, reviewNote *string) error {
	args := m.Called(ctx, id, status, reviewedBy, reviewNote)
	return args.Error(0)
}

func (m *MockStockRequestRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.SupplyItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplyItem), args.Error(1)
}

func (m *MockCacheService) SetItem(ctx context.Context, item *models.SupplyItem, ttl time.Duration) error {
	args := m.Called(ctx, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCacheService) GetStockSnapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LocationStock), args.Error(1)
}

func (m *MockCacheService) SetStockSnapshot(ctx context.Context, itemID uuid.UUID, snapshot []*models.LocationStock, ttl time.Duration) error {
	args := m.Called(ctx, itemID, snapshot, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStockSnapshot(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCacheService) GetPendingDistribution(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingDistribution), args.Error(1)
}

func (m *MockCacheService) SetPendingDistribution(ctx context.Context, pending *models.PendingDistribution, ttl time.Duration) error {
	args := m.Called(ctx, pending, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeletePendingDistribution(ctx context.Context, planID uuid.UUID) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func (m *MockCacheService) GetOverview(ctx context.Context) (map[string]interface{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockCacheService) SetOverview(ctx context.Context, overview map[string]interface{}, ttl time.Duration) error {
	args := m.Called(ctx, overview, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
