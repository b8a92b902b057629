package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"medstock/internal/caching"
	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/google/uuid"
)

// ErrInsufficientStock rejects transfers larger than the source holds.
var ErrInsufficientStock = errors.New("insufficient stock at source location")

type StockService interface {
	Upsert(ctx context.Context, stock *models.LocationStock) error
	GetByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*models.LocationStock, error)
	// Snapshot returns the item's fresh multi-location state, bypassing the
	// cache; distribution planning always runs on a fresh snapshot.
	Snapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error)
	// CachedSnapshot serves dashboard reads, tolerating short staleness.
	CachedSnapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.LocationStock, error)
	Adjust(ctx context.Context, itemID, locationID uuid.UUID, delta int) error
	Transfer(ctx context.Context, itemID, fromLocationID, toLocationID uuid.UUID, quantity int) error
	UpdateBounds(ctx context.Context, itemID, locationID uuid.UUID, minimumThreshold, maximumCapacity int) error
	LowStock(ctx context.Context, limit int) ([]*models.LocationStock, error)
}

type stockService struct {
	stockRepo    repositories.LocationStockRepository
	locationRepo repositories.LocationRepository
	cacheService caching.CacheService
}

const snapshotCacheTTL = 2 * time.Minute

func NewStockService(stockRepo repositories.LocationStockRepository, locationRepo repositories.LocationRepository, cacheService caching.CacheService) StockService {
	return &stockService{
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
		cacheService: cacheService,
	}
}

func (s *stockService) Upsert(ctx context.Context, stock *models.LocationStock) error {
	if stock.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if stock.MinimumThreshold < 0 {
		stock.MinimumThreshold = models.DefaultMinimumThreshold
	}
	if stock.MaximumCapacity <= 0 {
		stock.MaximumCapacity = models.DefaultMaximumCapacity
	}
	if _, err := s.locationRepo.GetByID(ctx, stock.LocationID); err != nil {
		return fmt.Errorf("location %s: %w", stock.LocationID, err)
	}

	stock.ID = uuid.New()
	if err := s.stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}

	s.invalidateSnapshot(ctx, stock.ItemID)
	return nil
}

func (s *stockService) GetByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*models.LocationStock, error) {
	return s.stockRepo.GetByItemAndLocation(ctx, itemID, locationID)
}

func (s *stockService) Snapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error) {
	snapshot, err := s.stockRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetStockSnapshot(ctx, itemID, snapshot, snapshotCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache stock snapshot for item %s: %v", itemID.String(), cacheErr)
	}
	return snapshot, nil
}

func (s *stockService) CachedSnapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error) {
	if cached, err := s.cacheService.GetStockSnapshot(ctx, itemID); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors shouldn't fail the read, fall through to the database
		log.Printf("Cache error for stock snapshot %s: %v", itemID.String(), err)
	}

	return s.Snapshot(ctx, itemID)
}

func (s *stockService) ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.LocationStock, error) {
	return s.stockRepo.ListByLocation(ctx, locationID, limit, offset)
}

func (s *stockService) Adjust(ctx context.Context, itemID, locationID uuid.UUID, delta int) error {
	if delta == 0 {
		return errors.New("delta cannot be zero")
	}
	if err := s.stockRepo.AdjustQuantity(ctx, itemID, locationID, delta); err != nil {
		return err
	}

	s.invalidateSnapshot(ctx, itemID)
	return nil
}

func (s *stockService) Transfer(ctx context.Context, itemID, fromLocationID, toLocationID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errors.New("transfer quantity must be positive")
	}
	if fromLocationID == toLocationID {
		return errors.New("source and destination locations are the same")
	}

	from, err := s.stockRepo.GetByItemAndLocation(ctx, itemID, fromLocationID)
	if err != nil {
		return fmt.Errorf("source stock: %w", err)
	}
	if from.Quantity < quantity {
		return ErrInsufficientStock
	}

	deltas := []models.StockDelta{
		{LocationID: fromLocationID, Delta: -quantity},
		{LocationID: toLocationID, Delta: quantity},
	}
	if err := s.stockRepo.ApplyDeltas(ctx, itemID, deltas); err != nil {
		return err
	}

	s.invalidateSnapshot(ctx, itemID)
	return nil
}

func (s *stockService) UpdateBounds(ctx context.Context, itemID, locationID uuid.UUID, minimumThreshold, maximumCapacity int) error {
	if minimumThreshold < 0 {
		return errors.New("minimum threshold cannot be negative")
	}
	if maximumCapacity <= 0 {
		return errors.New("maximum capacity must be positive")
	}
	if maximumCapacity < minimumThreshold {
		return errors.New("maximum capacity cannot be below minimum threshold")
	}

	if err := s.stockRepo.UpdateBounds(ctx, itemID, locationID, minimumThreshold, maximumCapacity); err != nil {
		return err
	}

	s.invalidateSnapshot(ctx, itemID)
	return nil
}

func (s *stockService) LowStock(ctx context.Context, limit int) ([]*models.LocationStock, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.stockRepo.ListLowStock(ctx, limit)
}

func (s *stockService) invalidateSnapshot(ctx context.Context, itemID uuid.UUID) {
	if cacheErr := s.cacheService.DeleteStockSnapshot(ctx, itemID); cacheErr != nil {
		log.Printf("Failed to invalidate stock snapshot for item %s: %v", itemID.String(), cacheErr)
	}
}
