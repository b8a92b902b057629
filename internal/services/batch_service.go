package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/google/uuid"
)

type BatchService interface {
	Create(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error)
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.Batch, error)
	// ExpiringSoon lists batches whose expiry date falls inside the window.
	ExpiringSoon(ctx context.Context, window time.Duration, limit int) ([]*models.Batch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type batchService struct {
	batchRepo    repositories.BatchRepository
	itemRepo     repositories.ItemRepository
	locationRepo repositories.LocationRepository
}

func NewBatchService(batchRepo repositories.BatchRepository, itemRepo repositories.ItemRepository, locationRepo repositories.LocationRepository) BatchService {
	return &batchService{
		batchRepo:    batchRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
	}
}

func (s *batchService) Create(ctx context.Context, batch *models.Batch) error {
	if batch.LotNumber == "" {
		return errors.New("lot number is required")
	}
	if batch.Quantity <= 0 {
		return errors.New("batch quantity must be positive")
	}
	if batch.ExpiryDate.IsZero() {
		return errors.New("expiry date is required")
	}

	if _, err := s.itemRepo.GetByID(ctx, batch.ItemID); err != nil {
		return fmt.Errorf("item %s: %w", batch.ItemID, err)
	}
	if _, err := s.locationRepo.GetByID(ctx, batch.LocationID); err != nil {
		return fmt.Errorf("location %s: %w", batch.LocationID, err)
	}

	batch.ID = uuid.New()
	return s.batchRepo.Create(ctx, batch)
}

func (s *batchService) GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	return s.batchRepo.GetByID(ctx, id)
}

func (s *batchService) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.Batch, error) {
	return s.batchRepo.ListByItem(ctx, itemID, limit, offset)
}

func (s *batchService) ExpiringSoon(ctx context.Context, window time.Duration, limit int) ([]*models.Batch, error) {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	if limit <= 0 {
		limit = 100
	}
	return s.batchRepo.ListExpiringBefore(ctx, time.Now().Add(window), limit)
}

func (s *batchService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.batchRepo.Delete(ctx, id)
}
