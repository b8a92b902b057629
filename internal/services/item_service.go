package services

import (
	"context"
	"errors"
	"log"
	"time"

	"medstock/internal/caching"
	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/google/uuid"
)

type ItemService interface {
	Create(ctx context.Context, item *models.SupplyItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SupplyItem, error)
	Update(ctx context.Context, item *models.SupplyItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.SupplyItem, error)
	Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.SupplyItem, error)
}

type itemService struct {
	itemRepo     repositories.ItemRepository
	cacheService caching.CacheService
}

const itemCacheTTL = 10 * time.Minute

func NewItemService(itemRepo repositories.ItemRepository, cacheService caching.CacheService) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		cacheService: cacheService,
	}
}

func (s *itemService) Create(ctx context.Context, item *models.SupplyItem) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.SKU == "" {
		return errors.New("item SKU is required")
	}
	if item.UnitCost.IsNegative() {
		return errors.New("unit cost cannot be negative")
	}

	// Reject duplicate SKUs early
	existing, err := s.itemRepo.GetBySKU(ctx, item.SKU)
	if err == nil && existing != nil {
		return errors.New("item with this SKU already exists")
	}

	item.ID = uuid.New()
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*models.SupplyItem, error) {
	if cached, err := s.cacheService.GetItem(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for item %s: %v", id.String(), err)
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetItem(ctx, item, itemCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache item %s: %v", id.String(), cacheErr)
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, item *models.SupplyItem) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.UnitCost.IsNegative() {
		return errors.New("unit cost cannot be negative")
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeleteItem(ctx, item.ID); cacheErr != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", item.ID.String(), cacheErr)
	}
	return nil
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeleteItem(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", id.String(), cacheErr)
	}
	return nil
}

func (s *itemService) List(ctx context.Context, limit, offset int) ([]*models.SupplyItem, error) {
	return s.itemRepo.List(ctx, limit, offset)
}

func (s *itemService) Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.SupplyItem, error) {
	return s.itemRepo.Search(ctx, filter)
}
