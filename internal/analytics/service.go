package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"medstock/internal/caching"
	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/shopspring/decimal"
)

// AnalyticsService computes and caches the dashboard overview numbers.
type AnalyticsService struct {
	itemRepo     repositories.ItemRepository
	stockRepo    repositories.LocationStockRepository
	batchRepo    repositories.BatchRepository
	requestRepo  repositories.StockRequestRepository
	cacheService caching.CacheService
}

// Overview is the aggregate the dashboard's summary cards render.
type Overview struct {
	ItemCount            int             `json:"item_count"`
	LowStockCount        int             `json:"low_stock_count"`
	ExpiringBatchesCount int             `json:"expiring_batches_count"`
	PendingRequestsCount int             `json:"pending_requests_count"`
	TotalStockValue      decimal.Decimal `json:"total_stock_value"`
	LastUpdated          time.Time       `json:"last_updated"`
}

const (
	overviewCacheTTL = 5 * time.Minute
	expiryWindow     = 30 * 24 * time.Hour
)

func NewAnalyticsService(itemRepo repositories.ItemRepository, stockRepo repositories.LocationStockRepository,
	batchRepo repositories.BatchRepository, requestRepo repositories.StockRequestRepository,
	cacheService caching.CacheService) *AnalyticsService {
	return &AnalyticsService{
		itemRepo:     itemRepo,
		stockRepo:    stockRepo,
		batchRepo:    batchRepo,
		requestRepo:  requestRepo,
		cacheService: cacheService,
	}
}

// Overview serves the dashboard aggregate, cache-aside.
func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	if cached, err := s.cacheService.GetOverview(ctx); cached != nil {
		if overview, ok := overviewFromMap(cached); ok {
			return overview, nil
		}
	} else if err != nil {
		log.Printf("Cache error for analytics overview: %v", err)
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the overview from the database and re-caches it; also
// invoked periodically by the background scheduler.
func (s *AnalyticsService) Refresh(ctx context.Context) (*Overview, error) {
	itemCount, err := s.itemRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	lowStock, err := s.stockRepo.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}
	expiring, err := s.batchRepo.CountExpiringBefore(ctx, time.Now().Add(expiryWindow))
	if err != nil {
		return nil, fmt.Errorf("count expiring batches: %w", err)
	}
	pending, err := s.requestRepo.CountByStatus(ctx, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}
	totalValue, err := s.totalStockValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock value: %w", err)
	}

	overview := &Overview{
		ItemCount:            itemCount,
		LowStockCount:        lowStock,
		ExpiringBatchesCount: expiring,
		PendingRequestsCount: pending,
		TotalStockValue:      totalValue,
		LastUpdated:          time.Now(),
	}

	if cacheErr := s.cacheService.SetOverview(ctx, overview.toMap(), overviewCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache analytics overview: %v", cacheErr)
	}

	return overview, nil
}

// totalStockValue sums unit cost times on-hand quantity across all items.
// Decimal arithmetic keeps the money math exact.
func (s *AnalyticsService) totalStockValue(ctx context.Context) (decimal.Decimal, error) {
	quantities, err := s.stockRepo.ItemQuantities(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	offset := 0
	const pageSize = 500
	for {
		items, err := s.itemRepo.List(ctx, pageSize, offset)
		if err != nil {
			return decimal.Zero, err
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			if qty, ok := quantities[item.ID]; ok && qty > 0 {
				total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(qty))))
			}
		}
		if len(items) < pageSize {
			break
		}
		offset += pageSize
	}
	return total, nil
}

func (o *Overview) toMap() map[string]interface{} {
	return map[string]interface{}{
		"item_count":             o.ItemCount,
		"low_stock_count":        o.LowStockCount,
		"expiring_batches_count": o.ExpiringBatchesCount,
		"pending_requests_count": o.PendingRequestsCount,
		"total_stock_value":      o.TotalStockValue.String(),
		"last_updated":           o.LastUpdated.Format(time.RFC3339),
	}
}

func overviewFromMap(m map[string]interface{}) (*Overview, bool) {
	value, err := decimal.NewFromString(fmt.Sprintf("%v", m["total_stock_value"]))
	if err != nil {
		return nil, false
	}
	lastUpdated, err := time.Parse(time.RFC3339, fmt.Sprintf("%v", m["last_updated"]))
	if err != nil {
		return nil, false
	}

	asInt := func(key string) int {
		if f, ok := m[key].(float64); ok {
			return int(f)
		}
		return 0
	}

	return &Overview{
		ItemCount:            asInt("item_count"),
		LowStockCount:        asInt("low_stock_count"),
		ExpiringBatchesCount: asInt("expiring_batches_count"),
		PendingRequestsCount: asInt("pending_requests_count"),
		TotalStockValue:      value,
		LastUpdated:          lastUpdated,
	}, true
}
