package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"medstock/internal/caching"
	"medstock/internal/distribution"
	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when a plan id has no pending plan behind it,
// either because it never existed or its confirmation window lapsed.
var ErrPlanNotFound = errors.New("distribution plan not found or expired")

// How long a computed plan waits for operator confirmation before it is
// discarded. Stock may have moved by then, so stale plans must not execute.
const pendingPlanTTL = 15 * time.Minute

// DistributionService is the two-step distribute workflow: Plan computes and
// parks a plan, Execute applies it only after the operator confirms.
type DistributionService interface {
	Plan(ctx context.Context, itemID uuid.UUID, totalQuantity int, reasonCode string) (*models.PendingDistribution, error)
	GetPending(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error)
	Execute(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error)
	Discard(ctx context.Context, planID uuid.UUID) error
	Summary(pending *models.PendingDistribution) string
}

type distributionService struct {
	planner      *distribution.Planner
	itemRepo     repositories.ItemRepository
	stockRepo    repositories.LocationStockRepository
	cacheService caching.CacheService
}

func NewDistributionService(planner *distribution.Planner, itemRepo repositories.ItemRepository, stockRepo repositories.LocationStockRepository, cacheService caching.CacheService) DistributionService {
	return &distributionService{
		planner:      planner,
		itemRepo:     itemRepo,
		stockRepo:    stockRepo,
		cacheService: cacheService,
	}
}

func (s *distributionService) Plan(ctx context.Context, itemID uuid.UUID, totalQuantity int, reasonCode string) (*models.PendingDistribution, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", itemID, err)
	}
	if reasonCode == "" {
		reasonCode = "received_stock"
	}

	// Always plan on a fresh snapshot; a stale one could overfill a location
	// that received stock since.
	snapshot, err := s.stockRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("stock snapshot: %w", err)
	}

	plan, err := s.planner.Plan(&models.DistributionRequest{
		ItemID:        itemID,
		TotalQuantity: totalQuantity,
		ReasonCode:    reasonCode,
		Locations:     snapshot,
	})
	if err != nil {
		return nil, err
	}

	pending := &models.PendingDistribution{
		PlanID:        uuid.New(),
		ItemID:        itemID,
		ItemName:      item.Name,
		TotalQuantity: totalQuantity,
		ReasonCode:    reasonCode,
		Plan:          *plan,
		CreatedAt:     time.Now(),
	}

	if err := s.cacheService.SetPendingDistribution(ctx, pending, pendingPlanTTL); err != nil {
		return nil, fmt.Errorf("park pending plan: %w", err)
	}

	return pending, nil
}

func (s *distributionService) GetPending(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error) {
	pending, err := s.cacheService.GetPendingDistribution(ctx, planID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, ErrPlanNotFound
	}
	return pending, nil
}

// Execute applies a confirmed plan's per-location deltas in one transaction
// and drops the pending entry. A plan left unconfirmed simply expires.
func (s *distributionService) Execute(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error) {
	pending, err := s.GetPending(ctx, planID)
	if err != nil {
		return nil, err
	}

	deltas := make([]models.StockDelta, 0, len(pending.Plan.Lines))
	for _, line := range pending.Plan.Lines {
		deltas = append(deltas, models.StockDelta{LocationID: line.LocationID, Delta: line.Quantity})
	}

	if err := s.stockRepo.ApplyDeltas(ctx, pending.ItemID, deltas); err != nil {
		// Transaction rolled back; the pending plan stays available for retry
		// until its TTL lapses.
		return nil, fmt.Errorf("apply distribution: %w", err)
	}

	if cacheErr := s.cacheService.DeletePendingDistribution(ctx, planID); cacheErr != nil {
		log.Printf("Failed to drop executed plan %s: %v", planID.String(), cacheErr)
	}
	if cacheErr := s.cacheService.DeleteStockSnapshot(ctx, pending.ItemID); cacheErr != nil {
		log.Printf("Failed to invalidate stock snapshot for item %s: %v", pending.ItemID.String(), cacheErr)
	}

	return pending, nil
}

// Discard drops a pending plan without touching stock; declining at the
// confirmation prompt changes nothing anywhere.
func (s *distributionService) Discard(ctx context.Context, planID uuid.UUID) error {
	if _, err := s.GetPending(ctx, planID); err != nil {
		return err
	}
	return s.cacheService.DeletePendingDistribution(ctx, planID)
}

func (s *distributionService) Summary(pending *models.PendingDistribution) string {
	return distribution.Summarize(pending)
}
