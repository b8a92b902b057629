package services

import (
	"context"
	"errors"
	"fmt"

	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/google/uuid"
)

// ErrInvalidTransition rejects review actions on requests that are not in
// the state the action expects.
var ErrInvalidTransition = errors.New("invalid stock request state transition")

// ApprovalService runs the stock-request workflow: wards submit requests,
// reviewers approve or reject them, approved requests are fulfilled by
// moving stock.
type ApprovalService interface {
	Submit(ctx context.Context, request *models.StockRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockRequest, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.StockRequest, error)
	Approve(ctx context.Context, id uuid.UUID, reviewedBy string, note *string) error
	Reject(ctx context.Context, id uuid.UUID, reviewedBy string, note *string) error
	Fulfill(ctx context.Context, id uuid.UUID, reviewedBy string) error
}

type approvalService struct {
	requestRepo repositories.StockRequestRepository
	stockRepo   repositories.LocationStockRepository
	itemRepo    repositories.ItemRepository
}

func NewApprovalService(requestRepo repositories.StockRequestRepository, stockRepo repositories.LocationStockRepository, itemRepo repositories.ItemRepository) ApprovalService {
	return &approvalService{
		requestRepo: requestRepo,
		stockRepo:   stockRepo,
		itemRepo:    itemRepo,
	}
}

func (s *approvalService) Submit(ctx context.Context, request *models.StockRequest) error {
	if request.Quantity <= 0 {
		return errors.New("requested quantity must be positive")
	}
	if request.RequestedBy == "" {
		return errors.New("requester is required")
	}
	if _, err := s.itemRepo.GetByID(ctx, request.ItemID); err != nil {
		return fmt.Errorf("item %s: %w", request.ItemID, err)
	}

	request.ID = uuid.New()
	request.Status = models.RequestStatusPending
	return s.requestRepo.Create(ctx, request)
}

func (s *approvalService) GetByID(ctx context.Context, id uuid.UUID) (*models.StockRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *approvalService) List(ctx context.Context, status string, limit, offset int) ([]*models.StockRequest, error) {
	if status != "" && !models.ValidRequestStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.requestRepo.List(ctx, status, limit, offset)
}

func (s *approvalService) Approve(ctx context.Context, id uuid.UUID, reviewedBy string, note *string) error {
	return s.review(ctx, id, reviewedBy, note, models.RequestStatusApproved)
}

func (s *approvalService) Reject(ctx context.Context, id uuid.UUID, reviewedBy string, note *string) error {
	return s.review(ctx, id, reviewedBy, note, models.RequestStatusRejected)
}

func (s *approvalService) review(ctx context.Context, id uuid.UUID, reviewedBy string, note *string, status string) error {
	if reviewedBy == "" {
		return errors.New("reviewer is required")
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != models.RequestStatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, status)
	}

	return s.requestRepo.UpdateStatus(ctx, id, status, reviewedBy, note)
}

// Fulfill moves the approved quantity into the requesting location and
// closes the request.
func (s *approvalService) Fulfill(ctx context.Context, id uuid.UUID, reviewedBy string) error {
	if reviewedBy == "" {
		return errors.New("reviewer is required")
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != models.RequestStatusApproved {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, models.RequestStatusFulfilled)
	}

	if err := s.stockRepo.AdjustQuantity(ctx, request.ItemID, request.LocationID, request.Quantity); err != nil {
		return fmt.Errorf("apply fulfilment: %w", err)
	}

	return s.requestRepo.UpdateStatus(ctx, id, models.RequestStatusFulfilled, reviewedBy, request.ReviewNote)
}
