package handlers

import (
	"errors"
	"net/http"

	"medstock/internal/common"
	"medstock/internal/models"
	"medstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ApprovalHandlers handles the stock request approval workflow
type ApprovalHandlers struct {
	approvalService services.ApprovalService
}

func NewApprovalHandlers(approvalService services.ApprovalService) *ApprovalHandlers {
	return &ApprovalHandlers{approvalService: approvalService}
}

type CreateStockRequestRequest struct {
	ItemID      uuid.UUID `json:"item_id"`
	LocationID  uuid.UUID `json:"location_id"`
	Quantity    int       `json:"quantity"`
	RequestedBy string    `json:"requested_by"`
	Note        *string   `json:"note"`
}

func (h *ApprovalHandlers) CreateStockRequest(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateStockRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidatePositiveInteger(req.Quantity, "quantity", 1000000); err != nil {
		return common.SendValidationError(c, "quantity", err.Error())
	}
	if err := common.ValidateRequiredString(req.RequestedBy, "requested_by"); err != nil {
		return common.SendValidationError(c, "requested_by", err.Error())
	}

	request := &models.StockRequest{
		ItemID:      req.ItemID,
		LocationID:  req.LocationID,
		Quantity:    req.Quantity,
		RequestedBy: req.RequestedBy,
		Note:        req.Note,
	}
	if err := h.approvalService.Submit(ctx, request); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, request)
}

type ListStockRequestsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *ApprovalHandlers) ListStockRequests(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListStockRequestsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Status != "" && !models.ValidRequestStatus(req.Status) {
		return common.SendValidationError(c, "status", "unknown request status")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	requests, err := h.approvalService.List(ctx, req.Status, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch stock requests")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *ApprovalHandlers) GetStockRequest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	request, err := h.approvalService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Stock request not found")
	}

	return c.JSON(http.StatusOK, request)
}

// ReviewRequest carries the reviewer identity for approve/reject/fulfill.
type ReviewRequest struct {
	ReviewedBy string  `json:"reviewed_by"`
	Note       *string `json:"note"`
}

func (h *ApprovalHandlers) ApproveStockRequest(c echo.Context) error {
	return h.review(c, func(ctx echo.Context, id uuid.UUID, req *ReviewRequest) error {
		return h.approvalService.Approve(ctx.Request().Context(), id, req.ReviewedBy, req.Note)
	})
}

func (h *ApprovalHandlers) RejectStockRequest(c echo.Context) error {
	return h.review(c, func(ctx echo.Context, id uuid.UUID, req *ReviewRequest) error {
		return h.approvalService.Reject(ctx.Request().Context(), id, req.ReviewedBy, req.Note)
	})
}

func (h *ApprovalHandlers) FulfillStockRequest(c echo.Context) error {
	return h.review(c, func(ctx echo.Context, id uuid.UUID, req *ReviewRequest) error {
		return h.approvalService.Fulfill(ctx.Request().Context(), id, req.ReviewedBy)
	})
}

func (h *ApprovalHandlers) review(c echo.Context, apply func(echo.Context, uuid.UUID, *ReviewRequest) error) error {
	id, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.ReviewedBy, "reviewed_by"); err != nil {
		return common.SendValidationError(c, "reviewed_by", err.Error())
	}

	if err := apply(c, id, &req); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return common.SendConflictError(c, err.Error())
		}
		if errors.Is(err, services.ErrInsufficientStock) {
			return common.SendConflictError(c, err.Error())
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
