package handlers

import (
	"errors"
	"net/http"

	"medstock/internal/common"
	"medstock/internal/distribution"
	"medstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DistributionHandlers exposes the two-step plan/confirm distribution flow.
type DistributionHandlers struct {
	distributionService services.DistributionService
}

func NewDistributionHandlers(distributionService services.DistributionService) *DistributionHandlers {
	return &DistributionHandlers{distributionService: distributionService}
}

// PlanDistributionRequest asks for a proposed allocation of newly received
// stock across locations. Nothing is committed until the plan is executed.
type PlanDistributionRequest struct {
	ItemID        uuid.UUID `json:"item_id"`
	TotalQuantity int       `json:"total_quantity"`
	ReasonCode    string    `json:"reason_code"`
}

func (h *DistributionHandlers) PlanDistribution(c echo.Context) error {
	ctx := c.Request().Context()

	var req PlanDistributionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ItemID == uuid.Nil {
		return common.SendValidationError(c, "item_id", "item_id is required")
	}

	pending, err := h.distributionService.Plan(ctx, req.ItemID, req.TotalQuantity, req.ReasonCode)
	if err != nil {
		if errors.Is(err, distribution.ErrInvalidQuantity) {
			return common.SendValidationError(c, "total_quantity", err.Error())
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"plan_id":              pending.PlanID,
		"item_id":              pending.ItemID,
		"item_name":            pending.ItemName,
		"total_quantity":       pending.TotalQuantity,
		"allocations":          pending.Plan.Lines,
		"unallocated_quantity": pending.Plan.UnallocatedQuantity,
		"summary":              h.distributionService.Summary(pending),
	})
}

func (h *DistributionHandlers) GetPendingDistribution(c echo.Context) error {
	ctx := c.Request().Context()

	planID, err := common.ValidateUUID(c.Param("id"), "plan id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	pending, err := h.distributionService.GetPending(ctx, planID)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			return common.SendNotFoundError(c, "Plan not found or expired")
		}
		return common.SendServerError(c, "Failed to fetch plan")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"plan_id":              pending.PlanID,
		"item_id":              pending.ItemID,
		"item_name":            pending.ItemName,
		"total_quantity":       pending.TotalQuantity,
		"allocations":          pending.Plan.Lines,
		"unallocated_quantity": pending.Plan.UnallocatedQuantity,
		"summary":              h.distributionService.Summary(pending),
	})
}

// ExecuteDistribution is the operator confirmation step. It applies the
// parked plan's deltas atomically.
func (h *DistributionHandlers) ExecuteDistribution(c echo.Context) error {
	ctx := c.Request().Context()

	planID, err := common.ValidateUUID(c.Param("id"), "plan id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	pending, err := h.distributionService.Execute(ctx, planID)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			return common.SendNotFoundError(c, "Plan not found or expired")
		}
		return common.SendServerError(c, "Failed to execute plan")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"plan_id":            pending.PlanID,
		"item_id":            pending.ItemID,
		"allocated_quantity": pending.Plan.TotalAllocated(),
		"status":             "executed",
	})
}

func (h *DistributionHandlers) DiscardDistribution(c echo.Context) error {
	ctx := c.Request().Context()

	planID, err := common.ValidateUUID(c.Param("id"), "plan id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.distributionService.Discard(ctx, planID); err != nil {
		return common.SendServerError(c, "Failed to discard plan")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "discarded"})
}
