package handlers

import (
	"net/http"
	"strconv"
	"time"

	"medstock/internal/common"
	"medstock/internal/models"
	"medstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BatchHandlers handles expiry-tracked batch HTTP requests
type BatchHandlers struct {
	batchService services.BatchService
}

func NewBatchHandlers(batchService services.BatchService) *BatchHandlers {
	return &BatchHandlers{batchService: batchService}
}

type CreateBatchRequest struct {
	ItemID     uuid.UUID `json:"item_id"`
	LocationID uuid.UUID `json:"location_id"`
	LotNumber  string    `json:"lot_number"`
	Quantity   int       `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
}

func (h *BatchHandlers) CreateBatch(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.LotNumber, "lot_number"); err != nil {
		return common.SendValidationError(c, "lot_number", err.Error())
	}
	if err := common.ValidatePositiveInteger(req.Quantity, "quantity", 1000000); err != nil {
		return common.SendValidationError(c, "quantity", err.Error())
	}

	batch := &models.Batch{
		ItemID:     req.ItemID,
		LocationID: req.LocationID,
		LotNumber:  req.LotNumber,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
	}
	if err := h.batchService.Create(ctx, batch); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, batch)
}

func (h *BatchHandlers) ListItemBatches(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("itemId"), "item id")
	if err != nil {
		return common.SendValidationError(c, "itemId", err.Error())
	}

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	batches, err := h.batchService.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch batches")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"item_id": itemID,
		"batches": batches,
	})
}

// ExpiringBatches backs the dashboard's expiry alert panel.
func (h *BatchHandlers) ExpiringBatches(c echo.Context) error {
	ctx := c.Request().Context()

	days := 30
	if d := c.QueryParam("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			return common.SendValidationError(c, "days", "days must be a positive integer")
		}
		days = parsed
	}

	batches, err := h.batchService.ExpiringSoon(ctx, time.Duration(days)*24*time.Hour, 100)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch expiring batches")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"window_days": days,
		"batches":     batches,
	})
}

func (h *BatchHandlers) DeleteBatch(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "batch id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.batchService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete batch")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
