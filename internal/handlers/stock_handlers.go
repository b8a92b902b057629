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

// StockHandlers handles per-location stock HTTP requests
type StockHandlers struct {
	stockService services.StockService
}

func NewStockHandlers(stockService services.StockService) *StockHandlers {
	return &StockHandlers{stockService: stockService}
}

// GetItemStock returns the multi-location stock table the dashboard's
// inventory view renders for an item.
func (h *StockHandlers) GetItemStock(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("itemId"), "item id")
	if err != nil {
		return common.SendValidationError(c, "itemId", err.Error())
	}

	snapshot, err := h.stockService.CachedSnapshot(ctx, itemID)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch stock")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"item_id":   itemID,
		"locations": snapshot,
	})
}

func (h *StockHandlers) GetLocationStock(c echo.Context) error {
	ctx := c.Request().Context()

	locationID, err := common.ValidateUUID(c.Param("locationId"), "location id")
	if err != nil {
		return common.SendValidationError(c, "locationId", err.Error())
	}

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	stocks, err := h.stockService.ListByLocation(ctx, locationID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch stock")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"location_id": locationID,
		"stock":       stocks,
	})
}

// UpsertStockRequest registers an item at a location or adds quantity to an
// existing row.
type UpsertStockRequest struct {
	ItemID           uuid.UUID `json:"item_id"`
	LocationID       uuid.UUID `json:"location_id"`
	Quantity         int       `json:"quantity"`
	MinimumThreshold int       `json:"minimum_threshold"`
	MaximumCapacity  int       `json:"maximum_capacity"`
}

func (h *StockHandlers) UpsertStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpsertStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Quantity < 0 {
		return common.SendValidationError(c, "quantity", "quantity cannot be negative")
	}

	stock := &models.LocationStock{
		ItemID:           req.ItemID,
		LocationID:       req.LocationID,
		Quantity:         req.Quantity,
		MinimumThreshold: req.MinimumThreshold,
		MaximumCapacity:  req.MaximumCapacity,
	}
	if err := h.stockService.Upsert(ctx, stock); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, stock)
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	ItemID     uuid.UUID `json:"item_id"`
	LocationID uuid.UUID `json:"location_id"`
	Delta      int       `json:"delta"`
}

func (h *StockHandlers) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.stockService.Adjust(ctx, req.ItemID, req.LocationID, req.Delta); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "adjusted"})
}

// TransferStockRequest represents a stock move between two locations
type TransferStockRequest struct {
	ItemID         uuid.UUID `json:"item_id"`
	FromLocationID uuid.UUID `json:"from_location_id"`
	ToLocationID   uuid.UUID `json:"to_location_id"`
	Quantity       int       `json:"quantity"`
}

func (h *StockHandlers) TransferStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req TransferStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidatePositiveInteger(req.Quantity, "quantity", 1000000); err != nil {
		return common.SendValidationError(c, "quantity", err.Error())
	}

	err := h.stockService.Transfer(ctx, req.ItemID, req.FromLocationID, req.ToLocationID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			return common.SendConflictError(c, err.Error())
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "transferred"})
}

// UpdateBoundsRequest changes a stock row's threshold and capacity
type UpdateBoundsRequest struct {
	ItemID           uuid.UUID `json:"item_id"`
	LocationID       uuid.UUID `json:"location_id"`
	MinimumThreshold int       `json:"minimum_threshold"`
	MaximumCapacity  int       `json:"maximum_capacity"`
}

func (h *StockHandlers) UpdateBounds(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateBoundsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	err := h.stockService.UpdateBounds(ctx, req.ItemID, req.LocationID, req.MinimumThreshold, req.MaximumCapacity)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *StockHandlers) LowStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	stocks, err := h.stockService.LowStock(ctx, req.Limit)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch low stock")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"low_stock": stocks,
	})
}
