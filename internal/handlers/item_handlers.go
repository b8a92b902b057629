package handlers

import (
	"net/http"
	"strconv"

	"medstock/internal/common"
	"medstock/internal/models"
	"medstock/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ItemHandlers handles supply item HTTP requests
type ItemHandlers struct {
	itemService services.ItemService
}

func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{itemService: itemService}
}

// ListItemsRequest represents query parameters for listing items
type ListItemsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *ItemHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	items, err := h.itemService.List(ctx, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateItemRequest represents the item creation payload
type CreateItemRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.SKU, "sku"); err != nil {
		return common.SendValidationError(c, "sku", err.Error())
	}

	item := &models.SupplyItem{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Unit:     req.Unit,
		UnitCost: req.UnitCost,
	}
	if err := h.itemService.Create(ctx, item); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item := &models.SupplyItem{
		ID:       id,
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Unit:     req.Unit,
		UnitCost: req.UnitCost,
	}
	if err := h.itemService.Update(ctx, item); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.itemService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandlers) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.ItemSearchFilter{
		Query:     common.SanitizeSearchQuery(c.QueryParam("q")),
		Category:  c.QueryParam("category"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	filter.Limit, filter.Offset = common.ValidatePaginationParams(limit, offset)

	items, err := h.itemService.Search(ctx, filter)
	if err != nil {
		return common.SendServerError(c, "Failed to search items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"query": filter.Query,
	})
}
