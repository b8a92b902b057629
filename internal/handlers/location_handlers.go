package handlers

import (
	"net/http"

	"medstock/internal/common"
	"medstock/internal/models"
	"medstock/internal/services"

	"github.com/labstack/echo/v4"
)

// LocationHandlers handles location HTTP requests
type LocationHandlers struct {
	locationService services.LocationService
}

func NewLocationHandlers(locationService services.LocationService) *LocationHandlers {
	return &LocationHandlers{locationService: locationService}
}

type ListLocationsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *LocationHandlers) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListLocationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	locations, err := h.locationService.List(ctx, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list locations")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"locations": locations,
		"limit":     limit,
		"offset":    offset,
	})
}

// CreateLocationRequest represents the location creation payload
type CreateLocationRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PriorityRank int    `json:"priority_rank"`
}

func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	location := &models.Location{
		Name:         req.Name,
		Type:         req.Type,
		PriorityRank: req.PriorityRank,
	}
	if err := h.locationService.Create(ctx, location); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, location)
}

func (h *LocationHandlers) GetLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "location id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	location, err := h.locationService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Location")
	}

	return c.JSON(http.StatusOK, location)
}

func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "location id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	location := &models.Location{
		ID:           id,
		Name:         req.Name,
		Type:         req.Type,
		PriorityRank: req.PriorityRank,
	}
	if err := h.locationService.Update(ctx, location); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, location)
}

func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "location id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.locationService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete location")
	}

	return c.NoContent(http.StatusNoContent)
}
