package handlers

import (
	"net/http"

	"medstock/internal/analytics"
	"medstock/internal/common"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandlers serves the dashboard overview numbers
type AnalyticsHandlers struct {
	analyticsService *analytics.AnalyticsService
}

func NewAnalyticsHandlers(analyticsService *analytics.AnalyticsService) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsService: analyticsService}
}

func (h *AnalyticsHandlers) GetOverview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.analyticsService.Overview(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to compute overview")
	}

	return c.JSON(http.StatusOK, overview)
}
