package handlers

import (
	"net/http"
	"strconv"
	"time"

	"medstock/internal/common"
	"medstock/internal/jobs"

	"github.com/labstack/echo/v4"
)

// AlertHandlers backs the dashboard alert panels
type AlertHandlers struct {
	alertService *jobs.StockAlertService
}

func NewAlertHandlers(alertService *jobs.StockAlertService) *AlertHandlers {
	return &AlertHandlers{alertService: alertService}
}

func (h *AlertHandlers) LowStockAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 100
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			return common.SendValidationError(c, "limit", "limit must be a positive integer")
		}
		limit = parsed
	}

	alerts, err := h.alertService.CheckLowStock(ctx, limit)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch low stock alerts")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

func (h *AlertHandlers) ExpiryAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	days := 30
	if d := c.QueryParam("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			return common.SendValidationError(c, "days", "days must be a positive integer")
		}
		days = parsed
	}

	alerts, err := h.alertService.CheckExpiringBatches(ctx, time.Duration(days)*24*time.Hour, 100)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch expiry alerts")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"window_days": days,
		"alerts":      alerts,
		"count":       len(alerts),
	})
}
