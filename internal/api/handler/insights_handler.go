package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

// InsightsHandler exposes the fronting statistics endpoints.
type InsightsHandler struct {
	insights *service.InsightsService
}

func NewInsightsHandler(insights *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// FrontingTime returns per-member front time over the requested window.
func (h *InsightsHandler) FrontingTime(c echo.Context) error {
	entries, err := h.insights.FrontingTime(c.Request().Context(), queryDays(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// SwitchFrequency returns the switch rate over the requested window.
func (h *InsightsHandler) SwitchFrequency(c echo.Context) error {
	freq, err := h.insights.SwitchFrequency(c.Request().Context(), queryDays(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, freq)
}

// queryDays parses the optional ?days= parameter; 0 lets the service apply
// its default window.
func queryDays(c echo.Context) int {
	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil || days < 0 {
		return 0
	}
	return days
}
