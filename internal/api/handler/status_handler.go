package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

// StatusHandler exposes member status endpoints. Reads are public; writes
// are admin only.
type StatusHandler struct {
	statuses *service.StatusService
}

func NewStatusHandler(statuses *service.StatusService) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

type setStatusRequest struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// All returns every member status.
func (h *StatusHandler) All(c echo.Context) error {
	statuses, err := h.statuses.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}

// Get returns one member's status, or an empty object when none is set.
func (h *StatusHandler) Get(c echo.Context) error {
	status, err := h.statuses.Get(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}
	if status == nil {
		return c.JSON(http.StatusOK, map[string]any{})
	}
	return c.JSON(http.StatusOK, status)
}

// Set records a member's status.
func (h *StatusHandler) Set(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	status, err := h.statuses.Set(c.Request().Context(), c.Param("ref"), req.Text, req.Emoji)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// Clear removes a member's status.
func (h *StatusHandler) Clear(c echo.Context) error {
	existed, err := h.statuses.Clear(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}
	if !existed {
		return c.JSON(http.StatusOK, map[string]string{"message": "no status to clear"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status cleared"})
}
