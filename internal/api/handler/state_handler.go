package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

// StateHandler exposes the mental state endpoints. The read is public so
// the site banner works without login; the write is admin only.
type StateHandler struct {
	states *service.MentalStateService
}

func NewStateHandler(states *service.MentalStateService) *StateHandler {
	return &StateHandler{states: states}
}

type setStateRequest struct {
	Level string `json:"level" validate:"required"`
	Notes string `json:"notes"`
}

// Get returns the current mental state.
func (h *StateHandler) Get(c echo.Context) error {
	state, err := h.states.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// Set records a new mental state and broadcasts it.
func (h *StateHandler) Set(c echo.Context) error {
	var req setStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.states.Set(c.Request().Context(), req.Level, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}
