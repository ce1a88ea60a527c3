package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

// FrontHandler exposes the authenticated front-control endpoints.
type FrontHandler struct {
	fronts *service.FrontService
}

func NewFrontHandler(fronts *service.FrontService) *FrontHandler {
	return &FrontHandler{fronts: fronts}
}

type switchRequest struct {
	Members []string `json:"members"`
}

type switchFrontRequest struct {
	MemberID string `json:"member_id" validate:"required"`
}

type multiSwitchRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// Switch registers a new front with the given member IDs. An empty list is
// a switch-out.
func (h *FrontHandler) Switch(c echo.Context) error {
	var req switchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.fronts.Switch(c.Request().Context(), req.Members); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "switch registered"})
}

// SwitchFront puts a single member in front.
func (h *FrontHandler) SwitchFront(c echo.Context) error {
	var req switchFrontRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	switched, err := h.fronts.SwitchWithDetails(c.Request().Context(), []string{req.MemberID})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "switch registered",
		"members": switched,
	})
}

// MultiSwitch puts several members in front at once and responds with the
// resolved member names.
func (h *FrontHandler) MultiSwitch(c echo.Context) error {
	var req multiSwitchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.MemberIDs == nil {
		return fmt.Errorf("%w: member_ids must be a list", domain.ErrValidation)
	}

	switched, err := h.fronts.SwitchWithDetails(c.Request().Context(), req.MemberIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "switch registered",
		"members": switched,
	})
}
