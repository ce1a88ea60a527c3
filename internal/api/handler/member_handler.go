package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// MemberHandler serves the public system and member endpoints.
type MemberHandler struct {
	system    ports.SystemClient
	directory ports.MemberDirectory
}

func NewMemberHandler(system ports.SystemClient, directory ports.MemberDirectory) *MemberHandler {
	return &MemberHandler{system: system, directory: directory}
}

// System returns the tracked system's public profile.
func (h *MemberHandler) System(c echo.Context) error {
	info, err := h.system.GetSystem(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// Members returns all members, enriched with tags and statuses.
func (h *MemberHandler) Members(c echo.Context) error {
	members, err := h.directory.Members(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// Member resolves one member by upstream ID or case-insensitive name.
func (h *MemberHandler) Member(c echo.Context) error {
	member, err := h.directory.Member(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Fronters returns the current front.
func (h *MemberHandler) Fronters(c echo.Context) error {
	fronters, err := h.directory.Fronters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fronters)
}
