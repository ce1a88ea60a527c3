package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

// TagHandler exposes the admin tag-management endpoints.
type TagHandler struct {
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type replaceTagsRequest struct {
	Tags []string `json:"tags"`
}

type tagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

// All returns every tag assignment, keyed by member reference.
func (h *TagHandler) All(c echo.Context) error {
	tags, err := h.tags.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// Replace overwrites a member's complete tag list.
func (h *TagHandler) Replace(c echo.Context) error {
	var req replaceTagsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ref := c.Param("ref")
	if err := h.tags.Replace(c.Request().Context(), ref, req.Tags); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tags updated"})
}

// Add appends one tag to a member.
func (h *TagHandler) Add(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	added, err := h.tags.Add(c.Request().Context(), c.Param("ref"), req.Tag)
	if err != nil {
		return err
	}
	if !added {
		return c.JSON(http.StatusOK, map[string]string{"message": "tag already present"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "tag added"})
}

// Remove deletes one tag from a member.
func (h *TagHandler) Remove(c echo.Context) error {
	if err := h.tags.Remove(c.Request().Context(), c.Param("ref"), c.Param("tag")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tag removed"})
}
