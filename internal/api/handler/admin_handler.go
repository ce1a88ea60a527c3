package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

// AdminHandler exposes operational admin endpoints.
type AdminHandler struct {
	dispatcher *service.UpdateDispatcher
	cache      ports.MemberCache
	log        zerolog.Logger
}

func NewAdminHandler(dispatcher *service.UpdateDispatcher, cache ports.MemberCache, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{dispatcher: dispatcher, cache: cache, log: log}
}

// Refresh drops the member cache and tells every connected client to
// reload.
func (h *AdminHandler) Refresh(c echo.Context) error {
	if err := h.cache.Invalidate(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("member cache invalidation failed")
	}
	h.dispatcher.ForceRefresh("refresh requested by admin")
	return c.JSON(http.StatusOK, map[string]string{"message": "refresh broadcast sent"})
}
