package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/api/middleware"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth
// middleware. Its presence proves the middleware ran on this route.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
