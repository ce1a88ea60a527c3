package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
)

type AuthHandler struct {
	users  ports.UserService
	tokens *service.TokenService
}

func NewAuthHandler(users ports.UserService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a username/password pair and returns a session token
// together with the user record.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// IsAdmin reports the current user's admin flag for the frontend's route
// guards.
func (h *AuthHandler) IsAdmin(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_admin": user.IsAdmin})
}
