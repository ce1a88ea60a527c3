package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// Accepted avatar extensions. Anything else is rejected before touching disk.
var avatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type UserHandler struct {
	users   ports.UserService
	dataDir string
	log     zerolog.Logger
}

func NewUserHandler(users ports.UserService, dataDir string, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, dataDir: dataDir, log: log}
}

type createUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=64"`
	Password    string `json:"password" validate:"required,min=4"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
	IsPet       bool   `json:"is_pet"`
}

type updateUserRequest struct {
	DisplayName     *string `json:"display_name"`
	AvatarURL       *string `json:"avatar_url"`
	IsAdmin         *bool   `json:"is_admin"`
	IsPet           *bool   `json:"is_pet"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

// List returns every user in the directory. Admin only.
func (h *UserHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a new user. Admin only; the owner username is never creatable
// through the API.
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(domain.UserDraft{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		IsAdmin:     req.IsAdmin,
		IsPet:       req.IsPet,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update modifies a user. Admins can patch anyone within the policy rules;
// a non-admin can only change their own display name and password.
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Param("id"), domain.UserPatch{
		DisplayName:     req.DisplayName,
		AvatarURL:       req.AvatarURL,
		IsAdmin:         req.IsAdmin,
		IsPet:           req.IsPet,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user. Admin only; the owner and the actor's own account
// are protected by the policy.
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadAvatar stores an avatar image for the user and records its URL.
// The route carries a 2M body limit; here we only validate the extension
// and replace any previous file.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	target, err := h.users.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && actor.ID != target.ID {
		return domain.ErrForbidden
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !avatarExtensions[ext] {
		return fmt.Errorf("%w: unsupported image type %q", domain.ErrValidation, ext)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	filename := fmt.Sprintf("%s_%s%s", target.ID, uuid.NewString(), ext)
	path := filepath.Join(h.dataDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	h.removeOldAvatar(target.AvatarURL)

	user, err := h.users.SetAvatarURL(id, "/avatars/"+filename)
	if err != nil {
		os.Remove(path)
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ServeAvatar serves a stored avatar file. The filename is reduced to its
// basename so the data dir cannot be escaped.
func (h *UserHandler) ServeAvatar(c echo.Context) error {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == string(filepath.Separator) {
		return echo.NewHTTPError(http.StatusNotFound, "avatar not found")
	}

	path := filepath.Join(h.dataDir, filename)
	if _, err := os.Stat(path); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "avatar not found")
	}
	return c.File(path)
}

// removeOldAvatar deletes the previously stored avatar file, if any. A
// failure only costs disk space, so it is logged and ignored.
func (h *UserHandler) removeOldAvatar(avatarURL string) {
	if avatarURL == "" {
		return
	}
	filename := filepath.Base(avatarURL)
	if err := os.Remove(filepath.Join(h.dataDir, filename)); err != nil && !os.IsNotExist(err) {
		h.log.Warn().Err(err).Str("avatar", filename).Msg("failed to remove old avatar")
	}
}
