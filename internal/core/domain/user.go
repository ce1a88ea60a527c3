package domain

import (
	"errors"
	"strings"
)

// User models an account in the site's user directory.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	IsOwner      bool   `json:"is_owner"`
	IsAdmin      bool   `json:"is_admin"`
	IsPet        bool   `json:"is_pet"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")
var ErrInvalidCredentials = errors.New("invalid credentials")

// IsOwnerUsername reports whether username designates the configured owner
// account. The comparison is case-insensitive, matching username lookup.
func IsOwnerUsername(username, ownerUsername string) bool {
	return strings.EqualFold(username, ownerUsername)
}

// Normalize re-derives the owner-bound flags from the username. The owner
// record always carries is_owner and is_admin regardless of what was stored,
// so a corrupted record heals on the next load or save.
func (u *User) Normalize(ownerUsername string) {
	if IsOwnerUsername(u.Username, ownerUsername) {
		u.IsOwner = true
		u.IsAdmin = true
	} else {
		u.IsOwner = false
	}
}

// UserDraft carries the caller-supplied fields for creating a user.
type UserDraft struct {
	Username    string
	Password    string
	DisplayName string
	IsAdmin     bool
	IsPet       bool
}

// UserPatch carries the optional fields of an update request. Nil means
// "leave unchanged". IsOwner is deliberately absent: it is derived from the
// username and can never be set.
type UserPatch struct {
	DisplayName     *string
	IsAdmin         *bool
	IsPet           *bool
	AvatarURL       *string
	CurrentPassword string
	NewPassword     string
}
