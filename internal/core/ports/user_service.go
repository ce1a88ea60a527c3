package ports

import (
	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// UserService defines the use-case operations over the user directory.
//
// The actor is the authenticated user performing the operation; a nil actor
// is only valid for Bootstrap, which runs before any authentication exists.
type UserService interface {
	List(actor *domain.User) ([]domain.User, error)
	GetByID(id string) (*domain.User, error)
	GetByUsername(username string) (*domain.User, error)
	Create(draft domain.UserDraft, actor *domain.User) (*domain.User, error)
	Update(id string, patch domain.UserPatch, actor *domain.User) (*domain.User, error)
	Delete(id string, actor *domain.User) error
	// SetAvatarURL records the stored avatar location on the user, bypassing
	// the patch permission rules already enforced by the upload handler.
	SetAvatarURL(id, avatarURL string) (*domain.User, error)
	// Authenticate verifies a username/password pair for login.
	Authenticate(username, password string) (*domain.User, error)
	// Bootstrap synthesizes the owner account when the store is empty.
	Bootstrap() error
}
