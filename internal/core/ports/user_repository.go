package ports

import (
	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// UserRepository defines the interface for user directory persistence.
//
// The backing store holds the full record set and rewrites it wholesale on
// every mutation; implementations must serialize mutations so that two
// concurrent Inserts with the same username cannot both succeed, and must
// re-assert the owner invariants on every load and save.
type UserRepository interface {
	List() ([]domain.User, error)
	FindByID(id string) (*domain.User, error)
	// FindByUsername matches case-insensitively.
	FindByUsername(username string) (*domain.User, error)
	// Insert adds a new record, failing with domain.ErrUsernameTaken when the
	// username (case-insensitive) is already present.
	Insert(user domain.User) error
	// Save replaces the record with the same ID, failing with
	// domain.ErrUserNotFound when it is absent.
	Save(user domain.User) error
	// Delete removes the record by ID, failing with domain.ErrUserNotFound
	// when it is absent.
	Delete(id string) error
}
