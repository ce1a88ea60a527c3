package service

import (
	"fmt"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// Policy is the pure permission decision logic over (actor, target,
// operation). Rules are evaluated in a fixed precedence order; the first
// violated rule decides the outcome. Password verification is the one rule
// that needs the credential primitive and lives in the user service.
type Policy struct {
	// OwnerUsername designates the single distinguished owner account.
	OwnerUsername string
}

// CanList reports whether actor may list user accounts.
func (p Policy) CanList(actor *domain.User) error {
	if actor == nil || !actor.IsAdmin {
		return fmt.Errorf("%w: admin privileges required", domain.ErrForbidden)
	}
	return nil
}

// CanCreate reports whether actor may create an account with the given
// username. A nil actor means bootstrap: the only context in which the owner
// username may be created.
func (p Policy) CanCreate(actor *domain.User, username string) error {
	if actor != nil && !actor.IsAdmin {
		return fmt.Errorf("%w: admin privileges required", domain.ErrForbidden)
	}
	if actor != nil && domain.IsOwnerUsername(username, p.OwnerUsername) {
		return fmt.Errorf("%w: owner account must be created via initial setup", domain.ErrForbidden)
	}
	return nil
}

// CanUpdate reports whether actor may apply patch to target.
func (p Policy) CanUpdate(actor *domain.User, target *domain.User, patch domain.UserPatch) error {
	if actor == nil {
		return fmt.Errorf("%w: authentication required", domain.ErrForbidden)
	}

	self := actor.ID == target.ID
	if !actor.IsAdmin {
		if !self {
			return fmt.Errorf("%w: not authorized to update this user", domain.ErrForbidden)
		}
		// Self-service updates cover display name, avatar and password only.
		if patch.IsAdmin != nil || patch.IsPet != nil {
			return fmt.Errorf("%w: cannot change privileged fields", domain.ErrForbidden)
		}
	}

	ownerTarget := domain.IsOwnerUsername(target.Username, p.OwnerUsername)
	if ownerTarget && patch.IsAdmin != nil && !*patch.IsAdmin {
		return fmt.Errorf("%w: cannot remove admin privileges from owner", domain.ErrForbidden)
	}

	if target.IsAdmin && !self && !actor.IsOwner {
		return fmt.Errorf("%w: only the owner can modify admin accounts", domain.ErrForbidden)
	}

	return nil
}

// CanDelete reports whether actor may delete target.
func (p Policy) CanDelete(actor *domain.User, target *domain.User) error {
	if actor == nil || !actor.IsAdmin {
		return fmt.Errorf("%w: admin privileges required", domain.ErrForbidden)
	}

	if domain.IsOwnerUsername(target.Username, p.OwnerUsername) {
		return fmt.Errorf("%w: cannot delete the owner account", domain.ErrForbidden)
	}

	if target.IsAdmin && actor.ID != target.ID && !actor.IsOwner {
		return fmt.Errorf("%w: only the owner can delete admin accounts", domain.ErrForbidden)
	}

	if actor.ID == target.ID {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	}

	return nil
}
