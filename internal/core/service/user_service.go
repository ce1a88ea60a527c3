package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// bcryptHashPattern recognises an already-hashed owner password supplied via
// the environment, so bootstrap can store it verbatim.
var bcryptHashPattern = regexp.MustCompile(`^\$2[aby]\$\d+\$.+`)

// OwnerBootstrap carries the externally configured owner credentials used
// when the store is empty at startup.
type OwnerBootstrap struct {
	Username    string
	Password    string
	DisplayName string
}

// userService implements ports.UserService on top of a UserRepository,
// enforcing the permission policy before any mutation.
type userService struct {
	repo   ports.UserRepository
	policy Policy
	owner  OwnerBootstrap
	log    zerolog.Logger
}

// NewUserService returns a UserService governed by the owner designated in
// bootstrap.
func NewUserService(repo ports.UserRepository, bootstrap OwnerBootstrap, log zerolog.Logger) ports.UserService {
	return &userService{
		repo:   repo,
		policy: Policy{OwnerUsername: bootstrap.Username},
		owner:  bootstrap,
		log:    log,
	}
}

func (s *userService) List(actor *domain.User) ([]domain.User, error) {
	if err := s.policy.CanList(actor); err != nil {
		return nil, err
	}
	return s.repo.List()
}

func (s *userService) GetByID(id string) (*domain.User, error) {
	return s.repo.FindByID(id)
}

func (s *userService) GetByUsername(username string) (*domain.User, error) {
	return s.repo.FindByUsername(username)
}

func (s *userService) Create(draft domain.UserDraft, actor *domain.User) (*domain.User, error) {
	if err := s.policy.CanCreate(actor, draft.Username); err != nil {
		return nil, err
	}
	if draft.Username == "" || draft.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     draft.Username,
		PasswordHash: string(hash),
		DisplayName:  draft.DisplayName,
		IsAdmin:      draft.IsAdmin,
		IsPet:        draft.IsPet,
	}
	user.Normalize(s.policy.OwnerUsername)

	// The repository re-checks the username under its write lock; two racing
	// creates cannot both pass.
	if err := s.repo.Insert(user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Bool("is_admin", user.IsAdmin).Msg("user created")
	return &user, nil
}

func (s *userService) Update(id string, patch domain.UserPatch, actor *domain.User) (*domain.User, error) {
	target, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanUpdate(actor, target, patch); err != nil {
		return nil, err
	}

	if patch.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(target.PasswordHash), []byte(patch.CurrentPassword)) != nil {
			return nil, fmt.Errorf("%w: current password is incorrect", domain.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		target.PasswordHash = string(hash)
	}

	if patch.DisplayName != nil {
		target.DisplayName = *patch.DisplayName
	}
	if patch.IsAdmin != nil {
		target.IsAdmin = *patch.IsAdmin
	}
	if patch.IsPet != nil {
		target.IsPet = *patch.IsPet
	}
	if patch.AvatarURL != nil {
		target.AvatarURL = *patch.AvatarURL
	}

	// is_owner is never taken from the patch; the repository re-derives it
	// (and the owner's forced admin flag) from the username on save.
	target.Normalize(s.policy.OwnerUsername)

	if err := s.repo.Save(*target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *userService) Delete(id string, actor *domain.User) error {
	target, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.policy.CanDelete(actor, target); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info().Str("username", target.Username).Msg("user deleted")
	return nil
}

func (s *userService) SetAvatarURL(id, avatarURL string) (*domain.User, error) {
	target, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	target.AvatarURL = avatarURL
	if err := s.repo.Save(*target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *userService) Authenticate(username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Bootstrap creates the owner account when no users exist yet. The configured
// password may already be a bcrypt hash, in which case it is stored verbatim.
func (s *userService) Bootstrap() error {
	users, err := s.repo.List()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	password := s.owner.Password
	if password == "" {
		s.log.Warn().Msg("no owner password configured, using default")
		password = "admin"
	}

	hash := password
	if !bcryptHashPattern.MatchString(password) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash owner password: %w", err)
		}
		hash = string(h)
	}

	owner := domain.User{
		ID:           uuid.NewString(),
		Username:     s.owner.Username,
		PasswordHash: hash,
		DisplayName:  s.owner.DisplayName,
		IsOwner:      true,
		IsAdmin:      true,
	}
	if err := s.repo.Insert(owner); err != nil {
		return err
	}

	s.log.Info().Str("username", owner.Username).Msg("owner account created")
	return nil
}
