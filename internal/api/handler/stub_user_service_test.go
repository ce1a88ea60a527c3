package handler

import (
	"fmt"
	"strings"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// stubUserService is a scriptable ports.UserService for handler tests.
type stubUserService struct {
	users []domain.User

	createErr error
	updateErr error
	deleteErr error
	authErr   error

	setAvatarCalls []string
	lastPatch      domain.UserPatch
}

func (s *stubUserService) List(actor *domain.User) ([]domain.User, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users, nil
}

func (s *stubUserService) GetByID(id string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) GetByUsername(username string) (*domain.User, error) {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Username, username) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Create(draft domain.UserDraft, actor *domain.User) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := domain.User{
		ID:          fmt.Sprintf("u%d", len(s.users)+1),
		Username:    draft.Username,
		DisplayName: draft.DisplayName,
		IsAdmin:     draft.IsAdmin,
		IsPet:       draft.IsPet,
	}
	s.users = append(s.users, user)
	return &user, nil
}

func (s *stubUserService) Update(id string, patch domain.UserPatch, actor *domain.User) (*domain.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.lastPatch = patch
	return s.GetByID(id)
}

func (s *stubUserService) Delete(id string, actor *domain.User) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	_, err := s.GetByID(id)
	return err
}

func (s *stubUserService) SetAvatarURL(id, avatarURL string) (*domain.User, error) {
	s.setAvatarCalls = append(s.setAvatarCalls, avatarURL)
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = avatarURL
	return user, nil
}

func (s *stubUserService) Authenticate(username, password string) (*domain.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.GetByUsername(username)
}

func (s *stubUserService) Bootstrap() error { return nil }
