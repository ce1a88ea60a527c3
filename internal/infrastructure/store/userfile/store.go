// Package userfile persists the user directory as a single JSON file.
//
// The whole record set is loaded and rewritten on every mutation. One mutex
// serializes all writers, so concurrent creates with the same username
// cannot both pass the duplicate check. The owner invariants are re-derived
// from the configured owner username on every load and every save, letting a
// corrupted record heal on the next cycle.
package userfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// record is the on-disk shape of a user. PasswordHash is excluded from the
// public JSON of domain.User, so it gets its own field here.
type record struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	DisplayName  string `json:"display_name"`
	IsOwner      bool   `json:"is_owner"`
	IsAdmin      bool   `json:"is_admin"`
	IsPet        bool   `json:"is_pet"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// Store is a file-backed ports.UserRepository.
type Store struct {
	mu            sync.Mutex
	path          string
	ownerUsername string
}

// New creates a Store writing to path. The directory is created if absent.
func New(path, ownerUsername string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("userfile: create data dir: %w", err)
	}
	return &Store{path: path, ownerUsername: ownerUsername}, nil
}

func (s *Store) List() ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) FindByID(id string) (*domain.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) FindByUsername(username string) (*domain.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Insert adds a new record. The duplicate check runs under the same lock as
// the write, so exactly one of two racing creates with the same username
// succeeds.
func (s *Store) Insert(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("%w: %q", domain.ErrUsernameTaken, user.Username)
		}
	}
	return s.save(append(users, user))
}

// Save replaces the record with the same ID.
func (s *Store) Save(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return s.save(users)
		}
	}
	return domain.ErrUserNotFound
}

// Delete removes the record by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			return s.save(append(users[:i], users[i+1:]...))
		}
	}
	return domain.ErrUserNotFound
}

// load reads and normalizes the full set. Caller must hold s.mu (or accept a
// point-in-time snapshot for read paths).
func (s *Store) load() ([]domain.User, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("userfile: read %s: %w", s.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("userfile: decode %s: %w", s.path, err)
	}

	users := make([]domain.User, len(records))
	for i, r := range records {
		u := domain.User{
			ID:           r.ID,
			Username:     r.Username,
			PasswordHash: r.PasswordHash,
			DisplayName:  r.DisplayName,
			IsOwner:      r.IsOwner,
			IsAdmin:      r.IsAdmin,
			IsPet:        r.IsPet,
			AvatarURL:    r.AvatarURL,
		}
		u.Normalize(s.ownerUsername)
		users[i] = u
	}
	return users, nil
}

// save normalizes every record and atomically replaces the file: write to a
// temp file in the same directory, then rename over the old set. A failed
// write never leaves a partial record set behind.
func (s *Store) save(users []domain.User) error {
	records := make([]record, len(users))
	for i, u := range users {
		u.Normalize(s.ownerUsername)
		records[i] = record{
			ID:           u.ID,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			DisplayName:  u.DisplayName,
			IsOwner:      u.IsOwner,
			IsAdmin:      u.IsAdmin,
			IsPet:        u.IsPet,
			AvatarURL:    u.AvatarURL,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("userfile: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("userfile: create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("userfile: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("userfile: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("userfile: replace %s: %w", s.path, err)
	}
	return nil
}
