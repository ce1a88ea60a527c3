package userfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "users.json"), "admin")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func TestStore_InsertAndLookup(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(domain.User{ID: "u1", Username: "Alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	got, err := s.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername (case-insensitive) failed: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.FindByID("u1"); err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if _, err := s.FindByID("missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStore_InsertDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(domain.User{ID: "u1", Username: "bob"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := s.Insert(domain.User{ID: "u2", Username: "BOB"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	users, _ := s.List()
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestStore_ConcurrentDuplicateCreates(t *testing.T) {
	s := newTestStore(t)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- s.Insert(domain.User{ID: string(rune('a' + n)), Username: "racer"})
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrUsernameTaken):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != attempts-1 {
		t.Fatalf("expected exactly one success, got ok=%d conflict=%d", ok, conflict)
	}

	users, _ := s.List()
	if len(users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(users))
	}
}

func TestStore_OwnerNormalizedOnSave(t *testing.T) {
	s := newTestStore(t)

	// Caller-supplied flags lie about the owner.
	if err := s.Insert(domain.User{ID: "o1", Username: "Admin", IsOwner: false, IsAdmin: false}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := s.FindByUsername("admin")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if !got.IsOwner || !got.IsAdmin {
		t.Fatalf("owner flags not forced: %+v", got)
	}
}

func TestStore_CorruptedOwnerSelfHeals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")

	// Hand-write a record set with the owner flags stripped and a rogue
	// second record claiming ownership.
	raw := []map[string]any{
		{"id": "o1", "username": "admin", "is_owner": false, "is_admin": false},
		{"id": "u2", "username": "mallory", "is_owner": true, "is_admin": true},
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := New(path, "admin")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	users, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, u := range users {
		switch u.Username {
		case "admin":
			if !u.IsOwner || !u.IsAdmin {
				t.Fatalf("owner record not healed: %+v", u)
			}
		case "mallory":
			if u.IsOwner {
				t.Fatalf("non-owner kept is_owner: %+v", u)
			}
		}
	}
}

func TestStore_SaveAndDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(domain.User{ID: "u1", Username: "carol", DisplayName: "Carol"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := s.Save(domain.User{ID: "u1", Username: "carol", DisplayName: "Caroline"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, _ := s.FindByID("u1")
	if got.DisplayName != "Caroline" {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := s.Save(domain.User{ID: "nope"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound from Save, got %v", err)
	}

	if err := s.Delete("u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete("u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound from second Delete, got %v", err)
	}
}

func TestStore_EmptyFileAbsent(t *testing.T) {
	s := newTestStore(t)
	users, err := s.List()
	if err != nil {
		t.Fatalf("List on missing file failed: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty set, got %d", len(users))
	}
}
