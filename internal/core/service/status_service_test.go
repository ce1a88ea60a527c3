package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

func TestStatusSetStampsAndStores(t *testing.T) {
	repo := newStubStatusRepo()
	svc := NewStatusService(repo)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ctx := context.Background()
	status, err := svc.Set(ctx, "clove", "  hyperfocusing  ", "🎧")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if status.Text != "hyperfocusing" || status.Emoji != "🎧" {
		t.Errorf("status = %+v", status)
	}
	if !status.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, want %v", status.UpdatedAt, fixed)
	}

	stored, _ := svc.Get(ctx, "clove")
	if stored == nil || stored.Text != "hyperfocusing" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestStatusSetValidation(t *testing.T) {
	svc := NewStatusService(newStubStatusRepo())
	ctx := context.Background()

	if _, err := svc.Set(ctx, "clove", "   ", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank text err = %v, want ErrValidation", err)
	}

	// 100 runes is the limit, not 100 bytes.
	atLimit := strings.Repeat("é", 100)
	if _, err := svc.Set(ctx, "clove", atLimit, ""); err != nil {
		t.Errorf("100-rune status rejected: %v", err)
	}
	if _, err := svc.Set(ctx, "clove", atLimit+"x", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("101-rune status err = %v, want ErrValidation", err)
	}
}

func TestStatusClear(t *testing.T) {
	repo := newStubStatusRepo()
	svc := NewStatusService(repo)
	ctx := context.Background()

	if _, err := svc.Set(ctx, "clove", "around", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	existed, err := svc.Clear(ctx, "clove")
	if err != nil || !existed {
		t.Fatalf("Clear = (%v, %v), want (true, nil)", existed, err)
	}
	existed, err = svc.Clear(ctx, "clove")
	if err != nil || existed {
		t.Fatalf("second Clear = (%v, %v), want (false, nil)", existed, err)
	}
	if got, _ := svc.Get(ctx, "clove"); got != nil {
		t.Errorf("status survived clear: %+v", got)
	}
}
