package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// Status text is capped so the frontend can render it in a single line.
const maxStatusLength = 100

// StatusService manages per-member free-text statuses.
type StatusService struct {
	statuses ports.StatusRepository
	now      func() time.Time
}

func NewStatusService(statuses ports.StatusRepository) *StatusService {
	return &StatusService{statuses: statuses, now: time.Now}
}

func (s *StatusService) All(ctx context.Context) (map[string]domain.MemberStatus, error) {
	return s.statuses.All(ctx)
}

// Get returns nil when the member has no status set.
func (s *StatusService) Get(ctx context.Context, memberRef string) (*domain.MemberStatus, error) {
	return s.statuses.Get(ctx, memberRef)
}

// Set records a status for the member, stamping the update time.
func (s *StatusService) Set(ctx context.Context, memberRef, text, emoji string) (*domain.MemberStatus, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: status text is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(text) > maxStatusLength {
		return nil, fmt.Errorf("%w: status text exceeds %d characters", domain.ErrValidation, maxStatusLength)
	}

	status := domain.MemberStatus{
		Text:      text,
		Emoji:     strings.TrimSpace(emoji),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.statuses.Set(ctx, memberRef, status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Clear removes the member's status, reporting whether one existed.
func (s *StatusService) Clear(ctx context.Context, memberRef string) (bool, error) {
	return s.statuses.Clear(ctx, memberRef)
}
