package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// MentalStateService stores the system-wide wellbeing indicator and
// broadcasts every change.
type MentalStateService struct {
	states     ports.StateRepository
	dispatcher *UpdateDispatcher
	now        func() time.Time
}

func NewMentalStateService(states ports.StateRepository, dispatcher *UpdateDispatcher) *MentalStateService {
	return &MentalStateService{states: states, dispatcher: dispatcher, now: time.Now}
}

// Get returns the recorded state, or the default when none exists yet.
func (s *MentalStateService) Get(ctx context.Context) (domain.MentalState, error) {
	state, err := s.states.Get(ctx)
	if err != nil {
		return domain.MentalState{}, err
	}
	if state == nil {
		return domain.DefaultMentalState(), nil
	}
	return *state, nil
}

// Set records a new state and broadcasts it to all subscribers.
func (s *MentalStateService) Set(ctx context.Context, level, notes string) (domain.MentalState, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case domain.StateSafe, domain.StateUnsafe, domain.StateHighRisk:
	default:
		return domain.MentalState{}, fmt.Errorf("%w: unknown mental state level %q", domain.ErrValidation, level)
	}

	state := domain.MentalState{
		Level:     level,
		Notes:     strings.TrimSpace(notes),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.states.Set(ctx, state); err != nil {
		return domain.MentalState{}, err
	}
	s.dispatcher.MentalStateChanged(state)
	return state, nil
}
