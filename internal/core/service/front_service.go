package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// SwitchedMember is the lightweight view of a member included in the
// detailed switch response.
type SwitchedMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// FrontService applies front switches upstream and triggers exactly one
// fronting broadcast per successful switch.
type FrontService struct {
	system     ports.SystemClient
	directory  ports.MemberDirectory
	dispatcher *UpdateDispatcher
	log        zerolog.Logger
}

func NewFrontService(system ports.SystemClient, directory ports.MemberDirectory, dispatcher *UpdateDispatcher, log zerolog.Logger) *FrontService {
	return &FrontService{system: system, directory: directory, dispatcher: dispatcher, log: log}
}

// Switch sets the current fronters. An empty list is a valid switch-out.
// On success the dispatcher re-fetches and broadcasts the authoritative
// state; on failure nothing is broadcast.
func (s *FrontService) Switch(ctx context.Context, memberIDs []string) error {
	if memberIDs == nil {
		return fmt.Errorf("%w: members must be a list of member IDs", domain.ErrValidation)
	}
	if err := s.system.SetFront(ctx, memberIDs); err != nil {
		return err
	}

	s.log.Info().Strs("members", memberIDs).Msg("front switched")
	s.dispatcher.FrontingChanged(ctx)
	return nil
}

// SwitchWithDetails performs the switch and resolves the switched members'
// names for the response body.
func (s *FrontService) SwitchWithDetails(ctx context.Context, memberIDs []string) ([]SwitchedMember, error) {
	members, err := s.directory.Members(ctx)
	if err != nil {
		return nil, err
	}

	switched := make([]SwitchedMember, 0, len(memberIDs))
	for _, id := range memberIDs {
		for i := range members {
			if members[i].ID == id {
				name := members[i].DisplayName
				if name == "" {
					name = members[i].Name
				}
				switched = append(switched, SwitchedMember{ID: members[i].ID, Name: members[i].Name, DisplayName: name})
				break
			}
		}
	}

	if err := s.Switch(ctx, memberIDs); err != nil {
		return nil, err
	}
	return switched, nil
}
