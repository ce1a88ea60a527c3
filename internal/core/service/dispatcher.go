package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// UpdateDispatcher formats domain events into broadcast payloads and hands
// them to the broadcaster. For front changes it re-fetches the authoritative
// fronter list rather than trusting the triggering request's payload, so all
// subscribers converge on the same state even when the request was partial
// or stale.
type UpdateDispatcher struct {
	directory   ports.MemberDirectory
	broadcaster ports.Broadcaster
	log         zerolog.Logger
}

func NewUpdateDispatcher(directory ports.MemberDirectory, broadcaster ports.Broadcaster, log zerolog.Logger) *UpdateDispatcher {
	return &UpdateDispatcher{directory: directory, broadcaster: broadcaster, log: log}
}

// FrontingChanged broadcasts the freshly fetched fronter state to all
// subscribers. If the re-fetch fails the broadcast is dropped; the mutation
// that triggered it has already succeeded and must not be failed for it.
func (d *UpdateDispatcher) FrontingChanged(ctx context.Context) {
	fronters, err := d.directory.Fronters(ctx)
	if err != nil {
		d.log.Warn().Err(err).Msg("fronter re-fetch failed, skipping broadcast")
		return
	}
	d.broadcaster.BroadcastEvent(domain.EventFrontingUpdate, fronters, domain.GroupAll)
}

// MentalStateChanged broadcasts the new mental state to all subscribers.
func (d *UpdateDispatcher) MentalStateChanged(state domain.MentalState) {
	d.broadcaster.BroadcastEvent(domain.EventMentalStateUpdate, state, domain.GroupAll)
}

// ForceRefresh instructs every connected client to reload.
func (d *UpdateDispatcher) ForceRefresh(message string) {
	d.broadcaster.BroadcastEvent(domain.EventForceRefresh, map[string]string{"message": message}, domain.GroupAll)
}
