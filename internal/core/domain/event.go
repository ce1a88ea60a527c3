package domain

import "time"

// Broadcast groups. Only GroupAll is fanned out to today; the authenticated
// group exists for future scoped events.
const (
	GroupAll           = "all"
	GroupAuthenticated = "authenticated"
)

// Broadcast event types sent to websocket subscribers.
const (
	EventConnectionEstablished = "connection_established"
	EventSubscribed            = "subscribed"
	EventKeepalive             = "keepalive"
	EventFrontingUpdate        = "fronting_update"
	EventMentalStateUpdate     = "mental_state_update"
	EventForceRefresh          = "force_refresh"
)

// Event is the envelope for every server→client websocket frame. Data is
// type-specific and may be nil (keepalive carries only type and timestamp).
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// NewEvent stamps an event envelope with the current UTC time.
func NewEvent(eventType string, data any) Event {
	return Event{Type: eventType, Timestamp: time.Now().UTC(), Data: data}
}
