// Package realtime tracks live websocket subscribers and fans broadcast
// events out to them. The hub owns group membership exclusively; transport
// handles are borrowed and every registration is paired with a guaranteed
// Disconnect on the serving loop's exit path.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/api/metrics"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// Built-in broadcast groups, mirrored from the domain event model.
const (
	GroupAll           = domain.GroupAll
	GroupAuthenticated = domain.GroupAuthenticated
)

// Hub is the connection registry and broadcaster.
type Hub struct {
	mu     sync.Mutex
	groups map[string]map[*Client]struct{}
	log    zerolog.Logger
}

// NewHub creates a Hub with the built-in groups pre-registered.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		groups: map[string]map[*Client]struct{}{
			GroupAll:           {},
			GroupAuthenticated: {},
		},
		log: log,
	}
}

// Connect registers c in the named group, creating the group on first use.
// Safe for concurrent use from many accept paths; the lock is held only for
// the membership mutation, never across network I/O.
func (h *Hub) Connect(c *Client, group string) {
	h.mu.Lock()
	if !h.isMemberLocked(c) {
		metrics.WSConnections.Inc()
	}
	set, ok := h.groups[group]
	if !ok {
		set = make(map[*Client]struct{})
		h.groups[group] = set
	}
	set[c] = struct{}{}
	total := len(h.groups[GroupAll])
	h.mu.Unlock()

	h.log.Debug().Str("group", group).Int("connections", total).Msg("client connected")
}

// Disconnect removes c from every group. Idempotent: calling it for a client
// that was never registered, or twice for the same client, is safe.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	removed := false
	for _, set := range h.groups {
		if _, ok := set[c]; ok {
			delete(set, c)
			removed = true
		}
	}
	if removed {
		metrics.WSConnections.Dec()
	}
	remaining := len(h.groups[GroupAll])
	h.mu.Unlock()

	if removed {
		_ = c.conn.Close()
		h.log.Debug().Int("connections", remaining).Msg("client disconnected")
	}
}

// Broadcast delivers message to every current member of the named group.
// Membership is snapshotted first so the lock is never held during writes.
// A failed delivery prunes that member and never aborts the others; an
// unknown group is a no-op.
func (h *Hub) Broadcast(message []byte, group string) {
	h.mu.Lock()
	set, ok := h.groups[group]
	if !ok {
		h.mu.Unlock()
		h.log.Warn().Str("group", group).Msg("broadcast to unknown group ignored")
		return
	}
	members := make([]*Client, 0, len(set))
	for c := range set {
		members = append(members, c)
	}
	h.mu.Unlock()

	for _, c := range members {
		if err := c.conn.WriteText(message); err != nil {
			h.log.Debug().Err(err).Msg("pruning dead connection after failed delivery")
			metrics.PrunedConnectionsTotal.Inc()
			h.Disconnect(c)
		}
	}
}

// BroadcastEvent wraps data in a timestamped event envelope and delegates to
// Broadcast.
func (h *Hub) BroadcastEvent(eventType string, data any, group string) {
	payload, err := json.Marshal(domain.NewEvent(eventType, data))
	if err != nil {
		h.log.Error().Err(err).Str("type", eventType).Msg("failed to encode broadcast event")
		return
	}
	metrics.BroadcastsTotal.WithLabelValues(eventType).Inc()
	h.Broadcast(payload, group)
}

// Count returns the current membership size of a group.
func (h *Hub) Count(group string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[group])
}

func (h *Hub) isMemberLocked(c *Client) bool {
	for _, set := range h.groups {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}
