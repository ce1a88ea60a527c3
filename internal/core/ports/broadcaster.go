package ports

// Broadcaster delivers events to live subscriber connections. Delivery
// failures are handled per-recipient inside the implementation and never
// surface to the caller.
type Broadcaster interface {
	// BroadcastEvent wraps data in a timestamped event envelope and fans it
	// out to every connection in the named group. An unknown group is a
	// no-op, not an error.
	BroadcastEvent(eventType string, data any, group string)
}
