package realtime

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// DefaultIdleTimeout bounds how long a connection may sit silent before the
// server sends a keepalive instead of closing it.
const DefaultIdleTimeout = 60 * time.Second

// ErrIdleTimeout is returned by Conn.ReadText when no frame arrived within
// the idle window. It signals "send a keepalive", not a dead connection.
var ErrIdleTimeout = errors.New("realtime: read idle timeout")

// Conn is the borrowed transport handle behind a Client. The hub and serving
// loop never own the underlying socket beyond this interface.
type Conn interface {
	// ReadText blocks for the next text frame, at most idle long.
	ReadText(idle time.Duration) (string, error)
	WriteText(data []byte) error
	Close() error
}

// Client is one registered subscriber connection.
type Client struct {
	conn   Conn
	remote string
}

// NewClient wraps a transport handle. remote is used for logging only.
func NewClient(conn Conn, remote string) *Client {
	return &Client{conn: conn, remote: remote}
}

// SendEvent delivers a single event frame to this client only.
func (c *Client) SendEvent(ev domain.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.conn.WriteText(payload)
}

// Serve runs the per-connection loop until the transport errors or closes.
// Contract: the client is already registered with hub; deregistration is
// guaranteed exactly once on every exit path, including a failed keepalive.
func (c *Client) Serve(hub *Hub, idleTimeout time.Duration) {
	defer hub.Disconnect(c)

	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	for {
		msg, err := c.conn.ReadText(idleTimeout)
		if errors.Is(err, ErrIdleTimeout) {
			// Quiet connection: nudge it rather than close it.
			if err := c.SendEvent(domain.NewEvent(domain.EventKeepalive, nil)); err != nil {
				return
			}
			continue
		}
		if err != nil {
			return
		}

		switch msg {
		case "ping":
			if err := c.conn.WriteText([]byte("pong")); err != nil {
				return
			}
		case "subscribe":
			if err := c.SendEvent(domain.NewEvent(domain.EventSubscribed, nil)); err != nil {
				return
			}
		default:
			// Unrecognized client text is accepted and ignored.
		}
	}
}
