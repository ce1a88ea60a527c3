package realtime

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// scriptConn feeds a fixed sequence of read results to the serving loop and
// records everything written back.
type scriptConn struct {
	mu      sync.Mutex
	script  []readResult
	writes  [][]byte
	failAll bool
	closed  int
}

func (s *scriptConn) ReadText(idle time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.script) == 0 {
		return "", io.EOF
	}
	r := s.script[0]
	s.script = s.script[1:]
	return r.data, r.err
}

func (s *scriptConn) WriteText(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("scriptConn: write failed")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.writes = append(s.writes, buf)
	return nil
}

func (s *scriptConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *scriptConn) frames(t *testing.T) []map[string]any {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.writes))
	for _, w := range s.writes {
		var m map[string]any
		if err := json.Unmarshal(w, &m); err != nil {
			// Plain-text frame ("pong"); represent as {"_raw": ...}.
			out = append(out, map[string]any{"_raw": string(w)})
			continue
		}
		out = append(out, m)
	}
	return out
}

func TestClientServe_IdleTimeoutSendsKeepaliveAndContinues(t *testing.T) {
	hub := newTestHub()
	conn := &scriptConn{script: []readResult{
		{err: ErrIdleTimeout},
		{data: "ping"},
		{err: io.EOF},
	}}
	client := NewClient(conn, "test")
	hub.Connect(client, GroupAll)

	client.Serve(hub, time.Second)

	frames := conn.frames(t)
	if len(frames) != 2 {
		t.Fatalf("expected keepalive + pong, got %d frames: %v", len(frames), frames)
	}
	if frames[0]["type"] != "keepalive" {
		t.Fatalf("first frame should be keepalive, got %v", frames[0])
	}
	if frames[1]["_raw"] != "pong" {
		t.Fatalf("ping not answered with pong: %v", frames[1])
	}
	if hub.Count(GroupAll) != 0 {
		t.Fatalf("client still registered after loop exit")
	}
}

func TestClientServe_StaysRegisteredThroughIdleTimeout(t *testing.T) {
	hub := newTestHub()

	reads := make(chan readResult)
	conn := &chanConn{reads: reads}
	client := NewClient(conn, "test")
	hub.Connect(client, GroupAll)

	done := make(chan struct{})
	go func() {
		client.Serve(hub, time.Second)
		close(done)
	}()

	reads <- readResult{err: ErrIdleTimeout}
	conn.awaitWrites(t, 1)

	// The keepalive alone must not cost the client its registration.
	if hub.Count(GroupAll) != 1 {
		t.Fatalf("client deregistered by idle timeout")
	}

	reads <- readResult{err: io.EOF}
	<-done
	if hub.Count(GroupAll) != 0 {
		t.Fatalf("client not deregistered on transport error")
	}
}

func TestClientServe_KeepaliveWriteFailureExits(t *testing.T) {
	hub := newTestHub()
	conn := &scriptConn{
		script:  []readResult{{err: ErrIdleTimeout}, {data: "never reached"}},
		failAll: true,
	}
	client := NewClient(conn, "test")
	hub.Connect(client, GroupAll)

	client.Serve(hub, time.Second)

	if hub.Count(GroupAll) != 0 {
		t.Fatalf("client still registered after failed keepalive")
	}
	conn.mu.Lock()
	remaining := len(conn.script)
	conn.mu.Unlock()
	if remaining != 1 {
		t.Fatalf("loop continued past failed keepalive")
	}
}

func TestClientServe_SubscribeAcknowledged(t *testing.T) {
	hub := newTestHub()
	conn := &scriptConn{script: []readResult{
		{data: "subscribe"},
		{data: "anything else entirely"},
		{err: io.EOF},
	}}
	client := NewClient(conn, "test")
	hub.Connect(client, GroupAll)

	client.Serve(hub, time.Second)

	frames := conn.frames(t)
	if len(frames) != 1 {
		t.Fatalf("expected only the subscribed ack, got %v", frames)
	}
	if frames[0]["type"] != "subscribed" {
		t.Fatalf("expected subscribed frame, got %v", frames[0])
	}
	if frames[0]["timestamp"] == nil {
		t.Fatalf("subscribed frame missing timestamp")
	}
}

// chanConn drives reads from a channel so a test can interleave assertions
// with the serving loop.
type chanConn struct {
	mu     sync.Mutex
	reads  chan readResult
	writes [][]byte
}

func (c *chanConn) ReadText(idle time.Duration) (string, error) {
	r, ok := <-c.reads
	if !ok {
		return "", io.EOF
	}
	return r.data, r.err
}

func (c *chanConn) WriteText(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	c.writes = append(c.writes, buf)
	return nil
}

func (c *chanConn) Close() error { return nil }

func (c *chanConn) awaitWrites(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		got := len(c.writes)
		c.mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d writes", n)
}
