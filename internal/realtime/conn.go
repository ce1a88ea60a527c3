package realtime

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

type readResult struct {
	data string
	err  error
}

// wsConn adapts a gorilla websocket connection to the Conn interface.
//
// Reads are pumped through a dedicated goroutine so an idle timeout is a
// plain select timeout rather than a read deadline; gorilla treats an
// expired read deadline as fatal to the connection, which would defeat the
// keepalive-and-continue contract.
type wsConn struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	reads     chan readResult
	done      chan struct{}
	closeOnce sync.Once
}

// NewWebsocketConn wraps an upgraded gorilla connection and starts its read
// pump.
func NewWebsocketConn(conn *websocket.Conn) Conn {
	w := &wsConn{
		conn:  conn,
		reads: make(chan readResult),
		done:  make(chan struct{}),
	}
	go w.readPump()
	return w
}

func (w *wsConn) readPump() {
	for {
		_, data, err := w.conn.ReadMessage()
		select {
		case w.reads <- readResult{data: string(data), err: err}:
		case <-w.done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (w *wsConn) ReadText(idle time.Duration) (string, error) {
	timer := time.NewTimer(idle)
	defer timer.Stop()

	select {
	case r := <-w.reads:
		if r.err != nil {
			return "", r.err
		}
		return r.data, nil
	case <-timer.C:
		return "", ErrIdleTimeout
	case <-w.done:
		return "", net.ErrClosed
	}
}

// WriteText is safe for concurrent use; gorilla permits only one writer at a
// time, so broadcast fan-out and the serving loop share this mutex.
func (w *wsConn) WriteText(data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.conn.WriteMessage(websocket.TextMessage, data)
}

func (w *wsConn) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.conn.Close()
	})
	return err
}
