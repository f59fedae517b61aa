package sync

import (
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/marmos91/rosterd/internal/logger"
)

const (
	// sendBufferSize bounds the per-observer outbound queue. An observer
	// that falls this far behind is dropped by the hub.
	sendBufferSize = 16

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxInboundSize limits inbound frames. Observers are read-only; they
	// have no reason to send anything beyond control frames.
	maxInboundSize = 512
)

// Observer is one connected sync client.
type Observer struct {
	ID uuid.UUID

	conn *websocket.Conn
	send chan []byte
	once gosync.Once
}

// NewObserver wraps a WebSocket connection. The caller must register the
// observer with a hub and start its pumps.
func NewObserver(conn *websocket.Conn) *Observer {
	return &Observer{
		ID:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue queues a message without blocking. Returns false when the buffer
// is full or the observer is closed.
func (o *Observer) enqueue(msg []byte) (ok bool) {
	defer func() {
		// Send on closed channel: observer already unregistered.
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case o.send <- msg:
		return true
	default:
		return false
	}
}

// close shuts the send queue, which terminates the write pump.
func (o *Observer) close() {
	o.once.Do(func() {
		close(o.send)
	})
}

// WritePump drains the send queue to the connection and keeps it alive with
// pings. It exits when the queue is closed or a write fails.
func (o *Observer) WritePump(hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		hub.Unregister(o.ID)
		_ = o.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-o.send:
			_ = o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = o.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := o.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("observer write failed",
					"observer_id", o.ID.String(), "error", err.Error())
				return
			}

		case <-ticker.C:
			_ = o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := o.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes the connection until it closes. Inbound payloads are
// discarded; the read loop exists to process control frames and detect
// disconnects.
func (o *Observer) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(o.ID)
		_ = o.conn.Close()
	}()

	o.conn.SetReadLimit(maxInboundSize)
	_ = o.conn.SetReadDeadline(time.Now().Add(pongWait))
	o.conn.SetPongHandler(func(string) error {
		return o.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := o.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("observer read failed",
					"observer_id", o.ID.String(), "error", err.Error())
			}
			return
		}
	}
}
