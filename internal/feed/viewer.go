package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the viewer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the viewer
	pongWait = 60 * time.Second

	// Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Viewers only send control frames
	maxMessageSize = 512

	sendBuffer = 64
)

// ErrViewerClosed is returned when sending to a closed or dropped viewer
var ErrViewerClosed = errors.New("viewer closed")

// viewer is one websocket connected to the feed
type viewer struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newViewer(conn *websocket.Conn, logger *log.Logger) *viewer {
	ctx, cancel := context.WithCancel(context.Background())
	return &viewer{
		conn:   conn,
		send:   make(chan *Message, sendBuffer),
		logger: logger.With("remote", conn.RemoteAddr().String()),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (v *viewer) start() {
	go v.writePump()
	go v.readPump()
}

func (v *viewer) close() {
	v.closeOnce.Do(func() {
		v.cancel()
		_ = v.conn.Close()
	})
}

// deliver queues msg, dropping the viewer if it has fallen behind
func (v *viewer) deliver(msg *Message) error {
	select {
	case <-v.ctx.Done():
		return ErrViewerClosed
	default:
	}

	select {
	case v.send <- msg:
		return nil
	default:
		v.logger.Warn("Viewer send buffer full, dropping viewer")
		v.close()
		return ErrViewerClosed
	}
}

// readPump discards anything the viewer sends and notices disconnects
func (v *viewer) readPump() {
	defer v.close()

	v.conn.SetReadLimit(maxMessageSize)
	_ = v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		_ = v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				v.logger.Debug("Viewer read error", "error", err)
			}
			return
		}
	}
}

func (v *viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.close()
	}()

	for {
		select {
		case msg := <-v.send:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteJSON(msg); err != nil {
				v.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-v.ctx.Done():
			return
		}
	}
}
