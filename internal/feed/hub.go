// Package feed serves a read-only websocket stream of the live session so
// other terminals or a browser can follow the match.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"

	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/session"
)

// Path is where viewers connect
const Path = "/feed"

// Hub fans session events out to connected viewers
type Hub struct {
	snapshot func() *game.SessionState
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	closed  bool
}

// NewHub creates a hub. snapshot provides the state sent to each viewer
// when it connects.
func NewHub(snapshot func() *game.SessionState, logger *log.Logger) *Hub {
	return &Hub{
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			// viewers are read-only
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger:  logger.WithPrefix("feed"),
		viewers: make(map[*viewer]struct{}),
	}
}

// Handler serves the feed and a health check. A panicking request is logged
// and answered with a 500 instead of taking the client down.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, h.handleFeed)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	})
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(h.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(mux)
}

// Serve listens on addr until ctx is cancelled
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("Serving live feed", "addr", addr, "path", Path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Listener returns a session listener that publishes every event
func (h *Hub) Listener() session.Listener {
	return func(e session.Event) {
		msg, err := NewMessage(e)
		if err != nil {
			h.logger.Error("Failed to render event", "type", e.Type, "error", err)
			return
		}
		h.Broadcast(msg)
	}
}

// Broadcast sends msg to every viewer. Viewers that cannot keep up are
// dropped.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for v := range h.viewers {
		if err := v.deliver(msg); err != nil {
			delete(h.viewers, v)
			continue
		}
		count++
	}
	h.logger.Debug("Broadcast", "type", msg.Type, "viewers", count)
}

// Viewers returns the number of connected viewers
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Close disconnects every viewer and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for v := range h.viewers {
		v.close()
		delete(h.viewers, v)
	}
}

func (h *Hub) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	v := newViewer(conn, h.logger)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		v.close()
		return
	}
	// taken under the lock so no broadcast falls between snapshot and registration
	view, err := NewSessionView(h.snapshot())
	if err != nil {
		h.logger.Error("Failed to render snapshot", "error", err)
	}
	_ = v.deliver(&Message{Type: MessageTypeSnapshot, Session: view, Timestamp: time.Now()})
	h.viewers[v] = struct{}{}
	total := len(h.viewers)
	h.mu.Unlock()

	v.start()
	h.logger.Info("Viewer connected", "total", total)

	go func() {
		<-v.ctx.Done()
		h.mu.Lock()
		delete(h.viewers, v)
		h.mu.Unlock()
		h.logger.Info("Viewer disconnected")
	}()
}
