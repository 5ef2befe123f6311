// Package simtest provides a scripted stand-in for the simulation server.
// Tests queue replies per operation and inspect the requests the client
// sent.
package simtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lox/wolfgoatpig/internal/client"
	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/protocol"
)

// Request is one request received by the server
type Request struct {
	Op   decision.Operation
	Body map[string]any
}

// Reply is a scripted answer
type Reply struct {
	StatusCode int
	Body       any
}

// Server is a scripted simulation server
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	queues   map[decision.Operation][]Reply
	fallback map[decision.Operation]Reply
	gates    map[decision.Operation]chan struct{}
	arrived  chan decision.Operation
}

// NewServer starts a server that is closed when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		queues:   make(map[decision.Operation][]Reply),
		fallback: make(map[decision.Operation]Reply),
		gates:    make(map[decision.Operation]chan struct{}),
		arrived:  make(chan decision.Operation, 256),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Enqueue queues a 200 reply for op
func (s *Server) Enqueue(op decision.Operation, body any) {
	s.EnqueueStatus(op, http.StatusOK, body)
}

// EnqueueStatus queues a reply with an explicit HTTP status
func (s *Server) EnqueueStatus(op decision.Operation, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[op] = append(s.queues[op], Reply{StatusCode: status, Body: body})
}

// SetFallback sets the reply used when the queue for op is empty
func (s *Server) SetFallback(op decision.Operation, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback[op] = Reply{StatusCode: http.StatusOK, Body: body}
}

// Hold makes requests for op wait until the returned release is called
func (s *Server) Hold(op decision.Operation) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[op] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, op)
			s.mu.Unlock()
			close(gate)
		})
	}
}

// WaitFor blocks until a request for op arrives or timeout elapses
func (s *Server) WaitFor(op decision.Operation, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case got := <-s.arrived:
			if got == op {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

// Requests returns the requests received, optionally filtered by op
func (s *Server) Requests(ops ...decision.Operation) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Request
	for _, r := range s.requests {
		if len(ops) == 0 || containsOp(ops, r.Op) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many requests for op were received
func (s *Server) Count(op decision.Operation) int {
	return len(s.Requests(op))
}

// Client returns a client pointed at the server
func (s *Server) Client(t testing.TB) *client.Client {
	t.Helper()
	c, err := client.NewClient(s.URL, 5*time.Second, QuietLogger())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	op := decision.Operation(strings.TrimPrefix(r.URL.Path, client.APIPrefix))

	var body map[string]any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{Op: op, Body: body})
	gate := s.gates[op]
	reply, ok := s.next(op)
	s.mu.Unlock()

	select {
	case s.arrived <- op:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if !ok {
		http.Error(w, "no scripted reply for "+string(op), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.StatusCode)
	_ = json.NewEncoder(w).Encode(reply.Body)
}

func (s *Server) next(op decision.Operation) (Reply, bool) {
	if q := s.queues[op]; len(q) > 0 {
		s.queues[op] = q[1:]
		return q[0], true
	}
	r, ok := s.fallback[op]
	return r, ok
}

func containsOp(ops []decision.Operation, op decision.Operation) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

// OK builds a successful response carrying the given session's state,
// interaction and next-shot flag.
func OK(s *game.SessionState, feedback ...string) *protocol.Response {
	raw, err := protocol.MarshalState(s.Players, s.Hole, s.Betting, s.Teams)
	if err != nil {
		panic(err)
	}
	next := s.HasNextShot
	return &protocol.Response{
		Status:            protocol.StatusOK,
		GameState:         raw,
		Feedback:          feedback,
		InteractionNeeded: protocol.EncodeInteraction(s.Interaction),
		NextShotAvailable: &next,
	}
}

// Rejected builds a response with a non-ok status
func Rejected(message string) *protocol.Response {
	return &protocol.Response{Status: "error", Message: message}
}
