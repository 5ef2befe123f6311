package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/protocol"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, time.Second, quietLogger())
	require.NoError(t, err)
	return c
}

func TestNewClientValidatesURL(t *testing.T) {
	for _, raw := range []string{"", "ws://localhost:8000", "localhost:8000", "http://"} {
		_, err := NewClient(raw, 0, quietLogger())
		assert.Error(t, err, raw)
	}

	c, err := NewClient("http://localhost:8000/api/", 0, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/game/play-hole", c.URL(decision.OpPlayHole))
}

func TestPlayHoleSendsPayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"status": "ok", "feedback": ["Partner requested"], "next_shot_available": true}`))
	})

	resp, err := c.PlayHole(context.Background(), decision.PartnerRequestPayload{Action: "request_partner", RequestedPartner: "p2"})
	require.NoError(t, err)

	assert.Equal(t, "/game/play-hole", gotPath)
	assert.Equal(t, map[string]any{"action": "request_partner", "requested_partner": "p2"}, gotBody)
	assert.Equal(t, []string{"Partner requested"}, resp.Feedback)
	assert.True(t, resp.HasNextShot())
}

func TestPostServerRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "not your turn"}`))
	})

	_, err := c.NextHole(context.Background())
	require.Error(t, err)
	assert.True(t, game.IsKind(err, game.KindServerRejected))
	assert.Contains(t, err.Error(), "not your turn")
}

func TestPostNon2xxIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.PlayNextShot(context.Background(), protocol.NextShotRequest{})
	require.Error(t, err)
	assert.True(t, game.IsKind(err, game.KindTransport))
	assert.Contains(t, err.Error(), "500")
}

func TestPostUnreachableIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second, quietLogger())
	require.NoError(t, err)

	_, err = c.Setup(context.Background(), protocol.SetupRequest{})
	require.Error(t, err)
	assert.True(t, game.IsKind(err, game.KindTransport))
}

func TestPostMalformedBodyIsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": `))
	})

	_, err := c.BettingDecision(context.Background(), decision.BettingPayload{Action: "offer_double"})
	assert.True(t, game.IsKind(err, game.KindServerRejected))
}

func TestPokerState(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/game/poker-state", r.URL.Path)
		_, _ = w.Write([]byte(`{"pot_size": 8, "base_bet": 1, "current_bet": 2, "betting_phase": "approach", "doubled": true, "players_in": ["p1", "p2"]}`))
	})

	ps, err := c.PokerState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &game.PokerState{PotSize: 8, BaseBet: 1, CurrentBet: 2, BettingPhase: "approach", Doubled: true, PlayersIn: []string{"p1", "p2"}}, ps)
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.NextHole(ctx)
	assert.True(t, game.IsKind(err, game.KindTransport))
}
