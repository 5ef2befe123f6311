package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/protocol"
)

// APIPrefix is the path under which the simulation server mounts its
// game operations.
const APIPrefix = "/game/"

// maxErrorBody bounds how much of a failed response is kept for messages
const maxErrorBody = 512

// Client talks JSON over HTTP to the simulation server
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a client for serverURL. A zero timeout means the
// client imposes none.
func NewClient(serverURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: missing host", serverURL)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.WithPrefix("client"),
	}, nil
}

// URL returns the endpoint for op
func (c *Client) URL(op decision.Operation) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + APIPrefix + string(op)
	return u.String()
}

// Setup starts a new match
func (c *Client) Setup(ctx context.Context, req protocol.SetupRequest) (*protocol.Response, error) {
	return c.Post(ctx, decision.OpSetup, req)
}

// PlayHole submits a hole decision (partner, solo, watch, partnership answer)
func (c *Client) PlayHole(ctx context.Context, payload decision.Payload) (*protocol.Response, error) {
	return c.Post(ctx, decision.OpPlayHole, payload)
}

// PlayNextShot simulates the next shot
func (c *Client) PlayNextShot(ctx context.Context, req protocol.NextShotRequest) (*protocol.Response, error) {
	return c.Post(ctx, decision.OpPlayNextShot, req)
}

// BettingDecision submits a double offer or response
func (c *Client) BettingDecision(ctx context.Context, payload decision.Payload) (*protocol.Response, error) {
	return c.Post(ctx, decision.OpBettingDecision, payload)
}

// NextHole moves the match to the next hole
func (c *Client) NextHole(ctx context.Context) (*protocol.Response, error) {
	return c.Post(ctx, decision.OpNextHole, protocol.NextHoleRequest{})
}

// PokerState fetches the polled betting summary
func (c *Client) PokerState(ctx context.Context) (*game.PokerState, error) {
	var out game.PokerState
	if err := c.do(ctx, http.MethodGet, decision.OpPokerState, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Post sends body to op and returns the checked response. Any status other
// than "ok" is returned as a server_rejected error.
func (c *Client) Post(ctx context.Context, op decision.Operation, body any) (*protocol.Response, error) {
	var resp protocol.Response
	if err := c.do(ctx, http.MethodPost, op, body, &resp); err != nil {
		return nil, err
	}
	if err := resp.Check(); err != nil {
		c.logger.Warn("Server rejected request", "op", op, "status", resp.Status, "message", resp.Message)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method string, op decision.Operation, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(op), reader)
	if err != nil {
		return game.WrapError(game.KindTransport, err, "build %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Request failed", "op", op, "error", err)
		return game.WrapError(game.KindTransport, err, "%s %s", method, op)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Response received", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return game.NewError(game.KindTransport, "%s %s: HTTP %d: %s", method, op, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return game.WrapError(game.KindServerRejected, err, "decode %s response", op)
	}
	return nil
}
