// Package session owns the state of one Wolf Goat Pig match and exposes the
// only entry points that mutate it. At most one request to the simulation
// server is outstanding at any time.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/probability"
	"github.com/lox/wolfgoatpig/internal/progression"
	"github.com/lox/wolfgoatpig/internal/protocol"
)

// API is the simulation server as seen by the controller
type API interface {
	progression.Simulator
	Setup(ctx context.Context, req protocol.SetupRequest) (*protocol.Response, error)
	PlayHole(ctx context.Context, payload decision.Payload) (*protocol.Response, error)
	BettingDecision(ctx context.Context, payload decision.Payload) (*protocol.Response, error)
	PokerState(ctx context.Context) (*game.PokerState, error)
}

// Controller owns the SessionState
type Controller struct {
	api    API
	driver *progression.Driver
	logger *log.Logger

	mu         sync.Mutex
	state      *game.SessionState
	generation uint64
	inFlight   bool
	listeners  []Listener
}

// NewController creates a controller with no active session
func NewController(api API, logger *log.Logger) *Controller {
	return &Controller{
		api:    api,
		driver: progression.NewDriver(api, logger),
		logger: logger.WithPrefix("session"),
	}
}

// Subscribe registers a listener for session events
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// State returns a snapshot of the session, or nil when none is active
func (c *Controller) State() *game.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// busy reports whether a mutation is in flight
func (c *Controller) busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// StartSession validates the participants, sets up a new match and runs one
// shot when the server reports a shot available and nothing to decide. A
// request the previous session has outstanding is discarded at once, but the
// previous session itself is only replaced once setup succeeds.
func (c *Controller) StartSession(ctx context.Context, human game.SetupPlayer, opponents []game.SetupPlayer, courseID string) (*game.SessionState, error) {
	if err := game.ValidateSetup(human, opponents); err != nil {
		c.logger.Warn("Invalid setup", "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.inFlight = true
	c.mu.Unlock()
	defer c.finish(gen)

	c.logger.Info("Starting session", "human", human.Name, "opponents", len(opponents), "course", courseID)

	resp, err := c.api.Setup(ctx, protocol.SetupRequest{
		HumanPlayer:     human,
		ComputerPlayers: opponents,
		CourseName:      courseID,
	})
	if err != nil {
		c.emit(Event{Type: EventError, Message: describe(err), Err: err})
		return nil, err
	}

	delta, err := progression.DecodeShot(resp)
	if err == nil && delta.State == nil {
		err = game.NewError(game.KindServerRejected, "setup returned no game_state")
	}
	if err != nil {
		err = fmt.Errorf("setup: %w", err)
		c.emit(Event{Type: EventError, Message: describe(err), Err: err})
		return nil, err
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale setup response", "generation", gen)
		return nil, ErrStaleResponse
	}
	hadSession := c.state != nil
	s := &game.SessionState{
		ID:         uuid.NewString(),
		Generation: gen,
		CourseName: courseID,
	}
	applyState(s, delta.State)
	s.Interaction = delta.Interaction
	s.HasNextShot = delta.HasNextShot
	s.LastShot = delta.ShotResult
	s.Probabilities = probability.Merge(s.Probabilities, delta.Probabilities)
	s.AppendFeedback(delta.Feedback...)
	c.state = s
	snap := s.Clone()
	c.mu.Unlock()

	if hadSession {
		c.emit(Event{Type: EventSessionEnded})
	}
	c.logger.Info("Session started", "id", snap.ID, "hole", snap.Hole.Number, "players", len(snap.Players))
	c.emit(Event{Type: EventStateChanged, State: snap})

	if snap.Interaction == nil && snap.HasNextShot {
		if err := c.advance(ctx, gen, nil); err == nil {
			snap = c.State()
		}
	}
	return snap, nil
}

// SubmitDecision checks the rules for intent, sends it and applies the
// response. When the response leaves nothing to decide and a shot is
// available, exactly one follow-up shot is played.
func (c *Controller) SubmitDecision(ctx context.Context, intent decision.Intent) error {
	gen, snap, err := c.begin("submit-decision")
	if err != nil {
		return err
	}
	defer c.finish(gen)

	if err := checkPreconditions(snap, intent); err != nil {
		c.notice(err)
		return err
	}

	req, err := decision.Resolve(intent, snap.CaptainID())
	if err != nil {
		c.notice(err)
		return err
	}

	c.logger.Info("Submitting decision", "intent", intent, "op", req.Operation, "hole", snap.Hole.Number)

	var resp *protocol.Response
	switch req.Operation {
	case decision.OpPlayHole:
		resp, err = c.api.PlayHole(ctx, req.Payload)
	case decision.OpBettingDecision:
		resp, err = c.api.BettingDecision(ctx, req.Payload)
	default:
		err = game.NewError(game.KindUnsupportedIntent, "no route for operation %s", req.Operation)
	}
	if err != nil {
		return c.fail(gen, err)
	}

	delta, err := progression.DecodeShot(resp)
	if err != nil {
		return c.fail(gen, fmt.Errorf("%s: %w", req.Operation, err))
	}

	next, err := c.commit(gen, func(s *game.SessionState) error {
		if err := checkTransition(s, delta.State); err != nil {
			return err
		}
		applyState(s, delta.State)
		s.Interaction = delta.Interaction
		s.Probabilities = probability.Merge(s.Probabilities, delta.Probabilities)
		s.AppendFeedback(delta.Feedback...)
		if resp.DecisionResult != nil {
			s.AppendFeedback(resp.DecisionResult.Message)
		}
		if delta.ShotResult != nil {
			s.LastShot = delta.ShotResult
		}

		switch req.Operation {
		case decision.OpPlayHole:
			s.HasNextShot = delta.HasNextShot
			s.Pending = decision.Fragment(req)
		case decision.OpBettingDecision:
			// betting responses only carry the flag when it changes
			if resp.NextShotAvailable != nil {
				s.HasNextShot = delta.HasNextShot
			}
		}
		return nil
	})
	if err != nil {
		return c.fail(gen, err)
	}

	if next.Interaction == nil && next.HasNextShot && !next.Hole.Complete {
		// follow-up failures are already in the feedback log
		_ = c.advance(ctx, gen, next.Pending)
	}
	return nil
}

// AdvanceShot plays one shot. It never chains a second shot; callers
// decide whether to advance again.
func (c *Controller) AdvanceShot(ctx context.Context) error {
	gen, snap, err := c.begin("advance-shot")
	if err != nil {
		return err
	}
	defer c.finish(gen)

	if snap.Interaction != nil {
		c.logger.Debug("Shot blocked by pending interaction", "kind", snap.Interaction.Kind())
		return ErrInteractionPending
	}
	if snap.Hole.Complete {
		err := game.NewError(game.KindDomainPrecondition, "hole %d is complete", snap.Hole.Number)
		c.notice(err)
		return err
	}

	return c.advance(ctx, gen, snap.Pending)
}

// AdvanceHole moves to the next hole once the current one is complete, or
// completes the round after hole 18.
func (c *Controller) AdvanceHole(ctx context.Context) error {
	gen, snap, err := c.begin("advance-hole")
	if err != nil {
		return err
	}
	defer c.finish(gen)

	if snap.RoundComplete {
		err := game.NewError(game.KindDomainPrecondition, "the round is complete")
		c.notice(err)
		return err
	}
	if !snap.Hole.Complete {
		err := game.NewError(game.KindDomainPrecondition, "hole %d is not complete", snap.Hole.Number)
		c.notice(err)
		return err
	}

	delta, err := c.driver.NextHole(ctx)
	if err != nil {
		return c.fail(gen, err)
	}

	finished := delta.GameFinished || snap.Hole.Number >= game.HolesPerRound
	next, err := c.commit(gen, func(s *game.SessionState) error {
		if finished {
			if delta.State != nil {
				s.Players = delta.State.Players
			}
			s.RoundComplete = true
			s.HasNextShot = false
		} else {
			if delta.State.Hole.Number <= s.Hole.Number {
				return game.NewError(game.KindServerRejected, "next-hole returned hole %d after hole %d", delta.State.Hole.Number, s.Hole.Number)
			}
			applyState(s, delta.State)
			s.HasNextShot = !s.Hole.Complete
		}
		s.ClearFeedback()
		s.AppendFeedback(delta.Feedback...)
		s.Interaction = nil
		s.Pending = nil
		s.LastShot = nil
		return nil
	})
	if err != nil {
		return c.fail(gen, err)
	}

	if finished {
		c.logger.Info("Round complete", "id", next.ID)
		c.emit(Event{Type: EventRoundComplete, State: next})
	} else {
		c.logger.Info("Hole started", "hole", next.Hole.Number, "par", next.Hole.Par)
	}
	return nil
}

// EndSession discards the session. Calling it with no session is a no-op.
// A request still outstanding is discarded when it returns.
func (c *Controller) EndSession() {
	c.mu.Lock()
	if c.state == nil && !c.inFlight {
		c.mu.Unlock()
		return
	}
	c.generation++
	c.state = nil
	c.inFlight = false
	c.mu.Unlock()

	c.logger.Info("Session ended")
	c.emit(Event{Type: EventSessionEnded})
}

// SetPokerState records a polled betting summary captured at generation gen
func (c *Controller) SetPokerState(gen uint64, ps *game.PokerState) error {
	_, err := c.commit(gen, func(s *game.SessionState) error {
		s.Poker = ps
		return nil
	})
	return err
}

// Generation returns the current session generation, or 0 with no session
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return 0
	}
	return c.generation
}

// advance plays one shot under an already claimed in-flight flag
func (c *Controller) advance(ctx context.Context, gen uint64, pending *game.PendingDecision) error {
	delta, err := c.driver.Advance(ctx, pending)
	if err != nil {
		return c.fail(gen, err)
	}

	_, err = c.commit(gen, func(s *game.SessionState) error {
		if err := checkTransition(s, delta.State); err != nil {
			return err
		}
		applyState(s, delta.State)
		s.Interaction = delta.Interaction
		s.HasNextShot = delta.HasNextShot
		s.Probabilities = probability.Merge(s.Probabilities, delta.Probabilities)
		s.AppendFeedback(delta.Feedback...)
		if delta.ShotResult != nil {
			s.LastShot = delta.ShotResult
		}
		s.Pending = nil
		return nil
	})
	if err != nil {
		return c.fail(gen, err)
	}
	return nil
}

// begin claims the in-flight flag and returns the generation and a snapshot
func (c *Controller) begin(op string) (uint64, *game.SessionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return 0, nil, ErrNoSession
	}
	if c.inFlight {
		c.logger.Warn("Ignoring request while another is in flight", "op", op)
		return 0, nil, ErrMutationInFlight
	}
	c.inFlight = true
	return c.generation, c.state.Clone(), nil
}

// finish releases the in-flight flag if it still belongs to gen
func (c *Controller) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		c.inFlight = false
	}
}

// commit applies fn to a copy of the state and swaps it in on success, so
// a failing fn leaves the state untouched.
func (c *Controller) commit(gen uint64, fn func(s *game.SessionState) error) (*game.SessionState, error) {
	c.mu.Lock()
	if gen != c.generation || c.state == nil {
		c.mu.Unlock()
		return nil, ErrStaleResponse
	}
	next := c.state.Clone()
	if err := fn(next); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state = next
	snap := next.Clone()
	c.mu.Unlock()

	c.emit(Event{Type: EventStateChanged, State: snap})
	return snap, nil
}

// fail records a boundary failure: the message is appended to the feedback
// log and the pending interaction is cleared so play cannot get stuck.
func (c *Controller) fail(gen uint64, err error) error {
	if errors.Is(err, ErrStaleResponse) {
		c.logger.Debug("Discarding stale response", "generation", gen)
		return err
	}
	if !game.IsBoundaryFailure(err) {
		c.notice(err)
		return err
	}

	c.logger.Error("Request failed", "error", err)
	msg := describe(err)
	_, cerr := c.commit(gen, func(s *game.SessionState) error {
		s.AppendFeedback(msg)
		s.Interaction = nil
		return nil
	})
	if errors.Is(cerr, ErrStaleResponse) {
		return cerr
	}
	c.emit(Event{Type: EventError, State: c.State(), Message: msg, Err: err})
	return err
}

func (c *Controller) notice(err error) {
	c.logger.Info("Decision rejected", "error", err)
	c.emit(Event{Type: EventNotice, State: c.State(), Message: describe(err), Err: err})
}

func (c *Controller) emit(e Event) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}

func describe(err error) string {
	var ge *game.Error
	if errors.As(err, &ge) {
		switch ge.Kind {
		case game.KindTransport:
			return "Connection problem: " + err.Error()
		case game.KindServerRejected:
			return "Server rejected the request: " + err.Error()
		}
		return ge.Message
	}
	return err.Error()
}
