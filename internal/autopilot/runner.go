package autopilot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
)

// Session is the part of the session controller the runner drives
type Session interface {
	State() *game.SessionState
	SubmitDecision(ctx context.Context, intent decision.Intent) error
	AdvanceShot(ctx context.Context) error
	AdvanceHole(ctx context.Context) error
}

const (
	DefaultMaxSteps    = 5000
	DefaultMaxFailures = 5
)

// Runner plays a session to the end of the round
type Runner struct {
	session Session
	policy  Policy
	clock   quartz.Clock
	delay   time.Duration
	logger  *log.Logger

	MaxSteps    int
	MaxFailures int
}

// NewRunner creates a runner pausing delay between steps
func NewRunner(session Session, policy Policy, clock quartz.Clock, delay time.Duration, logger *log.Logger) *Runner {
	return &Runner{
		session:     session,
		policy:      policy,
		clock:       clock,
		delay:       delay,
		logger:      logger.WithPrefix("autopilot"),
		MaxSteps:    DefaultMaxSteps,
		MaxFailures: DefaultMaxFailures,
	}
}

// Run steps the session until the round is complete and returns the final
// state. It stops early when ctx is cancelled or too many steps fail in a
// row.
func (r *Runner) Run(ctx context.Context) (*game.SessionState, error) {
	r.logger.Info("Autopilot engaged", "policy", r.policy.Name())

	failures := 0
	for step := 0; step < r.MaxSteps; step++ {
		s := r.session.State()
		if s == nil {
			return nil, errors.New("no active session")
		}
		if s.RoundComplete {
			r.logger.Info("Round complete", "steps", step)
			return s, nil
		}

		err := r.Step(ctx, s)
		switch {
		case err == nil:
			failures = 0
		case ctx.Err() != nil:
			return s, ctx.Err()
		default:
			failures++
			r.logger.Warn("Step failed", "error", err, "failures", failures)
			if failures >= r.MaxFailures {
				return r.session.State(), fmt.Errorf("giving up after %d failed steps: %w", failures, err)
			}
		}

		if err := r.pause(ctx); err != nil {
			return r.session.State(), err
		}
	}
	return r.session.State(), fmt.Errorf("round not complete after %d steps", r.MaxSteps)
}

// Step performs the single action s calls for: answer the interaction,
// move to the next hole, or play a shot.
func (r *Runner) Step(ctx context.Context, s *game.SessionState) error {
	switch {
	case s.Interaction != nil:
		choice := r.policy.Decide(s)
		r.logger.Info("Deciding",
			"hole", s.Hole.Number,
			"interaction", s.Interaction.Kind(),
			"intent", choice.Intent,
			"reasoning", choice.Reasoning)
		err := r.session.SubmitDecision(ctx, choice.Intent)
		if !game.IsKind(err, game.KindDomainPrecondition) {
			return err
		}
		// the policy misjudged the rules; fall back to the cautious answer
		fallback, ok := fallbackFor(choice.Intent.Kind)
		if !ok {
			return err
		}
		r.logger.Debug("Falling back", "intent", fallback, "error", err)
		return r.session.SubmitDecision(ctx, fallback)
	case s.Hole.Complete:
		r.logger.Info("Hole complete", "hole", s.Hole.Number)
		return r.session.AdvanceHole(ctx)
	default:
		return r.session.AdvanceShot(ctx)
	}
}

// fallbackFor returns the cautious intent of the same class as k
func fallbackFor(k decision.IntentKind) (decision.Intent, bool) {
	switch {
	case k == decision.KeepWatching, k == decision.PassDouble, k == decision.DeclineDouble:
		return decision.Intent{}, false
	case k.IsHoleDecision():
		return decision.NewKeepWatching(), true
	case k == decision.OfferDouble:
		return decision.NewPassDouble(), true
	case k.IsBettingDecision():
		return decision.NewDeclineDouble(), true
	}
	return decision.Intent{}, false
}

func (r *Runner) pause(ctx context.Context) error {
	if r.delay <= 0 {
		return ctx.Err()
	}
	t := r.clock.NewTimer(r.delay, "autopilot", "pause")
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
