// Package progression advances a match one shot or one hole at a time by
// calling the simulation server and turning its response into a validated
// delta for the session controller to apply.
package progression

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/probability"
	"github.com/lox/wolfgoatpig/internal/protocol"
)

// Simulator is the part of the server the driver needs
type Simulator interface {
	PlayNextShot(ctx context.Context, req protocol.NextShotRequest) (*protocol.Response, error)
	NextHole(ctx context.Context) (*protocol.Response, error)
}

// ShotDelta is the validated result of one shot
type ShotDelta struct {
	State         *protocol.State
	Interaction   game.Interaction
	Feedback      []string
	ShotResult    *game.ShotResult
	HasNextShot   bool
	Probabilities probability.Update
}

// HoleDelta is the validated result of moving to the next hole
type HoleDelta struct {
	State        *protocol.State
	Feedback     []string
	GameFinished bool
}

// Driver advances shots and holes
type Driver struct {
	sim    Simulator
	logger *log.Logger
}

// NewDriver creates a driver backed by sim
func NewDriver(sim Simulator, logger *log.Logger) *Driver {
	return &Driver{
		sim:    sim,
		logger: logger.WithPrefix("progression"),
	}
}

// Advance simulates the next shot, sending any buffered decision fragment.
// A response without next_shot_available is treated as having no next shot.
func (d *Driver) Advance(ctx context.Context, pending *game.PendingDecision) (ShotDelta, error) {
	req := protocol.NextShotRequest{}
	if !pending.Empty() {
		req.Decision = pending
	}

	resp, err := d.sim.PlayNextShot(ctx, req)
	if err != nil {
		return ShotDelta{}, err
	}

	delta, err := DecodeShot(resp)
	if err != nil {
		return ShotDelta{}, fmt.Errorf("play-next-shot: %w", err)
	}

	if delta.ShotResult != nil {
		d.logger.Debug("Shot played",
			"player", delta.ShotResult.PlayerID,
			"distance", delta.ShotResult.DistanceToPin,
			"lie", delta.ShotResult.Lie)
	}
	d.logger.Debug("Shot delta", "next_shot", delta.HasNextShot, "interaction", interactionKind(delta.Interaction))
	return delta, nil
}

// NextHole moves to the next hole
func (d *Driver) NextHole(ctx context.Context) (HoleDelta, error) {
	resp, err := d.sim.NextHole(ctx)
	if err != nil {
		return HoleDelta{}, err
	}

	st, err := protocol.DecodeState(resp.GameState)
	if err != nil {
		if !resp.GameFinished {
			return HoleDelta{}, fmt.Errorf("next-hole: %w", err)
		}
		// a finished round may describe a hole past the last one
		d.logger.Debug("Ignoring game_state of finished round", "error", err)
		st = nil
	}
	if st == nil && !resp.GameFinished {
		return HoleDelta{}, game.NewError(game.KindServerRejected, "next-hole returned no game_state")
	}

	d.logger.Debug("Hole advanced", "finished", resp.GameFinished)
	return HoleDelta{State: st, Feedback: resp.Feedback, GameFinished: resp.GameFinished}, nil
}

// DecodeShot validates any response shaped like play-next-shot. It is also
// used for setup and play-hole responses, which share the shape.
func DecodeShot(resp *protocol.Response) (ShotDelta, error) {
	st, err := protocol.DecodeState(resp.GameState)
	if err != nil {
		return ShotDelta{}, err
	}
	interaction, err := protocol.DecodeInteraction(resp.InteractionNeeded)
	if err != nil {
		return ShotDelta{}, err
	}
	shot, err := protocol.DecodeShotResult(resp.ShotResult)
	if err != nil {
		return ShotDelta{}, err
	}

	return ShotDelta{
		State:         st,
		Interaction:   interaction,
		Feedback:      resp.Feedback,
		ShotResult:    shot,
		HasNextShot:   resp.HasNextShot(),
		Probabilities: resp.Probabilities(),
	}, nil
}

func interactionKind(i game.Interaction) string {
	if i == nil {
		return "none"
	}
	return string(i.Kind())
}
