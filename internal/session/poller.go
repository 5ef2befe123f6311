package session

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Poller fetches the poker-state summary at a fixed interval while a
// session is active. It never takes the in-flight flag.
type Poller struct {
	ctrl     *Controller
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger
}

// NewPoller creates a poller for ctrl
func NewPoller(ctrl *Controller, clock quartz.Clock, interval time.Duration, logger *log.Logger) *Poller {
	return &Poller{
		ctrl:     ctrl,
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("poller"),
	}
}

// Run polls until ctx is cancelled
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Debug("Polling poker state", "interval", p.interval)
	w := p.clock.TickerFunc(ctx, p.interval, func() error {
		p.PollOnce(ctx)
		return nil
	}, "poller")

	err := w.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// PollOnce fetches and records one summary. Results that arrive after the
// session changed are dropped.
func (p *Poller) PollOnce(ctx context.Context) {
	gen := p.ctrl.Generation()
	if gen == 0 {
		return
	}

	ps, err := p.ctrl.api.PokerState(ctx)
	if err != nil {
		p.logger.Debug("Poll failed", "error", err)
		return
	}

	if err := p.ctrl.SetPokerState(gen, ps); err != nil {
		p.logger.Debug("Dropping poll result", "error", err)
	}
}
