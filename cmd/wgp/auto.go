package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/lox/wolfgoatpig/internal/autopilot"
	"github.com/lox/wolfgoatpig/internal/client"
	"github.com/lox/wolfgoatpig/internal/feed"
	"github.com/lox/wolfgoatpig/internal/fileutil"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/session"
	"github.com/lox/wolfgoatpig/internal/tui"
)

type AutoCmd struct {
	Policy  string        `default:"passive" enum:"passive,aggressive" help:"Decision policy for the human seat"`
	Delay   time.Duration `default:"0s" help:"Pause between steps"`
	Summary string        `type:"path" help:"Write the final session as JSON to this file"`
}

func (c *AutoCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Player.Name == "" {
		cfg.Player.Name = "Autopilot"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	applyUI(cfg)

	logger := newLogger(os.Stderr, cfg.GetLogLevel())

	policy, err := autopilot.NewPolicy(c.Policy)
	if err != nil {
		return err
	}

	api, err := client.NewClient(cfg.GetServerURL(), cfg.RequestTimeout(), logger)
	if err != nil {
		return err
	}
	ctrl := session.NewController(api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := ctrl.StartSession(ctx, cfg.Human(), cfg.SetupOpponents(), cfg.Course); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer ctrl.EndSession()

	var final *game.SessionState
	err = runWithBackground(ctx, cfg, ctrl, logger, func(ctx context.Context) error {
		runner := autopilot.NewRunner(ctrl, policy, quartz.NewReal(), c.Delay, logger)
		var err error
		final, err = runner.Run(ctx)
		return err
	})
	if final == nil {
		return err
	}
	printStandings(os.Stdout, final)
	if c.Summary != "" {
		if werr := writeSummary(c.Summary, final); werr != nil {
			logger.Error("Failed to write summary", "path", c.Summary, "error", werr)
			if err == nil {
				err = werr
			}
		} else {
			logger.Info("Wrote summary", "path", c.Summary)
		}
	}
	return err
}

func writeSummary(path string, s *game.SessionState) error {
	view, err := feed.NewSessionView(s)
	if err != nil {
		return err
	}
	return fileutil.WriteJSON(path, view)
}

func printStandings(w io.Writer, s *game.SessionState) {
	players := append([]game.Player(nil), s.Players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Points > players[j].Points })

	title := fmt.Sprintf("%s after hole %d", s.CourseName, s.Hole.Number)
	if s.RoundComplete {
		title = s.CourseName + " final standings"
	}
	_, _ = fmt.Fprintln(w, tui.HeaderStyle.Render(title))
	for i, p := range players {
		line := fmt.Sprintf("%d. %-12s %+4d quarters", i+1, p.Name, p.Points)
		style := tui.PlayerInfoStyle
		if p.IsHuman {
			style = tui.SuccessStyle
		}
		_, _ = fmt.Fprintln(w, style.Render(line))
	}
	_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("session %s", s.ID)))
}
