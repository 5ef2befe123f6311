package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/wolfgoatpig/internal/client"
	"github.com/lox/wolfgoatpig/internal/feed"
	"github.com/lox/wolfgoatpig/internal/session"
	"github.com/lox/wolfgoatpig/internal/tui"
)

type PlayCmd struct{}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	if cfg.Player.Name == "" {
		fmt.Print("Enter your player name: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		cfg.Player.Name = strings.TrimSpace(line)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	applyUI(cfg)

	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := newLogger(logFile, cfg.GetLogLevel())

	logger.Info("Starting Wolf Goat Pig",
		"server", cfg.GetServerURL(),
		"player", cfg.Player.Name,
		"course", cfg.Course,
		"config", g.Config)

	api, err := client.NewClient(cfg.GetServerURL(), cfg.RequestTimeout(), logger)
	if err != nil {
		return err
	}
	ctrl := session.NewController(api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Teeing up at %s against %d opponents...\n", cfg.Course, len(cfg.Opponents))
	if _, err := ctrl.StartSession(ctx, cfg.Human(), cfg.SetupOpponents(), cfg.Course); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer ctrl.EndSession()

	model := tui.NewModel(ctx, ctrl, logger)
	ctrl.Subscribe(model.Listener())

	return runWithBackground(ctx, cfg, ctrl, logger, func(ctx context.Context) error {
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})
}

// runWithBackground runs fn alongside the poker-state poller and, when
// configured, the live feed. Everything stops when fn returns.
func runWithBackground(ctx context.Context, cfg *client.ClientConfig, ctrl *session.Controller, logger *log.Logger, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	poller := session.NewPoller(ctrl, quartz.NewReal(), cfg.PollInterval(), logger)
	g.Go(func() error { return poller.Run(gctx) })

	if cfg.Feed != nil {
		hub := feed.NewHub(ctrl.State, logger)
		ctrl.Subscribe(hub.Listener())
		g.Go(func() error { return hub.Serve(gctx, cfg.Feed.Address) })
	}

	g.Go(func() error {
		defer cancel()
		return fn(gctx)
	})

	return g.Wait()
}
