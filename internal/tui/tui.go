// Package tui is the terminal front-end for a Wolf Goat Pig session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/probability"
	"github.com/lox/wolfgoatpig/internal/session"
)

// Controller is the session as the TUI drives it
type Controller interface {
	State() *game.SessionState
	SubmitDecision(ctx context.Context, intent decision.Intent) error
	AdvanceShot(ctx context.Context) error
	AdvanceHole(ctx context.Context) error
}

// eventMsg carries a session event into the update loop
type eventMsg session.Event

// doneMsg reports the outcome of a controller call
type doneMsg struct {
	err error
}

// QuitMsg asks the program to exit
type QuitMsg struct{}

const eventBuffer = 256

// Model is the bubbletea model for one session
type Model struct {
	ctx    context.Context
	ctrl   Controller
	logger *log.Logger
	events chan session.Event

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	state       *game.SessionState
	busy        bool
	status      string
	statusStyle lipgloss.Style
	focusedPane int // 0 = log, 1 = input
	quitting    bool

	width       int
	height      int
	initialized bool
}

// NewModel creates a model driving ctrl. Calls to the controller run with ctx.
func NewModel(ctx context.Context, ctrl Controller, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter to continue, or type a command"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = PromptStyle
	ti.TextStyle = LogStyle
	ti.Prompt = "> "

	return &Model{
		ctx:         ctx,
		ctrl:        ctrl,
		logger:      logger.WithPrefix("tui"),
		events:      make(chan session.Event, eventBuffer),
		logViewport: vp,
		input:       ti,
		state:       ctrl.State(),
		focusedPane: 1,
	}
}

// Listener returns the session listener feeding this model. Events that
// arrive while the buffer is full are dropped; each carries a full state
// so a later one supersedes it.
func (m *Model) Listener() session.Listener {
	return func(e session.Event) {
		select {
		case m.events <- e:
		default:
			m.logger.Warn("Dropping session event, UI is behind", "type", e.Type)
		}
	}
}

// Init starts listening for session events
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.events:
			return eventMsg(e)
		case <-m.ctx.Done():
			return QuitMsg{}
		}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case eventMsg:
		m.applyEvent(session.Event(msg))
		cmds = append(cmds, m.waitForEvent())

	case doneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(describe(msg.err), ErrorStyle)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if cmd := m.handleInput(line); cmd != nil {
					cmds = append(cmds, cmd)
				}
				if m.quitting {
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleInput parses a line and returns the command that carries it out
func (m *Model) handleInput(line string) tea.Cmd {
	c, err := ParseCommand(line, m.state)
	if err != nil {
		m.setStatus(err.Error(), ErrorStyle)
		return nil
	}

	switch c.Kind {
	case CmdQuit:
		m.quitting = true
		return nil
	case CmdHelp:
		m.setStatus("Commands: "+helpText, InfoStyle)
		return nil
	case CmdContinue:
		c = m.continueCommand()
		if c.Kind == CmdContinue {
			m.setStatus("Waiting for your decision. Type help for commands.", InfoStyle)
			return nil
		}
	}

	if m.busy {
		m.setStatus("Waiting for the server...", WarningStyle)
		return nil
	}
	m.busy = true
	m.setStatus("", InfoStyle)

	ctx, ctrl := m.ctx, m.ctrl
	switch c.Kind {
	case CmdDecision:
		m.logger.Debug("Submitting", "intent", c.Intent)
		return func() tea.Msg { return doneMsg{ctrl.SubmitDecision(ctx, c.Intent)} }
	case CmdShot:
		return func() tea.Msg { return doneMsg{ctrl.AdvanceShot(ctx)} }
	default:
		return func() tea.Msg { return doneMsg{ctrl.AdvanceHole(ctx)} }
	}
}

// continueCommand picks what Enter on an empty line means right now
func (m *Model) continueCommand() Command {
	s := m.state
	switch {
	case s == nil || s.RoundComplete || s.Interaction != nil:
		return Command{Kind: CmdContinue}
	case s.Hole.Complete:
		return Command{Kind: CmdHole}
	default:
		return Command{Kind: CmdShot}
	}
}

func (m *Model) applyEvent(e session.Event) {
	switch e.Type {
	case session.EventSessionEnded:
		m.state = nil
		m.setStatus("Session ended", InfoStyle)
	case session.EventNotice:
		m.setStatus(e.Message, WarningStyle)
	case session.EventError:
		m.setStatus(e.Message, ErrorStyle)
	case session.EventRoundComplete:
		m.setStatus("Round complete! Type quit to exit.", SuccessStyle)
	}
	if e.State != nil {
		m.state = e.State
	}
	m.refreshLog()
}

func (m *Model) setStatus(text string, style lipgloss.Style) {
	m.status = text
	m.statusStyle = style
}

func (m *Model) refreshLog() {
	var lines []string
	if m.state != nil {
		for _, l := range m.state.Feedback {
			lines = append(lines, LogStyle.Render(l))
		}
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Width(m.width).Render(m.renderHeader())
	headerHeight := lipgloss.Height(header)

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	paneHeight := max(m.height-headerHeight-lipgloss.Height(actionPane)-2, 1)

	sidebarContent := m.renderSidebar()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	sidebar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Muted).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.refreshLog()
		m.initialized = true
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, top, actionPane)
}

func (m *Model) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return palette.Focus
	}
	return palette.Muted
}

func (m *Model) renderHeader() string {
	s := m.state
	if s == nil {
		return "Wolf Goat Pig - no active session"
	}
	parts := []string{
		fmt.Sprintf("%s  Hole %d/%d  Par %d", s.CourseName, s.Hole.Number, game.HolesPerRound, s.Hole.Par),
		fmt.Sprintf("Wager %dq", s.Betting.CurrentWager),
		"Teams: " + describeTeams(s),
	}
	if s.Betting.Redoubled {
		parts[1] += " (redoubled)"
	} else if s.Betting.Doubled {
		parts[1] += " (doubled)"
	}
	return strings.Join(parts, "  |  ")
}

func (m *Model) renderSidebar() string {
	s := m.state
	var b strings.Builder
	if s == nil {
		b.WriteString(InfoStyle.Render("Waiting for a session"))
		return b.String()
	}

	b.WriteString(InfoStyle.Render("Players"))
	b.WriteString("\n")
	for _, p := range s.Players {
		marker := " "
		if p.ID == s.Hole.NextPlayerToHit && !s.Hole.Complete {
			marker = ">"
		}
		ball, _ := s.Hole.Ball(p.ID)
		line := fmt.Sprintf("%s %-8s %3dq  %s", marker, p.Name, p.Points, describeBall(ball))
		if p.ID == s.CaptainID() {
			line += " (C)"
		}
		b.WriteString(PlayerInfoStyle.Render(line))
		b.WriteString("\n")
	}

	if s.Poker != nil {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot %d  Bet %d", s.Poker.PotSize, s.Poker.CurrentBet)))
		if s.Poker.BettingPhase != "" {
			b.WriteString(InfoStyle.Render("  " + s.Poker.BettingPhase))
		}
		b.WriteString("\n")
	}

	for _, group := range []string{probability.GroupShot, probability.GroupBetting} {
		g := s.Probabilities[group]
		if len(g) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(strings.ReplaceAll(group, "_", " ")))
		b.WriteString("\n")
		keys := make([]string, 0, len(g))
		for k := range g {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if probability.IsExpectedValue(k) {
				b.WriteString(fmt.Sprintf("  %s: %+.2f\n", k, g[k]))
			} else {
				b.WriteString(fmt.Sprintf("  %s: %.0f%%\n", k, g[k]*100))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	b.WriteString(m.renderPrompt())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	help := "Tab to scroll log • Enter to continue • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	b.WriteString(InfoStyle.Render(help))
	return b.String()
}

// renderPrompt describes what the player is being asked, if anything
func (m *Model) renderPrompt() string {
	s := m.state
	switch {
	case m.busy:
		return InfoStyle.Render("Waiting for the server...")
	case s == nil:
		return InfoStyle.Render("No active session")
	case s.RoundComplete:
		return SuccessStyle.Render("Round complete")
	}

	switch i := s.Interaction.(type) {
	case game.CaptainDecision:
		names := make([]string, 0, len(i.EligiblePartners))
		for _, id := range i.EligiblePartners {
			names = append(names, playerName(s, id))
		}
		prompt := "You're the captain: partner <name>, solo or watch"
		if len(names) > 0 {
			prompt += " (eligible: " + strings.Join(names, ", ") + ")"
		}
		return ActionsStyle.Render(prompt)
	case game.PartnershipResponse:
		return ActionsStyle.Render(fmt.Sprintf("%s wants you as a partner: accept or decline", playerName(s, i.CaptainID)))
	case game.DoubleOffer:
		return ActionsStyle.Render("You may offer a double: double or pass")
	case game.DoubleResponse:
		return ActionsStyle.Render(fmt.Sprintf("%s doubled to %d quarters: accept or decline", playerName(s, i.OfferedBy), i.Wager))
	}

	if s.Hole.Complete {
		return SuccessStyle.Render(fmt.Sprintf("Hole %d complete. Enter for the next hole.", s.Hole.Number))
	}
	if s.LastShot != nil {
		return InfoStyle.Render(fmt.Sprintf("Last shot: %s, %s", playerName(s, s.LastShot.PlayerID), describeShot(s.LastShot)))
	}
	return InfoStyle.Render("Enter to play the next shot")
}

func describeTeams(s *game.SessionState) string {
	switch t := s.Teams.(type) {
	case game.Partners:
		return names(s, t.Team1) + " vs " + names(s, t.Team2)
	case game.Solo:
		return playerName(s, t.PlayerID) + " alone vs " + names(s, t.Opponents)
	case game.Pending:
		if t.Request != nil {
			return fmt.Sprintf("%s asked %s", playerName(s, t.Request.CaptainID), playerName(s, t.Request.PartnerID))
		}
	}
	return "not formed"
}

func describeBall(b game.BallPosition) string {
	switch {
	case b.Holed:
		return fmt.Sprintf("holed in %d", b.ShotCount)
	case b.ShotCount == 0:
		return "on the tee"
	default:
		return fmt.Sprintf("%.0fy %s", b.DistanceToPin, b.Lie)
	}
}

func describeShot(r *game.ShotResult) string {
	if r.Holed {
		return "in the hole"
	}
	return fmt.Sprintf("%.0f yards out in the %s", r.DistanceToPin, r.Lie)
}

func names(s *game.SessionState, ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, playerName(s, id))
	}
	return strings.Join(out, " & ")
}

func playerName(s *game.SessionState, id string) string {
	if p := game.PlayerByID(s.Players, id); p != nil {
		return p.Name
	}
	return id
}

func describe(err error) string {
	switch {
	case errors.Is(err, session.ErrMutationInFlight):
		return "Still waiting for the server"
	case errors.Is(err, session.ErrInteractionPending):
		return "Answer the pending decision first"
	case errors.Is(err, session.ErrNoSession):
		return "No active session"
	case errors.Is(err, session.ErrStaleResponse):
		return "Ignored a response for an old session"
	}
	var ge *game.Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}
