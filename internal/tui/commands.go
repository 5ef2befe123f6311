package tui

import (
	"fmt"
	"strings"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
)

// CommandKind is what a line of input asks for
type CommandKind int

const (
	CmdContinue CommandKind = iota
	CmdDecision
	CmdShot
	CmdHole
	CmdHelp
	CmdQuit
)

// Command is a parsed line of input
type Command struct {
	Kind   CommandKind
	Intent decision.Intent
}

const helpText = "partner <name>, solo, watch, accept, decline, double, pass, shot, hole, quit"

// ParseCommand turns a line of input into a command. accept and decline
// apply to whichever of a partnership request or a double is pending.
// Partners may be given by id or by name.
func ParseCommand(input string, s *game.SessionState) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return Command{Kind: CmdContinue}, nil
	}

	verb, args := parts[0], parts[1:]
	switch verb {
	case "partner", "p":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: partner <name>")
		}
		id, err := resolvePlayer(s, args[0])
		if err != nil {
			return Command{}, err
		}
		return decide(decision.NewRequestPartner(id)), nil
	case "solo":
		return decide(decision.NewGoSolo()), nil
	case "watch", "w":
		return decide(decision.NewKeepWatching()), nil
	case "accept", "a", "yes", "y":
		if s != nil {
			if _, ok := s.Interaction.(game.DoubleResponse); ok {
				return decide(decision.NewAcceptDouble()), nil
			}
		}
		return decide(decision.NewAcceptPartnership()), nil
	case "decline", "d", "no", "n":
		if s != nil {
			if _, ok := s.Interaction.(game.DoubleResponse); ok {
				return decide(decision.NewDeclineDouble()), nil
			}
		}
		return decide(decision.NewDeclinePartnership()), nil
	case "double":
		return decide(decision.NewOfferDouble()), nil
	case "pass":
		return decide(decision.NewPassDouble()), nil
	case "shot", "s":
		return Command{Kind: CmdShot}, nil
	case "hole", "next":
		return Command{Kind: CmdHole}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q (try: %s)", verb, helpText)
}

func decide(intent decision.Intent) Command {
	return Command{Kind: CmdDecision, Intent: intent}
}

// resolvePlayer matches arg against player ids and names
func resolvePlayer(s *game.SessionState, arg string) (string, error) {
	if s == nil {
		return arg, nil
	}
	for _, p := range s.Players {
		if strings.EqualFold(p.ID, arg) || strings.EqualFold(p.Name, arg) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no player called %q", arg)
}
