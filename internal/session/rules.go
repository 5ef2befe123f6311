package session

import (
	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/protocol"
)

// checkPreconditions enforces the game rules for intent before anything
// is sent to the server.
func checkPreconditions(s *game.SessionState, intent decision.Intent) error {
	switch intent.Kind {
	case decision.RequestPartner:
		return game.CanInvitePartner(s, intent.PartnerID)
	case decision.GoSolo, decision.KeepWatching:
		return game.CanMakeCaptainDecision(s)
	case decision.AcceptPartnership, decision.DeclinePartnership:
		return game.CanRespondToPartnership(s)
	case decision.OfferDouble:
		return game.CanOfferDouble(s, s.HumanID())
	case decision.PassDouble:
		return game.CanPassDouble(s)
	case decision.AcceptDouble, decision.DeclineDouble:
		return game.CanRespondToDouble(s)
	default:
		return game.NewError(game.KindUnsupportedIntent, "unsupported intent %s", intent.Kind)
	}
}

// checkTransition rejects deltas that would break the per-hole invariants:
// holes never go backwards, the wager never drops within a hole and teams
// never leave their formed variant.
func checkTransition(s *game.SessionState, st *protocol.State) error {
	if st == nil {
		return nil
	}
	if st.Hole.Number < s.Hole.Number {
		return game.NewError(game.KindServerRejected, "hole went backwards from %d to %d", s.Hole.Number, st.Hole.Number)
	}
	if st.Hole.Number != s.Hole.Number {
		return nil
	}
	if st.Betting.CurrentWager < s.Betting.CurrentWager {
		return game.NewError(game.KindServerRejected, "wager dropped from %d to %d within hole %d", s.Betting.CurrentWager, st.Betting.CurrentWager, s.Hole.Number)
	}
	if !game.CanTransition(s.Teams, st.Teams) {
		return game.NewError(game.KindServerRejected, "teams cannot change from %s to %s within a hole", s.Teams.Kind(), st.Teams.Kind())
	}
	return nil
}

// applyState copies a validated server state onto the session
func applyState(s *game.SessionState, st *protocol.State) {
	if st == nil {
		return
	}
	s.Players = st.Players
	s.Hole = st.Hole
	s.Betting = st.Betting
	s.Teams = st.Teams
	if st.CourseName != "" {
		s.CourseName = st.CourseName
	}
}
