// Package autopilot plays a whole round without a human at the keyboard.
// A Policy answers every interaction the server raises and a Runner keeps
// the match moving shot by shot until the round is complete.
package autopilot

import (
	"fmt"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
)

// Choice is a policy's answer to the pending interaction
type Choice struct {
	Intent    decision.Intent
	Reasoning string
}

// Policy decides how the human seat answers interactions
type Policy interface {
	Name() string
	Decide(s *game.SessionState) Choice
}

// NewPolicy returns the policy registered under name
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "passive", "":
		return PassivePolicy{}, nil
	case "aggressive":
		return AggressivePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want passive or aggressive)", name)
	}
}

// PassivePolicy never forms a team itself and never raises the stakes. It
// accepts partnerships and declines doubles.
type PassivePolicy struct{}

func (PassivePolicy) Name() string { return "passive" }

func (PassivePolicy) Decide(s *game.SessionState) Choice {
	switch s.Interaction.(type) {
	case game.CaptainDecision:
		return Choice{decision.NewKeepWatching(), "passive: let the tee shots play out"}
	case game.PartnershipResponse:
		return Choice{decision.NewAcceptPartnership(), "passive: accept the invitation"}
	case game.DoubleOffer:
		return Choice{decision.NewPassDouble(), "passive: never offer"}
	case game.DoubleResponse:
		return Choice{decision.NewDeclineDouble(), "passive: decline the double"}
	}
	return Choice{decision.NewKeepWatching(), "passive: nothing to decide"}
}

// AggressivePolicy invites the first partner it still may, goes solo when
// there is none, and doubles whenever the line of scrimmage lets it.
type AggressivePolicy struct{}

func (AggressivePolicy) Name() string { return "aggressive" }

func (AggressivePolicy) Decide(s *game.SessionState) Choice {
	switch i := s.Interaction.(type) {
	case game.CaptainDecision:
		if id := firstPartner(s, i); id != "" {
			return Choice{decision.NewRequestPartner(id), fmt.Sprintf("aggressive: partner with %s", id)}
		}
		if s.Hole.HasTeedOff(s.CaptainID()) {
			return Choice{decision.NewGoSolo(), "aggressive: nobody left to invite"}
		}
		return Choice{decision.NewKeepWatching(), "aggressive: wait for a tee shot worth taking"}
	case game.PartnershipResponse:
		return Choice{decision.NewAcceptPartnership(), "aggressive: accept the invitation"}
	case game.DoubleOffer:
		if err := game.CanOfferDouble(s, s.HumanID()); err == nil {
			return Choice{decision.NewOfferDouble(), "aggressive: ahead of the line, double"}
		}
		return Choice{decision.NewPassDouble(), "aggressive: behind the line"}
	case game.DoubleResponse:
		return Choice{decision.NewAcceptDouble(), "aggressive: always accept"}
	}
	return Choice{decision.NewKeepWatching(), "aggressive: nothing to decide"}
}

// firstPartner returns the first candidate that can still be invited
func firstPartner(s *game.SessionState, cd game.CaptainDecision) string {
	candidates := cd.EligiblePartners
	if len(candidates) == 0 {
		candidates = s.Hole.HittingOrder
	}
	for _, id := range candidates {
		if game.CanInvitePartner(s, id) == nil {
			return id
		}
	}
	return ""
}
