package game

import (
	"math"
	"slices"
	"strings"
)

// SetupPlayer is a participant as entered before the session starts
type SetupPlayer struct {
	Name        string  `json:"name"`
	Handicap    float64 `json:"handicap"`
	Personality string  `json:"personality,omitempty"`
}

// ValidateSetup checks the human and opponents before anything is sent
func ValidateSetup(human SetupPlayer, opponents []SetupPlayer) error {
	if strings.TrimSpace(human.Name) == "" {
		return NewError(KindSetup, "human player name is required")
	}
	if !validHandicap(human.Handicap) {
		return NewError(KindSetup, "handicap %v for %s is outside 0-%d", human.Handicap, human.Name, MaxHandicap)
	}
	if len(opponents) == 0 {
		return NewError(KindSetup, "at least one opponent is required")
	}
	for i, o := range opponents {
		if strings.TrimSpace(o.Name) == "" {
			return NewError(KindSetup, "opponent %d has no name", i+1)
		}
		if !validHandicap(o.Handicap) {
			return NewError(KindSetup, "handicap %v for %s is outside 0-%d", o.Handicap, o.Name, MaxHandicap)
		}
	}
	return nil
}

func validHandicap(h float64) bool {
	return !math.IsNaN(h) && !math.IsInf(h, 0) && h >= 0 && h <= MaxHandicap
}

// CanMakeCaptainDecision checks that a captain decision is being asked for
func CanMakeCaptainDecision(s *SessionState) error {
	if err := holeOpen(s); err != nil {
		return err
	}
	if _, ok := s.Interaction.(CaptainDecision); !ok {
		return NewError(KindDomainPrecondition, "no captain decision is pending")
	}
	if !IsPending(s.Teams) {
		return NewError(KindDomainPrecondition, "teams are already formed for hole %d", s.Hole.Number)
	}
	return nil
}

// CanInvitePartner checks that partnerID may be invited: the partner has
// hit their tee shot and the next player in the hitting order has not.
func CanInvitePartner(s *SessionState, partnerID string) error {
	if err := CanMakeCaptainDecision(s); err != nil {
		return err
	}
	captain := s.CaptainID()
	if partnerID == "" || partnerID == captain {
		return NewError(KindDomainPrecondition, "captain cannot partner with %q", partnerID)
	}
	if PlayerByID(s.Players, partnerID) == nil {
		return NewError(KindDomainPrecondition, "unknown partner %s", partnerID)
	}
	cd := s.Interaction.(CaptainDecision)
	if len(cd.EligiblePartners) > 0 && !slices.Contains(cd.EligiblePartners, partnerID) {
		return NewError(KindDomainPrecondition, "%s is not an eligible partner", partnerID)
	}
	if !s.Hole.HasTeedOff(partnerID) {
		return NewError(KindDomainPrecondition, "%s has not hit their tee shot yet", partnerID)
	}
	if next := s.Hole.NextInOrderAfter(partnerID); next != "" && s.Hole.HasTeedOff(next) {
		return NewError(KindDomainPrecondition, "too late to invite %s, %s has already hit", partnerID, next)
	}
	return nil
}

// CanRespondToPartnership checks that a partnership invitation is pending
func CanRespondToPartnership(s *SessionState) error {
	if err := holeOpen(s); err != nil {
		return err
	}
	if _, ok := s.Interaction.(PartnershipResponse); !ok {
		return NewError(KindDomainPrecondition, "no partnership request is pending")
	}
	return nil
}

// CanOfferDouble checks that the human was asked whether to raise and
// applies the line of scrimmage: a side whose ball is the furthest from the
// pin cannot offer, and nobody can once a ball is holed.
func CanOfferDouble(s *SessionState, playerID string) error {
	if err := holeOpen(s); err != nil {
		return err
	}
	if _, ok := s.Interaction.(DoubleOffer); !ok {
		return NewError(KindDomainPrecondition, "no double offer is pending")
	}
	if s.Hole.AnyHoled() {
		return NewError(KindDomainPrecondition, "doubles cannot be offered once a ball is holed")
	}
	side := SideOf(s.Teams, playerID)
	for _, id := range s.Hole.FurthestFromPin() {
		if slices.Contains(side, id) {
			return NewError(KindDomainPrecondition, "%s is furthest from the pin and cannot offer a double", id)
		}
	}
	return nil
}

// CanPassDouble checks that the human was asked whether to raise
func CanPassDouble(s *SessionState) error {
	if err := holeOpen(s); err != nil {
		return err
	}
	if _, ok := s.Interaction.(DoubleOffer); !ok {
		return NewError(KindDomainPrecondition, "no double offer is pending")
	}
	return nil
}

// CanRespondToDouble checks that a double awaits acceptance
func CanRespondToDouble(s *SessionState) error {
	if err := holeOpen(s); err != nil {
		return err
	}
	if _, ok := s.Interaction.(DoubleResponse); !ok {
		return NewError(KindDomainPrecondition, "no double is awaiting a response")
	}
	return nil
}

func holeOpen(s *SessionState) error {
	if s.Hole.Complete {
		return NewError(KindDomainPrecondition, "hole %d is complete", s.Hole.Number)
	}
	return nil
}
