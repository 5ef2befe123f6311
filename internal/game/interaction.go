package game

import "slices"

// InteractionKind names the decision currently blocking progress
type InteractionKind string

const (
	CaptainDecisionKind     InteractionKind = "captain_decision"
	PartnershipResponseKind InteractionKind = "partnership_response"
	DoubleOfferKind         InteractionKind = "double_offer"
	DoubleResponseKind      InteractionKind = "double_response"
)

// Interaction is the decision the human must make before play continues.
// A nil Interaction means nothing is pending.
type Interaction interface {
	Kind() InteractionKind
	interaction()
}

// CaptainDecision asks the captain to invite a partner, go solo or keep
// watching the next tee shot.
type CaptainDecision struct {
	CaptainID        string
	EligiblePartners []string
}

// PartnershipResponse asks the invited player to accept or decline
type PartnershipResponse struct {
	CaptainID        string
	RequestedPartner string
}

// DoubleOffer asks the human side whether to raise the wager
type DoubleOffer struct {
	PlayerID string
}

// DoubleResponse asks the human side to accept or decline a raise
type DoubleResponse struct {
	OfferedBy string
	Wager     int
}

func (CaptainDecision) Kind() InteractionKind     { return CaptainDecisionKind }
func (PartnershipResponse) Kind() InteractionKind { return PartnershipResponseKind }
func (DoubleOffer) Kind() InteractionKind         { return DoubleOfferKind }
func (DoubleResponse) Kind() InteractionKind      { return DoubleResponseKind }

func (CaptainDecision) interaction()     {}
func (PartnershipResponse) interaction() {}
func (DoubleOffer) interaction()         {}
func (DoubleResponse) interaction()      {}

func cloneInteraction(i Interaction) Interaction {
	if cd, ok := i.(CaptainDecision); ok {
		cd.EligiblePartners = slices.Clone(cd.EligiblePartners)
		return cd
	}
	return i
}

// PendingDecision is a hole decision fragment that has been accepted by the
// server but not yet confirmed by a shot. It is sent with the next
// play-next-shot request.
type PendingDecision struct {
	Action            string `json:"action,omitempty"`
	RequestedPartner  string `json:"requested_partner,omitempty"`
	AcceptPartnership *bool  `json:"accept_partnership,omitempty"`
}

// Empty reports whether the fragment carries nothing
func (p *PendingDecision) Empty() bool {
	return p == nil || (p.Action == "" && p.RequestedPartner == "" && p.AcceptPartnership == nil)
}
