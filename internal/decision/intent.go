package decision

import "fmt"

// IntentKind enumerates the decisions the human can submit
type IntentKind int

const (
	// RequestPartner invites PartnerID to join the captain
	RequestPartner IntentKind = iota + 1
	// GoSolo plays the captain alone against everyone
	GoSolo
	// KeepWatching waits for the next tee shot before choosing
	KeepWatching
	// AcceptPartnership accepts the captain's invitation
	AcceptPartnership
	// DeclinePartnership declines the captain's invitation
	DeclinePartnership
	// OfferDouble raises the wager when asked whether to raise
	OfferDouble
	// PassDouble declines to raise when asked whether to raise
	PassDouble
	// AcceptDouble accepts the other side's raise
	AcceptDouble
	// DeclineDouble declines the other side's raise
	DeclineDouble
)

// String returns the string representation of an intent kind
func (k IntentKind) String() string {
	switch k {
	case RequestPartner:
		return "request-partner"
	case GoSolo:
		return "go-solo"
	case KeepWatching:
		return "keep-watching"
	case AcceptPartnership:
		return "accept-partnership"
	case DeclinePartnership:
		return "decline-partnership"
	case OfferDouble:
		return "offer-double"
	case PassDouble:
		return "pass-double"
	case AcceptDouble:
		return "accept-double"
	case DeclineDouble:
		return "decline-double"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}

// Intent is a decision submitted by the human
type Intent struct {
	Kind      IntentKind
	PartnerID string
}

func (i Intent) String() string {
	if i.Kind == RequestPartner {
		return fmt.Sprintf("%s(%s)", i.Kind, i.PartnerID)
	}
	return i.Kind.String()
}

// Intent constructors

func NewRequestPartner(partnerID string) Intent {
	return Intent{Kind: RequestPartner, PartnerID: partnerID}
}

func NewGoSolo() Intent             { return Intent{Kind: GoSolo} }
func NewKeepWatching() Intent       { return Intent{Kind: KeepWatching} }
func NewAcceptPartnership() Intent  { return Intent{Kind: AcceptPartnership} }
func NewDeclinePartnership() Intent { return Intent{Kind: DeclinePartnership} }
func NewOfferDouble() Intent        { return Intent{Kind: OfferDouble} }
func NewPassDouble() Intent         { return Intent{Kind: PassDouble} }
func NewAcceptDouble() Intent       { return Intent{Kind: AcceptDouble} }
func NewDeclineDouble() Intent      { return Intent{Kind: DeclineDouble} }

// IsHoleDecision reports whether the intent is sent to play-hole
func (k IntentKind) IsHoleDecision() bool {
	switch k {
	case RequestPartner, GoSolo, KeepWatching, AcceptPartnership, DeclinePartnership:
		return true
	}
	return false
}

// IsBettingDecision reports whether the intent is sent to betting-decision
func (k IntentKind) IsBettingDecision() bool {
	switch k {
	case OfferDouble, PassDouble, AcceptDouble, DeclineDouble:
		return true
	}
	return false
}
