// Package decision maps the human's intents onto server operations and
// request payloads. It has no side effects.
package decision

import (
	"github.com/lox/wolfgoatpig/internal/game"
)

// Operation names a server endpoint
type Operation string

const (
	OpSetup           Operation = "setup"
	OpPlayHole        Operation = "play-hole"
	OpPlayNextShot    Operation = "play-next-shot"
	OpBettingDecision Operation = "betting-decision"
	OpNextHole        Operation = "next-hole"
	OpPokerState      Operation = "poker-state"
)

// Wire action values
const (
	ActionRequestPartner = "request_partner"
	ActionGoSolo         = "go_solo"
	ActionKeepWatching   = "keep_watching"
	ActionOfferDouble    = "offer_double"
	ActionAcceptDouble   = "accept_double"
	ActionDeclineDouble  = "decline_double"
)

// Payload is a request body. Each intent shape has its own type so fields
// cannot leak from one shape into another.
type Payload interface {
	payload()
}

// PartnerRequestPayload invites a partner
type PartnerRequestPayload struct {
	Action           string `json:"action"`
	RequestedPartner string `json:"requested_partner"`
}

// HoleActionPayload carries an action with no arguments
type HoleActionPayload struct {
	Action string `json:"action"`
}

// PartnershipPayload answers a partner invitation
type PartnershipPayload struct {
	AcceptPartnership bool `json:"accept_partnership"`
}

// BettingPayload carries a betting action
type BettingPayload struct {
	Action string `json:"action"`
}

func (PartnerRequestPayload) payload() {}
func (HoleActionPayload) payload()     {}
func (PartnershipPayload) payload()    {}
func (BettingPayload) payload()        {}

// Request is the resolved operation and body for an intent
type Request struct {
	Operation Operation
	Payload   Payload
}

// Resolve returns the operation and payload for intent. captainID is the
// captain of the current hole. Intents outside the closed set fail with an
// unsupported_intent error.
func Resolve(intent Intent, captainID string) (Request, error) {
	switch intent.Kind {
	case RequestPartner:
		if intent.PartnerID == "" {
			return Request{}, game.NewError(game.KindUnsupportedIntent, "request-partner needs a partner id")
		}
		if intent.PartnerID == captainID {
			return Request{}, game.NewError(game.KindDomainPrecondition, "captain %s cannot partner with themselves", captainID)
		}
		return Request{OpPlayHole, PartnerRequestPayload{Action: ActionRequestPartner, RequestedPartner: intent.PartnerID}}, nil
	case GoSolo:
		return Request{OpPlayHole, HoleActionPayload{Action: ActionGoSolo}}, nil
	case KeepWatching:
		return Request{OpPlayHole, HoleActionPayload{Action: ActionKeepWatching}}, nil
	case AcceptPartnership:
		return Request{OpPlayHole, PartnershipPayload{AcceptPartnership: true}}, nil
	case DeclinePartnership:
		return Request{OpPlayHole, PartnershipPayload{AcceptPartnership: false}}, nil
	case OfferDouble:
		return Request{OpBettingDecision, BettingPayload{Action: ActionOfferDouble}}, nil
	case PassDouble, DeclineDouble:
		return Request{OpBettingDecision, BettingPayload{Action: ActionDeclineDouble}}, nil
	case AcceptDouble:
		return Request{OpBettingDecision, BettingPayload{Action: ActionAcceptDouble}}, nil
	default:
		return Request{}, game.NewError(game.KindUnsupportedIntent, "unsupported intent %s", intent.Kind)
	}
}

// Fragment returns the part of a hole decision that must ride along with
// the next play-next-shot request, or nil when nothing needs buffering.
func Fragment(req Request) *game.PendingDecision {
	switch p := req.Payload.(type) {
	case PartnerRequestPayload:
		return &game.PendingDecision{Action: p.Action, RequestedPartner: p.RequestedPartner}
	case HoleActionPayload:
		if p.Action == ActionGoSolo {
			return &game.PendingDecision{Action: p.Action}
		}
	case PartnershipPayload:
		accept := p.AcceptPartnership
		return &game.PendingDecision{AcceptPartnership: &accept}
	}
	return nil
}
