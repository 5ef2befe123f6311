// Package protocol defines the JSON exchanged with the simulation server and
// validates it at the boundary. Decoded values are strict game types; any
// missing required field fails fast as a server_rejected error.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/probability"
)

// State is a validated game_state
type State struct {
	CourseName string
	Players    []game.Player
	Hole       game.HoleState
	Betting    game.BettingState
	Teams      game.TeamFormation
}

func rejected(format string, args ...any) error {
	return game.NewError(game.KindServerRejected, format, args...)
}

// Check returns a server_rejected error unless the status is ok
func (r *Response) Check() error {
	if r.Status != StatusOK {
		msg := r.Message
		if msg == "" {
			msg = "no message"
		}
		return rejected("status %q: %s", r.Status, msg)
	}
	return nil
}

// HasNextShot reads next_shot_available, treating a missing field as false
func (r *Response) HasNextShot() bool {
	return r.NextShotAvailable != nil && *r.NextShotAvailable
}

// Probabilities returns the probability groups present in the response
func (r *Response) Probabilities() probability.Update {
	var u probability.Update
	if r.ShotProbabilities != nil {
		u.Shot = probability.Group(r.ShotProbabilities)
	}
	if r.BettingProbabilities != nil {
		u.Betting = probability.Group(r.BettingProbabilities)
	}
	return u
}

// DecodeState validates raw game_state JSON. A nil or empty raw value
// returns (nil, nil): the response carried no state change.
func DecodeState(raw json.RawMessage) (*State, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var gs GameState
	if err := json.Unmarshal(raw, &gs); err != nil {
		return nil, game.WrapError(game.KindServerRejected, err, "malformed game_state")
	}

	players, err := decodePlayers(gs.Players)
	if err != nil {
		return nil, err
	}
	if gs.HoleState == nil {
		return nil, rejected("game_state.hole_state is missing")
	}
	hole, err := decodeHole(gs.HoleState)
	if err != nil {
		return nil, err
	}
	if gs.CurrentHole != nil && *gs.CurrentHole != hole.Number {
		return nil, rejected("current_hole %d disagrees with hole_state.hole_number %d", *gs.CurrentHole, hole.Number)
	}
	betting, err := decodeBetting(gs.HoleState.Betting)
	if err != nil {
		return nil, err
	}
	teams, err := decodeTeams(gs.HoleState.Teams)
	if err != nil {
		return nil, err
	}
	if err := game.ValidateTeams(teams, players); err != nil {
		return nil, game.WrapError(game.KindServerRejected, err, "invalid teams")
	}

	return &State{
		CourseName: gs.CourseName,
		Players:    players,
		Hole:       hole,
		Betting:    betting,
		Teams:      teams,
	}, nil
}

func decodePlayers(in []PlayerWire) ([]game.Player, error) {
	if len(in) == 0 {
		return nil, rejected("game_state.players is missing")
	}
	out := make([]game.Player, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, p := range in {
		if p.ID == "" {
			return nil, rejected("player %d has no id", i)
		}
		if seen[p.ID] {
			return nil, rejected("duplicate player id %s", p.ID)
		}
		seen[p.ID] = true
		if p.Handicap == nil {
			return nil, rejected("player %s has no handicap", p.ID)
		}
		out = append(out, game.Player{
			ID:       p.ID,
			Name:     p.Name,
			Handicap: *p.Handicap,
			IsHuman:  p.IsHuman,
			Points:   p.Points,
		})
	}
	return out, nil
}

func decodeHole(h *HoleWire) (game.HoleState, error) {
	if h.HoleNumber == nil {
		return game.HoleState{}, rejected("hole_state.hole_number is missing")
	}
	if n := *h.HoleNumber; n < 1 || n > game.HolesPerRound {
		return game.HoleState{}, rejected("hole_number %d out of range", n)
	}
	if h.HolePar == nil {
		return game.HoleState{}, rejected("hole_state.hole_par is missing")
	}

	balls := make(map[string]game.BallPosition, len(h.BallPositions))
	for id, b := range h.BallPositions {
		if b.DistanceToPin == nil {
			return game.HoleState{}, rejected("ball for %s has no distance_to_pin", id)
		}
		balls[id] = game.BallPosition{
			PlayerID:      id,
			DistanceToPin: *b.DistanceToPin,
			Lie:           b.LieType,
			ShotCount:     b.ShotCount,
			Holed:         b.Holed || b.LieType == game.LieInHole,
		}
	}

	return game.HoleState{
		Number:            *h.HoleNumber,
		Par:               *h.HolePar,
		Balls:             balls,
		HittingOrder:      append([]string(nil), h.HittingOrder...),
		CaptainID:         h.CaptainID,
		NextPlayerToHit:   h.NextPlayerToHit,
		CurrentShotNumber: h.CurrentShotNumber,
		Complete:          h.HoleComplete,
	}, nil
}

func decodeBetting(b *BettingWire) (game.BettingState, error) {
	if b == nil {
		return game.BettingState{}, rejected("hole_state.betting is missing")
	}
	if b.BaseWager == nil {
		return game.BettingState{}, rejected("betting.base_wager is missing")
	}
	out := game.BettingState{
		BaseWager:    *b.BaseWager,
		CurrentWager: *b.BaseWager,
		Doubled:      b.Doubled,
		Redoubled:    b.Redoubled,
		SpecialRules: b.SpecialRules,
	}
	if b.CurrentWager != nil {
		out.CurrentWager = *b.CurrentWager
	}
	if err := out.Validate(); err != nil {
		return game.BettingState{}, game.WrapError(game.KindServerRejected, err, "invalid betting state")
	}
	return out, nil
}

func decodeTeams(t *TeamsWire) (game.TeamFormation, error) {
	if t == nil {
		return game.Pending{}, nil
	}
	switch t.Type {
	case "", "pending":
		p := game.Pending{}
		if t.PendingRequest != nil {
			p.Request = &game.PartnerRequest{
				CaptainID: t.PendingRequest.Captain,
				PartnerID: t.PendingRequest.Requested,
			}
		}
		return p, nil
	case "partners":
		return game.Partners{Team1: t.Team1, Team2: t.Team2}, nil
	case "solo":
		return game.Solo{PlayerID: t.SoloPlayer, Opponents: t.Opponents}, nil
	default:
		return nil, rejected("unknown teams type %q", t.Type)
	}
}

// DecodeInteraction converts interaction_needed into a typed variant. A nil
// input means nothing is pending. Unknown types are server_rejected.
func DecodeInteraction(in *Interaction) (game.Interaction, error) {
	if in == nil {
		return nil, nil
	}
	switch game.InteractionKind(in.Type) {
	case game.CaptainDecisionKind:
		if in.CaptainID == "" {
			return nil, rejected("captain_decision without captain_id")
		}
		return game.CaptainDecision{
			CaptainID:        in.CaptainID,
			EligiblePartners: append([]string(nil), in.EligiblePartners...),
		}, nil
	case game.PartnershipResponseKind:
		if in.CaptainID == "" {
			return nil, rejected("partnership_response without captain_id")
		}
		return game.PartnershipResponse{CaptainID: in.CaptainID, RequestedPartner: in.RequestedPartner}, nil
	case game.DoubleOfferKind:
		return game.DoubleOffer{PlayerID: in.PlayerID}, nil
	case game.DoubleResponseKind:
		return game.DoubleResponse{OfferedBy: in.OfferedBy, Wager: in.CurrentWager}, nil
	default:
		return nil, rejected("unknown interaction type %q", in.Type)
	}
}

// DecodeShotResult converts shot_result, or returns nil when absent
func DecodeShotResult(in *ShotResult) (*game.ShotResult, error) {
	if in == nil {
		return nil, nil
	}
	if in.PlayerID == "" {
		return nil, rejected("shot_result has no player_id")
	}
	if in.DistanceToPin == nil {
		return nil, rejected("shot_result for %s has no distance_to_pin", in.PlayerID)
	}
	return &game.ShotResult{
		PlayerID:      in.PlayerID,
		ShotNumber:    in.ShotNumber,
		Lie:           in.LieType,
		DistanceToPin: *in.DistanceToPin,
		Holed:         in.Holed || in.LieType == game.LieInHole,
		Description:   in.Description,
	}, nil
}

// EncodeInteraction is the inverse of DecodeInteraction, used by fakes and
// the state feed.
func EncodeInteraction(i game.Interaction) *Interaction {
	switch i := i.(type) {
	case nil:
		return nil
	case game.CaptainDecision:
		return &Interaction{Type: string(i.Kind()), CaptainID: i.CaptainID, EligiblePartners: i.EligiblePartners}
	case game.PartnershipResponse:
		return &Interaction{Type: string(i.Kind()), CaptainID: i.CaptainID, RequestedPartner: i.RequestedPartner}
	case game.DoubleOffer:
		return &Interaction{Type: string(i.Kind()), PlayerID: i.PlayerID}
	case game.DoubleResponse:
		return &Interaction{Type: string(i.Kind()), OfferedBy: i.OfferedBy, CurrentWager: i.Wager}
	default:
		panic(fmt.Sprintf("unknown interaction %T", i))
	}
}
