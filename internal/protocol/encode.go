package protocol

import (
	"encoding/json"

	"github.com/lox/wolfgoatpig/internal/game"
)

// EncodeState builds the wire form of a game state
func EncodeState(players []game.Player, hole game.HoleState, betting game.BettingState, teams game.TeamFormation) GameState {
	number, par := hole.Number, hole.Par
	base, current := betting.BaseWager, betting.CurrentWager

	wp := make([]PlayerWire, 0, len(players))
	for _, p := range players {
		h := p.Handicap
		wp = append(wp, PlayerWire{ID: p.ID, Name: p.Name, Handicap: &h, IsHuman: p.IsHuman, Points: p.Points})
	}

	balls := make(map[string]BallWire, len(hole.Balls))
	for id, b := range hole.Balls {
		d := b.DistanceToPin
		balls[id] = BallWire{DistanceToPin: &d, LieType: b.Lie, ShotCount: b.ShotCount, Holed: b.Holed}
	}

	return GameState{
		CurrentHole: &number,
		Players:     wp,
		HoleState: &HoleWire{
			HoleNumber:        &number,
			HolePar:           &par,
			BallPositions:     balls,
			HittingOrder:      hole.HittingOrder,
			CaptainID:         hole.CaptainID,
			NextPlayerToHit:   hole.NextPlayerToHit,
			CurrentShotNumber: hole.CurrentShotNumber,
			HoleComplete:      hole.Complete,
			Teams:             encodeTeams(teams),
			Betting: &BettingWire{
				BaseWager:    &base,
				CurrentWager: &current,
				Doubled:      betting.Doubled,
				Redoubled:    betting.Redoubled,
				SpecialRules: betting.SpecialRules,
			},
		},
	}
}

// MarshalState is EncodeState followed by json.Marshal
func MarshalState(players []game.Player, hole game.HoleState, betting game.BettingState, teams game.TeamFormation) (json.RawMessage, error) {
	return json.Marshal(EncodeState(players, hole, betting, teams))
}

func encodeTeams(t game.TeamFormation) *TeamsWire {
	switch t := t.(type) {
	case game.Partners:
		return &TeamsWire{Type: t.Kind(), Team1: t.Team1, Team2: t.Team2}
	case game.Solo:
		return &TeamsWire{Type: t.Kind(), SoloPlayer: t.PlayerID, Opponents: t.Opponents}
	case game.Pending:
		w := &TeamsWire{Type: t.Kind()}
		if t.Request != nil {
			w.PendingRequest = &RequestWire{Captain: t.Request.CaptainID, Requested: t.Request.PartnerID}
		}
		return w
	default:
		return &TeamsWire{Type: "pending"}
	}
}
