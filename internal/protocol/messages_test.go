package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wolfgoatpig/internal/game"
)

const sampleState = `{
  "current_hole": 3,
  "course_name": "Wing Point",
  "players": [
    {"id": "p1", "name": "You", "handicap": 10, "is_human": true, "points": 2},
    {"id": "p2", "name": "Bob", "handicap": 8, "points": -2}
  ],
  "hole_state": {
    "hole_number": 3,
    "hole_par": 5,
    "ball_positions": {
      "p1": {"distance_to_pin": 310.5, "lie_type": "fairway", "shot_count": 1},
      "p2": {"distance_to_pin": 0, "lie_type": "in_hole", "shot_count": 4}
    },
    "hitting_order": ["p1", "p2"],
    "captain_id": "p1",
    "next_player_to_hit": "p1",
    "current_shot_number": 2,
    "teams": {"type": "partners", "team1": ["p1"], "team2": ["p2"]},
    "betting": {"base_wager": 1, "current_wager": 2, "doubled": true}
  }
}`

func TestDecodeState(t *testing.T) {
	st, err := DecodeState(json.RawMessage(sampleState))
	require.NoError(t, err)
	require.NotNil(t, st)

	assert.Equal(t, "Wing Point", st.CourseName)
	require.Len(t, st.Players, 2)
	assert.True(t, st.Players[0].IsHuman)
	assert.Equal(t, -2, st.Players[1].Points)

	assert.Equal(t, 3, st.Hole.Number)
	assert.Equal(t, 5, st.Hole.Par)
	assert.Equal(t, 310.5, st.Hole.Balls["p1"].DistanceToPin)
	assert.True(t, st.Hole.Balls["p2"].Holed, "in_hole lie implies holed")
	assert.Equal(t, game.BettingState{BaseWager: 1, CurrentWager: 2, Doubled: true}, st.Betting)
	assert.Equal(t, game.Partners{Team1: []string{"p1"}, Team2: []string{"p2"}}, st.Teams)
}

func TestDecodeStateEmpty(t *testing.T) {
	st, err := DecodeState(nil)
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = DecodeState(json.RawMessage("null"))
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestDecodeStateFailsFast(t *testing.T) {
	tests := map[string]string{
		"malformed":         `{"players": [`,
		"no players":        `{"hole_state": {"hole_number": 1, "hole_par": 4, "betting": {"base_wager": 1}}}`,
		"player without id": `{"players": [{"name": "x", "handicap": 1}], "hole_state": {"hole_number": 1, "hole_par": 4, "betting": {"base_wager": 1}}}`,
		"no handicap":       `{"players": [{"id": "p1"}], "hole_state": {"hole_number": 1, "hole_par": 4, "betting": {"base_wager": 1}}}`,
		"no hole state":     `{"players": [{"id": "p1", "handicap": 1}]}`,
		"no hole number":    `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_par": 4, "betting": {"base_wager": 1}}}`,
		"hole 19":           `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 19, "hole_par": 4, "betting": {"base_wager": 1}}}`,
		"no par":            `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 1, "betting": {"base_wager": 1}}}`,
		"no betting":        `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 1, "hole_par": 4}}`,
		"bad wager":         `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 1, "hole_par": 4, "betting": {"base_wager": 1, "current_wager": 3}}}`,
		"ball no distance":  `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 1, "hole_par": 4, "ball_positions": {"p1": {"lie_type": "tee"}}, "betting": {"base_wager": 1}}}`,
		"unknown teams":     `{"players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 1, "hole_par": 4, "teams": {"type": "wolf"}, "betting": {"base_wager": 1}}}`,
		"hole mismatch":     `{"current_hole": 2, "players": [{"id": "p1", "handicap": 1}], "hole_state": {"hole_number": 1, "hole_par": 4, "betting": {"base_wager": 1}}}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeState(json.RawMessage(raw))
			require.Error(t, err)
			assert.True(t, game.IsKind(err, game.KindServerRejected), "got %v", err)
		})
	}
}

func TestDecodeInteraction(t *testing.T) {
	got, err := DecodeInteraction(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = DecodeInteraction(&Interaction{Type: "captain_decision", CaptainID: "p1", EligiblePartners: []string{"p2"}})
	require.NoError(t, err)
	assert.Equal(t, game.CaptainDecision{CaptainID: "p1", EligiblePartners: []string{"p2"}}, got)

	got, err = DecodeInteraction(&Interaction{Type: "partnership_response", CaptainID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, game.PartnershipResponse{CaptainID: "p2"}, got)

	got, err = DecodeInteraction(&Interaction{Type: "double_offer", PlayerID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, game.DoubleOffer{PlayerID: "p1"}, got)

	got, err = DecodeInteraction(&Interaction{Type: "double_response", OfferedBy: "p3", CurrentWager: 4})
	require.NoError(t, err)
	assert.Equal(t, game.DoubleResponse{OfferedBy: "p3", Wager: 4}, got)
}

func TestDecodeInteractionRejectsUnknownTypes(t *testing.T) {
	for _, typ := range []string{"", "generic_panel", "keep_watching"} {
		_, err := DecodeInteraction(&Interaction{Type: typ})
		require.Error(t, err)
		assert.True(t, game.IsKind(err, game.KindServerRejected))
	}

	_, err := DecodeInteraction(&Interaction{Type: "captain_decision"})
	assert.True(t, game.IsKind(err, game.KindServerRejected), "captain id required")
}

func TestInteractionEncodeDecode(t *testing.T) {
	for _, in := range []game.Interaction{
		game.CaptainDecision{CaptainID: "p1", EligiblePartners: []string{"p2", "p3"}},
		game.PartnershipResponse{CaptainID: "p4", RequestedPartner: "p1"},
		game.DoubleOffer{PlayerID: "p1"},
		game.DoubleResponse{OfferedBy: "p2", Wager: 8},
	} {
		out, err := DecodeInteraction(EncodeInteraction(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
	assert.Nil(t, EncodeInteraction(nil))
}

func TestResponseHelpers(t *testing.T) {
	var r Response
	require.NoError(t, json.Unmarshal([]byte(`{"status": "ok", "feedback": ["a"]}`), &r))
	assert.NoError(t, r.Check())
	assert.False(t, r.HasNextShot(), "missing next_shot_available means no shot")
	assert.True(t, r.Probabilities().Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"status": "error", "message": "bad hole", "next_shot_available": true, "betting_probabilities": {"offer_double": 0.4}}`), &r))
	err := r.Check()
	require.Error(t, err)
	assert.True(t, game.IsKind(err, game.KindServerRejected))
	assert.Contains(t, err.Error(), "bad hole")
	assert.True(t, r.HasNextShot())
	assert.Equal(t, 0.4, r.Probabilities().Betting["offer_double"])
}

func TestEncodeStateRoundTrip(t *testing.T) {
	s := game.NewTestSession()
	s.Hit("p1", 150, game.LieFairway)
	s.Teams = game.Solo{PlayerID: "p1", Opponents: []string{"p2", "p3", "p4"}}
	s.Betting = game.BettingState{BaseWager: 1, CurrentWager: 2, Doubled: true}

	raw, err := MarshalState(s.Players, s.Hole, s.Betting, s.Teams)
	require.NoError(t, err)

	st, err := DecodeState(raw)
	require.NoError(t, err)
	assert.Equal(t, s.Players, st.Players)
	assert.Equal(t, s.Hole, st.Hole)
	assert.Equal(t, s.Betting, st.Betting)
	assert.Equal(t, s.Teams, st.Teams)
}

func TestDecodeShotResult(t *testing.T) {
	got, err := DecodeShotResult(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	d := 12.0
	got, err = DecodeShotResult(&ShotResult{PlayerID: "p2", ShotNumber: 2, LieType: "green", DistanceToPin: &d})
	require.NoError(t, err)
	assert.Equal(t, &game.ShotResult{PlayerID: "p2", ShotNumber: 2, Lie: "green", DistanceToPin: 12}, got)

	_, err = DecodeShotResult(&ShotResult{PlayerID: "p2"})
	assert.True(t, game.IsKind(err, game.KindServerRejected))
}
