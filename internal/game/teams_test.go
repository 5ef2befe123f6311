package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTeams(t *testing.T) {
	players := NewTestSession().Players

	require.NoError(t, ValidateTeams(Pending{}, players))
	require.NoError(t, ValidateTeams(Partners{Team1: []string{"p1", "p2"}, Team2: []string{"p3", "p4"}}, players))
	require.NoError(t, ValidateTeams(Solo{PlayerID: "p1", Opponents: []string{"p2", "p3", "p4"}}, players))

	assert.Error(t, ValidateTeams(Partners{Team1: []string{"p1", "p2", "p3", "p4"}}, players), "empty side")
	assert.Error(t, ValidateTeams(Partners{Team1: []string{"p1", "p2"}, Team2: []string{"p2", "p3", "p4"}}, players), "overlap")
	assert.Error(t, ValidateTeams(Partners{Team1: []string{"p1"}, Team2: []string{"p3"}}, players), "not covering")
	assert.Error(t, ValidateTeams(Solo{PlayerID: "p1", Opponents: []string{"p2", "p9"}}, players), "unknown player")
}

func TestCanTransition(t *testing.T) {
	partners := Partners{Team1: []string{"p1", "p2"}, Team2: []string{"p3", "p4"}}
	solo := Solo{PlayerID: "p1", Opponents: []string{"p2", "p3", "p4"}}

	assert.True(t, CanTransition(Pending{}, partners))
	assert.True(t, CanTransition(Pending{}, solo))
	assert.True(t, CanTransition(nil, Pending{}))
	assert.False(t, CanTransition(partners, Pending{}))
	assert.False(t, CanTransition(partners, nil))
	assert.False(t, CanTransition(solo, partners))
	assert.False(t, CanTransition(partners, solo))
}

func TestSideOf(t *testing.T) {
	partners := Partners{Team1: []string{"p1", "p2"}, Team2: []string{"p3", "p4"}}
	assert.Equal(t, []string{"p3", "p4"}, SideOf(partners, "p4"))

	solo := Solo{PlayerID: "p1", Opponents: []string{"p2", "p3", "p4"}}
	assert.Equal(t, []string{"p1"}, SideOf(solo, "p1"))
	assert.Equal(t, []string{"p2", "p3", "p4"}, SideOf(solo, "p3"))

	assert.Equal(t, []string{"p2"}, SideOf(Pending{}, "p2"))
}

func TestSessionStateCloneIsDeep(t *testing.T) {
	s := NewTestSession()
	s.Interaction = CaptainDecision{CaptainID: "p1", EligiblePartners: []string{"p2"}}
	s.AppendFeedback("Bob hits 250 yards")

	c := s.Clone()
	c.Players[0].Points = 99
	c.Hole.Balls["p1"] = BallPosition{DistanceToPin: 1}
	c.Interaction.(CaptainDecision).EligiblePartners[0] = "p9"
	c.Feedback[0] = "changed"

	assert.Equal(t, 0, s.Players[0].Points)
	assert.Equal(t, 400.0, s.Hole.Balls["p1"].DistanceToPin)
	assert.Equal(t, "p2", s.Interaction.(CaptainDecision).EligiblePartners[0])
	assert.Equal(t, "Bob hits 250 yards", s.Feedback[0])
}

func TestFeedbackIsBounded(t *testing.T) {
	s := NewTestSession()
	for i := 0; i < MaxFeedbackLines+25; i++ {
		s.AppendFeedback("line")
	}
	s.AppendFeedback("last", "")

	assert.Len(t, s.Feedback, MaxFeedbackLines)
	assert.Equal(t, "last", s.Feedback[len(s.Feedback)-1])

	s.ClearFeedback()
	assert.Empty(t, s.Feedback)
}

func TestFurthestFromPin(t *testing.T) {
	s := NewTestSession()
	assert.Empty(t, s.Hole.FurthestFromPin(), "nobody has hit")

	s.Hit("p1", 200, LieFairway)
	s.Hit("p2", 200, LieRough)
	s.Hit("p3", 120, LieFairway)
	assert.Equal(t, []string{"p1", "p2"}, s.Hole.FurthestFromPin())
}
