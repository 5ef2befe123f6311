package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSetup(t *testing.T) {
	opponents := []SetupPlayer{{Name: "Bob", Handicap: 8}, {Name: "Scott", Handicap: 15}}

	tests := []struct {
		name      string
		human     SetupPlayer
		opponents []SetupPlayer
		wantErr   bool
	}{
		{"valid", SetupPlayer{Name: "You", Handicap: 10}, opponents, false},
		{"empty human name", SetupPlayer{Name: "  ", Handicap: 10}, opponents, true},
		{"human handicap too high", SetupPlayer{Name: "You", Handicap: 55}, opponents, true},
		{"no opponents", SetupPlayer{Name: "You"}, nil, true},
		{"opponent without name", SetupPlayer{Name: "You"}, []SetupPlayer{{Handicap: 3}}, true},
		{"opponent handicap NaN", SetupPlayer{Name: "You"}, []SetupPlayer{{Name: "Bob", Handicap: math.NaN()}}, true},
		{"opponent handicap negative", SetupPlayer{Name: "You"}, []SetupPlayer{{Name: "Bob", Handicap: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSetup(tt.human, tt.opponents)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsKind(err, KindSetup), "expected setup error, got %v", err)
		})
	}
}

func TestCanInvitePartner(t *testing.T) {
	t.Run("partner has hit and next player has not", func(t *testing.T) {
		s := NewTestSession()
		s.Hit("p1", 150, LieFairway)
		s.Hit("p2", 160, LieFairway)
		s.Interaction = CaptainDecision{CaptainID: "p1", EligiblePartners: []string{"p2"}}

		require.NoError(t, CanInvitePartner(s, "p2"))
	})

	t.Run("partner has not teed off", func(t *testing.T) {
		s := NewTestSession()
		s.Hit("p1", 150, LieFairway)
		s.Interaction = CaptainDecision{CaptainID: "p1"}

		err := CanInvitePartner(s, "p2")
		assert.True(t, IsKind(err, KindDomainPrecondition))
	})

	t.Run("next player already hit", func(t *testing.T) {
		s := NewTestSession()
		s.Hit("p1", 150, LieFairway)
		s.Hit("p2", 160, LieFairway)
		s.Hit("p3", 170, LieRough)
		s.Interaction = CaptainDecision{CaptainID: "p1"}

		err := CanInvitePartner(s, "p2")
		assert.True(t, IsKind(err, KindDomainPrecondition))
		assert.Contains(t, err.Error(), "p3")
	})

	t.Run("last in order can be invited once hit", func(t *testing.T) {
		s := NewTestSession()
		for _, id := range []string{"p1", "p2", "p3", "p4"} {
			s.Hit(id, 150, LieFairway)
		}
		s.Interaction = CaptainDecision{CaptainID: "p1"}

		require.NoError(t, CanInvitePartner(s, "p4"))
	})

	t.Run("not in eligible list", func(t *testing.T) {
		s := NewTestSession()
		s.Hit("p1", 150, LieFairway)
		s.Hit("p2", 160, LieFairway)
		s.Interaction = CaptainDecision{CaptainID: "p1", EligiblePartners: []string{"p3"}}

		assert.True(t, IsKind(CanInvitePartner(s, "p2"), KindDomainPrecondition))
	})

	t.Run("captain cannot invite self", func(t *testing.T) {
		s := NewTestSession()
		s.Interaction = CaptainDecision{CaptainID: "p1"}
		assert.True(t, IsKind(CanInvitePartner(s, "p1"), KindDomainPrecondition))
	})

	t.Run("teams already formed", func(t *testing.T) {
		s := NewTestSession()
		s.Hit("p1", 150, LieFairway)
		s.Hit("p2", 160, LieFairway)
		s.Interaction = CaptainDecision{CaptainID: "p1"}
		s.Teams = Solo{PlayerID: "p1", Opponents: []string{"p2", "p3", "p4"}}

		assert.True(t, IsKind(CanInvitePartner(s, "p2"), KindDomainPrecondition))
	})

	t.Run("no captain decision pending", func(t *testing.T) {
		s := NewTestSession()
		assert.True(t, IsKind(CanInvitePartner(s, "p2"), KindDomainPrecondition))
	})
}

func TestCanOfferDouble(t *testing.T) {
	offerPending := func() *SessionState {
		s := NewTestSession()
		s.Interaction = DoubleOffer{PlayerID: "p1"}
		return s
	}

	t.Run("furthest ball cannot offer", func(t *testing.T) {
		s := offerPending()
		s.Hit("p1", 220, LieRough)
		s.Hit("p2", 140, LieFairway)

		err := CanOfferDouble(s, "p1")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindDomainPrecondition))
	})

	t.Run("closer ball can offer", func(t *testing.T) {
		s := offerPending()
		s.Hit("p1", 120, LieFairway)
		s.Hit("p2", 140, LieFairway)

		require.NoError(t, CanOfferDouble(s, "p1"))
	})

	t.Run("partner furthest blocks the whole side", func(t *testing.T) {
		s := offerPending()
		s.Hit("p1", 80, LieGreen)
		s.Hit("p2", 250, LieBunker)
		s.Hit("p3", 100, LieFairway)
		s.Teams = Partners{Team1: []string{"p1", "p2"}, Team2: []string{"p3", "p4"}}

		assert.True(t, IsKind(CanOfferDouble(s, "p1"), KindDomainPrecondition))
		require.NoError(t, CanOfferDouble(s, "p3"))
	})

	t.Run("holed ball stops doubles", func(t *testing.T) {
		s := offerPending()
		s.Hit("p1", 0, LieInHole)
		s.Hit("p2", 140, LieFairway)

		err := CanOfferDouble(s, "p1")
		assert.True(t, IsKind(err, KindDomainPrecondition))
		assert.Contains(t, err.Error(), "holed")
	})

	t.Run("complete hole stops doubles", func(t *testing.T) {
		s := offerPending()
		s.Hole.Complete = true
		assert.True(t, IsKind(CanOfferDouble(s, "p1"), KindDomainPrecondition))
	})

	t.Run("only as the answer to a double offer", func(t *testing.T) {
		for _, pending := range []Interaction{
			nil,
			CaptainDecision{CaptainID: "p1", EligiblePartners: []string{"p2"}},
			PartnershipResponse{CaptainID: "p2"},
			DoubleResponse{OfferedBy: "p3", Wager: 2},
		} {
			s := NewTestSession()
			s.Hit("p1", 120, LieFairway)
			s.Hit("p2", 140, LieFairway)
			s.Interaction = pending

			err := CanOfferDouble(s, "p1")
			assert.True(t, IsKind(err, KindDomainPrecondition), "pending %v", pending)
		}
	})
}

func TestResponsePreconditions(t *testing.T) {
	s := NewTestSession()
	assert.True(t, IsKind(CanRespondToPartnership(s), KindDomainPrecondition))
	assert.True(t, IsKind(CanRespondToDouble(s), KindDomainPrecondition))
	assert.True(t, IsKind(CanPassDouble(s), KindDomainPrecondition))

	s.Interaction = PartnershipResponse{CaptainID: "p2"}
	assert.NoError(t, CanRespondToPartnership(s))

	s.Interaction = DoubleResponse{OfferedBy: "p3", Wager: 2}
	assert.NoError(t, CanRespondToDouble(s))

	s.Interaction = DoubleOffer{PlayerID: "p1"}
	assert.NoError(t, CanPassDouble(s))
}
