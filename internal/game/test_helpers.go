package game

// NewTestSession builds a four player session on a par 4 with every
// player still on the tee. Tests mutate the returned value directly.
func NewTestSession() *SessionState {
	return &SessionState{
		ID:         "test-session",
		Generation: 1,
		CourseName: "Wing Point",
		Players: []Player{
			{ID: "p1", Name: "You", Handicap: 10, IsHuman: true},
			{ID: "p2", Name: "Bob", Handicap: 8},
			{ID: "p3", Name: "Scott", Handicap: 15},
			{ID: "p4", Name: "Vince", Handicap: 4},
		},
		Hole: HoleState{
			Number:       1,
			Par:          4,
			HittingOrder: []string{"p1", "p2", "p3", "p4"},
			CaptainID:    "p1",
			Balls: map[string]BallPosition{
				"p1": {PlayerID: "p1", DistanceToPin: 400, Lie: LieTee},
				"p2": {PlayerID: "p2", DistanceToPin: 400, Lie: LieTee},
				"p3": {PlayerID: "p3", DistanceToPin: 400, Lie: LieTee},
				"p4": {PlayerID: "p4", DistanceToPin: 400, Lie: LieTee},
			},
			NextPlayerToHit:   "p1",
			CurrentShotNumber: 1,
		},
		Betting: BettingState{BaseWager: 1, CurrentWager: 1},
		Teams:   Pending{},
	}
}

// Hit records a shot for playerID leaving the ball distance yards out
func (s *SessionState) Hit(playerID string, distance float64, lie string) {
	b := s.Hole.Balls[playerID]
	b.PlayerID = playerID
	b.ShotCount++
	b.DistanceToPin = distance
	b.Lie = lie
	b.Holed = lie == LieInHole
	s.Hole.Balls[playerID] = b
}
