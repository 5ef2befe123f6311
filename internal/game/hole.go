package game

import (
	"maps"
	"slices"
)

// HolesPerRound is the length of a round
const HolesPerRound = 18

// Lie categories reported by the simulation server
const (
	LieTee     = "tee"
	LieFairway = "fairway"
	LieRough   = "rough"
	LieBunker  = "bunker"
	LieGreen   = "green"
	LieInHole  = "in_hole"
)

// BallPosition is where a player's ball currently lies
type BallPosition struct {
	PlayerID      string  `json:"player_id"`
	DistanceToPin float64 `json:"distance_to_pin"`
	Lie           string  `json:"lie_type"`
	ShotCount     int     `json:"shot_count"`
	Holed         bool    `json:"holed"`
}

// HoleState is the shot-by-shot state of the current hole
type HoleState struct {
	Number            int                     `json:"hole_number"`
	Par               int                     `json:"hole_par"`
	Balls             map[string]BallPosition `json:"ball_positions"`
	HittingOrder      []string                `json:"hitting_order"`
	CaptainID         string                  `json:"captain_id"`
	NextPlayerToHit   string                  `json:"next_player_to_hit"`
	CurrentShotNumber int                     `json:"current_shot_number"`
	Complete          bool                    `json:"hole_complete"`
}

// Ball returns the ball for playerID
func (h HoleState) Ball(playerID string) (BallPosition, bool) {
	b, ok := h.Balls[playerID]
	return b, ok
}

// HasTeedOff reports whether the player has hit at least once
func (h HoleState) HasTeedOff(playerID string) bool {
	b, ok := h.Balls[playerID]
	return ok && b.ShotCount > 0
}

// AnyHoled reports whether any ball has been holed
func (h HoleState) AnyHoled() bool {
	for _, b := range h.Balls {
		if b.Holed || b.Lie == LieInHole {
			return true
		}
	}
	return false
}

// FurthestFromPin returns the ids of the balls in play that sit furthest
// from the pin. Ties return every tied id, sorted.
func (h HoleState) FurthestFromPin() []string {
	var furthest []string
	max := -1.0
	for id, b := range h.Balls {
		if b.Holed || b.ShotCount == 0 {
			continue
		}
		switch {
		case b.DistanceToPin > max:
			max = b.DistanceToPin
			furthest = []string{id}
		case b.DistanceToPin == max:
			furthest = append(furthest, id)
		}
	}
	slices.Sort(furthest)
	return furthest
}

// NextInOrderAfter returns the player who tees off after playerID, or ""
// when playerID is last or not in the order.
func (h HoleState) NextInOrderAfter(playerID string) string {
	i := slices.Index(h.HittingOrder, playerID)
	if i < 0 || i+1 >= len(h.HittingOrder) {
		return ""
	}
	return h.HittingOrder[i+1]
}

// Clone returns a deep copy
func (h HoleState) Clone() HoleState {
	out := h
	out.Balls = maps.Clone(h.Balls)
	out.HittingOrder = slices.Clone(h.HittingOrder)
	return out
}
