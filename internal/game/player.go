package game

// MaxHandicap is the largest handicap index accepted at setup.
const MaxHandicap = 54

// Player represents a participant in the match
type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Handicap float64 `json:"handicap"`
	IsHuman  bool    `json:"is_human"`
	Points   int     `json:"points"`
}

// PlayerByID returns the player with the given id, or nil
func PlayerByID(players []Player, id string) *Player {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return nil
}
