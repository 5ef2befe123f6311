package protocol

import (
	"encoding/json"

	"github.com/lox/wolfgoatpig/internal/game"
)

// StatusOK is the only status value treated as success
const StatusOK = "ok"

// Client -> Server

// SetupRequest starts a new match
type SetupRequest struct {
	HumanPlayer     game.SetupPlayer   `json:"human_player"`
	ComputerPlayers []game.SetupPlayer `json:"computer_players"`
	CourseName      string             `json:"course_name"`
}

// NextShotRequest asks the server to simulate the next shot, carrying any
// buffered hole decision.
type NextShotRequest struct {
	Decision *game.PendingDecision `json:"decision,omitempty"`
}

// NextHoleRequest moves to the next hole
type NextHoleRequest struct{}

// Server -> Client

// Response is the common envelope for every POST operation
type Response struct {
	Status               string             `json:"status"`
	Message              string             `json:"message,omitempty"`
	GameState            json.RawMessage    `json:"game_state,omitempty"`
	Feedback             []string           `json:"feedback,omitempty"`
	InteractionNeeded    *Interaction       `json:"interaction_needed,omitempty"`
	NextShotAvailable    *bool              `json:"next_shot_available,omitempty"`
	ShotResult           *ShotResult        `json:"shot_result,omitempty"`
	ShotProbabilities    map[string]float64 `json:"shot_probabilities,omitempty"`
	BettingProbabilities map[string]float64 `json:"betting_probabilities,omitempty"`
	DecisionResult       *DecisionResult    `json:"decision_result,omitempty"`
	GameFinished         bool               `json:"game_finished,omitempty"`
}

// Interaction is the loosely shaped interaction_needed object
type Interaction struct {
	Type             string   `json:"type"`
	CaptainID        string   `json:"captain_id,omitempty"`
	EligiblePartners []string `json:"eligible_partners,omitempty"`
	RequestedPartner string   `json:"requested_partner,omitempty"`
	PlayerID         string   `json:"player_id,omitempty"`
	OfferedBy        string   `json:"offered_by,omitempty"`
	CurrentWager     int      `json:"current_wager,omitempty"`
}

// ShotResult describes the shot that was just simulated
type ShotResult struct {
	PlayerID      string   `json:"player_id"`
	ShotNumber    int      `json:"shot_number"`
	LieType       string   `json:"lie_type"`
	DistanceToPin *float64 `json:"distance_to_pin"`
	Holed         bool     `json:"holed,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// DecisionResult is returned by betting-decision
type DecisionResult struct {
	Message string `json:"message"`
}

// GameState is the game_state object shared by every response
type GameState struct {
	CurrentHole *int         `json:"current_hole"`
	CourseName  string       `json:"course_name,omitempty"`
	Players     []PlayerWire `json:"players"`
	HoleState   *HoleWire    `json:"hole_state"`
}

// PlayerWire is a player as sent by the server
type PlayerWire struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Handicap *float64 `json:"handicap"`
	IsHuman  bool     `json:"is_human,omitempty"`
	Points   int      `json:"points"`
}

// HoleWire is the hole_state object
type HoleWire struct {
	HoleNumber        *int                `json:"hole_number"`
	HolePar           *int                `json:"hole_par"`
	BallPositions     map[string]BallWire `json:"ball_positions"`
	HittingOrder      []string            `json:"hitting_order"`
	CaptainID         string              `json:"captain_id,omitempty"`
	NextPlayerToHit   string              `json:"next_player_to_hit,omitempty"`
	CurrentShotNumber int                 `json:"current_shot_number"`
	HoleComplete      bool                `json:"hole_complete"`
	Teams             *TeamsWire          `json:"teams"`
	Betting           *BettingWire        `json:"betting"`
}

// BallWire is one ball position
type BallWire struct {
	DistanceToPin *float64 `json:"distance_to_pin"`
	LieType       string   `json:"lie_type"`
	ShotCount     int      `json:"shot_count"`
	Holed         bool     `json:"holed,omitempty"`
}

// TeamsWire is the teams object
type TeamsWire struct {
	Type           string       `json:"type"`
	Team1          []string     `json:"team1,omitempty"`
	Team2          []string     `json:"team2,omitempty"`
	SoloPlayer     string       `json:"solo_player,omitempty"`
	Opponents      []string     `json:"opponents,omitempty"`
	PendingRequest *RequestWire `json:"pending_request,omitempty"`
}

// RequestWire is an outstanding partner invitation
type RequestWire struct {
	Captain   string `json:"captain"`
	Requested string `json:"requested"`
}

// BettingWire is the betting object
type BettingWire struct {
	BaseWager    *int            `json:"base_wager"`
	CurrentWager *int            `json:"current_wager"`
	Doubled      bool            `json:"doubled,omitempty"`
	Redoubled    bool            `json:"redoubled,omitempty"`
	SpecialRules map[string]bool `json:"special_rules,omitempty"`
}

// PokerState is the GET poker-state body
type PokerState = game.PokerState
