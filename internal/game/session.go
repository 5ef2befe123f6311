package game

import (
	"slices"

	"github.com/lox/wolfgoatpig/internal/probability"
)

// MaxFeedbackLines bounds the per-hole feedback log
const MaxFeedbackLines = 200

// ShotResult describes the most recent shot
type ShotResult struct {
	PlayerID      string  `json:"player_id"`
	ShotNumber    int     `json:"shot_number"`
	Lie           string  `json:"lie_type"`
	DistanceToPin float64 `json:"distance_to_pin"`
	Holed         bool    `json:"holed"`
	Description   string  `json:"description,omitempty"`
}

// PokerState is the betting summary polled from the server
type PokerState struct {
	PotSize      int      `json:"pot_size"`
	BaseBet      int      `json:"base_bet"`
	CurrentBet   int      `json:"current_bet"`
	BettingPhase string   `json:"betting_phase"`
	Doubled      bool     `json:"doubled"`
	PlayersIn    []string `json:"players_in"`
}

// SessionState is the aggregate root for one match. The session
// controller owns it; everybody else gets a Clone.
type SessionState struct {
	ID         string
	Generation uint64
	CourseName string

	Players     []Player
	Hole        HoleState
	Betting     BettingState
	Teams       TeamFormation
	Interaction Interaction

	Probabilities probability.Snapshot
	Feedback      []string
	LastShot      *ShotResult
	Poker         *PokerState
	Pending       *PendingDecision

	HasNextShot   bool
	RoundComplete bool
}

// Human returns the local participant, or nil
func (s *SessionState) Human() *Player {
	for i := range s.Players {
		if s.Players[i].IsHuman {
			return &s.Players[i]
		}
	}
	return nil
}

// HumanID returns the local participant's id, or ""
func (s *SessionState) HumanID() string {
	if h := s.Human(); h != nil {
		return h.ID
	}
	return ""
}

// CaptainID returns the captain of the current hole
func (s *SessionState) CaptainID() string {
	if cd, ok := s.Interaction.(CaptainDecision); ok && cd.CaptainID != "" {
		return cd.CaptainID
	}
	return s.Hole.CaptainID
}

// AppendFeedback adds lines to the feedback log, dropping the oldest lines
// beyond MaxFeedbackLines.
func (s *SessionState) AppendFeedback(lines ...string) {
	for _, l := range lines {
		if l == "" {
			continue
		}
		s.Feedback = append(s.Feedback, l)
	}
	if over := len(s.Feedback) - MaxFeedbackLines; over > 0 {
		s.Feedback = slices.Clone(s.Feedback[over:])
	}
}

// ClearFeedback empties the feedback log at a hole boundary
func (s *SessionState) ClearFeedback() {
	s.Feedback = nil
}

// Clone returns a deep copy safe to hand to readers
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := *s
	out.Players = slices.Clone(s.Players)
	out.Hole = s.Hole.Clone()
	out.Betting = s.Betting.Clone()
	out.Teams = cloneTeams(s.Teams)
	out.Interaction = cloneInteraction(s.Interaction)
	out.Probabilities = s.Probabilities.Clone()
	out.Feedback = slices.Clone(s.Feedback)
	if s.LastShot != nil {
		shot := *s.LastShot
		out.LastShot = &shot
	}
	if s.Poker != nil {
		poker := *s.Poker
		poker.PlayersIn = slices.Clone(s.Poker.PlayersIn)
		out.Poker = &poker
	}
	if s.Pending != nil {
		pending := *s.Pending
		out.Pending = &pending
	}
	return &out
}
