package game

import (
	"fmt"
	"slices"
)

// TeamFormation is the team layout for a hole: Pending, Partners or Solo.
// Exactly one variant is active; the only transitions are from Pending.
type TeamFormation interface {
	Kind() string
	teamFormation()
}

// Pending means no teams have formed yet. Request carries at most one
// outstanding partner invitation.
type Pending struct {
	Request *PartnerRequest
}

// PartnerRequest is an invitation from the captain that awaits an answer
type PartnerRequest struct {
	CaptainID string
	PartnerID string
}

// Partners splits the players into two sides; the captain is in one of them
type Partners struct {
	Team1 []string
	Team2 []string
}

// Solo is one player against everybody else
type Solo struct {
	PlayerID  string
	Opponents []string
}

func (Pending) Kind() string  { return "pending" }
func (Partners) Kind() string { return "partners" }
func (Solo) Kind() string     { return "solo" }

func (Pending) teamFormation()  {}
func (Partners) teamFormation() {}
func (Solo) teamFormation()     {}

// IsPending reports whether teams are still undecided for the hole
func IsPending(t TeamFormation) bool {
	switch t.(type) {
	case nil, Pending:
		return true
	default:
		return false
	}
}

// SideOf returns the ids on the same side as playerID. While teams are
// pending every player stands alone.
func SideOf(t TeamFormation, playerID string) []string {
	switch t := t.(type) {
	case Partners:
		if slices.Contains(t.Team1, playerID) {
			return slices.Clone(t.Team1)
		}
		if slices.Contains(t.Team2, playerID) {
			return slices.Clone(t.Team2)
		}
	case Solo:
		if t.PlayerID == playerID {
			return []string{playerID}
		}
		if slices.Contains(t.Opponents, playerID) {
			return slices.Clone(t.Opponents)
		}
	}
	return []string{playerID}
}

// ValidateTeams checks a formation against the full player list
func ValidateTeams(t TeamFormation, players []Player) error {
	all := make([]string, 0, len(players))
	for _, p := range players {
		all = append(all, p.ID)
	}

	switch t := t.(type) {
	case nil, Pending:
		return nil
	case Partners:
		if len(t.Team1) == 0 || len(t.Team2) == 0 {
			return fmt.Errorf("partners formation needs two non-empty teams")
		}
		return coversExactly(all, t.Team1, t.Team2)
	case Solo:
		if t.PlayerID == "" {
			return fmt.Errorf("solo formation has no player")
		}
		return coversExactly(all, []string{t.PlayerID}, t.Opponents)
	default:
		return fmt.Errorf("unknown team formation %T", t)
	}
}

func coversExactly(all []string, sides ...[]string) error {
	seen := make(map[string]bool, len(all))
	for _, side := range sides {
		for _, id := range side {
			if seen[id] {
				return fmt.Errorf("player %s appears on both sides", id)
			}
			if !slices.Contains(all, id) {
				return fmt.Errorf("unknown player %s in teams", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != len(all) {
		return fmt.Errorf("teams cover %d of %d players", len(seen), len(all))
	}
	return nil
}

// CanTransition reports whether from → to is allowed within a hole
func CanTransition(from, to TeamFormation) bool {
	if to == nil {
		return IsPending(from)
	}
	if !IsPending(from) {
		return from.Kind() == to.Kind()
	}
	return true
}

func cloneTeams(t TeamFormation) TeamFormation {
	switch t := t.(type) {
	case Pending:
		if t.Request != nil {
			r := *t.Request
			return Pending{Request: &r}
		}
		return Pending{}
	case Partners:
		return Partners{Team1: slices.Clone(t.Team1), Team2: slices.Clone(t.Team2)}
	case Solo:
		return Solo{PlayerID: t.PlayerID, Opponents: slices.Clone(t.Opponents)}
	default:
		return t
	}
}
