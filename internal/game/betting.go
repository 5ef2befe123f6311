package game

import "fmt"

// BettingState tracks the wager for the current hole, in quarters
type BettingState struct {
	BaseWager    int             `json:"base_wager"`
	CurrentWager int             `json:"current_wager"`
	Doubled      bool            `json:"doubled"`
	Redoubled    bool            `json:"redoubled"`
	SpecialRules map[string]bool `json:"special_rules,omitempty"`
}

// Multiplier returns how many times the base wager has been doubled
// expressed as CurrentWager / BaseWager.
func (b BettingState) Multiplier() int {
	if b.BaseWager <= 0 {
		return 0
	}
	return b.CurrentWager / b.BaseWager
}

// RuleEnabled reports whether the named special rule is toggled on
func (b BettingState) RuleEnabled(name string) bool {
	return b.SpecialRules[name]
}

// Validate checks the wager invariants: a positive base, and a current
// wager that is the base multiplied by a power of two.
func (b BettingState) Validate() error {
	if b.BaseWager <= 0 {
		return fmt.Errorf("base wager must be positive, got %d", b.BaseWager)
	}
	if b.CurrentWager < b.BaseWager {
		return fmt.Errorf("current wager %d below base wager %d", b.CurrentWager, b.BaseWager)
	}
	if b.CurrentWager%b.BaseWager != 0 {
		return fmt.Errorf("current wager %d is not a multiple of base wager %d", b.CurrentWager, b.BaseWager)
	}
	m := b.CurrentWager / b.BaseWager
	if m&(m-1) != 0 {
		return fmt.Errorf("current wager %d is not reachable by doubling %d", b.CurrentWager, b.BaseWager)
	}
	return nil
}

// Clone returns a copy that shares no maps with the receiver
func (b BettingState) Clone() BettingState {
	out := b
	if b.SpecialRules != nil {
		out.SpecialRules = make(map[string]bool, len(b.SpecialRules))
		for k, v := range b.SpecialRules {
			out.SpecialRules[k] = v
		}
	}
	return out
}
