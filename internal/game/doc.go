// Package game holds the Wolf Goat Pig session model shared by every other
// package: players, the betting state, team formation, the current hole and
// the interaction that is blocking progress.
//
// The main type is SessionState. It is owned by the session controller and
// is only ever mutated by applying deltas decoded from the simulation
// server, never computed locally.
//
// # Tagged variants
//
// Two parts of the model are closed sets of variants, expressed as sealed
// interfaces and resolved with type switches:
//
//   - TeamFormation: Pending, Partners or Solo
//   - Interaction: CaptainDecision, PartnershipResponse, DoubleOffer or
//     DoubleResponse (a nil Interaction means nothing is pending)
//
// # Rules
//
// The eligibility checks that must pass before a decision is sent to the
// server live in rules.go:
//
//	if err := game.CanInvitePartner(state, "p2"); err != nil {
//	    // DomainPrecondition, nothing is sent
//	}
//	if err := game.CanOfferDouble(state, state.HumanID()); err != nil {
//	    // line of scrimmage or a holed ball
//	}
package game
