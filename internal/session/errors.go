package session

import "errors"

var (
	// ErrNoSession is returned when no session has been started
	ErrNoSession = errors.New("no active session")
	// ErrMutationInFlight is returned when another mutation is outstanding
	ErrMutationInFlight = errors.New("a mutation is already in flight")
	// ErrInteractionPending is returned by AdvanceShot while a decision is required
	ErrInteractionPending = errors.New("a decision is required before play can continue")
	// ErrStaleResponse marks a response that arrived after the session changed
	ErrStaleResponse = errors.New("response discarded: session changed while the request was outstanding")
)
