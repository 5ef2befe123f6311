package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures the session can recover from
type ErrorKind string

const (
	// KindSetup marks invalid human or opponent data; nothing is sent
	KindSetup ErrorKind = "setup_error"
	// KindDomainPrecondition marks a rule violation caught before sending
	KindDomainPrecondition ErrorKind = "domain_precondition"
	// KindTransport marks a network failure or non-2xx response
	KindTransport ErrorKind = "transport_error"
	// KindServerRejected marks a response whose status is not "ok", or one
	// that fails boundary validation
	KindServerRejected ErrorKind = "server_rejected"
	// KindUnsupportedIntent marks an intent outside the closed intent set
	KindUnsupportedIntent ErrorKind = "unsupported_intent"
)

// Error is a classified session error
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a classified error with a formatted message
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies cause under kind
func WrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the error kind from any error.
// Returns the empty kind if err is not a classified error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind checks if err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsBoundaryFailure reports whether err came from the external boundary,
// either a transport failure or a server rejection.
func IsBoundaryFailure(err error) bool {
	k := KindOf(err)
	return k == KindTransport || k == KindServerRejected
}
