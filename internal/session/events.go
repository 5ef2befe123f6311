package session

import "github.com/lox/wolfgoatpig/internal/game"

// EventType identifies what changed
type EventType int

const (
	// EventStateChanged carries a fresh snapshot
	EventStateChanged EventType = iota
	// EventNotice carries a user-visible message such as a rule violation
	EventNotice
	// EventError carries a boundary failure that was appended to feedback
	EventError
	// EventRoundComplete fires once hole 18 has been finished
	EventRoundComplete
	// EventSessionEnded fires when the session is discarded
	EventSessionEnded
)

func (t EventType) String() string {
	switch t {
	case EventStateChanged:
		return "state_changed"
	case EventNotice:
		return "notice"
	case EventError:
		return "error"
	case EventRoundComplete:
		return "round_complete"
	case EventSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after every mutation
type Event struct {
	Type    EventType
	State   *game.SessionState
	Message string
	Err     error
}

// Listener receives events. It is called on the goroutine that made the
// change and must not block.
type Listener func(Event)
