package feed

import (
	"encoding/json"
	"time"

	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/probability"
	"github.com/lox/wolfgoatpig/internal/protocol"
	"github.com/lox/wolfgoatpig/internal/session"
)

// MessageType identifies a feed message
type MessageType string

const (
	MessageTypeSnapshot      MessageType = "snapshot"
	MessageTypeStateChanged  MessageType = "state_changed"
	MessageTypeNotice        MessageType = "notice"
	MessageTypeError         MessageType = "error"
	MessageTypeRoundComplete MessageType = "round_complete"
	MessageTypeSessionEnded  MessageType = "session_ended"
)

// Message is what viewers receive
type Message struct {
	Type      MessageType  `json:"type"`
	Session   *SessionView `json:"session,omitempty"`
	Message   string       `json:"message,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SessionView is the session as shown to viewers. Game state and the
// pending interaction use the simulation server's own wire shapes.
type SessionView struct {
	ID            string                `json:"id"`
	CourseName    string                `json:"course_name"`
	GameState     json.RawMessage       `json:"game_state"`
	Interaction   *protocol.Interaction `json:"interaction,omitempty"`
	Probabilities probability.Snapshot  `json:"probabilities,omitempty"`
	Poker         *game.PokerState      `json:"poker,omitempty"`
	LastShot      *game.ShotResult      `json:"last_shot,omitempty"`
	Feedback      []string              `json:"feedback"`
	HasNextShot   bool                  `json:"has_next_shot"`
	RoundComplete bool                  `json:"round_complete"`
}

// NewSessionView renders s, returning nil for no session
func NewSessionView(s *game.SessionState) (*SessionView, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := protocol.MarshalState(s.Players, s.Hole, s.Betting, s.Teams)
	if err != nil {
		return nil, err
	}
	return &SessionView{
		ID:            s.ID,
		CourseName:    s.CourseName,
		GameState:     raw,
		Interaction:   protocol.EncodeInteraction(s.Interaction),
		Probabilities: s.Probabilities,
		Poker:         s.Poker,
		LastShot:      s.LastShot,
		Feedback:      s.Feedback,
		HasNextShot:   s.HasNextShot,
		RoundComplete: s.RoundComplete,
	}, nil
}

// NewMessage builds the message for a session event
func NewMessage(e session.Event) (*Message, error) {
	view, err := NewSessionView(e.State)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType(e.Type),
		Session:   view,
		Message:   e.Message,
		Timestamp: time.Now(),
	}, nil
}

func messageType(t session.EventType) MessageType {
	switch t {
	case session.EventNotice:
		return MessageTypeNotice
	case session.EventError:
		return MessageTypeError
	case session.EventRoundComplete:
		return MessageTypeRoundComplete
	case session.EventSessionEnded:
		return MessageTypeSessionEnded
	default:
		return MessageTypeStateChanged
	}
}
