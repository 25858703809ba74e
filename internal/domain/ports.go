package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrForbidden       = errors.New("session belongs to another user")
)

// IDSource hands out identifiers that are unique within a process.
type IDSource interface {
	NewID() string
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
	ListSessionsByUser(userID UserID, limit int) ([]*Session, error)
}

// MessageStore defines message's persistence
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesBySession(sessionID SessionID, limit int) ([]*Message, error)
}
