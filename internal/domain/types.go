package domain

import "time"

type SessionID string
type UserID string
type MessageID string

type TaskID string
type NoteID string
type AutomationID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Intent is the classified purpose of one utterance. The set is closed.
type Intent string

const (
	IntentNone             Intent = ""
	IntentHelp             Intent = "help"
	IntentCompleteTask     Intent = "complete-task"
	IntentAddTask          Intent = "add-task"
	IntentAddNote          Intent = "add-note"
	IntentDefineAutomation Intent = "define-automation"
)

// IsNone reports whether no intent was matched or executed.
func (i Intent) IsNone() bool {
	return i == IntentNone
}

type Timestamp = time.Time
