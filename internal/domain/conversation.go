package domain

// Message represents any message in a timeline (user or agent)
type Message struct {
	ID        MessageID
	SessionID SessionID
	Author    Role
	Text      string
	CreatedAt Timestamp

	// Function is the intent the agent executed for this reply, if any.
	Function Intent
}

// Session is one conversation between a user and the agent. It owns the
// single live State of that conversation.
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	Title string
	State State
	Turns int
}
