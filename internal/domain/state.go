package domain

import "time"

// Task is a todo item. Done only ever flips from false to true.
type Task struct {
	ID    TaskID `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Note is an immutable free-form memo.
type Note struct {
	ID        NoteID    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Automation is a stored trigger/action rule. It is never executed here.
type Automation struct {
	ID      AutomationID `json:"id"`
	Name    string       `json:"name"`
	Trigger string       `json:"trigger"`
	Action  string       `json:"action"`
}

// State is the whole model of one conversation. A turn never mutates a State
// in place: it produces the next one, sharing whatever did not change.
type State struct {
	Tasks       []Task       `json:"tasks"`
	Notes       []Note       `json:"notes"`
	Automations []Automation `json:"automations"`
}

// OpenTasks counts tasks that are not done yet.
func (s State) OpenTasks() int {
	n := 0
	for _, t := range s.Tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

// TurnResponse is the outcome of one dispatched turn.
type TurnResponse struct {
	Reply    string    `json:"reply"`
	State    State     `json:"state"`
	Executed Intent    `json:"executed_function,omitempty"`
	At       time.Time `json:"at"`
}
