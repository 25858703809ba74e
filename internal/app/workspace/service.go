package workspace

import (
	"context"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// View splits a session's state the way the console panels show it.
type View struct {
	SessionID      domain.SessionID    `json:"session_id"`
	OpenTasks      []domain.Task       `json:"open_tasks"`
	CompletedTasks []domain.Task       `json:"completed_tasks"`
	Notes          []domain.Note       `json:"notes"`
	Automations    []domain.Automation `json:"automations"`
}

// Service holds the logic of reading a session's workspace
type Service struct {
	store domain.SessionStore
}

// NewService creates a workspace service from a SessionStore
func NewService(store domain.SessionStore) *Service {
	return &Service{
		store: store,
	}
}

// Get returns the current workspace of a session.
func (s *Service) Get(ctx context.Context, sessionID domain.SessionID) (*View, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return Build(session.ID, session.State), nil
}

// Build splits tasks into open and completed, each in insertion order.
func Build(id domain.SessionID, state domain.State) *View {
	v := &View{
		SessionID:      id,
		OpenTasks:      []domain.Task{},
		CompletedTasks: []domain.Task{},
		Notes:          append([]domain.Note{}, state.Notes...),
		Automations:    append([]domain.Automation{}, state.Automations...),
	}
	for _, t := range state.Tasks {
		if t.Done {
			v.CompletedTasks = append(v.CompletedTasks, t)
		} else {
			v.OpenTasks = append(v.OpenTasks, t)
		}
	}
	return v
}
