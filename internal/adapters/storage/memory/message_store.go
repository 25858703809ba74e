package memory

import (
	"sync"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// MessageStore is the turn history of every session, user and agent
// messages interleaved in the order they were appended. Like SessionStore it
// keeps its own copies, so a caller editing a *Message it handed in or got
// back cannot rewrite the history.
type MessageStore struct {
	mu      sync.RWMutex
	history map[domain.SessionID][]domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		history: make(map[domain.SessionID][]domain.Message),
	}
}

func (s *MessageStore) AppendMessage(msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[msg.SessionID] = append(s.history[msg.SessionID], *msg)
	return nil
}

// GetMessagesBySession returns the most recent limit turns of a session,
// oldest first; limit <= 0 means the whole history. Unknown sessions have an
// empty history.
func (s *MessageStore) GetMessagesBySession(sessionID domain.SessionID, limit int) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.history[sessionID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	out := make([]*domain.Message, 0, len(turns))
	for _, m := range turns {
		out = append(out, &m)
	}
	return out, nil
}
