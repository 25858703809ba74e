package memory

import (
	"sync"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// SessionStore keeps sessions in memory. Sessions are copied on the way in
// and out so callers never share a *Session with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
	order    []domain.SessionID
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *SessionStore) CreateSession(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return domain.ErrSessionExists
	}

	cp := *session
	s.sessions[session.ID] = &cp
	s.order = append(s.order, session.ID)
	return nil
}

func (s *SessionStore) UpdateSession(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; !exists {
		return domain.ErrSessionNotFound
	}

	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *SessionStore) GetSession(id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	cp := *sess
	return &cp, nil
}

// ListSessionsByUser returns the user's sessions in creation order.
func (s *SessionStore) ListSessionsByUser(userID domain.UserID, limit int) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Session
	for _, id := range s.order {
		sess := s.sessions[id]
		if sess.UserID != userID {
			continue
		}
		cp := *sess
		result = append(result, &cp)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, nil
}
