package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PabloGalante/agentlink/internal/app/agentflow"
	"github.com/PabloGalante/agentlink/internal/domain"
	"github.com/PabloGalante/agentlink/internal/observability"
)

const DefaultWelcome = "Hey there! I'm primed to capture todos, notes, and automations for you. Ask for 'help' anytime to see what's possible."

type Service struct {
	dispatcher   *agentflow.Dispatcher
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	ids          domain.IDSource
	now          func() time.Time

	welcome string
	latency time.Duration

	locks sessionLocks
}

type Option func(*Service)

// WithLatency delays every reply by d, the way the console simulates
// thinking time. The delay happens before the dispatcher runs.
func WithLatency(d time.Duration) Option {
	return func(s *Service) {
		s.latency = d
	}
}

// WithWelcome replaces DefaultWelcome; an empty text keeps the default.
func WithWelcome(text string) Option {
	return func(s *Service) {
		if text != "" {
			s.welcome = text
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	dispatcher *agentflow.Dispatcher,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	ids domain.IDSource,
	opts ...Option,
) *Service {
	s := &Service{
		dispatcher:   dispatcher,
		sessionStore: sessionStore,
		messageStore: messageStore,
		ids:          ids,
		now:          time.Now,
		welcome:      DefaultWelcome,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the capability listing of the underlying dispatcher.
func (s *Service) Registry() agentflow.Registry {
	return s.dispatcher.Registry()
}

type StartSessionInput struct {
	UserID domain.UserID
	Title  string
}

type StartSessionOutput struct {
	Session *domain.Session
	Welcome *domain.Message
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)
	log.Info("starting new session")

	session := &domain.Session{
		ID:        domain.SessionID(s.ids.NewID()),
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     in.Title,
		State:     agentflow.CreateInitialState(),
	}

	if err := s.sessionStore.CreateSession(session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	welcome := &domain.Message{
		ID:        domain.MessageID(s.ids.NewID()),
		SessionID: session.ID,
		Author:    domain.RoleAgent,
		Text:      s.welcome,
		CreatedAt: now,
	}

	if err := s.messageStore.AppendMessage(welcome); err != nil {
		log.Error("failed to append welcome message", "error", err)
		return nil, fmt.Errorf("append welcome message: %w", err)
	}

	log.Info("session started", "session_id", session.ID)

	return &StartSessionOutput{
		Session: session,
		Welcome: welcome,
	}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage  *domain.Message
	AgentMessage *domain.Message
	Session      *domain.Session
	Executed     domain.Intent
}

// SendMessage runs one turn for a session. Turns of the same session are
// serialized so that each state snapshot is consumed exactly once.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	// Unknown sessions never get a lock entry.
	if _, err := s.sessionStore.GetSession(in.SessionID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(in.SessionID)
	defer unlock()

	session, err := s.sessionStore.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}
	if in.UserID != "" && in.UserID != session.UserID {
		return nil, domain.ErrForbidden
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", session.ID,
		"user_id", session.UserID,
	)
	log.Info("sending message", "text", text)

	// A cancelled turn leaves no trace in the history.
	if err := s.wait(ctx); err != nil {
		log.Warn("turn cancelled before dispatch", "error", err)
		return nil, err
	}

	userMsg := &domain.Message{
		ID:        domain.MessageID(s.ids.NewID()),
		SessionID: session.ID,
		Author:    domain.RoleUser,
		Text:      text,
		CreatedAt: s.now(),
	}

	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, fmt.Errorf("append user message: %w", err)
	}

	start := time.Now()
	resp := s.dispatcher.RunTurn(text, session.State)

	agentMsg := &domain.Message{
		ID:        domain.MessageID(s.ids.NewID()),
		SessionID: session.ID,
		Author:    domain.RoleAgent,
		Text:      resp.Reply,
		CreatedAt: s.now(),
		Function:  resp.Executed,
	}

	if err := s.messageStore.AppendMessage(agentMsg); err != nil {
		log.Error("failed to append agent message", "error", err)
		return nil, fmt.Errorf("append agent message: %w", err)
	}

	updated := *session
	updated.State = resp.State
	updated.Turns++
	updated.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(&updated); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, fmt.Errorf("update session: %w", err)
	}

	log.Info("send message completed",
		"executed", string(resp.Executed),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return &SendMessageOutput{
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
		Session:      &updated,
		Executed:     resp.Executed,
	}, nil
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"limit", limit,
	)

	session, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched session timeline", "message_count", len(msgs))

	return session, msgs, nil
}

// ListSessions returns up to limit sessions of userID, oldest first.
// limit <= 0 returns all of them.
func (s *Service) ListSessions(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Session, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	sessions, err := s.sessionStore.ListSessionsByUser(userID, limit)
	if err != nil {
		log.Error("failed to list sessions", "error", err)
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	log.Debug("listed sessions", "count", len(sessions))
	return sessions, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// sessionLocks hands out one mutex per session.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*sync.Mutex
}

func (l *sessionLocks) lock(id domain.SessionID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[domain.SessionID]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
