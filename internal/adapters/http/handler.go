package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/agentlink/internal/app/conversation"
	"github.com/PabloGalante/agentlink/internal/app/workspace"
	"github.com/PabloGalante/agentlink/internal/domain"
	"github.com/PabloGalante/agentlink/internal/observability"
)

type Server struct {
	svc          *conversation.Service
	workspaceSvc *workspace.Service
	historyLimit int
}

func NewServer(svc *conversation.Service, workspaceSvc *workspace.Service, historyLimit int) http.Handler {
	s := &Server{svc: svc, workspaceSvc: workspaceSvc, historyLimit: historyLimit}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /functions → capability listing (GET)
	mux.HandleFunc("/functions", s.handleFunctions)

	// /sessions → create session (POST), list a user's sessions (GET ?user_id=)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}           →  GET: get session + messages
	// /sessions/{id}/messages  → POST: send message
	// /sessions/{id}/workspace →  GET: tasks, notes, automations
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}

type createSessionResponse struct {
	Session sessionResponse  `json:"session"`
	Welcome *messageResponse `json:"welcome_message,omitempty"`
}

type sessionResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Title     string       `json:"title"`
	Turns     int          `json:"turns"`
	State     domain.State `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Function  string    `json:"function,omitempty"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	UserMessage      messageResponse `json:"user_message"`
	AgentMessage     messageResponse `json:"agent_message"`
	ExecutedFunction *string         `json:"executed_function"`
	State            domain.State    `json:"state"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type getSessionResponse struct {
	Session  sessionResponse   `json:"session"`
	Messages []messageResponse `json:"messages"`
}

type functionResponse struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	SamplePhrases []string `json:"sample_phrases"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /functions
func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	reg := s.svc.Registry()
	out := make([]functionResponse, 0, len(reg))
	for _, d := range reg {
		out = append(out, functionResponse{
			Key:           string(d.Key),
			Name:          d.Name,
			Description:   d.Description,
			Icon:          d.Icon,
			SamplePhrases: d.SamplePhrases,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"functions": out})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	case http.MethodGet:
		s.handleListSessions(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id}, /sessions/{id}/messages or /sessions/{id}/workspace
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := domain.SessionID(parts[0])

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetSession(w, r, id)

	case len(parts) == 2 && parts[1] == "messages":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSendMessage(w, r, id)

	case len(parts) == 2 && parts[1] == "workspace":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetWorkspace(w, r, id)

	default:
		http.NotFound(w, r)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	out, err := s.svc.StartSession(
		r.Context(),
		conversation.StartSessionInput{
			UserID: domain.UserID(req.UserID),
			Title:  req.Title,
		},
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	welcome := s.toMessageResponse(out.Welcome)
	writeJSON(w, http.StatusCreated, createSessionResponse{
		Session: toSessionResponse(out.Session),
		Welcome: &welcome,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	sessions, err := s.svc.ListSessions(r.Context(), domain.UserID(userID), s.historyLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess))
	}
	writeJSON(w, http.StatusOK, listSessionsResponse{Sessions: out})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, msgs, err := s.svc.GetSessionTimeline(r.Context(), id, s.historyLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, getSessionResponse{
		Session:  toSessionResponse(session),
		Messages: s.toMessagesResponse(msgs),
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, sessionID domain.SessionID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	out, err := s.svc.SendMessage(
		r.Context(),
		conversation.SendMessageInput{
			SessionID: sessionID,
			UserID:    domain.UserID(req.UserID),
			Text:      req.Text,
		},
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var executed *string
	if !out.Executed.IsNone() {
		key := string(out.Executed)
		executed = &key
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserMessage:      s.toMessageResponse(out.UserMessage),
		AgentMessage:     s.toMessageResponse(out.AgentMessage),
		ExecutedFunction: executed,
		State:            out.Session.State,
	})
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	view, err := s.workspaceSvc.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        string(s.ID),
		UserID:    string(s.UserID),
		Title:     s.Title,
		Turns:     s.Turns,
		State:     s.State,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *Server) toMessageResponse(m *domain.Message) messageResponse {
	resp := messageResponse{
		ID:        string(m.ID),
		SessionID: string(m.SessionID),
		Author:    string(m.Author),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	if !m.Function.IsNone() {
		resp.Function = string(m.Function)
		resp.Label = s.svc.Registry().Label(m.Function)
	}
	return resp
}

func (s *Server) toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, s.toMessageResponse(m))
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyMessage):
		badRequest(w, "text is required")
	default:
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		internalError(w)
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
