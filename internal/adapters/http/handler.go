package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

// Engine is what the HTTP API needs from the conversation service.
type Engine interface {
	CreateSession(ctx context.Context) (*domain.Session, error)
	GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	ProcessMessage(ctx context.Context, id domain.SessionID, text string) (*domain.EngineResponse, error)
	StartCheckIn(ctx context.Context, id domain.SessionID) (*domain.EngineResponse, error)
}

type Server struct {
	engine Engine
}

func NewServer(engine Engine) http.Handler {
	s := &Server{engine: engine}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /sessions → create session (POST)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}          → GET: session + turns
	// /sessions/{id}/messages → POST: process message
	// /sessions/{id}/checkin  → POST: start check-in
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	return chainMiddlewares(mux, withLogging, withRequestID, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type sessionResponse struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
	CheckIn   *domain.CheckInProgress    `json:"checkin,omitempty"`
	Context   domain.ConversationContext `json:"context"`
	Turns     []turnResponse             `json:"turns"`
}

type turnResponse struct {
	ID         string            `json:"id"`
	Speaker    string            `json:"speaker"`
	Text       string            `json:"text"`
	Timestamp  time.Time         `json:"timestamp"`
	Emotion    domain.Emotion    `json:"emotion,omitempty"`
	CrisisTier domain.CrisisTier `json:"crisis_tier"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	SessionID string `json:"session_id"`
	*domain.EngineResponse
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id}, /sessions/{id}/messages or /sessions/{id}/checkin
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetSession(w, r, domain.SessionID(id))
	case len(parts) == 2 && parts[1] == "messages":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSendMessage(w, r, domain.SessionID(id))
	case len(parts) == 2 && parts[1] == "checkin":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleStartCheckIn(w, r, domain.SessionID(id))
	default:
		http.NotFound(w, r)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.CreateSession(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, err := s.engine.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	resp, err := s.engine.ProcessMessage(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{SessionID: string(id), EngineResponse: resp})
}

func (s *Server) handleStartCheckIn(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	resp, err := s.engine.StartCheckIn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{SessionID: string(id), EngineResponse: resp})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	turns := make([]turnResponse, 0, len(s.Turns))
	for _, t := range s.Turns {
		tr := turnResponse{
			ID:         string(t.ID),
			Speaker:    string(t.Speaker),
			Text:       t.Text,
			Timestamp:  t.Timestamp,
			CrisisTier: t.CrisisTier,
		}
		if t.Classification != nil {
			tr.Emotion = t.Classification.Emotion
		}
		turns = append(turns, tr)
	}

	resp := sessionResponse{
		ID:        string(s.ID),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Context:   s.Context,
		Turns:     turns,
	}
	if s.CheckIn.Step != domain.StepInactive {
		resp.CheckIn = &domain.CheckInProgress{
			Step:      s.CheckIn.Step,
			StepName:  domain.CheckInStepNames[s.CheckIn.Step],
			Completed: s.CheckIn.Completed,
		}
	}
	return resp
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

var httpCodes = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.FailedPrecondition: http.StatusConflict,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.Unavailable:        http.StatusServiceUnavailable,
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	st, ok := status.FromError(err)
	if ok {
		if code, known := httpCodes[st.Code()]; known {
			writeJSON(w, code, map[string]string{"error": st.Message()})
			return
		}
	}
	observability.LoggerFromContext(r.Context()).Errorw("request failed", "path", r.URL.Path, "error", err)
	internalError(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
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
