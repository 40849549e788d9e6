// Package httpapi exposes the assistant over HTTP for the web client.
// The surface is small: one turn endpoint, capabilities, health, and
// metrics. Sessions are cookie-free; the client carries the session id.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	florence "github.com/impact-cms/florence"
	"github.com/impact-cms/florence/pkg/chat"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/session"
)

// Server handles assistant HTTP traffic.
type Server struct {
	assistant *florence.Assistant
	sessions  *session.Manager
	log       *slog.Logger
	metrics   http.Handler
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithMetricsHandler mounts a metrics endpoint, normally promhttp.Handler().
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) { s.metrics = h }
}

// NewServer builds the server. The session manager owns per-session
// serialization so concurrent requests on one thread cannot interleave.
func NewServer(assistant *florence.Assistant, sessions *session.Manager, log *slog.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		assistant: assistant,
		sessions:  sessions,
		log:       log,
		metrics:   promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/assistant/turn", s.handleTurn)
	r.Get("/assistant/capabilities", s.handleCapabilities)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics)
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// turnRequest is the wire shape of a turn. Context is a loose map so
// the web client can send whatever page metadata it has; decoding is
// tolerant by design.
type turnRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Question  string         `json:"question"`
	Context   map[string]any `json:"context,omitempty"`
}

// turnResponse wraps the assistant response with the session id, which
// the client must echo on the next turn.
type turnResponse struct {
	SessionID string `json:"session_id"`
	*domain.Response
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var body turnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.log.Warn("turn: invalid request body", "err", err)
		return
	}

	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	tc, err := domain.DecodeTurnContext(body.Context)
	if err != nil {
		http.Error(w, "invalid turn context", http.StatusBadRequest)
		s.log.Warn("turn: invalid context", "err", err)
		return
	}

	var resp *domain.Response
	err = s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
			state = domain.NewThreadState()
		}
		resp, err = s.assistant.HandleTurn(ctx, state, body.Question, tc)
		if err != nil {
			return err
		}
		return s.sessions.Store().Save(ctx, sessionID, resp.StateUpdate)
	})
	if err != nil {
		http.Error(w, "turn failed", http.StatusInternalServerError)
		s.log.Error("turn failed", "session_id", sessionID, "err", err)
		return
	}

	writeJSON(w, s.log, turnResponse{SessionID: sessionID, Response: resp})
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, map[string][]chat.Capability{"capabilities": s.assistant.Capabilities()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("response encode failed", "err", err)
	}
}
