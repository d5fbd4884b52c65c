// Package webui exposes the HTTP surface of the chatbot backend: the public
// chat endpoint, the Basic Auth admin API, health, and Prometheus metrics.
package webui

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/config"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/metrics"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/persistence"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/session"
)

// Server is the web UI HTTP server.
type Server struct {
	engine   *bot.Engine
	sessions *session.Store
	store    *persistence.Store
	queries  *metrics.QueryService
	cfg      *config.Config
	logger   *logx.Logger
	started  time.Time
}

// NewServer wires the HTTP surface. queries may be nil when no Prometheus
// server is configured.
func NewServer(engine *bot.Engine, sessions *session.Store, store *persistence.Store, queries *metrics.QueryService, cfg *config.Config) *Server {
	return &Server{
		engine:   engine,
		sessions: sessions,
		store:    store,
		queries:  queries,
		cfg:      cfg,
		logger:   logx.NewLogger("webui"),
		started:  time.Now(),
	}
}

// RegisterRoutes attaches all endpoints to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Public surface.
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	// Admin surface behind Basic Auth.
	mux.HandleFunc("/api/analytics", s.requireAuth(s.handleAnalytics))
	mux.HandleFunc("/api/chatdata", s.requireAuth(s.handleChatData))
	mux.HandleFunc("/api/configurations", s.requireAuth(s.handleConfigurations))
	mux.HandleFunc("/api/ops/summary", s.requireAuth(s.handleOpsSummary))
	mux.HandleFunc("/api/logs", s.requireAuth(s.handleLogs))
}

// requireAuth wraps an HTTP handler with Basic Authentication. The username
// comes from config, the password from the secrets file or environment.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expectedPassword, err := config.GetSecret(config.SecretAdminPassword)
		if err != nil || expectedPassword == "" {
			s.logger.Error("admin password not set, denying access")
			w.Header().Set("WWW-Authenticate", `Basic realm="Xigiled Admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.User)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(expectedPassword)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="Xigiled Admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
