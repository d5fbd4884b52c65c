package webui

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/persistence"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/version"
)

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse is the POST /api/chat reply.
type ChatResponse struct {
	SessionID string           `json:"session_id"`
	Kind      string           `json:"type"`
	Message   string           `json:"message"`
	Buttons   *bot.ButtonGroup `json:"options,omitempty"`
	Intent    string           `json:"intent,omitempty"`
	Step      string           `json:"current_step,omitempty"`
	Done      bool             `json:"done,omitempty"`
}

// handleChat implements POST /api/chat, the customer-facing endpoint.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, created := s.sessions.GetOrCreate(req.SessionID)
	sess.Lock()
	defer sess.Unlock()

	reply := s.engine.Handle(r.Context(), sess.ID, req.Message, sess.State)

	// A client-supplied ID we no longer know means the session idled out of
	// memory; greet the returning customer before continuing.
	if created && req.SessionID != "" && req.Message != "" {
		reply.Text = "Welcome back! Let's continue from where we left off.\n\n" + reply.Text
	}

	s.recordTranscript(r, sess.ID, req.Message, &reply)

	s.writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: sess.ID,
		Kind:      reply.Kind,
		Message:   reply.Text,
		Buttons:   reply.Buttons,
		Intent:    reply.Intent,
		Step:      string(reply.Step),
		Done:      reply.Done,
	})
}

// recordTranscript stores both sides of the turn. Failures are logged and
// swallowed: the transcript is best effort.
func (s *Server) recordTranscript(r *http.Request, sessionID, message string, reply *bot.Reply) {
	if s.store == nil {
		return
	}
	ctx := r.Context()
	if err := s.store.TouchSession(ctx, sessionID); err != nil {
		s.logger.Warn("failed to touch session: %v", err)
	}
	if message != "" {
		if err := s.store.RecordMessage(ctx, sessionID, persistence.RoleUser, message, reply.Intent); err != nil {
			s.logger.Warn("failed to record user message: %v", err)
		}
	}
	if err := s.store.RecordMessage(ctx, sessionID, persistence.RoleBot, reply.Text, ""); err != nil {
		s.logger.Warn("failed to record bot message: %v", err)
	}
}

// handleAnalytics implements GET /api/analytics.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	analytics, err := s.store.Analytics(r.Context())
	if err != nil {
		s.logger.Error("analytics query failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics)
}

// rangeCutoff maps the chatdata range parameter to a start time.
func rangeCutoff(name string, now time.Time) (time.Time, bool) {
	switch name {
	case "", "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// handleChatData implements GET /api/chatdata?range=today|week|month|year.
func (s *Server) handleChatData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rangeName := r.URL.Query().Get("range")
	cutoff, ok := rangeCutoff(rangeName, time.Now())
	if !ok {
		s.writeError(w, http.StatusBadRequest, "range must be one of today, week, month, year")
		return
	}

	messages, err := s.store.Messages(r.Context(), cutoff)
	if err != nil {
		s.logger.Error("chatdata query failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "chatdata query failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"range":    rangeName,
		"since":    cutoff,
		"count":    len(messages),
		"messages": messages,
	})
}

// handleConfigurations implements GET /api/configurations.
func (s *Server) handleConfigurations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	configs, err := s.store.Configurations(r.Context(), 100)
	if err != nil {
		s.logger.Error("configurations query failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "configurations query failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"configurations": configs})
}

// handleOpsSummary implements GET /api/ops/summary via the Prometheus query
// service.
func (s *Server) handleOpsSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.queries == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no prometheus server configured")
		return
	}

	summary, err := s.queries.GetOpsSummary(r.Context())
	if err != nil {
		s.logger.Error("ops summary query failed: %v", err)
		s.writeError(w, http.StatusBadGateway, "prometheus query failed")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// handleLogs implements GET /api/logs?component=&since=RFC3339.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	component := query.Get("component")

	var since time.Time
	if sinceStr := query.Get("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		since = parsed
	}

	entries := logx.GetRecentLogEntries(component, since)
	s.writeJSON(w, http.StatusOK, map[string]any{"logs": entries, "count": len(entries)})
}

// handleHealth implements GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        version.Version,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"sessions":       s.sessions.Len(),
	})
}
