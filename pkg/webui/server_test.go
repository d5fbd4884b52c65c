package webui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/config"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/persistence"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	db, err := persistence.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := persistence.NewStore(db)

	engine := bot.NewEngine(cat, nil, store, nil)
	sessions := session.NewStore(time.Hour)

	cfg := config.DefaultConfig()
	config.SetSecret(config.SecretAdminPassword, "sekrit")

	srv := NewServer(engine, sessions, store, nil, cfg)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func postChat(t *testing.T, ts *httptest.Server, sessionID, message string) ChatResponse {
	t.Helper()
	body, err := json.Marshal(ChatRequest{SessionID: sessionID, Message: message})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestChatEndpointMintsSessionAndReplies(t *testing.T) {
	ts := newTestServer(t)

	first := postChat(t, ts, "", "")
	assert.NotEmpty(t, first.SessionID)
	assert.Contains(t, first.Message, "XIGI Assistant")
	require.NotNil(t, first.Buttons)

	second := postChat(t, ts, first.SessionID, "indoor")
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, "panel_selection", second.Step)
	require.NotNil(t, second.Buttons)
	assert.Contains(t, second.Buttons.Buttons, "P3mm")
}

func TestChatEndpointWelcomesBackUnknownSession(t *testing.T) {
	ts := newTestServer(t)

	reply := postChat(t, ts, "expired-session-id", "indoor")
	assert.Contains(t, reply.Message, "Welcome back!")
}

func TestChatEndpointRejectsBadBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/chat", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminEndpointsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/analytics", "/api/chatdata", "/api/configurations", "/api/logs"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func adminGet(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "sekrit")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAnalyticsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	postChat(t, ts, "", "indoor")

	resp := adminGet(t, ts, "/api/analytics")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var analytics persistence.Analytics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&analytics))
	assert.Equal(t, int64(1), analytics.TotalSessions)
	assert.GreaterOrEqual(t, analytics.TotalMessages, int64(2))
}

func TestChatDataEndpoint(t *testing.T) {
	ts := newTestServer(t)
	sess := postChat(t, ts, "", "indoor")
	postChat(t, ts, sess.SessionID, "P3mm")

	resp := adminGet(t, ts, "/api/chatdata?range=week")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Count    int                   `json:"count"`
		Messages []persistence.Message `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.GreaterOrEqual(t, out.Count, 4)

	bad := adminGet(t, ts, "/api/chatdata?range=decade")
	_ = bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestOpsSummaryWithoutPrometheus(t *testing.T) {
	ts := newTestServer(t)

	resp := adminGet(t, ts, "/api/ops/summary")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
}

func TestRangeCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	today, ok := rangeCutoff("today", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), today)

	week, ok := rangeCutoff("week", now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), week)

	_, ok = rangeCutoff("decade", now)
	assert.False(t, ok)
}
