package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"relay-messenger/config"
	"relay-messenger/internal/handler"
	"relay-messenger/internal/middleware"
	"relay-messenger/internal/redis"
	"relay-messenger/internal/repository/repotest"
	"relay-messenger/internal/services"
	"relay-messenger/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAll struct{}

func (denyAll) AllowAuth(ctx context.Context, ip string) (*redis.RateLimitResult, error) {
	return &redis.RateLimitResult{Allowed: false, Limit: 1, Remaining: 0}, nil
}

func newTestServer(t *testing.T, limiter middleware.AuthLimiter, health HealthFunc) *Server {
	t.Helper()
	log := logger.NewNop()
	s := New(&config.Config{AppPort: "0", AppMode: TestMode}, log)

	users := repotest.NewUserRepo()
	handlers := &Handlers{
		Auth: handler.NewAuthHandler(services.NewAuthService(users), log),
		Messages: handler.NewMessagesHandler(
			services.NewConversationService(repotest.NewChatRepo(), users),
			services.NewMessageService(repotest.NewMessageRepo(users), users),
			log,
		),
		Notifications: handler.NewNotificationsHandler(services.NewNotificationService(repotest.NewNotificationRepo(), nil, log), log),
		Settings:      handler.NewSettingsHandler(services.NewSettingsService(repotest.NewSettingsRepo()), log),
		Upload:        handler.NewUploadHandler(services.NewUploadService(repotest.NewObjectStore()), log),
	}
	s.SetupRoutes(handlers, limiter, health)
	return s
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := serve(s, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	healthy := newTestServer(t, nil, func(ctx context.Context) error { return nil })
	w := serve(healthy, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestServer(t, nil, func(ctx context.Context) error { return errors.New("connection refused") })
	w = serve(down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"connection refused"}`, w.Body.String())
}

func TestComponentRoutesAnswerPreflight(t *testing.T) {
	s := newTestServer(t, nil, nil)

	for _, path := range []string{"/auth", "/messages", "/notifications", "/settings", "/upload"} {
		w := serve(s, http.MethodOptions, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"), path)
	}
}

func TestRegisterThroughServer(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := serve(s, http.MethodPost, "/auth", `{"action":"register","phone":"+15550001","name":"Ann"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "user")
	assert.Contains(t, body, "token")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthRateLimitAppliesOnlyToAuth(t *testing.T) {
	s := newTestServer(t, denyAll{}, nil)

	w := serve(s, http.MethodPost, "/auth", `{"action":"login","phone":"+15550001"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())

	w = serve(s, http.MethodGet, "/settings?user_id=4", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnsupportedVerbThroughServer(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := serve(s, http.MethodDelete, "/messages", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, w.Body.String())
}
