package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/dto"
	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/internal/repository/memory"
	"handyman-chat-be/internal/service"
	"handyman-chat-be/pkg/chatbot"
	"handyman-chat-be/pkg/store"
)

type stubProvider struct {
	results []store.SearchResult
}

func (s *stubProvider) Search(ctx context.Context, query string) []store.SearchResult {
	return s.results
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	provider := &stubProvider{results: []store.SearchResult{
		{Name: "Elektryk Jan", Phone: "601 234 567", Link: "http://example.pl"},
	}}
	repo := memory.NewSessionRepository(time.Hour, time.Minute)
	engine := chatbot.NewSearchEngine(provider, logger.NewNopLogger())
	svc := service.NewChatService(repo, engine, logger.NewNopLogger(), false)

	app := fiber.New()
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := postJSON(t, app, "/api/chat/session", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created dto.CreateSessionResponse
	decode(t, resp, &created)
	require.NotEmpty(t, created.SessionID)
	return created.SessionID
}

func TestCreateSessionEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/chat/session", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created dto.CreateSessionResponse
	decode(t, resp, &created)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, constant.WelcomeMessage, created.Message)
}

func TestSendMessageValidation(t *testing.T) {
	app := newTestApp(t)
	sessionID := createSession(t, app)

	tests := []struct {
		name      string
		payload   map[string]string
		wantError string
	}{
		{"missing sessionId", map[string]string{"message": "elektryk"}, constant.ErrMissingSessionID},
		{"missing message", map[string]string{"sessionId": sessionID}, constant.ErrMissingMessage},
		{"blank message", map[string]string{"sessionId": sessionID, "message": "   "}, constant.ErrMissingMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/chat/message", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp dto.ErrorResponse
			decode(t, resp, &errResp)
			assert.Equal(t, tt.wantError, errResp.Error)
		})
	}
}

func TestSendMessageMalformedBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader([]byte(`{"message": "elektryk Warszawa"`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, constant.ErrInvalidRequest, errResp.Error)
}

func TestSendMessageUnknownSessionReturns404(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/chat/message", map[string]string{
		"sessionId": "does-not-exist",
		"message":   "elektryk Warszawa",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp dto.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, constant.ErrSessionNotFound, errResp.Error)
}

func TestSendMessageReturnsResults(t *testing.T) {
	app := newTestApp(t)
	sessionID := createSession(t, app)

	resp := postJSON(t, app, "/api/chat/message", map[string]string{
		"sessionId": sessionID,
		"message":   "elektryk Warszawa",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply dto.SendMessageResponse
	decode(t, resp, &reply)
	assert.Equal(t, constant.ResultsFoundResponse, reply.Message)
	require.Len(t, reply.Results, 1)
	assert.Equal(t, "Elektryk Jan", reply.Results[0].Name)
	assert.Equal(t, "601 234 567", reply.Results[0].Phone)
	assert.Equal(t, "http://example.pl", reply.Results[0].Link)
}

func TestSendShortMessageReturnsPrompt(t *testing.T) {
	app := newTestApp(t)
	sessionID := createSession(t, app)

	resp := postJSON(t, app, "/api/chat/message", map[string]string{
		"sessionId": sessionID,
		"message":   "ok",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply dto.SendMessageResponse
	decode(t, resp, &reply)
	assert.Equal(t, constant.ShortInputResponse, reply.Message)
	assert.Empty(t, reply.Results)
}

func TestGetHistoryEndpoint(t *testing.T) {
	app := newTestApp(t)
	sessionID := createSession(t, app)

	postJSON(t, app, "/api/chat/message", map[string]string{
		"sessionId": sessionID,
		"message":   "elektryk Warszawa",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/"+sessionID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history dto.GetHistoryResponse
	decode(t, resp, &history)
	require.Len(t, history.History, 3)
	assert.Equal(t, store.RoleBot, history.History[0].Role)
	assert.Equal(t, store.RoleUser, history.History[1].Role)
	assert.Equal(t, store.RoleBot, history.History[2].Role)
	assert.Len(t, history.History[2].Results, 1)
}

func TestGetHistoryUnknownSessionReturns404(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/missing", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
