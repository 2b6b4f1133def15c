package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-ai/studyhub-backend/internal/adapter/ai"
	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
	"github.com/studyhub-ai/studyhub-backend/internal/prompt"
)

func chatBody() map[string]any {
	return map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "How do I learn Go?"},
		},
	}
}

func TestChat_RejectsUnauthenticatedBeforeUpstream(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/chat", chatBody(), false)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, env.ai.calls)
	assert.Zero(t, env.store.usage[env.userID])
}

func TestChat_PreflightShortCircuits(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	req.Header.Set("Origin", "https://studyhub.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")

	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	// No credential check, no upstream call, no side effects.
	assert.Zero(t, env.ai.calls)
}

func TestChat_Success(t *testing.T) {
	env := newTestEnv(t)
	env.ai.content = "Start with the Tour of Go."

	resp := env.request(t, http.MethodPost, "/api/v1/chat", chatBody(), true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Content string `json:"content"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Start with the Tour of Go.", body.Content)

	// Mentor instruction is prepended, caller turns follow verbatim.
	require.Len(t, env.ai.lastReq.Messages, 2)
	assert.Equal(t, "system", env.ai.lastReq.Messages[0].Role)
	assert.Equal(t, prompt.ChatSystem, env.ai.lastReq.Messages[0].Content)
	assert.Equal(t, "How do I learn Go?", env.ai.lastReq.Messages[1].Content)

	assert.Equal(t, domain.MinutesPerChatTurn, env.store.usage[env.userID])
	assert.Contains(t, env.store.users, env.userID)
}

func TestChat_EmptyMessages(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/chat", map[string]any{"messages": []any{}}, true)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.ai.calls)
}

func TestChat_RateLimitMappedVerbatim(t *testing.T) {
	env := newTestEnv(t)
	env.ai.err = port.ErrRateLimited

	resp := env.request(t, http.MethodPost, "/api/v1/chat", chatBody(), true)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", body.Error)

	// Exactly one upstream call, no retry, and no usage credited.
	assert.Equal(t, 1, env.ai.calls)
	assert.Zero(t, env.store.usage[env.userID])
}

func TestChat_QuotaMappedVerbatim(t *testing.T) {
	env := newTestEnv(t)
	env.ai.err = port.ErrQuotaExhausted

	resp := env.request(t, http.MethodPost, "/api/v1/chat", chatBody(), true)

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Payment required. Please add credits to continue.", body.Error)
	assert.Equal(t, 1, env.ai.calls)
}

func TestChat_UpstreamFailureHidesDetails(t *testing.T) {
	env := newTestEnv(t)
	env.ai.err = &ai.UpstreamError{StatusCode: http.StatusBadGateway, Body: "internal gateway detail"}

	resp := env.request(t, http.MethodPost, "/api/v1/chat", chatBody(), true)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "AI service unavailable. Please try again.", body.Error)
	assert.NotContains(t, body.Error, "gateway detail")
}
