package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/studyhub-ai/studyhub-backend/internal/observability"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

// GatewayConfig holds the configuration for the AI gateway endpoint.
type GatewayConfig struct {
	BaseURL string // e.g. https://ai.gateway.lovable.dev
	APIKey  string // Bearer token for the gateway
	Model   string // e.g. google/gemini-2.5-flash
}

// GatewayProvider implements port.AIProvider against an OpenAI-compatible
// /v1/chat/completions endpoint. It makes exactly one upstream call per
// request: 429 and 402 are classified and surfaced verbatim, never retried.
type GatewayProvider struct {
	cfg        GatewayConfig
	httpClient *http.Client
}

// NewGatewayProvider creates a new gateway-backed AI provider.
func NewGatewayProvider(cfg GatewayConfig) *GatewayProvider {
	return &GatewayProvider{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// ModelName returns the chat model identifier.
func (g *GatewayProvider) ModelName() string {
	return g.cfg.Model
}

// UpstreamError carries a non-2xx upstream status that is neither a rate
// limit nor a quota failure.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai gateway error (%d)", e.StatusCode)
}

// Complete sends the conversation to the completion endpoint and returns
// the first choice's message content.
func (g *GatewayProvider) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	payload := map[string]interface{}{
		"model":    g.cfg.Model,
		"messages": req.Messages,
	}
	if req.Temperature > 0 {
		payload["temperature"] = req.Temperature
	}
	if req.JSONMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		observability.AIRequests.WithLabelValues("transport_error").Inc()
		return "", fmt.Errorf("ai gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai gateway read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		observability.AIRequests.WithLabelValues("rate_limited").Inc()
		return "", port.ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		observability.AIRequests.WithLabelValues("quota_exhausted").Inc()
		return "", port.ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		observability.AIRequests.WithLabelValues("upstream_error").Inc()
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		observability.AIRequests.WithLabelValues("decode_error").Inc()
		return "", fmt.Errorf("ai gateway decode: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		observability.AIRequests.WithLabelValues("no_content").Inc()
		return "", port.ErrNoContent
	}

	observability.AIRequests.WithLabelValues("ok").Inc()
	return parsed.Choices[0].Message.Content, nil
}
