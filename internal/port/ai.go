package port

import "context"

// Message is one turn of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one call to the completion upstream.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64

	// JSONMode forces a structured JSON-object response when the consumer
	// expects machine-parseable output (roadmaps, interview questions).
	JSONMode bool
}

// AIProvider abstracts the chat-completion upstream. Implementations make
// exactly one upstream call per invocation; no retry or backoff.
type AIProvider interface {
	// Complete sends the conversation and returns the first completion's
	// text content. Upstream 429 maps to ErrRateLimited, 402 to
	// ErrQuotaExhausted, an empty completion to ErrNoContent.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
