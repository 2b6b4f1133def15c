package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
	"github.com/studyhub-ai/studyhub-backend/internal/prompt"
	"github.com/studyhub-ai/studyhub-backend/internal/service"
)

const llmTimeout = 2 * time.Minute

// ChatHandler handles the open-ended mentor chat.
type ChatHandler struct {
	ai       port.AIProvider
	recorder *service.Recorder
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(ai port.AIProvider, recorder *service.Recorder) *ChatHandler {
	return &ChatHandler{ai: ai, recorder: recorder}
}

// Register sets up chat routes.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.Chat)
}

// Chat forwards the conversation to the mentor model and credits the
// per-turn study minutes.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body struct {
		Messages []port.Message `json:"messages"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(body.Messages) == 0 {
		return badRequest(c, "messages is required")
	}

	messages := make([]port.Message, 0, len(body.Messages)+1)
	messages = append(messages, port.Message{Role: "system", Content: prompt.ChatSystem})
	messages = append(messages, body.Messages...)

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	content, err := h.ai.Complete(ctx, port.CompletionRequest{Messages: messages})
	if err != nil {
		return respondError(c, err)
	}

	h.recorder.RecordChatTurn(c.Context(), uc)

	return c.JSON(fiber.Map{"content": content})
}
