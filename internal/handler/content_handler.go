package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
	"github.com/studyhub-ai/studyhub-backend/internal/prompt"
	"github.com/studyhub-ai/studyhub-backend/internal/service"
)

// ContentHandler handles structured study-content generation.
type ContentHandler struct {
	ai       port.AIProvider
	recorder *service.Recorder
}

// NewContentHandler creates a new content handler.
func NewContentHandler(ai port.AIProvider, recorder *service.Recorder) *ContentHandler {
	return &ContentHandler{ai: ai, recorder: recorder}
}

// Register sets up content routes.
func (h *ContentHandler) Register(router fiber.Router) {
	router.Post("/content/generate", h.Generate)
}

// Generate produces study content for a topic. Unknown content types fall
// back to the generic template rather than failing. When the caller opts
// in with saveToLibrary the result is persisted to their library.
func (h *ContentHandler) Generate(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body struct {
		ContentType   string `json:"contentType"`
		Topic         string `json:"topic"`
		Details       string `json:"details"`
		SaveToLibrary bool   `json:"saveToLibrary"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Topic == "" {
		return badRequest(c, "topic is required")
	}

	ct, _ := prompt.ParseContentType(body.ContentType)
	system, user := prompt.ForContent(ct, body.Topic, body.Details)

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	content, err := h.ai.Complete(ctx, port.CompletionRequest{
		Messages: []port.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return respondError(c, err)
	}

	h.recorder.RecordGeneration(c.Context(), uc, ct.String(), body.Topic, content, body.SaveToLibrary)

	return c.JSON(fiber.Map{"content": content})
}
