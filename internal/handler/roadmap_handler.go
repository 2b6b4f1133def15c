package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
	"github.com/studyhub-ai/studyhub-backend/internal/prompt"
)

// RoadmapHandler handles personalized learning-roadmap generation.
type RoadmapHandler struct {
	ai port.AIProvider
}

// NewRoadmapHandler creates a new roadmap handler.
func NewRoadmapHandler(ai port.AIProvider) *RoadmapHandler {
	return &RoadmapHandler{ai: ai}
}

// Register sets up roadmap routes.
func (h *RoadmapHandler) Register(router fiber.Router) {
	router.Post("/roadmap", h.Generate)
}

// Generate produces a structured learning roadmap in strict JSON mode and
// returns it verbatim as the roadmap payload.
func (h *RoadmapHandler) Generate(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body struct {
		Goal         string `json:"goal"`
		CurrentLevel string `json:"currentLevel"`
		Timeframe    int    `json:"timeframe"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Goal == "" {
		return badRequest(c, "goal is required")
	}
	if body.Timeframe <= 0 {
		return badRequest(c, "timeframe must be a positive number of months")
	}

	system, user := prompt.ForRoadmap(body.Goal, body.CurrentLevel, body.Timeframe)

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	content, err := h.ai.Complete(ctx, port.CompletionRequest{
		Messages: []port.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return respondError(c, err)
	}

	if !json.Valid([]byte(content)) {
		return respondError(c, port.ErrNoContent)
	}

	return c.JSON(fiber.Map{"roadmap": json.RawMessage(content)})
}
