package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/adapter/ai"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

// respondError maps the error taxonomy onto HTTP statuses and a uniform
// JSON error envelope. Upstream 429/402 are surfaced verbatim; everything
// else collapses to a generic failure so upstream details never leak.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Rate limit exceeded. Please try again later.",
		})
	case errors.Is(err, port.ErrQuotaExhausted):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "Payment required. Please add credits to continue.",
		})
	case errors.Is(err, port.ErrVideoQuota):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "YouTube API quota exceeded or invalid API key",
		})
	case errors.Is(err, port.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	case errors.Is(err, port.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	var upstream *ai.UpstreamError
	if errors.As(err, &upstream) {
		slog.Error("upstream failure", "status", upstream.StatusCode)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI service unavailable. Please try again.",
		})
	}

	slog.Error("request failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
