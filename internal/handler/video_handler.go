package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

const videoTimeout = 30 * time.Second

// VideoCache is the optional read-through cache in front of the
// video-search upstream.
type VideoCache interface {
	Get(ctx context.Context, query string, maxResults int) (*domain.VideoSearchResult, error)
	Set(ctx context.Context, query string, maxResults int, result *domain.VideoSearchResult) error
}

// VideoHandler handles educational video search.
type VideoHandler struct {
	searcher port.VideoSearcher
	cache    VideoCache // nil disables caching
}

// NewVideoHandler creates a new video search handler.
func NewVideoHandler(searcher port.VideoSearcher, cache VideoCache) *VideoHandler {
	return &VideoHandler{searcher: searcher, cache: cache}
}

// Register sets up video routes.
func (h *VideoHandler) Register(router fiber.Router) {
	router.Post("/videos/search", h.Search)
}

// Search validates the query, serves from cache when possible, and
// otherwise queries the upstream. Cache failures fall through silently.
func (h *VideoHandler) Search(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body struct {
		Query      string `json:"query"`
		MaxResults int    `json:"maxResults"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Query == "" {
		return badRequest(c, "Query parameter is required")
	}
	if body.MaxResults <= 0 {
		body.MaxResults = 10
	}

	ctx, cancel := context.WithTimeout(c.Context(), videoTimeout)
	defer cancel()

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, body.Query, body.MaxResults)
		if err != nil {
			slog.Warn("video cache read failed", "error", err)
		} else if cached != nil {
			return c.JSON(cached)
		}
	}

	result, err := h.searcher.Search(ctx, body.Query, body.MaxResults)
	if err != nil {
		return respondError(c, err)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, body.Query, body.MaxResults, result); err != nil {
			slog.Warn("video cache write failed", "error", err)
		}
	}

	return c.JSON(result)
}
