package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

const statsWindowDays = 30

// ActivityLister provides the recent-activity feed backing the dashboard.
type ActivityLister interface {
	ListAuditLogsByUser(ctx context.Context, userID string, limit int) ([]domain.AuditLog, error)
}

// DashboardHandler serves the dashboard reads: usage statistics,
// achievements, the saved-content library, and recent activity.
type DashboardHandler struct {
	store    port.Store
	activity ActivityLister
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store port.Store, activity ActivityLister) *DashboardHandler {
	return &DashboardHandler{store: store, activity: activity}
}

// Register sets up dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/me", h.Me)
	router.Get("/dashboard/stats", h.Stats)
	router.Get("/library", h.Library)
	router.Get("/activity", h.Activity)
}

// Me returns the caller's mirrored profile. 404 means the identity has not
// triggered any recorded activity yet.
func (h *DashboardHandler) Me(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	user, err := h.store.GetUserByID(c.Context(), uc.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// Stats returns the recent daily usage counters and unlocked achievements.
func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	stats, err := h.store.ListDailyStats(c.Context(), uc.UserID, statsWindowDays)
	if err != nil {
		return respondError(c, err)
	}

	achievements, err := h.store.ListUserAchievements(c.Context(), uc.UserID)
	if err != nil {
		return respondError(c, err)
	}

	if stats == nil {
		stats = []domain.DailyStats{}
	}
	if achievements == nil {
		achievements = []domain.UserAchievement{}
	}

	return c.JSON(fiber.Map{
		"dailyStats":   stats,
		"achievements": achievements,
	})
}

// Library returns the user's saved artifacts, newest first.
func (h *DashboardHandler) Library(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	artifacts, err := h.store.ListArtifactsByUser(c.Context(), uc.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if artifacts == nil {
		artifacts = []domain.Artifact{}
	}

	return c.JSON(fiber.Map{"items": artifacts})
}

// Activity returns the user's recent request activity.
func (h *DashboardHandler) Activity(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	logs, err := h.activity.ListAuditLogsByUser(c.Context(), uc.UserID, 50)
	if err != nil {
		return respondError(c, err)
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}

	return c.JSON(fiber.Map{"logs": logs})
}
