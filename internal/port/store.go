package port

import (
	"context"
	"time"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
)

// Store is the persistence surface used by the side-effect recorder and the
// read endpoints. The Postgres adapter is the production implementation.
type Store interface {
	// EnsureUser upserts the identity-mirror row for a resolved credential.
	// Identity is issued externally, so the mirror is written lazily before
	// the first row that references users(id).
	EnsureUser(ctx context.Context, id, email, name string) error

	// GetUserByID retrieves a mirrored user. Returns ErrUserNotFound for an
	// identity that has never triggered a write.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// CreateArtifact appends one generated artifact row. Insert-only.
	CreateArtifact(ctx context.Context, a *domain.Artifact) (*domain.Artifact, error)

	// CountArtifactsByCategory returns the user's total artifact count for
	// one category tag.
	CountArtifactsByCategory(ctx context.Context, userID, category string) (int, error)

	// ListArtifactsByUser returns the user's saved artifacts, newest first.
	ListArtifactsByUser(ctx context.Context, userID string) ([]domain.Artifact, error)

	// CreateInterviewSession records one completed mock interview.
	CreateInterviewSession(ctx context.Context, s *domain.InterviewSession) (*domain.InterviewSession, error)

	// CountInterviewSessions returns the user's total interview count.
	CountInterviewSessions(ctx context.Context, userID string) (int, error)

	// UpsertDailyStats applies an additive delta to the (user, date)
	// usage counter, creating the row if absent.
	UpsertDailyStats(ctx context.Context, userID string, date time.Time, studyMinutes, courses int) error

	// ListDailyStats returns up to days of recent counters, newest first.
	ListDailyStats(ctx context.Context, userID string, days int) ([]domain.DailyStats, error)

	// GetAchievementByName looks up an achievement definition.
	// Returns ErrAchievementNotFound when no definition matches.
	GetAchievementByName(ctx context.Context, name string) (*domain.Achievement, error)

	// UnlockAchievement inserts an unlock record if one does not already
	// exist for the (user, achievement) pair. Idempotent.
	UnlockAchievement(ctx context.Context, userID, achievementID string) error

	// ListUserAchievements returns the user's unlocks, newest first.
	ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error)
}
