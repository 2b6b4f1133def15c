package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// --- Users ---

// EnsureUser upserts the identity mirror from the resolved credential.
// Tokens are issued externally, so this is the only place users rows come
// from; every table referencing users(id) is written after this.
func (s *PostgresStore) EnsureUser(ctx context.Context, id, email, name string) error {
	query := `INSERT INTO users (id, email, name)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (id) DO UPDATE SET
	              email = EXCLUDED.email,
	              name = EXCLUDED.name,
	              updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, id, email, name); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, name, avatar_url, created_at, updated_at
	          FROM users WHERE id = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// --- Artifacts ---

// CreateArtifact appends one generated artifact row scoped to its owner.
func (s *PostgresStore) CreateArtifact(ctx context.Context, a *domain.Artifact) (*domain.Artifact, error) {
	metadata := a.Metadata
	if len(metadata) == 0 || !json.Valid(metadata) {
		metadata = json.RawMessage("{}")
	}

	query := `INSERT INTO saved_content (user_id, category, topic, content, metadata)
	          VALUES ($1, $2, $3, $4, $5::jsonb)
	          RETURNING id, user_id, category, topic, content, metadata, created_at`

	var result domain.Artifact
	err := s.db.QueryRowContext(ctx, query,
		a.UserID, a.Category, a.Topic, a.Content, string(metadata),
	).Scan(
		&result.ID, &result.UserID, &result.Category, &result.Topic,
		&result.Content, &result.Metadata, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}
	return &result, nil
}

// CountArtifactsByCategory returns a user's artifact count for one category.
func (s *PostgresStore) CountArtifactsByCategory(ctx context.Context, userID, category string) (int, error) {
	query := `SELECT COUNT(*) FROM saved_content WHERE user_id = $1 AND category = $2`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, category).Scan(&count); err != nil {
		return 0, fmt.Errorf("count artifacts: %w", err)
	}
	return count, nil
}

// ListArtifactsByUser returns a user's saved artifacts, newest first.
func (s *PostgresStore) ListArtifactsByUser(ctx context.Context, userID string) ([]domain.Artifact, error) {
	query := `SELECT id, user_id, category, topic, content, metadata, created_at
	          FROM saved_content WHERE user_id = $1 ORDER BY created_at DESC LIMIT 200`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []domain.Artifact
	for rows.Next() {
		var a domain.Artifact
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Category, &a.Topic,
			&a.Content, &a.Metadata, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// --- Interview sessions ---

// CreateInterviewSession records one completed mock interview.
func (s *PostgresStore) CreateInterviewSession(ctx context.Context, sess *domain.InterviewSession) (*domain.InterviewSession, error) {
	query := `INSERT INTO interview_sessions (user_id, role, difficulty, questions, answers, feedback, score)
	          VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, $7)
	          RETURNING id, user_id, role, difficulty, questions, answers, feedback, score, created_at`

	var result domain.InterviewSession
	err := s.db.QueryRowContext(ctx, query,
		sess.UserID, sess.Role, sess.Difficulty,
		jsonOrEmpty(sess.Questions), jsonOrEmpty(sess.Answers), jsonOrEmpty(sess.Feedback),
		sess.Score,
	).Scan(
		&result.ID, &result.UserID, &result.Role, &result.Difficulty,
		&result.Questions, &result.Answers, &result.Feedback, &result.Score,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create interview session: %w", err)
	}
	return &result, nil
}

// CountInterviewSessions returns a user's total interview count.
func (s *PostgresStore) CountInterviewSessions(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM interview_sessions WHERE user_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count interview sessions: %w", err)
	}
	return count, nil
}

// --- Daily stats ---

// UpsertDailyStats applies an additive delta to the (user, date) counter.
// Each request contributes an independent delta, so concurrent upserts
// compose without coordination.
func (s *PostgresStore) UpsertDailyStats(ctx context.Context, userID string, date time.Time, studyMinutes, courses int) error {
	query := `INSERT INTO daily_stats (user_id, stat_date, study_minutes, courses_completed)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, stat_date) DO UPDATE SET
	              study_minutes = daily_stats.study_minutes + EXCLUDED.study_minutes,
	              courses_completed = daily_stats.courses_completed + EXCLUDED.courses_completed`

	_, err := s.db.ExecContext(ctx, query, userID, date.Format("2006-01-02"), studyMinutes, courses)
	if err != nil {
		return fmt.Errorf("upsert daily stats: %w", err)
	}
	return nil
}

// ListDailyStats returns up to days of recent counters, newest first.
func (s *PostgresStore) ListDailyStats(ctx context.Context, userID string, days int) ([]domain.DailyStats, error) {
	query := `SELECT user_id, stat_date, study_minutes, courses_completed
	          FROM daily_stats WHERE user_id = $1 ORDER BY stat_date DESC LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, days)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.DailyStats
	for rows.Next() {
		var d domain.DailyStats
		if err := rows.Scan(&d.UserID, &d.StatDate, &d.StudyMinutes, &d.CoursesCompleted); err != nil {
			return nil, fmt.Errorf("scan daily stats: %w", err)
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// --- Achievements ---

// GetAchievementByName looks up an achievement definition by name.
func (s *PostgresStore) GetAchievementByName(ctx context.Context, name string) (*domain.Achievement, error) {
	query := `SELECT id, name, description, icon FROM achievements WHERE name = $1`

	var a domain.Achievement
	err := s.db.QueryRowContext(ctx, query, name).Scan(&a.ID, &a.Name, &a.Description, &a.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrAchievementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get achievement: %w", err)
	}
	return &a, nil
}

// UnlockAchievement inserts an unlock record for the (user, achievement)
// pair. The conditional insert makes the unlock idempotent under
// concurrent milestone-triggering requests.
func (s *PostgresStore) UnlockAchievement(ctx context.Context, userID, achievementID string) error {
	query := `INSERT INTO user_achievements (user_id, achievement_id)
	          VALUES ($1, $2)
	          ON CONFLICT (user_id, achievement_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID, achievementID); err != nil {
		return fmt.Errorf("unlock achievement: %w", err)
	}
	return nil
}

// ListUserAchievements returns a user's unlocks, newest first.
func (s *PostgresStore) ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	query := `SELECT ua.user_id, ua.achievement_id, a.name, a.description, a.icon, ua.unlocked_at
	          FROM user_achievements ua
	          JOIN achievements a ON a.id = ua.achievement_id
	          WHERE ua.user_id = $1
	          ORDER BY ua.unlocked_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	defer rows.Close()

	var unlocks []domain.UserAchievement
	for rows.Next() {
		var u domain.UserAchievement
		if err := rows.Scan(&u.UserID, &u.AchievementID, &u.Name, &u.Description, &u.Icon, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan user achievement: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// --- Audit logs ---

// WriteAudit implements middleware.AuditWriter.
func (s *PostgresStore) WriteAudit(userID, action, resource, resourceID, details, ip, userAgent string) error {
	query := `INSERT INTO audit_logs (user_id, action, resource, resource_id, details, ip, user_agent)
	          VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`
	_, err := s.db.ExecContext(context.Background(), query,
		userID, action, resource, resourceID, details, ip, userAgent,
	)
	return err
}

// ListAuditLogsByUser returns a user's recent activity, newest first.
func (s *PostgresStore) ListAuditLogsByUser(ctx context.Context, userID string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, user_id, action, resource, resource_id, details::text, ip, user_agent, created_at
	          FROM audit_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Action, &l.Resource, &l.ResourceID,
			&l.Details, &l.IP, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func jsonOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 || !json.Valid(raw) {
		return "{}"
	}
	return string(raw)
}
