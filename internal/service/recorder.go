package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/observability"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

// Recorder applies the post-generation side effects: artifact persistence,
// usage accounting, and milestone achievement unlocks. Every effect is
// best-effort: a failure is logged and reported in the SideEffects result
// but never fails the request, because the generated content has already
// been produced and will be returned to the caller regardless.
type Recorder struct {
	store port.Store
}

// NewRecorder creates a new side-effect recorder.
func NewRecorder(store port.Store) *Recorder {
	return &Recorder{store: store}
}

// SideEffects reports what was applied after a successful generation. It is
// deliberately separate from the primary generation result so callers and
// tests can assert on "generation succeeded" and "side effects succeeded"
// independently.
type SideEffects struct {
	ArtifactID           string `json:"artifact_id,omitempty"`
	ArtifactSaved        bool   `json:"artifact_saved"`
	UsageRecorded        bool   `json:"usage_recorded"`
	AchievementsUnlocked int    `json:"achievements_unlocked"`
	Failed               bool   `json:"failed"`
}

// RecordChatTurn credits the fixed chat study-minute delta.
func (r *Recorder) RecordChatTurn(ctx context.Context, user *domain.UserContext) SideEffects {
	var fx SideEffects
	if !r.ensureUser(ctx, &fx, user) {
		return fx
	}
	r.recordUsage(ctx, &fx, user.UserID, domain.MinutesPerChatTurn, "chat")
	return fx
}

// RecordGeneration credits the generation delta and, when save is set,
// appends one artifact and runs the first-artifact milestone gate.
func (r *Recorder) RecordGeneration(ctx context.Context, user *domain.UserContext, category, topic, content string, save bool) SideEffects {
	var fx SideEffects
	if !r.ensureUser(ctx, &fx, user) {
		return fx
	}
	userID := user.UserID

	if save {
		artifact, err := r.store.CreateArtifact(ctx, &domain.Artifact{
			UserID:   userID,
			Category: category,
			Topic:    topic,
			Content:  content,
			Metadata: json.RawMessage(`{"source":"generator"}`),
		})
		if err != nil {
			fx.Failed = true
			observability.SideEffectFailures.WithLabelValues("artifact").Inc()
			slog.Error("failed to save artifact", "user", userID, "category", category, "error", err)
		} else {
			fx.ArtifactSaved = true
			fx.ArtifactID = artifact.ID

			count, err := r.store.CountArtifactsByCategory(ctx, userID, category)
			if err != nil {
				fx.Failed = true
				observability.SideEffectFailures.WithLabelValues("achievement").Inc()
				slog.Error("failed to count artifacts", "user", userID, "error", err)
			} else if count == 1 {
				r.unlock(ctx, &fx, userID, domain.AchievementContentCreator)
			}
		}
	}

	r.recordUsage(ctx, &fx, userID, domain.MinutesPerGeneration, "generation")
	return fx
}

// RecordInterviewStart credits the fixed interview-prep delta.
func (r *Recorder) RecordInterviewStart(ctx context.Context, user *domain.UserContext) SideEffects {
	var fx SideEffects
	if !r.ensureUser(ctx, &fx, user) {
		return fx
	}
	r.recordUsage(ctx, &fx, user.UserID, domain.MinutesPerInterviewStart, "interview_start")
	return fx
}

// RecordInterviewSession persists a completed interview and runs the
// first- and fifth-interview milestone gates.
func (r *Recorder) RecordInterviewSession(ctx context.Context, user *domain.UserContext, sess *domain.InterviewSession) SideEffects {
	var fx SideEffects
	if !r.ensureUser(ctx, &fx, user) {
		return fx
	}
	sess.UserID = user.UserID

	saved, err := r.store.CreateInterviewSession(ctx, sess)
	if err != nil {
		fx.Failed = true
		observability.SideEffectFailures.WithLabelValues("interview_session").Inc()
		slog.Error("failed to save interview session", "user", sess.UserID, "error", err)
		return fx
	}
	fx.ArtifactSaved = true
	fx.ArtifactID = saved.ID

	count, err := r.store.CountInterviewSessions(ctx, sess.UserID)
	if err != nil {
		fx.Failed = true
		observability.SideEffectFailures.WithLabelValues("achievement").Inc()
		slog.Error("failed to count interview sessions", "user", sess.UserID, "error", err)
		return fx
	}

	switch count {
	case 1:
		r.unlock(ctx, &fx, sess.UserID, domain.AchievementInterviewReady)
	case 5:
		r.unlock(ctx, &fx, sess.UserID, domain.AchievementInterviewExpert)
	}

	return fx
}

// ensureUser mirrors the resolved identity before the first write. Every
// side-effect table references users(id), so on failure the remaining
// writes are skipped rather than left to fail one by one.
func (r *Recorder) ensureUser(ctx context.Context, fx *SideEffects, user *domain.UserContext) bool {
	if err := r.store.EnsureUser(ctx, user.UserID, user.Email, user.Name); err != nil {
		fx.Failed = true
		observability.SideEffectFailures.WithLabelValues("identity").Inc()
		slog.Error("failed to mirror user identity", "user", user.UserID, "error", err)
		return false
	}
	return true
}

func (r *Recorder) recordUsage(ctx context.Context, fx *SideEffects, userID string, minutes int, action string) {
	if err := r.store.UpsertDailyStats(ctx, userID, time.Now().UTC(), minutes, 0); err != nil {
		fx.Failed = true
		observability.SideEffectFailures.WithLabelValues("usage").Inc()
		slog.Error("failed to update daily stats", "user", userID, "action", action, "error", err)
		return
	}
	fx.UsageRecorded = true
	observability.StudyMinutes.WithLabelValues(action).Add(float64(minutes))
}

// unlock resolves an achievement by name and inserts the unlock record.
// The insert is conditional on the (user, achievement) pair, so a repeated
// milestone trigger never produces a duplicate row.
func (r *Recorder) unlock(ctx context.Context, fx *SideEffects, userID, name string) {
	achievement, err := r.store.GetAchievementByName(ctx, name)
	if err != nil {
		if !errors.Is(err, port.ErrAchievementNotFound) {
			fx.Failed = true
			observability.SideEffectFailures.WithLabelValues("achievement").Inc()
		}
		slog.Warn("achievement lookup failed", "name", name, "error", err)
		return
	}

	if err := r.store.UnlockAchievement(ctx, userID, achievement.ID); err != nil {
		fx.Failed = true
		observability.SideEffectFailures.WithLabelValues("achievement").Inc()
		slog.Error("failed to unlock achievement", "user", userID, "name", name, "error", err)
		return
	}

	fx.AchievementsUnlocked++
	slog.Info("achievement unlocked", "user", userID, "name", name)
}

// ScoreFromFeedback derives a 0-100 interview score from the evaluation
// text. The evaluation prompt asks for an explicit "rating from 1-5", so
// the N/5 nearest after the word "rating" wins; without that anchor the
// last N/5 in the text is used, since incidental digrams (dates, "question
// 2/5") tend to precede the verdict. Mapped linearly onto 20-100, neutral
// fallback 75 when no rating is present.
func ScoreFromFeedback(feedback string) int {
	const fallback = 75

	lower := strings.ToLower(feedback)
	for i := 0; ; {
		j := strings.Index(lower[i:], "rating")
		if j < 0 {
			break
		}
		start := i + j
		end := start + 40
		if end > len(feedback) {
			end = len(feedback)
		}
		if n := scanRating(feedback[start:end], false); n > 0 {
			return n * 20
		}
		i = start + len("rating")
	}

	if n := scanRating(feedback, true); n > 0 {
		return n * 20
	}
	return fallback
}

// scanRating returns the first (or last) standalone N/5 digram in s,
// 0 when none. A leading digit disqualifies a match so "12/5" is not read
// as 2/5.
func scanRating(s string, last bool) int {
	found := 0
	for i := 0; i+2 < len(s); i++ {
		if s[i+1] != '/' || s[i+2] != '5' {
			continue
		}
		if i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
			continue
		}
		n := int(s[i] - '0')
		if n < 1 || n > 5 {
			continue
		}
		if !last {
			return n
		}
		found = n
	}
	return found
}
