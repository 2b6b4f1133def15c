package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
	"github.com/studyhub-ai/studyhub-backend/internal/service"
)

// ── Fakes ──────────────────────────────────────────────────────────────────

type fakeAI struct {
	content string
	err     error
	calls   int
	lastReq port.CompletionRequest
}

func (f *fakeAI) Complete(_ context.Context, req port.CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type fakeSearcher struct {
	result *domain.VideoSearchResult
	err    error
	calls  int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) (*domain.VideoSearchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCache struct {
	entries map[string]*domain.VideoSearchResult
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*domain.VideoSearchResult{}}
}

func (f *fakeCache) key(query string, maxResults int) string {
	return fmt.Sprintf("%s:%d", query, maxResults)
}

func (f *fakeCache) Get(_ context.Context, query string, maxResults int) (*domain.VideoSearchResult, error) {
	return f.entries[f.key(query, maxResults)], nil
}

func (f *fakeCache) Set(_ context.Context, query string, maxResults int, result *domain.VideoSearchResult) error {
	f.entries[f.key(query, maxResults)] = result
	return nil
}

// memStore is an in-memory port.Store plus the activity feed.
type memStore struct {
	users        map[string]*domain.User
	artifacts    []domain.Artifact
	interviews   []domain.InterviewSession
	usage        map[string]int
	unlocked     map[string][]string
	achievements map[string]*domain.Achievement
	logs         []domain.AuditLog
}

func newMemStore() *memStore {
	s := &memStore{
		users:        map[string]*domain.User{},
		usage:        map[string]int{},
		unlocked:     map[string][]string{},
		achievements: map[string]*domain.Achievement{},
	}
	for _, name := range []string{
		domain.AchievementContentCreator,
		domain.AchievementInterviewReady,
		domain.AchievementInterviewExpert,
	} {
		s.achievements[name] = &domain.Achievement{ID: uuid.NewString(), Name: name}
	}
	return s
}

func (s *memStore) EnsureUser(_ context.Context, id, email, name string) error {
	s.users[id] = &domain.User{ID: id, Email: email, Name: name}
	return nil
}

func (s *memStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) CreateArtifact(_ context.Context, a *domain.Artifact) (*domain.Artifact, error) {
	saved := *a
	saved.ID = uuid.NewString()
	saved.CreatedAt = time.Now()
	s.artifacts = append(s.artifacts, saved)
	return &saved, nil
}

func (s *memStore) CountArtifactsByCategory(_ context.Context, userID, category string) (int, error) {
	n := 0
	for _, a := range s.artifacts {
		if a.UserID == userID && a.Category == category {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListArtifactsByUser(_ context.Context, userID string) ([]domain.Artifact, error) {
	var out []domain.Artifact
	for _, a := range s.artifacts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) CreateInterviewSession(_ context.Context, sess *domain.InterviewSession) (*domain.InterviewSession, error) {
	saved := *sess
	saved.ID = uuid.NewString()
	saved.CreatedAt = time.Now()
	s.interviews = append(s.interviews, saved)
	return &saved, nil
}

func (s *memStore) CountInterviewSessions(_ context.Context, userID string) (int, error) {
	n := 0
	for _, sess := range s.interviews {
		if sess.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) UpsertDailyStats(_ context.Context, userID string, _ time.Time, studyMinutes, _ int) error {
	s.usage[userID] += studyMinutes
	return nil
}

func (s *memStore) ListDailyStats(_ context.Context, userID string, _ int) ([]domain.DailyStats, error) {
	if minutes, ok := s.usage[userID]; ok {
		return []domain.DailyStats{{UserID: userID, StudyMinutes: minutes}}, nil
	}
	return nil, nil
}

func (s *memStore) GetAchievementByName(_ context.Context, name string) (*domain.Achievement, error) {
	a, ok := s.achievements[name]
	if !ok {
		return nil, port.ErrAchievementNotFound
	}
	return a, nil
}

func (s *memStore) UnlockAchievement(_ context.Context, userID, achievementID string) error {
	for _, id := range s.unlocked[userID] {
		if id == achievementID {
			return nil
		}
	}
	s.unlocked[userID] = append(s.unlocked[userID], achievementID)
	return nil
}

func (s *memStore) ListUserAchievements(_ context.Context, userID string) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	for _, id := range s.unlocked[userID] {
		out = append(out, domain.UserAchievement{UserID: userID, AchievementID: id})
	}
	return out, nil
}

func (s *memStore) ListAuditLogsByUser(_ context.Context, userID string, _ int) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	for _, l := range s.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

var (
	_ port.Store     = (*memStore)(nil)
	_ ActivityLister = (*memStore)(nil)
)

// ── App wiring ─────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	ai       *fakeAI
	searcher *fakeSearcher
	cache    *fakeCache
	store    *memStore
	userID   string
	token    string
}

var testJWT = middleware.JWTConfig{
	Secret:    "test-secret",
	Issuer:    "studyhub",
	ExpiresIn: time.Hour,
}

// newTestEnv wires the handlers the same way the server entrypoint does,
// with fakes behind every port.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ai:       &fakeAI{content: "generated content"},
		searcher: &fakeSearcher{result: &domain.VideoSearchResult{Videos: []domain.Video{}}},
		cache:    newFakeCache(),
		store:    newMemStore(),
		userID:   uuid.NewString(),
	}

	token, err := middleware.GenerateToken(&domain.User{
		ID:    env.userID,
		Email: "student@example.com",
		Name:  "Student",
	}, testJWT)
	require.NoError(t, err)
	env.token = token

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Info", "Apikey"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	api := app.Group("/api/v1", middleware.JWTMiddleware(testJWT))

	recorder := service.NewRecorder(env.store)
	NewChatHandler(env.ai, recorder).Register(api)
	NewContentHandler(env.ai, recorder).Register(api)
	NewInterviewHandler(env.ai, recorder).Register(api)
	NewRoadmapHandler(env.ai).Register(api)
	NewVideoHandler(env.searcher, env.cache).Register(api)
	NewDashboardHandler(env.store, env.store).Register(api)

	env.app = app
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}
