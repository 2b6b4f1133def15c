package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
)

// injectUser fakes an already-authenticated request.
func injectUser(userID string) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals("user", &domain.UserContext{UserID: userID})
		return c.Next()
	}
}

func newLimitedApp(rl *RateLimiter, userID string) *fiber.App {
	app := fiber.New()
	app.Post("/generate", injectUser(userID), rl.Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRateLimiter_BurstThenLimited(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RatePerMin: 1, Burst: 3})
	defer rl.Stop()

	app := newLimitedApp(rl, uuid.NewString())

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d within burst", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}

func TestRateLimiter_PerUserIsolation(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RatePerMin: 1, Burst: 1})
	defer rl.Stop()

	userA := uuid.NewString()
	userB := uuid.NewString()

	appA := newLimitedApp(rl, userA)
	appB := newLimitedApp(rl, userB)

	resp, err := appA.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = appA.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// A's exhaustion does not affect B.
	resp, err = appB.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 2, rl.Count())
}

func TestRateLimiter_RequiresUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RatePerMin: 10, Burst: 10})
	defer rl.Stop()

	app := fiber.New()
	app.Post("/generate", rl.Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, rl.Count())
}
