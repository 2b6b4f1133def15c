package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "StudyHub API", cfg.AppName)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "studyhub", cfg.JWTIssuer)
	assert.Equal(t, 24, cfg.JWTExpiration)
	assert.Equal(t, "https://ai.gateway.lovable.dev", cfg.AIGatewayURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AIModel)
	assert.Equal(t, "https://www.googleapis.com/youtube/v3", cfg.YouTubeAPIURL)
	assert.Equal(t, 20, cfg.GenerateRatePerMin)
	assert.Equal(t, 5, cfg.GenerateBurst)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")
	t.Setenv("AI_MODEL", "google/gemini-2.5-pro")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 72, cfg.JWTExpiration)
	assert.Equal(t, "google/gemini-2.5-pro", cfg.AIModel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")
	t.Setenv("AUTO_MIGRATE", "maybe")

	cfg := Load()

	assert.Equal(t, 24, cfg.JWTExpiration)
	assert.True(t, cfg.AutoMigrate)
}
