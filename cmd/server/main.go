package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studyhub-ai/studyhub-backend/internal/adapter/ai"
	"github.com/studyhub-ai/studyhub-backend/internal/adapter/cache"
	"github.com/studyhub-ai/studyhub-backend/internal/adapter/store"
	"github.com/studyhub-ai/studyhub-backend/internal/adapter/video"
	"github.com/studyhub-ai/studyhub-backend/internal/handler"
	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/service"
	"github.com/studyhub-ai/studyhub-backend/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting StudyHub API",
		"port", cfg.Port,
		"redis", cfg.RedisAddr != "",
	)

	// ── Database ─────────────────────────────────────────────────────────
	if cfg.AutoMigrate {
		if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	// ── Adapters ─────────────────────────────────────────────────────────
	aiProvider := ai.NewGatewayProvider(ai.GatewayConfig{
		BaseURL: cfg.AIGatewayURL,
		APIKey:  cfg.AIGatewayKey,
		Model:   cfg.AIModel,
	})
	slog.Info("🤖 AI gateway configured", "url", cfg.AIGatewayURL, "model", aiProvider.ModelName())

	videoProvider := video.NewYouTubeProvider(video.YouTubeConfig{
		BaseURL: cfg.YouTubeAPIURL,
		APIKey:  cfg.YouTubeAPIKey,
	})

	var videoCache handler.VideoCache
	if cfg.RedisAddr != "" {
		vc, err := cache.NewVideoCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer vc.Close()
		videoCache = vc
	}

	// ── Services ─────────────────────────────────────────────────────────
	recorder := service.NewRecorder(pgStore)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute, // LLM completions can be slow
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Info", "Apikey"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	// Activity audit (logs all requests)
	app.Use(middleware.AuditMiddleware(pgStore))

	// ── Public Routes ────────────────────────────────────────────────────
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ── Protected Routes ─────────────────────────────────────────────────
	jwtMiddleware := middleware.JWTMiddleware(middleware.JWTConfig{
		Secret:    cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		ExpiresIn: time.Duration(cfg.JWTExpiration) * time.Hour,
	})

	api := app.Group("/api/v1", jwtMiddleware)

	// Billable LLM endpoints get a per-user rate limit on top of auth.
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RatePerMin: cfg.GenerateRatePerMin,
		Burst:      cfg.GenerateBurst,
	})
	defer rateLimiter.Stop()

	llm := api.Group("", rateLimiter.Middleware())

	handler.NewChatHandler(aiProvider, recorder).Register(llm)
	handler.NewContentHandler(aiProvider, recorder).Register(llm)
	handler.NewInterviewHandler(aiProvider, recorder).Register(llm)
	handler.NewRoadmapHandler(aiProvider).Register(llm)

	handler.NewVideoHandler(videoProvider, videoCache).Register(api)
	handler.NewDashboardHandler(pgStore, pgStore).Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
