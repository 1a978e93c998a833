// Package main is the entrypoint for the ViralGrowth API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/viralgrowth/viralgrowth/internal/assets"
	"github.com/viralgrowth/viralgrowth/internal/cache"
	"github.com/viralgrowth/viralgrowth/internal/config"
	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler"
	"github.com/viralgrowth/viralgrowth/internal/history"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
	"github.com/viralgrowth/viralgrowth/internal/middleware"
	"github.com/viralgrowth/viralgrowth/internal/repository"
	"github.com/viralgrowth/viralgrowth/internal/server"
	"github.com/viralgrowth/viralgrowth/internal/strategy"
	"github.com/viralgrowth/viralgrowth/internal/validator"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Generative backend client
	backend := genai.New(cfg.GeminiAPIKey, cfg.GeminiBaseURL, logger)

	// Initialize services
	metricsRecorder := metrics.NewInMemory()

	historyManager := history.NewManager(cacheClient, cfg.HistoryLimit, logger, metricsRecorder)

	strategyService := strategy.NewService(backend, historyManager, repo, strategy.Config{
		ModelReasoning:     cfg.ModelReasoning,
		ModelMultimodal:    cfg.ModelMultimodal,
		ModelTrend:         cfg.ModelTrend,
		ThinkingBudget:     cfg.ThinkingBudget,
		GenerationTimeout:  cfg.GenerationTimeout,
		TrendLookupTimeout: cfg.TrendLookupTimeout,
		MaxMediaBytes:      cfg.MaxMediaBytes,
	}, logger, metricsRecorder)

	validatorService := validator.NewService(backend, validator.Config{
		Model:         cfg.ModelReasoning,
		Timeout:       cfg.GenerationTimeout,
		MaxMediaBytes: cfg.MaxMediaBytes,
	}, logger, metricsRecorder)

	thumbnailService := assets.NewThumbnailService(backend, assets.ThumbnailConfig{
		Model:          cfg.ModelImage,
		AspectRatio:    "9:16",
		OutputMIMEType: "image/jpeg",
	}, logger, metricsRecorder)

	videoService := assets.NewVideoService(backend, assets.VideoConfig{
		Model:        cfg.ModelVideo,
		Resolution:   "720p",
		AspectRatio:  "9:16",
		PollInterval: cfg.VideoPollInterval,
		PollBudget:   cfg.VideoPollBudget,
	}, logger, metricsRecorder)

	speechService := assets.NewSpeechService(speechChain(cfg, backend), logger, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	strategyHandler := handler.NewStrategyHandler(strategyService, logger)
	historyHandler := handler.NewHistoryHandler(historyManager, repo, logger)
	validatorHandler := handler.NewValidatorHandler(validatorService, logger)
	assetsHandler := handler.NewAssetsHandler(thumbnailService, videoService, speechService, logger)
	apiKeyHandler := handler.NewAPIKeyHandler(logger, repo)
	adminHandler := handler.NewAdminHandler(repo, repo, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(routerDeps{
		base:      h,
		health:    healthHandler,
		strategy:  strategyHandler,
		history:   historyHandler,
		validator: validatorHandler,
		assets:    assetsHandler,
		apiKeys:   apiKeyHandler,
		admin:     adminHandler,
		metrics:   metricsHandler,
		repo:      repo,
		cache:     cacheClient,
		cfg:       cfg,
		logger:    logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// speechChain builds the ordered synthesizer fallback chain: backend TTS
// first, then the local command when one is configured.
func speechChain(cfg *config.Config, backend *genai.Client) []assets.Synthesizer {
	chain := []assets.Synthesizer{
		assets.NewGeminiSynthesizer(backend, cfg.ModelSpeech, cfg.SpeechVoice),
	}
	if cfg.LocalTTSCommand != "" {
		chain = append(chain, assets.NewLocalSynthesizer(cfg.LocalTTSCommand))
	}
	return chain
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base      *handler.Handler
	health    *handler.HealthHandler
	strategy  *handler.StrategyHandler
	history   *handler.HistoryHandler
	validator *handler.ValidatorHandler
	assets    *handler.AssetsHandler
	apiKeys   *handler.APIKeyHandler
	admin     *handler.AdminHandler
	metrics   *handler.MetricsHandler
	repo      *repository.Repository
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.IsDevelopment = deps.cfg.IsDevelopment()
	r.Use(middleware.Security(securityCfg))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:     deps.logger,
		Repository: deps.repo,
		Cache:      deps.cache,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     deps.logger,
		Cache:      deps.cache,
		APIEnabled: deps.cfg.RateLimitAPIEnabled,
	}

	// API v1 routes (require authentication)
	r.Route("/api/v1", func(r chi.Router) {
		// Apply auth and rate limit middleware to all API routes
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RateLimitAPI(rateLimitCfg))

		// Strategy generation
		r.With(middleware.RequireWrite()).Post("/strategies", deps.strategy.Generate)

		// Generation history and performance feedback
		r.Route("/history", func(r chi.Router) {
			r.With(middleware.RequireRead()).Get("/", deps.history.List)
			r.With(middleware.RequireWrite()).Delete("/", deps.history.Clear)
			r.With(middleware.RequireWrite()).Post("/{entry_id}/performance", deps.history.AttachPerformance)
		})

		// Draft content validation
		r.With(middleware.RequireWrite()).Post("/validations", deps.validator.Validate)

		// Asset generation
		r.Route("/assets", func(r chi.Router) {
			r.Use(middleware.RequireWrite())
			r.Post("/thumbnails", deps.assets.GenerateThumbnail)
			r.Post("/videos", deps.assets.GenerateVideo)
			r.Post("/voiceovers", deps.assets.GenerateVoiceover)
		})

		// API key management (requires admin scope for mutations)
		r.Route("/api-keys", func(r chi.Router) {
			r.With(middleware.RequireRead()).Get("/", deps.apiKeys.ListAPIKeys)
			r.With(middleware.RequireAdmin()).Post("/", deps.apiKeys.CreateAPIKey)
			r.With(middleware.RequireAdmin()).Delete("/{key_id}", deps.apiKeys.RevokeAPIKey)
		})

		// Admin operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get("/records", deps.admin.ListRecordsByOwner)
			r.Get("/records/{record_id}", deps.admin.GetRecord)
			r.Get("/api-keys", deps.admin.ListAPIKeysByUser)
			r.Get("/stats", deps.admin.Stats)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
