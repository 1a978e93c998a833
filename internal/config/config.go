// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Generative backend
	GeminiAPIKey  string `env:"GEMINI_API_KEY,required"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`

	// Model routing. Text-only requests go to the reasoning model with an
	// extended thinking budget; requests with media go to the multimodal model.
	ModelReasoning  string `env:"MODEL_REASONING" envDefault:"gemini-3-pro-preview"`
	ModelMultimodal string `env:"MODEL_MULTIMODAL" envDefault:"gemini-2.5-flash"`
	ModelTrend      string `env:"MODEL_TREND" envDefault:"gemini-2.5-flash"`
	ModelImage      string `env:"MODEL_IMAGE" envDefault:"imagen-4.0-generate-001"`
	ModelVideo      string `env:"MODEL_VIDEO" envDefault:"veo-3.1-fast-generate-preview"`
	ModelSpeech     string `env:"MODEL_SPEECH" envDefault:"gemini-2.5-flash-preview-tts"`
	SpeechVoice     string `env:"SPEECH_VOICE" envDefault:"Kore"`
	ThinkingBudget  int    `env:"THINKING_BUDGET" envDefault:"8192"`

	// Database (PostgreSQL, strategy archive + API keys)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Working store (Redis: history blobs, auth cache, rate limits)
	RedisURL string `env:"REDIS_URL,required"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. WriteTimeout defaults to 0 (disabled) because the
	// video endpoint holds the response open for the whole poll loop.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Backend call budgets
	GenerationTimeout  time.Duration `env:"GENERATION_TIMEOUT" envDefault:"2m"`
	TrendLookupTimeout time.Duration `env:"TREND_LOOKUP_TIMEOUT" envDefault:"15s"`

	// Video job polling. The poll budget bounds the status-check loop.
	VideoPollInterval time.Duration `env:"VIDEO_POLL_INTERVAL" envDefault:"10s"`
	VideoPollBudget   time.Duration `env:"VIDEO_POLL_BUDGET" envDefault:"10m"`

	// Local text-to-speech fallback (second tier after the backend).
	// Empty command disables the tier.
	LocalTTSCommand string `env:"LOCAL_TTS_COMMAND" envDefault:"espeak"`

	// Content limits
	MaxMediaBytes int64 `env:"MAX_MEDIA_BYTES" envDefault:"10485760"` // 10 MiB
	HistoryLimit  int   `env:"HISTORY_LIMIT" envDefault:"5"`

	// Rate limiting
	RateLimitAPIEnabled bool `env:"RATE_LIMIT_API_ENABLED" envDefault:"true"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes. Media travels base64-inlined in
	// JSON, so this sits well above MaxMediaBytes (default 32MB).
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"33554432"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
