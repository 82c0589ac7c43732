package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatabaseURL     string
	RedisURL        string
	QuestionsDir    string
	AIProvider      string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	ModelName       string
	MaxOutputTokens int
	GenerateTimeout time.Duration
	EvalCacheTTL    time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file. Variables use the COACH_ prefix, e.g. COACH_GEMINI_API_KEY.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("COACH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Interview Coach API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("questions.dir", "questions")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.max_output_tokens", 700)
	v.SetDefault("ai.generate_timeout", "60s")
	v.SetDefault("eval.cache_ttl", "15m")
	v.SetDefault("rate.limit_max", 10)
	v.SetDefault("rate.limit_window", "1m")

	generateTimeout, err := time.ParseDuration(v.GetString("ai.generate_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid generate timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("eval.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid eval cache ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("rate.limit_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseURL:     v.GetString("database.url"),
		RedisURL:        v.GetString("redis.url"),
		QuestionsDir:    v.GetString("questions.dir"),
		AIProvider:      strings.ToLower(v.GetString("ai.provider")),
		GeminiAPIKey:    v.GetString("gemini.api_key"),
		OpenAIAPIKey:    v.GetString("openai.api_key"),
		ModelName:       v.GetString("ai.model"),
		MaxOutputTokens: v.GetInt("ai.max_output_tokens"),
		GenerateTimeout: generateTimeout,
		EvalCacheTTL:    cacheTTL,
		RateLimitMax:    v.GetInt("rate.limit_max"),
		RateLimitWindow: rateWindow,
	}

	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 700
	}

	switch cfg.AIProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return Config{}, fmt.Errorf("gemini api key must be provided")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("openai api key must be provided")
		}
	default:
		return Config{}, fmt.Errorf("unsupported ai provider %q", cfg.AIProvider)
	}

	return cfg, nil
}
