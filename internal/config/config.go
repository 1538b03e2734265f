package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"newstracker/internal/domain/model"
)

// Config contains runtime configuration values.
type Config struct {
	NewsAPIKey       string
	NewsAPIBaseURL   string
	Topics           []model.Topic
	HTTPAddr         string
	RequestTimeout   time.Duration
	RefreshCron      string
	AutoPlayInterval time.Duration
	RedisURL         string
	SessionTTL       time.Duration
	FrontendURL      string
	SecureCookies    bool
	LogLevel         string
}

const (
	defaultBaseURL          = "https://newsapi.org/v2/everything"
	defaultHTTPAddr         = ":8080"
	defaultTimeout          = 10 * time.Second
	defaultRefreshCron      = "*/15 * * * *" // every 15 minutes
	defaultAutoPlayInterval = 3 * time.Second
	defaultSessionTTL       = 24 * time.Hour
	defaultLogLevel         = "info"
)

// ErrMissingAPIKey is returned when NEWSAPI_KEY is not set.
var ErrMissingAPIKey = errors.New("NEWSAPI_KEY is required")

// Load builds a Config from environment variables with sane defaults. A .env
// file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		NewsAPIKey:       strings.TrimSpace(os.Getenv("NEWSAPI_KEY")),
		NewsAPIBaseURL:   getenvDefault("NEWSAPI_BASE_URL", defaultBaseURL),
		Topics:           model.ParseTopics(os.Getenv("NEWS_TOPICS")),
		HTTPAddr:         getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		RequestTimeout:   parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		RefreshCron:      getenvDefault("REFRESH_CRON", defaultRefreshCron),
		AutoPlayInterval: parseDurationDefault("AUTO_PLAY_INTERVAL", defaultAutoPlayInterval),
		RedisURL:         os.Getenv("REDIS_URL"),
		SessionTTL:       parseDurationDefault("SESSION_TTL", defaultSessionTTL),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
		SecureCookies:    parseBoolDefault("SECURE_COOKIES", false),
		LogLevel:         getenvDefault("LOG_LEVEL", defaultLogLevel),
	}

	if cfg.NewsAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	if cfg.AutoPlayInterval <= 0 {
		cfg.AutoPlayInterval = defaultAutoPlayInterval
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	return cfg, nil
}

// AllowedOrigins lists the CORS origins the API accepts.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolDefault(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
