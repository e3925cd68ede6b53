// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Reddit      RedditConfig
	Twitter     TwitterConfig
	Trends      TrendsConfig
	Translate   TranslateConfig
	Sentiment   SentimentConfig
	Cache       CacheConfig
	Radar       RadarConfig
	Alerts      AlertsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string

	// APIKey guards the API when set; empty disables the check.
	APIKey string
}

// RedditConfig holds primary discussion source configuration
type RedditConfig struct {
	BaseURL string
}

// TwitterConfig holds fallback discussion source configuration
type TwitterConfig struct {
	BearerToken string
	Host        string
}

// TrendsConfig holds trend interest service configuration
type TrendsConfig struct {
	BaseURL string
}

// TranslateConfig holds translation service configuration
type TranslateConfig struct {
	BaseURL string
	Target  string
}

// SentimentConfig holds sentiment service configuration
type SentimentConfig struct {
	BaseURL string
}

// CacheConfig holds the two cache TTLs. Trend data changes more slowly than
// live discussion, so its TTL is the longer of the two.
type CacheConfig struct {
	TrendTTL      time.Duration
	DiscussionTTL time.Duration
}

// RadarConfig holds pipeline tuning
type RadarConfig struct {
	FetchLimit     int
	ItemsPerSecond float64
}

// AlertsConfig holds opportunity alerting configuration
type AlertsConfig struct {
	Enabled        bool
	NATSURL        string
	Subject        string
	MinScore       int
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
			APIKey:          getEnv("RADAR_API_KEY", ""),
		},
		Reddit: RedditConfig{
			BaseURL: getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			Host:        getEnv("TWITTER_HOST", "https://api.twitter.com"),
		},
		Trends: TrendsConfig{
			BaseURL: getEnv("TRENDS_BASE_URL", "http://localhost:8100"),
		},
		Translate: TranslateConfig{
			BaseURL: getEnv("TRANSLATE_BASE_URL", "http://localhost:8200"),
			Target:  getEnv("TRANSLATE_TARGET", "en"),
		},
		Sentiment: SentimentConfig{
			BaseURL: getEnv("SENTIMENT_BASE_URL", "http://localhost:8300"),
		},
		Cache: CacheConfig{
			TrendTTL:      getEnvAsDuration("CACHE_TREND_TTL", 6*time.Hour),
			DiscussionTTL: getEnvAsDuration("CACHE_DISCUSSION_TTL", 10*time.Minute),
		},
		Radar: RadarConfig{
			FetchLimit:     getEnvAsInt("RADAR_FETCH_LIMIT", 12),
			ItemsPerSecond: getEnvAsFloat("RADAR_ITEMS_PER_SECOND", 4.0),
		},
		Alerts: AlertsConfig{
			Enabled:        getEnvAsBool("ALERTS_ENABLED", false),
			NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
			Subject:        getEnv("ALERTS_SUBJECT", "radar.opportunity.detected"),
			MinScore:       getEnvAsInt("ALERTS_MIN_SCORE", 50),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Cache.TrendTTL <= config.Cache.DiscussionTTL {
		return fmt.Errorf("trend cache TTL must be longer than discussion cache TTL")
	}

	if config.Radar.FetchLimit <= 0 {
		return fmt.Errorf("fetch limit must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
