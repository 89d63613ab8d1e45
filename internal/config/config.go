package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // sqlite (default), postgres, mysql
	DatabasePath   string // sqlite only
	DatabaseURL    string // postgres/mysql
	MigrationsPath string

	JWTSecret     string
	TokenDuration time.Duration

	// AI oracle settings. APIKey and the OAuth pair are mutually
	// exclusive auth modes; OAuth wins when a token URL is set.
	AIBaseURL          string
	AIAPIKey           string
	AIModel            string
	AIOAuthClientID    string
	AIOAuthSecret      string
	AIOAuthTokenURL    string
	AITimeout          time.Duration

	// Progress digest emails via SES. Disabled unless FromEmail is set.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	RateLimitPerMinute int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./lingotaboo.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenDuration: getDuration("TOKEN_DURATION", 24*time.Hour),

		AIBaseURL:       getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIAPIKey:        getEnv("AI_API_KEY", ""),
		AIModel:         getEnv("AI_MODEL", "gpt-4o-mini"),
		AIOAuthClientID: getEnv("AI_OAUTH_CLIENT_ID", ""),
		AIOAuthSecret:   getEnv("AI_OAUTH_CLIENT_SECRET", ""),
		AIOAuthTokenURL: getEnv("AI_OAUTH_TOKEN_URL", ""),
		AITimeout:       getDuration("AI_TIMEOUT", 30*time.Second),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "LingoTaboo"),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 20),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getInt reads an integer environment variable or returns a default
func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
