package config

import (
	"fmt"
	"os"
)

// Config carries all environment-derived settings read once at startup.
type Config struct {
	AppEnv string
	Port   string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	// CacheBackend selects the view cache implementation: "memory" or "redis".
	CacheBackend string

	IdentityBaseURL string
	IdentityAPIKey  string

	SessionSecret string
}

// Load reads configuration from environment variables with development
// defaults matching docker-compose.
func Load() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		PGHost:     getEnv("PG_HOST", "localhost"),
		PGPort:     getEnv("PG_PORT", "5432"),
		PGUser:     getEnv("PG_USER", "portal"),
		PGPassword: getEnv("PG_PASSWORD", "portal"),
		PGDatabase: getEnv("PG_DB", "portal"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CacheBackend: getEnv("CACHE_BACKEND", "memory"),

		IdentityBaseURL: getEnv("IDENTITY_API_BASE_URL", "https://api.clerk.dev/v1"),
		IdentityAPIKey:  os.Getenv("IDENTITY_API_KEY"),

		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-do-not-use"),
	}
}

// PostgresDSN builds the connection string shared by the sqlx and GORM
// handles.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
