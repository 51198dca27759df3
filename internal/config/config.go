package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Env      string
	LogLevel slog.Level

	Server struct {
		Port           string
		AllowedOrigins []string
	}

	Database struct {
		URL      string // overrides the discrete fields when set
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		LogLevel string
	}

	Auth struct {
		JWTSecret []byte
		TokenTTL  time.Duration
	}

	Redis struct {
		URL string
	}

	RateLimit struct {
		ReactPerSecond float64
		ReactBurst     int
	}
}

// Load reads a .env file when one is present and builds the Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LogLevel = parseLevel(getEnv("LOG_LEVEL", "info"))

	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(cfg.Server.AllowedOrigins) == 0 {
		slog.Warn("CORS_ALLOWED_ORIGINS has no origins, allowing all")
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = getEnv("DB_NAME", "roadmap")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.LogLevel = getEnv("DB_LOG_LEVEL", "warn")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET not set, using an insecure development secret")
		secret = "dev-insecure-secret"
	}
	cfg.Auth.JWTSecret = []byte(secret)
	cfg.Auth.TokenTTL = time.Duration(getInt("TOKEN_TTL_HOURS", 72)) * time.Hour

	cfg.Redis.URL = os.Getenv("REDIS_URL")

	cfg.RateLimit.ReactPerSecond = getFloat("REACT_RATE_LIMIT", 5)
	cfg.RateLimit.ReactBurst = getInt("REACT_RATE_BURST", 10)

	return cfg, nil
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Database.Host, c.Database.User, c.Database.Password,
		c.Database.Name, c.Database.Port, c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return f
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
