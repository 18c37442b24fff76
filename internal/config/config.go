package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultEnvFile = "environment/local.env"

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port        string
	APIPrefix   string
	CORSOrigins string
	BodyLimit   int

	// Rate limiting (shared through Redis when RedisURL is set)
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisURL        string

	// Observability
	AppEnv       string
	SentryDSN    string
	OTLPEndpoint string
	OTelStdout   bool
	LogRetention time.Duration

	// Seeder
	SeedFile string
}

// LoadEnvFile applies a .env file on top of the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("env file not found, using process environment", "path", path)
			return nil
		}
		return err
	}
	slog.Info("env file loaded", "path", path)
	return nil
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "storefront"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "3000"),
		APIPrefix:   getEnv("API_PREFIX", "/api/v1"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimit:   parseInt(getEnv("BODY_LIMIT", "1048576"), 1024*1024),

		RateLimitMax:    parseInt(getEnv("RATE_LIMIT_MAX", "120"), 120),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"), time.Minute),
		RedisURL:        getEnv("REDIS_URL", ""),

		AppEnv:       getEnv("APP_ENV", "development"),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelStdout:   parseBool(getEnv("OTEL_STDOUT", "false")),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SeedFile: getEnv("SEED_FILE", "fixtures/storefront.yaml"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
