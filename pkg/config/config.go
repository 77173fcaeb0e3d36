package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string

	// Redis
	RedisURL          string
	ReportTTL         time.Duration
	ReportStoreEnable bool

	// RabbitMQ
	RabbitMQURL     string
	ReportsExchange string

	// Worker
	RecomputeInterval time.Duration
	WorkerHealthAddr  string
	MetricsAddr       string

	// CalDAV
	CalDAVEndpoint string
	CalDAVUsername string
	CalDAVPassword string
	CalDAVCalendar string
	CalDAVLookback time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("CADENCE_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", defaultSQLitePath()),

		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		ReportTTL:         getDurationEnv("REPORT_TTL", 24*time.Hour),
		ReportStoreEnable: getBoolEnv("REPORT_STORE_ENABLED", false),

		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		ReportsExchange: getEnv("REPORTS_EXCHANGE", "cadence.reports"),

		RecomputeInterval: getDurationEnv("RECOMPUTE_INTERVAL", 15*time.Minute),
		WorkerHealthAddr:  getEnv("WORKER_HEALTH_ADDR", "0.0.0.0:8081"),
		MetricsAddr:       getEnv("METRICS_ADDR", "0.0.0.0:9090"),

		CalDAVEndpoint: getEnv("CALDAV_ENDPOINT", ""),
		CalDAVUsername: getEnv("CALDAV_USERNAME", ""),
		CalDAVPassword: getEnv("CALDAV_PASSWORD", ""),
		CalDAVCalendar: getEnv("CALDAV_CALENDAR", ""),
		CalDAVLookback: getDurationEnv("CALDAV_LOOKBACK", 90*24*time.Hour),
	}

	// Postgres when a DATABASE_URL is given, SQLite otherwise.
	if cfg.DatabaseDriver == "" {
		if cfg.DatabaseURL != "" {
			cfg.DatabaseDriver = "postgres"
		} else {
			cfg.DatabaseDriver = "sqlite"
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cadence.db"
	}
	return home + "/.cadence/cadence.db"
}
