package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lagerkern/replenish/pkg/database"
	"github.com/lagerkern/replenish/pkg/logger"
)

// Config holds the analytics service configuration
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	Database database.Config

	KafkaBrokers []string
	KafkaEnabled bool

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

// Load reads configuration from the environment, honoring a local .env file
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional outside development
		logger.Logger.Debug().Err(err).Msg("No .env file loaded")
	}

	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "analytics-service"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8084"),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "replenishdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaEnabled: getEnv("KAFKA_ENABLED", "true") == "true",

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
