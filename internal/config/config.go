package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
	SourceFile     = "file"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPAddr         string
	SwaggerURL       string
	ClientSource     string
	DatabaseURL      string
	MongoURI         string
	MongoDatabase    string
	ClientsFile      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisStrategyTTL time.Duration
	ReadTimeout      time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		SwaggerURL:       getEnv("SWAGGER_URL", "http://localhost:8080/swagger/doc.json"),
		ClientSource:     strings.ToLower(getEnv("CLIENT_SOURCE", SourcePostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "marketing"),
		ClientsFile:      os.Getenv("CLIENTS_FILE"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          parseIntEnv("REDIS_DB", 0),
		RedisStrategyTTL: parseDurationEnv("REDIS_STRATEGY_TTL", 24*time.Hour),
		ReadTimeout:      parseDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
	}

	// Saved strategies always live in postgres.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.ClientSource {
	case SourcePostgres, SourceMongo:
	case SourceFile:
		if cfg.ClientsFile == "" {
			return nil, fmt.Errorf("CLIENTS_FILE is required when CLIENT_SOURCE=file")
		}
	default:
		return nil, fmt.Errorf("unsupported CLIENT_SOURCE %q", cfg.ClientSource)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
