package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"attendance-ingest/internal/domain"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	LogLevel    string
	LogFormat   string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ImportLockTTL time.Duration

	MaxTextChars int

	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Malformed numeric settings are reported together
// rather than replaced by their defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	redisDB, redisErr := readInt("REDIS_DB", 0)
	lockTTL, lockErr := readInt("IMPORT_LOCK_TTL_SECONDS", 300)
	maxChars, charsErr := readInt("MAX_TEXT_CHARS", domain.MaxTextChars)
	if err := errors.Join(redisErr, lockErr, charsErr); err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:   readString("SERVICE_NAME", "punchimport"),
		LogLevel:      readString("LOG_LEVEL", "info"),
		LogFormat:     readString("LOG_FORMAT", "json"),
		DatabaseURL:   os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		ImportLockTTL: time.Duration(lockTTL) * time.Second,
		MaxTextChars:  maxChars,
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:  os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
	}, nil
}

func readString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func readInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}
