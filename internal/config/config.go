package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort        string
	DBPath         string
	UploadDir      string
	MaxUploadBytes int64

	LLMBaseURL           string
	LLMAPIKey            string
	LLMModelName         string
	LLMTimeout           time.Duration
	LLMMaxRetries        int
	LLMRetryBackoff      time.Duration
	LLMRequestsPerSecond float64
	TargetLanguage       string

	ChunkTargetWords int

	WorkerConcurrency  int
	WorkerPollInterval time.Duration

	LockBackend string
	RedisAddr   string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates numeric fields.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "9000"),
		DBPath:         getEnv("DB_PATH", "./data/booklingo.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "./data/uploads"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMAPIKey:      getEnv("LLM_API_KEY", "dummy-key"),
		LLMModelName:   getEnv("LLM_MODEL", "llama3.2"),
		TargetLanguage: getEnv("TARGET_LANGUAGE", "German"),
		LockBackend:    strings.ToLower(getEnv("LOCK_BACKEND", "memory")),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	maxUploadMB, err := positiveInt("MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) * 1024 * 1024

	timeoutSeconds, err := positiveInt("LLM_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = time.Duration(timeoutSeconds) * time.Second

	// Zero retries is valid: every oracle failure is then immediately fatal.
	cfg.LLMMaxRetries, err = intEnv("LLM_MAX_RETRIES", 2)
	if err != nil {
		return nil, err
	}
	if cfg.LLMMaxRetries < 0 {
		return nil, fmt.Errorf("LLM_MAX_RETRIES must not be negative")
	}

	backoffMS, err := positiveInt("LLM_RETRY_BACKOFF_MS", 1000)
	if err != nil {
		return nil, err
	}
	cfg.LLMRetryBackoff = time.Duration(backoffMS) * time.Millisecond

	rps := getEnv("LLM_REQUESTS_PER_SECOND", "1")
	cfg.LLMRequestsPerSecond, err = strconv.ParseFloat(rps, 64)
	if err != nil {
		return nil, fmt.Errorf("LLM_REQUESTS_PER_SECOND must be a valid number: %w", err)
	}
	if cfg.LLMRequestsPerSecond <= 0 {
		return nil, fmt.Errorf("LLM_REQUESTS_PER_SECOND must be greater than 0")
	}

	if cfg.ChunkTargetWords, err = positiveInt("CHUNK_TARGET_WORDS", 1500); err != nil {
		return nil, err
	}
	if cfg.WorkerConcurrency, err = positiveInt("WORKER_CONCURRENCY", 2); err != nil {
		return nil, err
	}
	pollMS, err := positiveInt("WORKER_POLL_INTERVAL_MS", 1000)
	if err != nil {
		return nil, err
	}
	cfg.WorkerPollInterval = time.Duration(pollMS) * time.Millisecond

	if cfg.LockBackend != "memory" && cfg.LockBackend != "redis" {
		return nil, fmt.Errorf("LOCK_BACKEND must be memory or redis, got %q", cfg.LockBackend)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func positiveInt(key string, defaultValue int) (int, error) {
	v, err := intEnv(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}
