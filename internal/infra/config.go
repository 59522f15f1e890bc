package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	StoragePath        string
	StorageBaseURL     string
	CORSAllowedOrigins []string
	GenerationDelay    time.Duration
	PreviewMaxSize     float64
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	SessionIdleTTL     time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		StorageBaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:"+port+"/static"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		GenerationDelay:    time.Millisecond * time.Duration(getEnvInt("GENERATION_DELAY_MS", 3000)),
		PreviewMaxSize:     float64(getEnvInt("PREVIEW_MAX_SIZE", 400)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 600),
		SessionIdleTTL:     time.Minute * time.Duration(getEnvInt("SESSION_IDLE_TTL_MINUTES", 60)),
	}

	if cfg.GenerationDelay <= 0 {
		return nil, fmt.Errorf("GENERATION_DELAY_MS must be positive")
	}

	if cfg.PreviewMaxSize <= 0 {
		return nil, fmt.Errorf("PREVIEW_MAX_SIZE must be positive")
	}

	if cfg.SessionIdleTTL <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TTL_MINUTES must be positive")
	}

	return cfg, nil
}

// UsesDatabase reports whether jobs should be stored in PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
