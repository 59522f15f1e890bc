package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_BASE_URL", "")
	t.Setenv("GENERATION_DELAY_MS", "")
	t.Setenv("PREVIEW_MAX_SIZE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SESSION_IDLE_TTL_MINUTES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageBaseURL != "http://localhost:8080/static" {
		t.Fatalf("StorageBaseURL mismatch: got %q", cfg.StorageBaseURL)
	}
	if cfg.GenerationDelay != 3*time.Second {
		t.Fatalf("GenerationDelay = %s, want 3s", cfg.GenerationDelay)
	}
	if cfg.PreviewMaxSize != 400 {
		t.Fatalf("PreviewMaxSize = %v, want 400", cfg.PreviewMaxSize)
	}
	if cfg.SessionIdleTTL != time.Hour {
		t.Fatalf("SessionIdleTTL = %s, want 1h", cfg.SessionIdleTTL)
	}
	if cfg.UsesDatabase() {
		t.Fatalf("UsesDatabase() = true without DATABASE_URL")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigInheritsPortInStorageBaseURL(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("STORAGE_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := "http://localhost:1919/static"
	if cfg.StorageBaseURL != expected {
		t.Fatalf("StorageBaseURL mismatch: got %q want %q", cfg.StorageBaseURL, expected)
	}
}

func TestLoadConfigParsesOriginsAndDatabase(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DATABASE_URL", "postgres://example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
	if !cfg.UsesDatabase() {
		t.Fatalf("UsesDatabase() = false with DATABASE_URL set")
	}
}

func TestLoadConfigRejectsNonPositiveDelay(t *testing.T) {
	t.Setenv("GENERATION_DELAY_MS", "-5")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig accepted a negative generation delay")
	}
}

func TestLoadConfigRejectsNonPositiveSessionTTL(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL_MINUTES", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig accepted a zero session idle ttl")
	}
}
