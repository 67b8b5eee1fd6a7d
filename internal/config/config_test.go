package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default HTTP_ADDR, got %s", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "http://127.0.0.1:3000/api" {
		t.Fatalf("expected default API_BASE_URL, got %s", cfg.APIBaseURL)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Fatalf("expected default SESSION_TTL, got %s", cfg.SessionTTL)
	}
	if cfg.DraftTTL != 2*time.Hour {
		t.Fatalf("expected default DRAFT_TTL, got %s", cfg.DraftTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":18080")
	t.Setenv("API_BASE_URL", "http://upstream:9000/api")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("DRAFT_TTL_SECONDS", "900")

	cfg := Load()
	if cfg.HTTPAddr != ":18080" {
		t.Fatalf("expected HTTP_ADDR override, got %s", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "http://upstream:9000/api" {
		t.Fatalf("expected API_BASE_URL override, got %s", cfg.APIBaseURL)
	}
	if cfg.SessionSecret != "test-secret" {
		t.Fatalf("expected SESSION_SECRET override, got %s", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected SESSION_TTL 24h, got %s", cfg.SessionTTL)
	}
	if cfg.RedisAddr != "127.0.0.1:6379" {
		t.Fatalf("expected REDIS_ADDR override, got %s", cfg.RedisAddr)
	}
	if cfg.DraftTTL != 15*time.Minute {
		t.Fatalf("expected DRAFT_TTL 15m, got %s", cfg.DraftTTL)
	}
}
