package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr      string
	APIBaseURL    string
	SessionSecret string
	SessionTTL    time.Duration
	CSRFKey       string
	RedisAddr     string
	RedisPassword string
	DraftTTL      time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		APIBaseURL:    getenv("API_BASE_URL", "http://127.0.0.1:3000/api"),
		SessionSecret: getenv("SESSION_SECRET", "dev-secret"),
		SessionTTL:    getenvDuration("SESSION_TTL", 720*time.Hour),
		CSRFKey:       getenv("CSRF_KEY", "dev-csrf-key-must-be-32-bytes-xx"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		DraftTTL:      getenvDuration("DRAFT_TTL", 2*time.Hour),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
