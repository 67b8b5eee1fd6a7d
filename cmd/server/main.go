package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Abdinajib123/Online-student-admission/internal/api"
	"github.com/Abdinajib123/Online-student-admission/internal/config"
	"github.com/Abdinajib123/Online-student-admission/internal/session"
	"github.com/Abdinajib123/Online-student-admission/internal/web"
	"github.com/Abdinajib123/Online-student-admission/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("redis ping failed: %v", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}()
	}

	apiClient := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: 15 * time.Second})
	sessions := session.NewStore(apiClient, cfg.SessionSecret, cfg.SessionTTL)
	drafts := wizard.NewDraftStore(redisClient, cfg.DraftTTL)

	server := web.NewServer(apiClient, sessions, drafts)
	protect := csrf.Protect([]byte(cfg.CSRFKey), csrf.Secure(false), csrf.Path("/"))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           protect(server.Router()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("portal http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
