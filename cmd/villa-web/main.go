package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"villa-backend/config"
	"villa-backend/utils"
	"villa-backend/web/client"
	"villa-backend/web/handlers"
	"villa-backend/web/session"
)

func main() {
	envLoaded := config.LoadEnv()

	cfg, err := config.LoadWebConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, "villa-web")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	if !envLoaded {
		logger.Info(".env not found; continuing with environment variables")
	}
	for _, key := range cfg.GeneratedKeys {
		logger.Warn("key not configured, using a random one; sessions will not survive a restart", zap.String("key", key))
	}

	var tokens session.TokenStore = session.NewMemoryTokenStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		tokens = session.NewRedisTokenStore(rdb)
		logger.Info("session tokens stored in redis", zap.String("addr", cfg.RedisAddr))
	}

	sessions := session.NewManager(session.NewCookieStore(cfg.SessionKey, cfg.CookieSecure), tokens, logger)

	templates := handlers.NewTemplateCache()
	if err := templates.Load(); err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}

	api := client.New(cfg.APIBaseURL, cfg.APIVersion, logger)
	pages := handlers.New(api, sessions, templates, logger)

	protect := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
	)
	handler := handlers.LoggingMiddleware(logger)(
		handlers.SecurityHeadersMiddleware(
			protect(pages.Router()),
		),
	)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("web server starting", zap.String("addr", addr), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
