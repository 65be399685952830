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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"villa-backend/config"
	"villa-backend/controllers"
	"villa-backend/repository"
	"villa-backend/routes"
	"villa-backend/services"
	"villa-backend/utils"
)

func main() {
	envLoaded := config.LoadEnv()

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, "villa-api")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	if !envLoaded {
		logger.Info(".env not found; continuing with environment variables")
	}
	gin.SetMode(utils.EnvOrDefault(gin.EnvGinMode, gin.ReleaseMode))

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("database connection established and migrations applied")

	if cfg.SeedData {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := config.SeedDatabase(seedCtx, db, cfg, logger)
		cancel()
		if err != nil {
			logger.Fatal("seeding failed", zap.Error(err))
		}
	}

	// Repositories and services
	villaRepo := repository.NewVillaRepository(db, logger)
	villaNumberRepo := repository.NewVillaNumberRepository(db, villaRepo, logger)
	userRepo := repository.NewUserRepository(db, logger)
	authService := services.NewAuthService(userRepo, utils.NewTokenManager(cfg.JWTSecret), logger)

	router := routes.SetupRouter(routes.Controllers{
		Users:        controllers.NewUserController(authService, logger),
		Villas:       controllers.NewVillaController(villaRepo, logger),
		VillaNumbers: controllers.NewVillaNumberController(villaNumberRepo, logger),
	}, authService, cfg.CORSOrigins, logger)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
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
