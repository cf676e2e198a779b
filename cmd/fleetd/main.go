package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-service-backend/config"
	"fleet-service-backend/internal/api"
	"fleet-service-backend/internal/auth"
	"fleet-service-backend/internal/db"
	"fleet-service-backend/internal/logs"
	"fleet-service-backend/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logs.Logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logs.Init(cfg.Log.Level, cfg.Log.Format)
	logs.Logger.Infof("configuration loaded from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logs.Logger.Fatalf("failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Bootstrap(ctx, gormDB, cfg); err != nil {
		logs.Logger.Fatalf("bootstrap failed: %v", err)
	}

	appStore := store.NewGormStore(gormDB)
	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	router := api.NewRouter(appStore, issuer, cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logs.Logger.Infof("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logs.Logger.Info("shutdown signal received, stopping server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logs.Logger.Info("server gracefully stopped")
}
