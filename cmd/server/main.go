package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staffdesk/employee-api/internal/api"
	"github.com/staffdesk/employee-api/internal/auth"
	"github.com/staffdesk/employee-api/internal/core/ports"
	"github.com/staffdesk/employee-api/internal/infrastructure/config"
	mongodb "github.com/staffdesk/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdesk/employee-api/internal/infrastructure/db/redis"
	"github.com/staffdesk/employee-api/internal/notify"
	"github.com/staffdesk/employee-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level: cfg.LogLevel,
		Env:   cfg.Env,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- MongoDB (required) ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	logg.Info().Str("database", db.Name()).Msg("mongodb connection established")

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.NewEmployeeRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("failed to ensure employee indexes")
	}

	// --- Redis (optional: login throttling + readiness) ---
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		logg.Info().Str("addr", cfg.Redis.Addr).Msg("redis connection established")
	}

	// --- Notification hub ---
	hub := notify.NewHub(logg)
	dispatcher := notify.NewDispatcher(0, hub, logg)
	dispatcher.Start(ctx)
	var notifier ports.Notifier = dispatcher

	// --- HTTP server ---
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	e := api.NewRouter(db, rdb, tokens, notifier, hub, logg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			logg.Info().Err(err).Msg("http server stopped")
		}
	}()
	logg.Info().Str("port", cfg.Port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logg.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
