package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/hostelhub/hostel-api/internal/api"
	"github.com/hostelhub/hostel-api/internal/infrastructure/config"
	mongodb "github.com/hostelhub/hostel-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hostelhub/hostel-api/internal/infrastructure/db/redis"
	"github.com/hostelhub/hostel-api/pkg/logger"
)

// @title        Hostel Management API
// @version      1.0
// @description  Role-based hostel management backend with cookie and bearer session handling.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "hostel-api",
		Pretty:  cfg.IsDevelopment(),
	})

	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e, err := api.NewRouter(ctx, cfg, db, rdb, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		<-ctx.Done()
		logg.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		logg.Info().Err(err).Msg("server stopped")
	}
}
