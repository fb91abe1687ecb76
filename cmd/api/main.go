package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agriscan/platform/internal/api"
	"github.com/agriscan/platform/internal/core/service"
	mongodb "github.com/agriscan/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/agriscan/platform/internal/infrastructure/db/redis"
	"github.com/agriscan/platform/internal/infrastructure/queue"
	"github.com/agriscan/platform/internal/infrastructure/storage"
	"github.com/agriscan/platform/internal/pkg/config"
	"github.com/agriscan/platform/pkg/logger"
)

// @title           AgriScan Platform API
// @version         1.0
// @description     Crop disease reporting and monitoring platform for farmers and agricultural inspectors.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting agriscan api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer rdb.Close()

	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		log.Fatal().Err(err).Msg("image store")
	}

	userRepo := mongodb.NewUserRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	alertRepo := mongodb.NewAlertRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}
	if err := reportRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("report indexes")
	}
	if err := alertRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("alert indexes")
	}

	assessor := service.NewAssessmentService(reportRepo, log)
	dispatcher := queue.NewDispatcher(cfg.AssessmentWorkers, assessor, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:     db,
		Redis:  rdb,
		Queue:  dispatcher,
		Images: images,
		Logger: log,
		Config: cfg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("agriscan api stopped")
}
