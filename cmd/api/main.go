package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"aigallery/internal/activity"
	"aigallery/internal/cache"
	"aigallery/internal/config"
	"aigallery/internal/handlers"
	"aigallery/internal/jobs"
	"aigallery/internal/log"
	"aigallery/internal/repository"
	"aigallery/internal/seed"
	"aigallery/internal/server"
	"aigallery/internal/service"
	"aigallery/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx := context.Background()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	var urls service.URLSigner
	if cfg.Storage.Endpoint != "" {
		objectStore, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objectStore.BucketExists(ctx); err != nil {
			logger.Warn().Err(err).Msg("object store bucket check failed")
		}
		urls = objectStore
	}

	users := repository.NewUserRepository()
	sessions := repository.NewSessionRepository()
	images := repository.NewImageRepository()
	interactions := repository.NewInteractionRepository()

	for _, img := range seed.NewGenerator(cfg.Gallery.Seed).Images(cfg.Gallery.ImageCount) {
		if err := images.Create(ctx, img); err != nil {
			logger.Fatal().Err(err).Int("image_id", img.ID).Msg("failed to seed images")
		}
	}

	publisher := activity.NewPublisher(redisClient, cfg.Activity.Stream)

	authService := service.NewAuthService(users, sessions, cfg, logger)
	if err := authService.SeedDemoUser(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed demo user")
	}
	galleryService := service.NewGalleryService(images, sessions, interactions, urls, logger)
	interactionService := service.NewInteractionService(images, users, interactions, publisher, logger)

	logger.Info().
		Int("images", images.Count()).
		Bool("redis", redisClient != nil).
		Bool("object_store", urls != nil).
		Msg("gallery ready")

	handlerSet := handlers.NewHandlerSet(logger, cfg, authService, galleryService, interactionService, redisClient)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(cfg.Jobs, authService, publisher, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	scheduler.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
